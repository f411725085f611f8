package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func forecastFixture() owmForecastResponse {
	mk := func(day, hour int, tmin, tmax, pop float64, main string) owmForecastEntry {
		ts := time.Date(2027, 4, day, hour, 0, 0, 0, time.UTC)
		return owmForecastEntry{
			Dt: ts.Unix(),
			Main: owmMain{
				Temp:    (tmin + tmax) / 2,
				TempMin: tmin,
				TempMax: tmax,
			},
			Weather: []owmCondition{{Main: main, Description: main, Icon: "01d"}},
			Pop:     pop,
		}
	}

	raw := owmForecastResponse{}
	raw.City.Name = "Lisbon"
	raw.City.Country = "PT"
	raw.List = []owmForecastEntry{
		mk(1, 9, 8, 14, 0.1, "Clouds"),
		mk(1, 12, 10, 16, 0.7, "Rain"),
		mk(1, 18, 9, 13, 0.2, "Clouds"),
		mk(2, 12, 15, 33, 0.0, "Clear"),
	}

	return raw
}

func TestReshapeForecastBucketsByDay(t *testing.T) {
	f := reshapeForecast(forecastFixture())

	if len(f.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(f.Days))
	}

	d1 := f.Days[0]
	if d1.Date != "2027-04-01" {
		t.Fatalf("date = %s", d1.Date)
	}
	if d1.TempMin != 8 || d1.TempMax != 16 {
		t.Fatalf("temps = %v/%v, want 8/16", d1.TempMin, d1.TempMax)
	}
	if d1.Precipitation != 70 {
		t.Fatalf("precipitation = %d, want 70", d1.Precipitation)
	}
	if d1.Condition.Main != "Rain" {
		t.Fatalf("midday condition = %s, want Rain", d1.Condition.Main)
	}
	if len(d1.Hours) != 3 {
		t.Fatalf("hours = %d, want 3", len(d1.Hours))
	}
}

func TestRecommendationsFromForecast(t *testing.T) {
	f := reshapeForecast(forecastFixture())

	var rain, cold, hot bool
	for _, r := range f.Recommendations {
		switch {
		case strings.Contains(r, "rain"):
			rain = true
		case strings.Contains(r, "warm layers"):
			cold = true
		case strings.Contains(r, "sunscreen"):
			hot = true
		}
	}

	if !rain || !cold || !hot {
		t.Fatalf("missing recommendations: rain=%v cold=%v hot=%v (%v)", rain, cold, hot, f.Recommendations)
	}
}

func TestClientCurrentMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	_, err := c.Current(context.Background(), Query{City: "Atlantis"})
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestClientCurrentReshapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Lisbon" {
			t.Errorf("q = %s", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %s", got)
		}

		raw := owmCurrentResponse{
			Name: "Lisbon",
			Main: owmMain{Temp: 21.5, Humidity: 60},
			Weather: []owmCondition{
				{Main: "Clear", Description: "clear sky", Icon: "01d"},
			},
		}
		raw.Sys.Country = "PT"

		_ = json.NewEncoder(w).Encode(raw)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	cur, err := c.Current(context.Background(), Query{City: "Lisbon"})
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if cur.Location != "Lisbon" || cur.Country != "PT" {
		t.Fatalf("location = %s/%s", cur.Location, cur.Country)
	}
	if cur.Temperature != 21.5 {
		t.Fatalf("temperature = %v", cur.Temperature)
	}
	if cur.Condition.Main != "Clear" {
		t.Fatalf("condition = %s", cur.Condition.Main)
	}
}

func TestQueryValues(t *testing.T) {
	byCity := Query{City: "Porto"}
	if got := byCity.values().Get("q"); got != "Porto" {
		t.Fatalf("q = %s", got)
	}
	if byCity.Key() != "Porto" {
		t.Fatalf("key = %s", byCity.Key())
	}

	byCoords := Query{Lat: "41.15", Lon: "-8.61"}
	v := byCoords.values()
	if v.Get("lat") != "41.15" || v.Get("lon") != "-8.61" {
		t.Fatalf("coords = %s,%s", v.Get("lat"), v.Get("lon"))
	}
	if byCoords.Key() != "41.15,-8.61" {
		t.Fatalf("key = %s", byCoords.Key())
	}
}
