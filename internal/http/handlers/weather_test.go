package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/traveltrack/traveltrack/internal/cache"
	"github.com/traveltrack/traveltrack/internal/http/handlers"
	"github.com/traveltrack/traveltrack/internal/observability"
	"github.com/traveltrack/traveltrack/internal/weather"
)

func newWeatherHandler(upstream http.HandlerFunc) (*handlers.WeatherHandler, *httptest.Server, *countingHandler) {
	counting := &countingHandler{inner: upstream}
	srv := httptest.NewServer(counting)

	client := weather.NewClient(srv.URL, "test-key")
	c := cache.New(10 * time.Minute)
	prom := observability.NewProm(prometheus.NewRegistry())

	return handlers.NewWeatherHandler(client, c, prom), srv, counting
}

type countingHandler struct {
	inner http.HandlerFunc
	hits  int
}

func (c *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.hits++
	c.inner(w, r)
}

func serveCurrentFixture(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{
		"name": "Lisbon",
		"sys": {"country": "PT"},
		"main": {"temp": 21.4, "feels_like": 20.9, "humidity": 55},
		"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
		"wind": {"speed": 3.2}
	}`))
}

func TestWeatherCurrent(t *testing.T) {
	h, srv, _ := newWeatherHandler(serveCurrentFixture)
	defer srv.Close()

	r := setupRouter(http.MethodGet, "/weather/current", h.Current)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/weather/current?city=Lisbon", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Lisbon") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestWeatherCurrentMissingQuery(t *testing.T) {
	h, srv, counting := newWeatherHandler(serveCurrentFixture)
	defer srv.Close()

	r := setupRouter(http.MethodGet, "/weather/current", h.Current)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/weather/current", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if counting.hits != 0 {
		t.Fatalf("provider hit %d times for an invalid query", counting.hits)
	}
}

func TestWeatherCurrentUnknownLocation(t *testing.T) {
	h, srv, _ := newWeatherHandler(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404"}`, http.StatusNotFound)
	})
	defer srv.Close()

	r := setupRouter(http.MethodGet, "/weather/current", h.Current)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/weather/current?city=Nowheresville", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Location not found") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestWeatherCurrentProviderDown(t *testing.T) {
	h, srv, _ := newWeatherHandler(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	defer srv.Close()

	r := setupRouter(http.MethodGet, "/weather/current", h.Current)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/weather/current?city=Lisbon", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
}

func TestWeatherCurrentServedFromCache(t *testing.T) {
	h, srv, counting := newWeatherHandler(serveCurrentFixture)
	defer srv.Close()

	r := setupRouter(http.MethodGet, "/weather/current", h.Current)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/weather/current?city=Lisbon", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}

	if counting.hits != 1 {
		t.Fatalf("provider hit %d times, want 1", counting.hits)
	}
}

func TestWeatherAlertsRequireCoordinates(t *testing.T) {
	h, srv, counting := newWeatherHandler(serveCurrentFixture)
	defer srv.Close()

	r := setupRouter(http.MethodGet, "/weather/alerts", h.Alerts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/weather/alerts?city=Lisbon", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if counting.hits != 0 {
		t.Fatalf("provider hit %d times without coordinates", counting.hits)
	}
}
