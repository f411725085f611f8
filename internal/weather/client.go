package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrProvider         = errors.New("weather provider error")
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Query names a place either by free-text city or by coordinates. City wins
// when both are set.
type Query struct {
	City string
	Lat  string
	Lon  string
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.City != "" {
		v.Set("q", q.City)
	} else {
		v.Set("lat", q.Lat)
		v.Set("lon", q.Lon)
	}
	return v
}

// Key is the cache key form of the query.
func (q Query) Key() string {
	if q.City != "" {
		return q.City
	}
	return q.Lat + "," + q.Lon
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)

	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrLocationNotFound
	}

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Current(ctx context.Context, q Query) (Current, error) {
	var raw owmCurrentResponse

	if err := c.get(ctx, "/weather", q.values(), &raw); err != nil {
		return Current{}, err
	}

	return reshapeCurrent(raw), nil
}

func (c *Client) Forecast(ctx context.Context, q Query) (Forecast, error) {
	var raw owmForecastResponse

	if err := c.get(ctx, "/forecast", q.values(), &raw); err != nil {
		return Forecast{}, err
	}

	return reshapeForecast(raw), nil
}

// Alerts needs coordinates; the provider's alert feed has no city lookup.
func (c *Client) Alerts(ctx context.Context, q Query) ([]Alert, error) {
	v := url.Values{}
	v.Set("lat", q.Lat)
	v.Set("lon", q.Lon)
	v.Set("exclude", "current,minutely,hourly,daily")

	var raw owmOneCallResponse

	if err := c.get(ctx, "/onecall", v, &raw); err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(raw.Alerts))
	for _, a := range raw.Alerts {
		alerts = append(alerts, Alert{
			Sender:      a.SenderName,
			Event:       a.Event,
			Description: a.Description,
			Start:       time.Unix(a.Start, 0).UTC(),
			End:         time.Unix(a.End, 0).UTC(),
		})
	}

	return alerts, nil
}

func reshapeCurrent(raw owmCurrentResponse) Current {
	cond := Condition{}
	if len(raw.Weather) > 0 {
		cond = Condition{
			Main:        raw.Weather[0].Main,
			Description: raw.Weather[0].Description,
			Icon:        raw.Weather[0].Icon,
		}
	}

	return Current{
		Location:    raw.Name,
		Country:     raw.Sys.Country,
		Temperature: raw.Main.Temp,
		FeelsLike:   raw.Main.FeelsLike,
		TempMin:     raw.Main.TempMin,
		TempMax:     raw.Main.TempMax,
		Humidity:    raw.Main.Humidity,
		Pressure:    raw.Main.Pressure,
		WindSpeed:   raw.Wind.Speed,
		WindDeg:     raw.Wind.Deg,
		Cloudiness:  raw.Clouds.All,
		Visibility:  raw.Visibility,
		Condition:   cond,
		Sunrise:     time.Unix(raw.Sys.Sunrise, 0).UTC(),
		Sunset:      time.Unix(raw.Sys.Sunset, 0).UTC(),
		ObservedAt:  time.Unix(raw.Dt, 0).UTC(),
	}
}
