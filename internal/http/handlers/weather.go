package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveltrack/traveltrack/internal/cache"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/observability"
	"github.com/traveltrack/traveltrack/internal/weather"
)

type WeatherHandler struct {
	client *weather.Client
	cache  *cache.Cache
	prom   *observability.Prom
}

func NewWeatherHandler(client *weather.Client, c *cache.Cache, prom *observability.Prom) *WeatherHandler {
	return &WeatherHandler{client: client, cache: c, prom: prom}
}

// queryFrom accepts ?city= or ?lat=&lon=. Both missing is a 400.
func queryFrom(ctx *gin.Context, coordsOnly bool) (weather.Query, bool) {
	q := weather.Query{
		City: ctx.Query("city"),
		Lat:  ctx.Query("lat"),
		Lon:  ctx.Query("lon"),
	}

	if coordsOnly {
		q.City = ""
		if q.Lat == "" || q.Lon == "" {
			RespondBadRequest(ctx, "lat and lon query parameters are required", nil)
			return weather.Query{}, false
		}
		return q, true
	}

	if q.City == "" && (q.Lat == "" || q.Lon == "") {
		RespondBadRequest(ctx, "A city or lat/lon pair is required", nil)
		return weather.Query{}, false
	}

	return q, true
}

func (h *WeatherHandler) respondWeatherError(ctx *gin.Context, err error) {
	if errors.Is(err, weather.ErrLocationNotFound) {
		RespondNotFound(ctx, "Location not found")
		return
	}

	RespondUpstream(ctx, "Weather provider unavailable")
}

func (h *WeatherHandler) Current(ctx *gin.Context) {
	q, ok := queryFrom(ctx, false)
	if !ok {
		return
	}

	key := "current:" + q.Key()

	if cached, ok := h.cache.Get(key); ok {
		RespondData(ctx, http.StatusOK, "", cached)
		return
	}

	cctx, cancel := config.WithTimeout(12 * time.Second)
	defer cancel()

	var cur weather.Current

	err := h.prom.ObserveUpstream("openweathermap", func() error {
		var err error
		cur, err = h.client.Current(cctx, q)
		return err
	})

	if err != nil {
		h.respondWeatherError(ctx, err)
		return
	}

	h.cache.Set(key, cur)
	RespondData(ctx, http.StatusOK, "", cur)
}

func (h *WeatherHandler) Forecast(ctx *gin.Context) {
	q, ok := queryFrom(ctx, false)
	if !ok {
		return
	}

	key := "forecast:" + q.Key()

	if cached, ok := h.cache.Get(key); ok {
		RespondData(ctx, http.StatusOK, "", cached)
		return
	}

	cctx, cancel := config.WithTimeout(12 * time.Second)
	defer cancel()

	var forecast weather.Forecast

	err := h.prom.ObserveUpstream("openweathermap", func() error {
		var err error
		forecast, err = h.client.Forecast(cctx, q)
		return err
	})

	if err != nil {
		h.respondWeatherError(ctx, err)
		return
	}

	h.cache.Set(key, forecast)
	RespondData(ctx, http.StatusOK, "", forecast)
}

func (h *WeatherHandler) Alerts(ctx *gin.Context) {
	q, ok := queryFrom(ctx, true)
	if !ok {
		return
	}

	key := "alerts:" + q.Key()

	if cached, ok := h.cache.Get(key); ok {
		RespondData(ctx, http.StatusOK, "", cached)
		return
	}

	cctx, cancel := config.WithTimeout(12 * time.Second)
	defer cancel()

	var alerts []weather.Alert

	err := h.prom.ObserveUpstream("openweathermap", func() error {
		var err error
		alerts, err = h.client.Alerts(cctx, q)
		return err
	})

	if err != nil {
		h.respondWeatherError(ctx, err)
		return
	}

	h.cache.Set(key, alerts)
	RespondData(ctx, http.StatusOK, "", alerts)
}

// Recommendations reuses the forecast pipeline and returns only the derived
// advice list.
func (h *WeatherHandler) Recommendations(ctx *gin.Context) {
	q, ok := queryFrom(ctx, false)
	if !ok {
		return
	}

	key := "forecast:" + q.Key()

	if cached, ok := h.cache.Get(key); ok {
		if f, isForecast := cached.(weather.Forecast); isForecast {
			RespondData(ctx, http.StatusOK, "", gin.H{"recommendations": f.Recommendations})
			return
		}
	}

	cctx, cancel := config.WithTimeout(12 * time.Second)
	defer cancel()

	var forecast weather.Forecast

	err := h.prom.ObserveUpstream("openweathermap", func() error {
		var err error
		forecast, err = h.client.Forecast(cctx, q)
		return err
	})

	if err != nil {
		h.respondWeatherError(ctx, err)
		return
	}

	h.cache.Set(key, forecast)
	RespondData(ctx, http.StatusOK, "", gin.H{"recommendations": forecast.Recommendations})
}
