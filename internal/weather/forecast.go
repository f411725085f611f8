package weather

import (
	"math"
	"sort"
	"time"
)

// reshapeForecast buckets the provider's 3-hourly entries into days with
// min/max temperatures and the day's worst precipitation chance.
func reshapeForecast(raw owmForecastResponse) Forecast {
	byDate := make(map[string][]owmForecastEntry)

	for _, e := range raw.List {
		date := time.Unix(e.Dt, 0).UTC().Format("2006-01-02")
		byDate[date] = append(byDate[date], e)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	days := make([]DailyForecast, 0, len(dates))

	for _, date := range dates {
		entries := byDate[date]

		day := DailyForecast{
			Date:    date,
			TempMin: math.Inf(1),
			TempMax: math.Inf(-1),
		}

		for _, e := range entries {
			if e.Main.TempMin < day.TempMin {
				day.TempMin = e.Main.TempMin
			}
			if e.Main.TempMax > day.TempMax {
				day.TempMax = e.Main.TempMax
			}

			pop := int(math.Round(e.Pop * 100))
			if pop > day.Precipitation {
				day.Precipitation = pop
			}

			hour := HourlyForecast{
				Time:          time.Unix(e.Dt, 0).UTC(),
				Temperature:   e.Main.Temp,
				FeelsLike:     e.Main.FeelsLike,
				Humidity:      e.Main.Humidity,
				WindSpeed:     e.Wind.Speed,
				Precipitation: pop,
			}
			if len(e.Weather) > 0 {
				hour.Condition = Condition{
					Main:        e.Weather[0].Main,
					Description: e.Weather[0].Description,
					Icon:        e.Weather[0].Icon,
				}
			}
			day.Hours = append(day.Hours, hour)
		}

		// midday entry is the most representative condition
		day.Condition = middayCondition(entries)
		days = append(days, day)
	}

	f := Forecast{
		Location: raw.City.Name,
		Country:  raw.City.Country,
		Days:     days,
	}
	f.Recommendations = recommendations(days)

	return f
}

func middayCondition(entries []owmForecastEntry) Condition {
	best := entries[0]
	bestDist := 24

	for _, e := range entries {
		h := time.Unix(e.Dt, 0).UTC().Hour()
		dist := h - 12
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best = e
			bestDist = dist
		}
	}

	if len(best.Weather) == 0 {
		return Condition{}
	}

	return Condition{
		Main:        best.Weather[0].Main,
		Description: best.Weather[0].Description,
		Icon:        best.Weather[0].Icon,
	}
}

// recommendations derives packing hints from the forecast window.
func recommendations(days []DailyForecast) []string {
	out := []string{}

	var rain, snow, cold, hot, windy bool

	for _, d := range days {
		if d.Precipitation >= 40 || d.Condition.Main == "Rain" || d.Condition.Main == "Thunderstorm" {
			rain = true
		}
		if d.Condition.Main == "Snow" {
			snow = true
		}
		if d.TempMin < 10 {
			cold = true
		}
		if d.TempMax > 30 {
			hot = true
		}
		for _, h := range d.Hours {
			if h.WindSpeed > 10 {
				windy = true
			}
		}
	}

	if rain {
		out = append(out, "Pack an umbrella or rain jacket, rain is likely during your trip")
	}
	if snow {
		out = append(out, "Bring winter gear, snow is expected")
	}
	if cold {
		out = append(out, "Pack warm layers, temperatures drop below 10°C")
	}
	if hot {
		out = append(out, "Bring sunscreen and stay hydrated, temperatures exceed 30°C")
	}
	if windy {
		out = append(out, "A windbreaker is recommended, strong winds are forecast")
	}
	if len(out) == 0 {
		out = append(out, "Conditions look mild, pack for comfortable weather")
	}

	return out
}
