package weather

import "time"

// Provider response shapes (OpenWeatherMap). Only the fields we reshape.

type owmCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type owmCurrentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
	Wind    owmWind        `json:"wind"`
	Clouds  struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
}

type owmForecastEntry struct {
	Dt      int64          `json:"dt"`
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
	Wind    owmWind        `json:"wind"`
	Pop     float64        `json:"pop"`
	DtTxt   string         `json:"dt_txt"`
}

type owmForecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []owmForecastEntry `json:"list"`
}

type owmAlert struct {
	SenderName  string `json:"sender_name"`
	Event       string `json:"event"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Description string `json:"description"`
}

type owmOneCallResponse struct {
	Alerts []owmAlert `json:"alerts"`
}

// Stable shapes returned to clients, independent of the provider's schema.

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Current struct {
	Location    string    `json:"location"`
	Country     string    `json:"country"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feelsLike"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Humidity    int       `json:"humidity"`
	Pressure    int       `json:"pressure"`
	WindSpeed   float64   `json:"windSpeed"`
	WindDeg     int       `json:"windDeg"`
	Cloudiness  int       `json:"cloudiness"`
	Visibility  int       `json:"visibility"`
	Condition   Condition `json:"condition"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	ObservedAt  time.Time `json:"observedAt"`
}

type HourlyForecast struct {
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feelsLike"`
	Humidity      int       `json:"humidity"`
	WindSpeed     float64   `json:"windSpeed"`
	Condition     Condition `json:"condition"`
	Precipitation int       `json:"precipitation"` // percent, 0-100
}

type DailyForecast struct {
	Date          string           `json:"date"` // YYYY-MM-DD
	TempMin       float64          `json:"tempMin"`
	TempMax       float64          `json:"tempMax"`
	Condition     Condition        `json:"condition"`
	Precipitation int              `json:"precipitation"` // worst hour of the day
	Hours         []HourlyForecast `json:"hours"`
}

type Forecast struct {
	Location        string          `json:"location"`
	Country         string          `json:"country"`
	Days            []DailyForecast `json:"days"`
	Recommendations []string        `json:"recommendations"`
}

type Alert struct {
	Sender      string    `json:"sender"`
	Event       string    `json:"event"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}
