package forecast

const (
	MinDays = 1
	MaxDays = 16
)

// Request asks for Days days of forecast at one coordinate.
type Request struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Days      int     `json:"days" validate:"min=1,max=16"`
}

// Result is the forecast folded into one entry per day.
type Result struct {
	Timezone string `json:"timezone,omitempty"`
	Days     []Day  `json:"days"`
}

type Day struct {
	// Date is the local calendar day as returned by the provider (YYYY-MM-DD).
	Date             string  `json:"date"`
	WeatherCode      int     `json:"weather_code"`
	TemperatureMin   float64 `json:"temperature_min"`
	TemperatureMax   float64 `json:"temperature_max"`
	PrecipitationSum float64 `json:"precipitation_sum"`
	WindSpeedMax     float64 `json:"wind_speed_max"`
	Hourly           []Hour  `json:"hourly"`
}

type Hour struct {
	// Time is local ISO 8601 without offset (YYYY-MM-DDTHH:MM).
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
}
