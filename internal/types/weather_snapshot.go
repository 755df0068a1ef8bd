package types

// WeatherSnapshot is the in-memory weather context handed to the comfort
// engine and the AI scoring calls. Not persisted directly; DailyWeather is
// the stored form.
type WeatherSnapshot struct {
	Region        string  `json:"region"`
	AvgTemp       float64 `json:"temperature"`
	MinTemp       float64 `json:"minTemperature"`
	MaxTemp       float64 `json:"maxTemperature"`
	FeelsLikeTemp float64 `json:"feelsLikeTemperature"`
	Humidity      int     `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	CloudAmount   int     `json:"cloudAmount"`
	Sky           string  `json:"sky"`
}
