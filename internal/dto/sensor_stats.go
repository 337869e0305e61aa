package dto

// SensorStats contains aggregate statistics over stored readings.
type SensorStats struct {
	Count           int     `json:"count"`
	AvgTemperatureC float64 `json:"avgTemperatureC"`
	MinTemperatureC float64 `json:"minTemperatureC"`
	MaxTemperatureC float64 `json:"maxTemperatureC"`
	AvgHumidityPct  float64 `json:"avgHumidityPct"`
	AvgAmmoniaPpm   float64 `json:"avgAmmoniaPpm"`
	AvgLightLux     float64 `json:"avgLightLux"`
}
