package model

import "time"

// SensorReading represents one sample of the house environment.
type SensorReading struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	TemperatureC float64   `json:"temperatureC"`
	HumidityPct  float64   `json:"humidityPct"`
	AmmoniaPpm   float64   `json:"ammoniaPpm"`
	LightLux     float64   `json:"lightLux"`
}
