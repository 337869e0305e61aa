package telemetry

import (
	"math"
	"math/rand"
	"time"

	"github.com/srpanda29/poultry-health-dashboard/internal/model"
)

// Operating bounds for the simulated house environment. The random walk is
// clamped so the dashboard never shows physically silly values.
const (
	minTemperatureC = 18.0
	maxTemperatureC = 38.0
	minHumidityPct  = 40.0
	maxHumidityPct  = 85.0
	minAmmoniaPpm   = 0.0
	maxAmmoniaPpm   = 45.0
	minLightLux     = 0.0
	maxLightLux     = 900.0
)

// Generator produces simulated sensor readings as a bounded random walk, so
// consecutive values drift instead of jumping.
type Generator struct {
	rng *rand.Rand

	temperatureC float64
	humidityPct  float64
	ammoniaPpm   float64
	lightLux     float64
}

// NewGenerator creates a Generator seeded for reproducibility in tests.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:          rand.New(rand.NewSource(seed)),
		temperatureC: 27.5,
		humidityPct:  62.0,
		ammoniaPpm:   14.0,
		lightLux:     480.0,
	}
}

// Next advances the walk one step and returns the reading for the given time.
func (g *Generator) Next(timestamp time.Time) model.SensorReading {
	g.temperatureC = g.step(g.temperatureC, 0.4, minTemperatureC, maxTemperatureC)
	g.humidityPct = g.step(g.humidityPct, 1.5, minHumidityPct, maxHumidityPct)
	g.ammoniaPpm = g.step(g.ammoniaPpm, 0.8, minAmmoniaPpm, maxAmmoniaPpm)
	g.lightLux = g.step(g.lightLux, 30.0, minLightLux, maxLightLux)

	return model.SensorReading{
		Timestamp:    timestamp,
		TemperatureC: round1(g.temperatureC),
		HumidityPct:  round1(g.humidityPct),
		AmmoniaPpm:   round1(g.ammoniaPpm),
		LightLux:     round1(g.lightLux),
	}
}

// step nudges a value by up to ±maxDelta and clamps it into [min, max].
func (g *Generator) step(value, maxDelta, min, max float64) float64 {
	value += (g.rng.Float64()*2 - 1) * maxDelta
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return value
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
