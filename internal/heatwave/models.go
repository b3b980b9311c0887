// Package heatwave provides heat readings, the heat index computation,
// and the heatwave alert level classification.
package heatwave

import (
	"errors"
	"time"
)

// Heatwave errors.
var (
	ErrNoReading = errors.New("no heatwave reading for city")
)

// AlertLevel is the ordinal heatwave severity band.
type AlertLevel string

const (
	LevelGreen  AlertLevel = "green"
	LevelYellow AlertLevel = "yellow"
	LevelOrange AlertLevel = "orange"
	LevelRed    AlertLevel = "red"
)

// Temperature holds the temperature block of a reading, in Celsius.
type Temperature struct {
	Current   float64 `json:"current"`
	FeelsLike float64 `json:"feelsLike"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// Reading is one persisted heat snapshot for a city.
// Readings are append-only; the newest recorded_at wins.
type Reading struct {
	ID          string      `json:"id"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Lat         float64     `json:"lat"`
	Lon         float64     `json:"lon"`
	Temperature Temperature `json:"temperature"`
	HeatIndex   float64     `json:"heatIndex"`
	Humidity    float64     `json:"humidity"`
	AlertLevel  AlertLevel  `json:"alertLevel"`
	Source      string      `json:"source"`
	RecordedAt  time.Time   `json:"recordedAt"`
}
