// Package flood provides flood risk readings. Unlike heatwave and air
// quality, flood readings are written by administrative paths and only
// read by the API; the ingestion pipeline does not populate them.
package flood

import (
	"errors"
	"time"
)

// Flood errors.
var (
	ErrNoReading = errors.New("no flood reading for city")
)

// RiskLevel is the ordinal flood risk band.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskSevere   RiskLevel = "severe"
)

// Valid reports whether l is a known risk level.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskModerate, RiskHigh, RiskSevere:
		return true
	}
	return false
}

// Reading is one persisted flood snapshot for a city.
type Reading struct {
	ID         string    `json:"id"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	RainfallMM float64   `json:"rainfallMm"`
	WaterLevel float64   `json:"waterLevelM"`
	Source     string    `json:"source"`
	RecordedAt time.Time `json:"recordedAt"`
}
