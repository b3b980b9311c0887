// Package waterquality provides water quality readings, the WQI
// computation, and the simulated per-city sample generator.
package waterquality

import (
	"errors"
	"time"
)

// Water quality errors.
var (
	ErrNoReading = errors.New("no water quality reading for city")
)

// Category is the ordinal WQI severity band. Unlike AQI, a higher WQI
// value is worse on this scale.
type Category string

const (
	CategoryExcellent Category = "excellent"
	CategoryGood      Category = "good"
	CategoryFair      Category = "fair"
	CategoryPoor      Category = "poor"
	CategoryVeryPoor  Category = "very_poor"
)

// Parameter is a single measured water quality parameter with its
// safety verdict against the drinking-water limit.
type Parameter struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	Safe  bool    `json:"safe"`
}

// Parameters is the full measured parameter block of a reading.
type Parameters struct {
	PH              Parameter `json:"ph"`
	DissolvedOxygen Parameter `json:"dissolvedOxygen"`
	BOD             Parameter `json:"bod"`
	Turbidity       Parameter `json:"turbidity"`
	TotalColiform   Parameter `json:"totalColiform"`
	Nitrate         Parameter `json:"nitrate"`
	Fluoride        Parameter `json:"fluoride"`
	Iron            Parameter `json:"iron"`
}

// WQI is a derived index value with its severity band.
type WQI struct {
	Value    int      `json:"value"`
	Category Category `json:"category"`
}

// Reading is one persisted water quality snapshot for a city.
type Reading struct {
	ID              string     `json:"id"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	Lat             float64    `json:"lat"`
	Lon             float64    `json:"lon"`
	WQI             WQI        `json:"wqi"`
	Parameters      Parameters `json:"parameters"`
	SafeForDrinking bool       `json:"safeForDrinking"`
	Source          string     `json:"source"`
	RecordedAt      time.Time  `json:"recordedAt"`
}
