// Package airquality provides air quality readings and the AQI
// conversion from raw pollutant concentrations.
package airquality

import (
	"errors"
	"time"
)

// Air quality errors.
var (
	ErrNoReading = errors.New("no air quality reading for city")
)

// Category is the ordinal AQI severity band on the Indian scale.
type Category string

const (
	CategoryGood         Category = "good"
	CategorySatisfactory Category = "satisfactory"
	CategoryModerate     Category = "moderate"
	CategoryPoor         Category = "poor"
	CategoryVeryPoor     Category = "very_poor"
	CategorySevere       Category = "severe"
)

// Pollutants holds raw pollutant concentrations in µg/m³,
// except CO which is reported in mg/m³.
type Pollutants struct {
	PM25 float64 `json:"pm25"`
	PM10 float64 `json:"pm10"`
	NO2  float64 `json:"no2"`
	SO2  float64 `json:"so2"`
	CO   float64 `json:"co"`
	O3   float64 `json:"o3"`
	NH3  float64 `json:"nh3"`
}

// AQI is a derived index value with its severity band.
type AQI struct {
	Value    int      `json:"value"`
	Category Category `json:"category"`
}

// Reading is one persisted air quality snapshot for a city.
type Reading struct {
	ID         string     `json:"id"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	AQI        AQI        `json:"aqi"`
	Pollutants Pollutants `json:"pollutants"`
	Source     string     `json:"source"`
	RecordedAt time.Time  `json:"recordedAt"`
}
