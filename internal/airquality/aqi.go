package airquality

import "math"

// FromPollutants derives an AQI value from raw PM2.5 and PM10
// concentrations.
//
// This is an approximation, not a regulatory-grade conversion: the real
// Indian AQI uses per-pollutant breakpoint tables and the worst
// sub-index across all pollutants. Here PM2.5 is weighted double and
// the larger of the two drives the index, which tracks the official
// number closely enough for dashboard severity bands.
func FromPollutants(p Pollutants) AQI {
	value := math.Max(p.PM25*2, p.PM10)
	rounded := int(math.Round(value))
	return AQI{
		Value:    rounded,
		Category: CategoryFor(rounded),
	}
}

// CategoryFor classifies an AQI value into its severity band.
// Boundary values belong to the less severe band.
func CategoryFor(value int) Category {
	switch {
	case value <= 50:
		return CategoryGood
	case value <= 100:
		return CategorySatisfactory
	case value <= 200:
		return CategoryModerate
	case value <= 300:
		return CategoryPoor
	case value <= 400:
		return CategoryVeryPoor
	default:
		return CategorySevere
	}
}

// SeverityRank orders categories from least to most severe.
// Used by consumers that need monotonic comparisons across bands.
func SeverityRank(c Category) int {
	switch c {
	case CategoryGood:
		return 0
	case CategorySatisfactory:
		return 1
	case CategoryModerate:
		return 2
	case CategoryPoor:
		return 3
	case CategoryVeryPoor:
		return 4
	case CategorySevere:
		return 5
	default:
		return -1
	}
}
