package airquality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/climateguard/climateguard/internal/airquality"
)

func TestCategoryFor_Bands(t *testing.T) {
	tests := []struct {
		value int
		want  airquality.Category
	}{
		{0, airquality.CategoryGood},
		{50, airquality.CategoryGood},
		{51, airquality.CategorySatisfactory},
		{100, airquality.CategorySatisfactory},
		{101, airquality.CategoryModerate},
		{200, airquality.CategoryModerate},
		{201, airquality.CategoryPoor},
		{300, airquality.CategoryPoor},
		{301, airquality.CategoryVeryPoor},
		{400, airquality.CategoryVeryPoor},
		{401, airquality.CategorySevere},
		{1000, airquality.CategorySevere},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, airquality.CategoryFor(tt.value), "value=%d", tt.value)
	}
}

func TestCategoryFor_FullRangeCoverage(t *testing.T) {
	// Every value in [0, 1000] maps to exactly one known band.
	known := map[airquality.Category]bool{
		airquality.CategoryGood:         true,
		airquality.CategorySatisfactory: true,
		airquality.CategoryModerate:     true,
		airquality.CategoryPoor:         true,
		airquality.CategoryVeryPoor:     true,
		airquality.CategorySevere:       true,
	}

	prevRank := -1
	for v := 0; v <= 1000; v++ {
		c := airquality.CategoryFor(v)
		if !known[c] {
			t.Fatalf("unknown category %q for value %d", c, v)
		}
		rank := airquality.SeverityRank(c)
		if rank < prevRank {
			t.Fatalf("severity decreased at value %d", v)
		}
		prevRank = rank
	}
}

func TestFromPollutants_PM25Dominates(t *testing.T) {
	aqi := airquality.FromPollutants(airquality.Pollutants{PM25: 120, PM10: 90})
	assert.Equal(t, 240, aqi.Value)
	assert.Equal(t, airquality.CategoryPoor, aqi.Category)
}

func TestFromPollutants_PM10Dominates(t *testing.T) {
	aqi := airquality.FromPollutants(airquality.Pollutants{PM25: 20, PM10: 180})
	assert.Equal(t, 180, aqi.Value)
	assert.Equal(t, airquality.CategoryModerate, aqi.Category)
}

func TestFromPollutants_CleanAir(t *testing.T) {
	aqi := airquality.FromPollutants(airquality.Pollutants{PM25: 8, PM10: 20})
	assert.Equal(t, 20, aqi.Value)
	assert.Equal(t, airquality.CategoryGood, aqi.Category)
}
