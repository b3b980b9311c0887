package heatwave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/climateguard/climateguard/internal/heatwave"
)

func TestHeatIndex_BelowThresholdReturnsInput(t *testing.T) {
	for _, temp := range []float64{-5, 0, 15, 26.9} {
		for _, humidity := range []float64{0, 30, 60, 100} {
			got := heatwave.HeatIndex(temp, humidity)
			assert.Equal(t, temp, got, "temp=%v humidity=%v", temp, humidity)
		}
	}
}

func TestHeatIndex_RegressionAboveThreshold(t *testing.T) {
	// At high temperature and humidity the apparent temperature must
	// exceed the air temperature.
	hi := heatwave.HeatIndex(40, 70)
	assert.Greater(t, hi, 40.0)

	// Dry heat reads below the air temperature under the regression.
	dry := heatwave.HeatIndex(40, 10)
	assert.Less(t, dry, 40.0)

	// Result is rounded to one decimal place.
	scaled := hi * 10
	assert.InDelta(t, scaled, float64(int64(scaled+0.5)), 1e-9)
}

func TestHeatIndex_KnownValue(t *testing.T) {
	// temp=46, humidity=30 is the standing end-to-end scenario; pin the
	// polynomial output so provider conversions cannot drift silently.
	hi := heatwave.HeatIndex(46, 30)
	assert.InDelta(t, 56.6, hi, 0.1)
	assert.Equal(t, heatwave.LevelRed, heatwave.AlertLevelFor(46, hi))
}

func TestAlertLevelFor_Bands(t *testing.T) {
	tests := []struct {
		name      string
		temp      float64
		heatIndex float64
		want      heatwave.AlertLevel
	}{
		{"normal", 30, 30, heatwave.LevelGreen},
		{"just below yellow", 36.9, 39.9, heatwave.LevelGreen},
		{"yellow by temp boundary", 37, 30, heatwave.LevelYellow},
		{"yellow by heat index boundary", 30, 40, heatwave.LevelYellow},
		{"orange by temp boundary", 40, 30, heatwave.LevelOrange},
		{"orange by heat index boundary", 30, 45, heatwave.LevelOrange},
		{"red by temp boundary", 45, 30, heatwave.LevelRed},
		{"red by heat index boundary", 30, 52, heatwave.LevelRed},
		{"most severe input wins", 38, 53, heatwave.LevelRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, heatwave.AlertLevelFor(tt.temp, tt.heatIndex))
		})
	}
}

func TestAlertLevelFor_MonotonicInTemperature(t *testing.T) {
	rank := map[heatwave.AlertLevel]int{
		heatwave.LevelGreen:  0,
		heatwave.LevelYellow: 1,
		heatwave.LevelOrange: 2,
		heatwave.LevelRed:    3,
	}

	prev := -1
	for temp := 20.0; temp <= 50.0; temp += 0.5 {
		level := heatwave.AlertLevelFor(temp, 0)
		if got := rank[level]; got < prev {
			t.Fatalf("alert level decreased at temp=%v: %v", temp, level)
		} else {
			prev = rank[level]
		}
	}
}
