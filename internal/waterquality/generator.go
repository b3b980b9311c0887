package waterquality

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SourceSimulated tags readings produced by the generator rather than a
// monitoring station.
const SourceSimulated = "Simulated Data"

// Generate produces a deterministic simulated tap-water sample for a
// city. The city name seeds the pseudo-random values so repeated calls
// for the same city yield the same parameters, matching how the
// dashboard expects stable demo data.
func Generate(city, state string, lat, lon float64, now time.Time) *Reading {
	seed := 0
	for _, c := range city {
		seed += int(c)
	}

	// Deterministic value in [min, max) derived from the city hash.
	rand := func(min, max float64, offset int) float64 {
		x := math.Sin(float64(seed+offset)) * 10000
		frac := x - math.Floor(x)
		return min + frac*(max-min)
	}
	round1 := func(v float64) float64 { return math.Round(v*10) / 10 }

	ph := round1(rand(6.8, 8.2, 1))
	dissolvedOxygen := round1(rand(5, 8, 2))
	bod := round1(rand(1, 4, 3))
	turbidity := round1(rand(1, 8, 4))
	totalColiform := math.Round(rand(10, 80, 5))
	nitrate := round1(rand(5, 40, 6))
	fluoride := round1(rand(0.3, 1.2, 7))
	iron := math.Round(rand(0.1, 0.4, 8)*100) / 100

	params := Parameters{
		PH:              Parameter{Value: ph, Safe: ph >= phMin && ph <= phMax},
		DissolvedOxygen: Parameter{Value: dissolvedOxygen, Unit: "mg/L", Safe: dissolvedOxygen >= doMin},
		BOD:             Parameter{Value: bod, Unit: "mg/L", Safe: bod <= bodMax},
		Turbidity:       Parameter{Value: turbidity, Unit: "NTU", Safe: turbidity <= turbidityMax},
		TotalColiform:   Parameter{Value: totalColiform, Unit: "MPN/100mL", Safe: totalColiform <= coliformMax},
		Nitrate:         Parameter{Value: nitrate, Unit: "mg/L", Safe: nitrate <= nitrateMax},
		Fluoride:        Parameter{Value: fluoride, Unit: "mg/L", Safe: fluoride <= fluorideMax},
		Iron:            Parameter{Value: iron, Unit: "mg/L", Safe: iron <= ironMax},
	}

	wqi := Index(params)

	return &Reading{
		ID:              uuid.New().String(),
		City:            city,
		State:           state,
		Lat:             lat,
		Lon:             lon,
		WQI:             wqi,
		Parameters:      params,
		SafeForDrinking: SafeForDrinking(wqi.Value),
		Source:          SourceSimulated,
		RecordedAt:      now,
	}
}
