package waterquality

// Drinking-water safety limits per parameter (BIS 10500 style limits,
// simplified to single thresholds).
const (
	phMin          = 6.5
	phMax          = 8.5
	doMin          = 6.0   // mg/L, higher is better
	bodMax         = 3.0   // mg/L
	turbidityMax   = 5.0   // NTU
	coliformMax    = 50.0  // MPN/100mL
	nitrateMax     = 45.0  // mg/L
	fluorideMax    = 1.5   // mg/L
	ironMax        = 0.3   // mg/L
	safeDrinkLimit = 50    // WQI at or below this is drinkable
)

// Index computes the ad-hoc weighted-sum WQI from measured parameters.
// Each parameter contributes a fixed penalty: a low score when inside
// its safe limit and a higher one when outside. Higher totals are worse.
func Index(p Parameters) WQI {
	value := 0
	add := func(safe bool, ok, bad int) {
		if safe {
			value += ok
		} else {
			value += bad
		}
	}

	add(p.PH.Safe, 10, 20)
	add(p.DissolvedOxygen.Safe, 10, 15)
	add(p.BOD.Safe, 10, 20)
	add(p.Turbidity.Safe, 10, 15)
	add(p.TotalColiform.Safe, 10, 20)
	add(p.Nitrate.Safe, 5, 15)
	add(p.Fluoride.Safe, 5, 10)
	add(p.Iron.Safe, 5, 10)

	return WQI{Value: value, Category: CategoryFor(value)}
}

// CategoryFor classifies a WQI value into its severity band.
func CategoryFor(value int) Category {
	switch {
	case value <= 25:
		return CategoryExcellent
	case value <= 50:
		return CategoryGood
	case value <= 75:
		return CategoryFair
	case value <= 100:
		return CategoryPoor
	default:
		return CategoryVeryPoor
	}
}

// SafeForDrinking reports whether a WQI value is within the drinkable range.
func SafeForDrinking(value int) bool {
	return value <= safeDrinkLimit
}
