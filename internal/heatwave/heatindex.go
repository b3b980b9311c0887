package heatwave

import "math"

// Rothfusz regression coefficients, adapted for Celsius input.
const (
	c1 = -8.78469475556
	c2 = 1.61139411
	c3 = 2.33854883889
	c4 = -0.14611605
	c5 = -0.012308094
	c6 = -0.0164248277778
	c7 = 0.002211732
	c8 = 0.00072546
	c9 = -0.000003582
)

// HeatIndex returns the apparent temperature in Celsius for the given
// air temperature and relative humidity percentage, rounded to one
// decimal place. Below 27°C the regression is not valid and the input
// temperature is returned unchanged.
func HeatIndex(tempC, humidity float64) float64 {
	if tempC < 27 {
		return tempC
	}

	hi := c1 + c2*tempC + c3*humidity +
		c4*tempC*humidity + c5*tempC*tempC +
		c6*humidity*humidity + c7*tempC*tempC*humidity +
		c8*tempC*humidity*humidity + c9*tempC*tempC*humidity*humidity

	return math.Round(hi*10) / 10
}

// AlertLevelFor classifies temperature and heat index into the heatwave
// alert level. Bands are checked from most to least severe and the first
// band satisfied by either input wins.
func AlertLevelFor(tempC, heatIndexC float64) AlertLevel {
	switch {
	case tempC >= 45 || heatIndexC >= 52:
		return LevelRed
	case tempC >= 40 || heatIndexC >= 45:
		return LevelOrange
	case tempC >= 37 || heatIndexC >= 40:
		return LevelYellow
	default:
		return LevelGreen
	}
}
