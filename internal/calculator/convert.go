package calculator

import "math"

// FahrenheitToCelsius converts f to Celsius rounded to one decimal place.
func FahrenheitToCelsius(f float64) float64 {
	return RoundTo((f-32)*5/9, 1)
}

// RoundTo rounds v to the given number of decimal places.
// Halfway values round away from zero (0.25 -> 0.3, -0.25 -> -0.3).
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0 // no "-0.0" in reports
	}
	return r
}
