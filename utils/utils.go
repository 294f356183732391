package utils

import "math"

// RoundTo rounds f to the given number of decimal places.
// NaN and Inf pass through unchanged.
func RoundTo(f float64, decimals int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(f*pow) / pow
}
