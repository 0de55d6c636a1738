package utils

import "math"

// RoundWithTwoDecimalPlace rounds for display. NaN and infinities become 0 so
// the value is always JSON encodable.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}
