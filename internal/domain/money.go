package domain

import "math"

// RoundMoney rounds a currency amount to cents.
// Only applied at final aggregation so intermediate sums keep full precision.
func RoundMoney(x float64) float64 {
	return math.Round(x*100) / 100
}
