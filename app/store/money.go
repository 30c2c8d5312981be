package store

import "math"

// RoundMoney rounds a currency amount to the nearest cent, half away from
// zero, so repeated additions cannot drift below cent precision.
func RoundMoney(value float64) float64 {
	return math.Round(value*100) / 100
}

// toCents converts a rounded amount to integer cents.
func toCents(value float64) int64 {
	return int64(math.Round(value * 100))
}

// SplitInstallments divides an amount into n parts that sum exactly to the
// amount in cents. The division remainder is front-loaded: the first
// (cents mod n) installments are one cent larger than the rest.
func SplitInstallments(amount float64, n int) []float64 {
	cents := toCents(amount)
	base := cents / int64(n)
	remainder := cents % int64(n)

	parts := make([]float64, n)
	for i := range parts {
		c := base
		if int64(i) < remainder {
			c++
		}
		parts[i] = float64(c) / 100
	}
	return parts
}
