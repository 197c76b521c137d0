package service

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to two decimal places, half away from
// zero. Calculations run on raw float64 values; rounding happens once at
// the output boundary.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
