package calculator

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount half away from zero to two decimals. It is
// applied once, when a value leaves the package.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
