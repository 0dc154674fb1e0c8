// Package money rounds and formats amounts on their exact binary value.
package money

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Exact returns the full decimal expansion of v, not its shortest
// round-trip form, so 1.005 stays 1.00499999999999989...
func Exact(v float64) decimal.Decimal {
	prec := 0
	if _, exp := math.Frexp(v); exp < 53 {
		prec = 53 - exp
	}
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', prec, 64))
}

// Fixed formats v with exactly places decimals, rounding ties away from zero.
// Non-finite values are formatted by strconv.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', int(places), 64)
	}
	return Exact(v).StringFixed(places)
}

// Round rounds v to places decimals, ties to even.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return Exact(v).RoundBank(places).InexactFloat64()
}
