package calculator

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// FillMissing forward-fills then back-fills NaN gaps in place and returns col.
// A column with no observations is left all NaN.
func FillMissing(col []float64) []float64 {
	last := math.NaN()
	for i, v := range col {
		if math.IsNaN(v) {
			col[i] = last
		} else {
			last = v
		}
	}
	next := math.NaN()
	for i := len(col) - 1; i >= 0; i-- {
		if math.IsNaN(col[i]) {
			col[i] = next
		} else {
			next = col[i]
		}
	}
	return col
}

// AllMissing reports whether col has no observations at all.
func AllMissing(col []float64) bool {
	for _, v := range col {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// DailyReturns returns the percentage change between consecutive closes.
// The result has one element fewer than closes. A zero previous close yields
// a non-finite return.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out[i-1] = (closes[i]/closes[i-1] - 1) * 100
	}
	return out
}

// StdDev computes the sample standard deviation (n-1 denominator).
// Any non-finite value makes the result NaN.
func StdDev(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, errors.New("not enough data for standard deviation")
	}
	mean := 0.0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.NaN(), nil
		}
		mean += v
	}
	mean /= float64(len(values))

	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1)), nil
}

// TotalROI returns the percentage return from the first to the last close.
// ok is false when there is no data or the first close is zero.
func TotalROI(closes []float64) (roi float64, ok bool) {
	if len(closes) == 0 || closes[0] == 0 || math.IsNaN(closes[0]) {
		return 0, false
	}
	first, last := closes[0], closes[len(closes)-1]
	return (last - first) / first * 100, true
}

// Median returns the median of the non-NaN values.
func Median(values []float64) (float64, error) {
	vs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			vs = append(vs, v)
		}
	}
	if len(vs) == 0 {
		return 0, errors.New("no values for median")
	}
	sort.Float64s(vs)
	mid := len(vs) / 2
	if len(vs)%2 == 1 {
		return vs[mid], nil
	}
	return (vs[mid-1] + vs[mid]) / 2, nil
}
