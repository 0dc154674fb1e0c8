package model

import (
	"math"
	"time"
)

// PriceTable holds daily closing prices, one column per company.
// A missing observation is stored as NaN.
type PriceTable struct {
	Dates     []time.Time
	Companies []string
	Closes    [][]float64 // Closes[row][col]
}

// Column returns the closing prices of the company at index col.
func (t *PriceTable) Column(col int) []float64 {
	out := make([]float64, len(t.Closes))
	for i, row := range t.Closes {
		out[i] = row[col]
	}
	return out
}

// Missing reports whether v represents a missing observation.
func Missing(v float64) bool {
	return math.IsNaN(v)
}
