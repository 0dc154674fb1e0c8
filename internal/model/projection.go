package model

// ProjectionPoint is the projected portfolio value after a number of years.
type ProjectionPoint struct {
	Years       int     `json:"years"`
	FutureValue float64 `json:"future_value"`
}

// ProjectionResult is the output of POST /api/calculate_future_value.
type ProjectionResult struct {
	Points      []ProjectionPoint
	WeightedROI float64
}
