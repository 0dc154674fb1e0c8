package calculator

import (
	"math"

	"SIPPlanner/internal/model"
	"SIPPlanner/internal/money"
)

// CompoundingPerYear is the number of SIP instalments (and compounding
// periods) per year.
const CompoundingPerYear = 12

// Horizons are the projection periods in years.
var Horizons = []int{1, 3, 5, 10, 15, 20, 25, 30}

// FutureValue returns the value of a SIP paying monthly at the start of each
// period (annuity due) after years, for an annual return given in percent.
// The result is rounded to 2 decimals.
func FutureValue(monthly, annualROIPct float64, years int) float64 {
	i := annualROIPct / 100 / CompoundingPerYear
	n := float64(CompoundingPerYear * years)
	if i == 0 {
		return Round2(monthly * n)
	}
	return Round2(monthly * ((math.Pow(1+i, n) - 1) / i) * (1 + i))
}

// Project computes the future value for every horizon.
func Project(monthly, annualROIPct float64) []model.ProjectionPoint {
	points := make([]model.ProjectionPoint, 0, len(Horizons))
	for _, y := range Horizons {
		points = append(points, model.ProjectionPoint{Years: y, FutureValue: FutureValue(monthly, annualROIPct, y)})
	}
	return points
}

// Round2 rounds the exact value to 2 decimals, ties to even.
func Round2(v float64) float64 {
	return money.Round(v, 2)
}
