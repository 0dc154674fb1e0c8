package strategy

import (
	"math"

	"SIPPlanner/internal/calculator"
	"SIPPlanner/internal/model"
)

// Metrics are the per-company statistics the selection is based on.
type Metrics struct {
	Company    string
	ROI        float64 // total return over the table, percent
	HasROI     bool    // false when the first close is zero
	Volatility float64 // sample std of daily returns, percent; NaN if undefined
}

// computeMetrics derives ROI and volatility for every company in t.
func computeMetrics(t *model.PriceTable) []Metrics {
	out := make([]Metrics, 0, len(t.Companies))
	for j, name := range t.Companies {
		closes := t.Column(j)
		m := Metrics{Company: name, Volatility: math.NaN()}
		if sd, err := calculator.StdDev(calculator.DailyReturns(closes)); err == nil {
			m.Volatility = sd
		}
		m.ROI, m.HasROI = calculator.TotalROI(closes)
		out = append(out, m)
	}
	return out
}

func thresholds(metrics []Metrics) (roi, vol float64, err error) {
	rois := make([]float64, 0, len(metrics))
	vols := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		if m.HasROI {
			rois = append(rois, m.ROI)
		}
		vols = append(vols, m.Volatility)
	}
	if len(rois) == 0 {
		return 0, 0, &model.DataError{Msg: "No companies remaining after ROI calculation. Check data for all zero initial prices."}
	}
	roi, err = calculator.Median(rois)
	if err != nil {
		return 0, 0, &model.DataError{Msg: "Insufficient data to calculate ROI or Volatility medians."}
	}
	vol, err = calculator.Median(vols)
	if err != nil {
		return 0, 0, &model.DataError{Msg: "Insufficient data to calculate ROI or Volatility medians."}
	}
	return roi, vol, nil
}
