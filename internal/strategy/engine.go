package strategy

import (
	"sort"

	"SIPPlanner/internal/model"
)

// Result is the outcome of one portfolio selection.
type Result struct {
	Ratios              model.Allocations  // inverse-volatility weights, largest first
	ROI                 map[string]float64 // ROI of each company in Ratios
	WeightedAvgROI      float64
	ROIThreshold        float64
	VolatilityThreshold float64
	Metrics             []Metrics // every company considered
}

// Snapshot converts the result to the plan details served to clients.
func (r *Result) Snapshot() *model.PlanSnapshot {
	roi := make(map[string]*float64, len(r.ROI))
	for k, v := range r.ROI {
		v := v
		roi[k] = &v
	}
	avg := r.WeightedAvgROI
	return &model.PlanSnapshot{
		InvestmentRatios:     append(model.Allocations(nil), r.Ratios...),
		SelectedCompaniesROI: roi,
		WeightedAvgROI:       &avg,
	}
}

// Select picks the companies whose ROI is above the median and whose
// volatility is below the median, then weights them by inverse volatility.
func Select(t *model.PriceTable) (*Result, error) {
	metrics := computeMetrics(t)
	roiT, volT, err := thresholds(metrics)
	if err != nil {
		return nil, err
	}

	var picked []Metrics
	for _, m := range metrics {
		// NaN volatility never compares below the threshold.
		if m.HasROI && m.ROI > roiT && m.Volatility < volT {
			picked = append(picked, m)
		}
	}
	if len(picked) == 0 {
		return nil, &model.DataError{Msg: "No companies meet the criteria for high ROI and low volatility. Adjust thresholds or data."}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].ROI > picked[j].ROI })

	var sum float64
	inverse := make([]model.Allocation, 0, len(picked))
	roiOf := make(map[string]float64, len(picked))
	for _, m := range picked {
		if m.Volatility == 0 {
			continue
		}
		inverse = append(inverse, model.Allocation{Company: m.Company, Ratio: 1 / m.Volatility})
		roiOf[m.Company] = m.ROI
		sum += 1 / m.Volatility
	}
	if sum == 0 {
		return nil, &model.DataError{Msg: "Sum of inverse volatility is zero, cannot calculate investment ratios."}
	}

	res := &Result{
		ROI:                 make(map[string]float64, len(inverse)),
		ROIThreshold:        roiT,
		VolatilityThreshold: volT,
		Metrics:             metrics,
	}
	for _, a := range inverse {
		a.Ratio /= sum
		res.Ratios = append(res.Ratios, a)
	}
	sort.SliceStable(res.Ratios, func(i, j int) bool { return res.Ratios[i].Ratio > res.Ratios[j].Ratio })

	for _, a := range res.Ratios {
		res.ROI[a.Company] = roiOf[a.Company]
		res.WeightedAvgROI += roiOf[a.Company] * a.Ratio
	}
	return res, nil
}
