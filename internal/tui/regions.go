package tui

import (
	"SIPPlanner/internal/chart"
	"SIPPlanner/internal/render"
)

// regions is the page state the controller writes and View reads.
type regions struct {
	input          string
	focus          bool
	errorMsg       string
	errorVisible   bool
	summaryVisible bool
	resultsVisible bool
	summary        *render.PlanSummary
	summaryError   string
	roiHeading     string
	figure         *chart.Figure
}

func (r *regions) InputValue() string { return r.input }
func (r *regions) FocusInput()        { r.focus = true }

func (r *regions) ShowValidationError(msg string) {
	r.errorMsg = msg
	r.errorVisible = true
}

func (r *regions) HideValidationError() {
	r.errorMsg = ""
	r.errorVisible = false
}

func (r *regions) SetSummaryVisible(visible bool) { r.summaryVisible = visible }
func (r *regions) SetResultsVisible(visible bool) { r.resultsVisible = visible }

func (r *regions) SetSummary(s render.PlanSummary) {
	r.summary = &s
	r.summaryError = ""
}

func (r *regions) SetSummaryError(msg string) {
	r.summary = nil
	r.summaryError = msg
}

func (r *regions) SetROIHeading(text string)  { r.roiHeading = text }
func (r *regions) DrawChart(fig chart.Figure) { r.figure = &fig }
