package page

import (
	"context"

	"SIPPlanner/internal/chart"
	"SIPPlanner/internal/model"
	"SIPPlanner/internal/render"
)

// View is the set of page regions the controller drives. Implementations
// only display what they are told; they hold no planning logic.
type View interface {
	// InputValue returns the monthly investment field as typed.
	InputValue() string
	FocusInput()

	ShowValidationError(msg string)
	HideValidationError()

	SetSummaryVisible(visible bool)
	SetResultsVisible(visible bool)

	// SetSummary replaces the plan-details container with the summary.
	SetSummary(summary render.PlanSummary)
	// SetSummaryError replaces the plan-details container with an inline error.
	SetSummaryError(msg string)

	SetROIHeading(text string)
	DrawChart(fig chart.Figure)
}

// PlanClient is the backend the controller talks to.
type PlanClient interface {
	FetchPlanDetails(ctx context.Context) (*model.PlanSnapshot, error)
	RequestProjection(ctx context.Context, monthlyInvestment float64) (*model.ProjectionResult, error)
}
