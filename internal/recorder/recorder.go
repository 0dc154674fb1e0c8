package recorder

import (
	"time"

	"SIPPlanner/internal/model"
)

// AnalysisRun is one computation of the portfolio plan.
type AnalysisRun struct {
	ID             string
	At             time.Time
	Source         string // price source name
	Days           int
	Companies      int
	Ratios         model.Allocations
	WeightedAvgROI float64
	Error          string // empty on success
}

// ProjectionRequest is one answered (or failed) future value request.
type ProjectionRequest struct {
	ID                string
	At                time.Time
	RequestID         string // from the X-Request-ID header, if any
	MonthlyInvestment float64
	WeightedROI       float64
	Points            []model.ProjectionPoint
	Error             string
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(run *AnalysisRun) error
	RecordProjection(req *ProjectionRequest) error
	Close() error
}
