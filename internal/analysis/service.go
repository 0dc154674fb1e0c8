package analysis

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"SIPPlanner/internal/calculator"
	"SIPPlanner/internal/collector"
	"SIPPlanner/internal/model"
	"SIPPlanner/internal/recorder"
	"SIPPlanner/internal/strategy"
)

// Service computes the portfolio plan once and serves it from memory until
// refreshed. It is safe for concurrent use.
type Service struct {
	collector *collector.Collector
	rec       recorder.Recorder
	log       *zap.SugaredLogger

	mu         sync.Mutex
	result     *strategy.Result
	computedAt time.Time
}

// NewService creates a Service. Nothing is computed until the first call.
func NewService(c *collector.Collector, rec recorder.Recorder, log *zap.SugaredLogger) *Service {
	return &Service{collector: c, rec: rec, log: log}
}

// Plan returns the cached plan, computing it on first use. Failures are not
// cached, so the next call retries.
func (s *Service) Plan(ctx context.Context) (*strategy.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != nil {
		return s.result, nil
	}
	return s.computeLocked(ctx)
}

// Refresh recomputes the plan. The previous plan stays cached if this fails.
func (s *Service) Refresh(ctx context.Context) (*strategy.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computeLocked(ctx)
}

// ComputedAt is when the cached plan was computed, zero if never.
func (s *Service) ComputedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computedAt
}

func (s *Service) computeLocked(ctx context.Context) (*strategy.Result, error) {
	run := &recorder.AnalysisRun{Source: s.collector.Source.Name()}
	res, err := s.compute(ctx, run)
	if err != nil {
		run.Error = err.Error()
		s.log.Errorf("analysis failed: %v", err)
	} else {
		s.result = res
		s.computedAt = time.Now()
		run.Ratios = res.Ratios
		run.WeightedAvgROI = res.WeightedAvgROI
		s.log.Infof("analysis complete: %d companies selected, weighted ROI %.2f%%", len(res.Ratios), res.WeightedAvgROI)
	}
	if rerr := s.rec.RecordAnalysis(run); rerr != nil {
		s.log.Warnf("record analysis run: %v", rerr)
	}
	return res, err
}

func (s *Service) compute(ctx context.Context, run *recorder.AnalysisRun) (*strategy.Result, error) {
	table, err := s.collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	run.Days, run.Companies = len(table.Dates), len(table.Companies)
	return strategy.Select(table)
}

// Project computes the future value of a monthly SIP at the plan's weighted
// average ROI for every horizon. requestID is only used for the history.
func (s *Service) Project(ctx context.Context, monthly float64, requestID string) (*model.ProjectionResult, error) {
	entry := &recorder.ProjectionRequest{RequestID: requestID, MonthlyInvestment: monthly}
	defer func() {
		if err := s.rec.RecordProjection(entry); err != nil {
			s.log.Warnf("record projection: %v", err)
		}
	}()

	if math.IsNaN(monthly) || math.IsInf(monthly, 0) {
		err := errors.New("monthly_investment must be a finite number")
		entry.Error = err.Error()
		return nil, err
	}
	plan, err := s.Plan(ctx)
	if err != nil {
		entry.Error = err.Error()
		return nil, err
	}

	res := &model.ProjectionResult{
		Points:      calculator.Project(monthly, plan.WeightedAvgROI),
		WeightedROI: plan.WeightedAvgROI,
	}
	entry.WeightedROI, entry.Points = res.WeightedROI, res.Points
	return res, nil
}
