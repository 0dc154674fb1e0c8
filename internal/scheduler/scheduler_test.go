package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"SIPPlanner/internal/calculator"
	"SIPPlanner/internal/model"
	"SIPPlanner/internal/strategy"
	"SIPPlanner/internal/validator"
)

type fakeService struct {
	plan      *strategy.Result
	err       error
	refreshes int
	projected []float64
}

func (f *fakeService) Plan(context.Context) (*strategy.Result, error) { return f.plan, f.err }

func (f *fakeService) Refresh(context.Context) (*strategy.Result, error) {
	f.refreshes++
	return f.plan, f.err
}

func (f *fakeService) Project(_ context.Context, monthly float64, _ string) (*model.ProjectionResult, error) {
	f.projected = append(f.projected, monthly)
	if f.err != nil {
		return nil, f.err
	}
	return &model.ProjectionResult{Points: calculator.Project(monthly, f.plan.WeightedAvgROI), WeightedROI: f.plan.WeightedAvgROI}, nil
}

func (f *fakeService) ComputedAt() time.Time { return time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC) }

type fakeSender struct{ sent []string }

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.sent = append(f.sent, text)
	return nil
}

func newScheduler(svc *fakeService, n Sender) *Scheduler {
	return NewScheduler(context.Background(), svc, n, zap.NewNop().Sugar())
}

func plan() *strategy.Result {
	return &strategy.Result{
		Ratios:         model.Allocations{{Company: "INFY", Ratio: 1}},
		ROI:            map[string]float64{"INFY": 9.5},
		WeightedAvgROI: 9.5,
	}
}

func TestRegister(t *testing.T) {
	s := newScheduler(&fakeService{}, nil)
	require.NoError(t, s.Register(""))
	assert.Empty(t, s.Cron.Entries())

	require.NoError(t, s.Register("0 30 18 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)

	assert.Error(t, s.Register("not a cron"))
}

func TestRefreshTask_SendsReport(t *testing.T) {
	svc := &fakeService{plan: plan()}
	sender := &fakeSender{}
	s := newScheduler(svc, sender)

	s.RunRefreshNow()

	assert.Equal(t, 1, svc.refreshes)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "INFY: 100.00% (ROI: 9.50%)")
	assert.Contains(t, sender.sent[0], "2024-05-01 18:30")
}

func TestRefreshTask_ReportsFailure(t *testing.T) {
	sender := &fakeSender{}
	s := newScheduler(&fakeService{err: errors.New("csv missing")}, sender)

	s.RunRefreshNow()

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Plan refresh failed: csv missing")
}

func TestRefreshTask_WithoutNotifier(t *testing.T) {
	svc := &fakeService{plan: plan()}
	s := newScheduler(svc, nil)
	s.RunRefreshNow()
	assert.Equal(t, 1, svc.refreshes)
}

func TestHandleCommand(t *testing.T) {
	svc := &fakeService{plan: plan()}
	s := newScheduler(svc, nil)

	assert.Contains(t, s.HandleCommand("/plan"), "Portfolio Weighted Average ROI: <b>9.50%</b>")

	reply := s.HandleCommand("/sip 2000")
	assert.Contains(t, reply, "Future Value of ₹2000 Monthly SIP")
	assert.Contains(t, reply, "30 Years: ")
	assert.Equal(t, []float64{2000}, svc.projected)

	assert.Equal(t, validator.Message, s.HandleCommand("/sip 999"))
	assert.Equal(t, validator.Message, s.HandleCommand("/sip lots"))
	assert.Equal(t, validator.Message, s.HandleCommand("/sip"))
	assert.Len(t, svc.projected, 1, "rejected amounts never reach the service")

	help := s.Commands().Help()
	assert.Contains(t, help, "/sip &lt;amount&gt; - project a monthly SIP")
	assert.Equal(t, help, s.HandleCommand("/start"))
	assert.Equal(t, "", s.HandleCommand("hello"))
	assert.Equal(t, "", s.HandleCommand(""))
	assert.Contains(t, s.HandleCommand("/sip@SipBot 3000"), "Future Value of ₹3000 Monthly SIP")

	assert.Equal(t, "", s.HandleCommand("/refresh"))
	assert.Equal(t, 1, svc.refreshes)
	assert.Equal(t, []float64{2000, 3000}, svc.projected)
}

func TestHandleCommand_ServiceError(t *testing.T) {
	s := newScheduler(&fakeService{err: errors.New("down")}, nil)
	assert.Contains(t, s.HandleCommand("/plan"), "Could not load the plan: down")
	assert.Contains(t, s.HandleCommand("/sip 5000"), "Calculation failed: down")
}
