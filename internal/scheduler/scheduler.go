package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"SIPPlanner/internal/model"
	"SIPPlanner/internal/notifier"
	"SIPPlanner/internal/strategy"
	"SIPPlanner/internal/validator"
)

// PlanService is the analysis the scheduler refreshes and the bot queries.
type PlanService interface {
	Plan(ctx context.Context) (*strategy.Result, error)
	Refresh(ctx context.Context) (*strategy.Result, error)
	Project(ctx context.Context, monthly float64, requestID string) (*model.ProjectionResult, error)
	ComputedAt() time.Time
}

// Sender delivers notifications. A nil Sender disables them.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the periodic plan refresh and answers bot commands.
type Scheduler struct {
	Cron     *cron.Cron
	Service  PlanService
	Notifier Sender
	Ctx      context.Context
	log      *zap.SugaredLogger
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(ctx context.Context, svc PlanService, n Sender, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Service:  svc,
		Notifier: n,
		Ctx:      ctx,
		log:      log,
	}
}

// Register schedules the plan refresh. An empty expression schedules nothing.
func (s *Scheduler) Register(refreshCron string) error {
	if refreshCron == "" {
		s.log.Info("no refresh schedule configured")
		return nil
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return errors.Wrap(err, "register refresh task")
	}
	s.log.Infof("plan refresh scheduled: %s", refreshCron)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately.
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.log.Info("refreshing plan")
	res, err := s.Service.Refresh(s.Ctx)
	if err != nil {
		s.trySend(notifier.FormatError("Plan refresh failed", err))
		return
	}
	s.trySend(notifier.FormatPlanReport(res.Snapshot(), s.Service.ComputedAt()))
}

// Commands is the bot command set: /plan, /sip <amount> and /refresh.
func (s *Scheduler) Commands() *notifier.Router {
	return notifier.NewRouter(
		notifier.Command{Name: "/plan", About: "current portfolio plan", Handle: s.planCommand},
		notifier.Command{Name: "/sip", Args: "<amount>", About: "project a monthly SIP", Handle: s.sipCommand},
		notifier.Command{Name: "/refresh", About: "recompute the plan", Handle: s.refreshCommand},
	)
}

// HandleCommand answers one chat message with the scheduler's context.
func (s *Scheduler) HandleCommand(text string) string {
	return s.Commands().Dispatch(s.Ctx, text)
}

func (s *Scheduler) planCommand(ctx context.Context, _ []string) string {
	res, err := s.Service.Plan(ctx)
	if err != nil {
		return notifier.FormatError("Could not load the plan", err)
	}
	return notifier.FormatPlanReport(res.Snapshot(), s.Service.ComputedAt())
}

func (s *Scheduler) sipCommand(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return validator.Message
	}
	v := validator.Validate(args[0])
	if !v.OK {
		return validator.Message
	}
	res, err := s.Service.Project(ctx, v.Value, "")
	if err != nil {
		return notifier.FormatError("Calculation failed", err)
	}
	return notifier.FormatProjection(args[0], res)
}

// refreshCommand replies through the refresh report itself.
func (s *Scheduler) refreshCommand(context.Context, []string) string {
	s.refreshTask()
	return ""
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Errorf("send notification: %v", err)
	}
}
