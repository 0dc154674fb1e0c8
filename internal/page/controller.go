package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"SIPPlanner/internal/chart"
	"SIPPlanner/internal/client"
	"SIPPlanner/internal/model"
	"SIPPlanner/internal/render"
	"SIPPlanner/internal/validator"
)

// User-facing messages.
const (
	msgLoadRemote  = "Error loading portfolio analysis: %s. Please ensure the backend is running and data file is available."
	msgLoadNetwork = "Could not connect to the analysis service. Please check your network and ensure the backend is running."
	msgNotLoaded   = "Portfolio analysis data is not yet loaded. Please try again in a moment or check the backend server."
	msgCalcRemote  = "An error occurred during calculation: "
	msgCalcNetwork = "Could not connect to the calculation service. Please check your network and backend server."
)

// Pending is an accepted submission whose projection has not come back yet.
type Pending struct {
	Seq    int
	Input  string
	Amount float64
}

// Controller orchestrates the SIP page: one plan-details load, then any number
// of user submissions. It is driven by a single event loop and is not safe
// for concurrent use.
type Controller struct {
	client   PlanClient
	view     View
	log      *zap.SugaredLogger
	snapshot *model.PlanSnapshot
	state    State
	seq      int
}

// NewController creates a controller in the Loading state.
func NewController(c PlanClient, v View, log *zap.SugaredLogger) *Controller {
	return &Controller{client: c, view: v, log: log, state: Loading}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Snapshot returns the cached plan details, or nil before a successful load.
func (c *Controller) Snapshot() *model.PlanSnapshot { return c.snapshot }

// Load fetches the plan details once and caches them without displaying them.
func (c *Controller) Load(ctx context.Context) {
	c.BeginLoad()
	snap, err := c.client.FetchPlanDetails(ctx)
	c.FinishLoad(snap, err)
}

// BeginLoad hides every result region before the plan details are requested.
func (c *Controller) BeginLoad() {
	c.state = Loading
	c.view.SetSummaryVisible(false)
	c.view.SetResultsVisible(false)
	c.view.HideValidationError()
}

// FinishLoad applies the outcome of the plan-details request.
func (c *Controller) FinishLoad(snap *model.PlanSnapshot, err error) {
	c.state = Ready
	if err == nil && snap == nil {
		err = &client.FetchError{Message: "malformed response", Err: errors.New("missing data")}
	}
	if err == nil {
		c.snapshot = snap
		c.log.Infof("plan details cached: %d companies", len(snap.InvestmentRatios))
		return
	}

	c.log.Errorf("error fetching initial plan details: %v", err)
	msg := msgLoadNetwork
	var fe *client.FetchError
	if errors.As(err, &fe) && fe.Remote {
		msg = fmt.Sprintf(msgLoadRemote, fe.Message)
	}
	c.view.SetSummaryVisible(true)
	c.view.SetSummaryError(msg)
}

// Submit runs one user action end to end: validation, summary, projection
// and chart. The returned error is the action's failure, already shown to the
// user; the page stays usable either way.
func (c *Controller) Submit(ctx context.Context) error {
	p, err := c.Begin()
	if err != nil {
		return err
	}
	res, err := c.client.RequestProjection(ctx, p.Amount)
	return c.Finish(p, res, err)
}

// Begin validates the input and, when accepted, reveals the summary and
// results regions. The caller must then request the projection for the
// returned Pending and pass the outcome to Finish.
func (c *Controller) Begin() (Pending, error) {
	raw := c.view.InputValue()
	c.view.HideValidationError()

	res := validator.Validate(raw)
	if !res.OK {
		c.state = Invalid
		c.view.ShowValidationError(validator.Message)
		c.view.FocusInput()
		c.hideRegions()
		return Pending{}, res.Err(raw)
	}
	if c.snapshot == nil {
		c.state = Invalid
		c.view.ShowValidationError(msgNotLoaded)
		c.hideRegions()
		return Pending{}, ErrNotLoaded
	}

	c.view.SetSummaryVisible(true)
	c.view.SetResultsVisible(true)
	c.view.SetSummary(render.RenderPlanSummary(c.snapshot))
	c.state = Displaying
	c.seq++
	c.log.Debugf("projection #%d requested for %.2f", c.seq, res.Value)
	return Pending{Seq: c.seq, Input: strings.TrimSpace(raw), Amount: res.Value}, nil
}

// Finish applies a projection outcome. Responses are not fenced: whichever
// Finish runs last determines what the page shows.
func (c *Controller) Finish(p Pending, res *model.ProjectionResult, err error) error {
	if err == nil && res == nil {
		err = &client.CalculationError{Message: "malformed response", Err: errors.New("missing data")}
	}
	if err != nil {
		c.log.Errorf("calculation error (projection #%d): %v", p.Seq, err)
		msg := msgCalcNetwork
		var ce *client.CalculationError
		if errors.As(err, &ce) && ce.Remote {
			msg = msgCalcRemote + ce.Message
		}
		c.view.ShowValidationError(msg)
		c.hideRegions()
		c.state = Failed
		return err
	}

	c.view.SetROIHeading(chart.ROIHeading(res.WeightedROI))
	c.view.DrawChart(chart.Build(res, p.Input))
	c.state = Displayed
	return nil
}

func (c *Controller) hideRegions() {
	c.view.SetSummaryVisible(false)
	c.view.SetResultsVisible(false)
}
