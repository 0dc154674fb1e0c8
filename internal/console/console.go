package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"SIPPlanner/internal/chart"
	"SIPPlanner/internal/page"
	"SIPPlanner/internal/render"
)

// View prints page regions to a writer as they change. The input value is
// fixed at construction.
type View struct {
	out     io.Writer
	amount  string
	drawers []chart.Drawer
	log     *zap.SugaredLogger

	heading string
	errs    []error
}

// NewView creates a console view answering amount as the input value. Every
// drawn chart is also passed to drawers.
func NewView(out io.Writer, amount string, log *zap.SugaredLogger, drawers ...chart.Drawer) *View {
	return &View{out: out, amount: amount, drawers: drawers, log: log}
}

func (v *View) InputValue() string { return v.amount }
func (v *View) FocusInput()        {}

func (v *View) ShowValidationError(msg string) {
	fmt.Fprintf(v.out, "Error: %s\n", msg)
}

func (v *View) HideValidationError()      {}
func (v *View) SetSummaryVisible(bool)    {}
func (v *View) SetResultsVisible(bool)    {}
func (v *View) SetROIHeading(text string) { v.heading = text }

func (v *View) SetSummary(s render.PlanSummary) {
	fmt.Fprintln(v.out, s.Text())
}

func (v *View) SetSummaryError(msg string) {
	fmt.Fprintf(v.out, "%s\n\n", msg)
}

func (v *View) DrawChart(fig chart.Figure) {
	fmt.Fprintln(v.out, v.heading)
	fmt.Fprintln(v.out, strings.Repeat("─", len([]rune(v.heading))))
	fmt.Fprintln(v.out, chart.ASCII(fig, 60, 12))
	for _, d := range v.drawers {
		if err := d.Draw(fig, v.heading); err != nil {
			v.log.Errorf("export chart: %v", err)
			v.errs = append(v.errs, err)
		}
	}
}

// Errs returns chart export failures.
func (v *View) Errs() []error { return v.errs }

// Project runs one load and one submission of amount against c, printing
// every region to out.
func Project(ctx context.Context, c page.PlanClient, out io.Writer, amount string, log *zap.SugaredLogger, drawers ...chart.Drawer) error {
	v := NewView(out, amount, log, drawers...)
	ctrl := page.NewController(c, v, log)
	ctrl.Load(ctx)
	if err := ctrl.Submit(ctx); err != nil {
		return err
	}
	if errs := v.Errs(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
