package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"SIPPlanner/internal/chart"
	"SIPPlanner/internal/model"
	"SIPPlanner/internal/render"
)

// FormatPlanReport formats the plan summary as a Telegram message.
func FormatPlanReport(snap *model.PlanSnapshot, at time.Time) string {
	s := render.RenderPlanSummary(snap)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>SIP Plan</b> | %s\n\n", at.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Portfolio Weighted Average ROI: <b>%s%%</b>\n\n", s.WeightedROI))
	b.WriteString("<b>Selected Companies (High ROI, Low Volatility):</b>\n")
	for _, it := range s.Items {
		b.WriteString(fmt.Sprintf("  • %s: %s%% (ROI: %s%%)\n", html.EscapeString(it.Company), it.Allocation, it.ROI))
	}
	return b.String()
}

// FormatProjection formats a future value projection as a Telegram message.
func FormatProjection(monthly string, res *model.ProjectionResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💰 <b>Future Value of %s%s Monthly SIP</b>\n", chart.CurrencySymbol, html.EscapeString(monthly)))
	b.WriteString(chart.ROIHeading(res.WeightedROI) + "\n\n")
	for _, p := range res.Points {
		b.WriteString(fmt.Sprintf("  %s: %s\n", chart.YearLabel(p.Years), chart.FormatCurrency(p.FutureValue, 2)))
	}
	return b.String()
}

// FormatError formats a failure notice.
func FormatError(what string, err error) string {
	return fmt.Sprintf("❌ %s: %s", what, html.EscapeString(err.Error()))
}

