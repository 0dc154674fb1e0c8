package render

import (
	"fmt"
	"html"
	"strings"

	"SIPPlanner/internal/model"
	"SIPPlanner/internal/money"
)

const (
	notAvailable  = "N/A"
	companiesHead = "Selected Companies (High ROI, Low Volatility) and Investment Ratios:"
)

// Item is one company line of the plan summary.
type Item struct {
	Company    string
	Allocation string // percentage, 2 decimals, no sign
	ROI        string // percentage, 2 decimals, or N/A
}

// Line renders the item as "A: 60.00% allocation (ROI: 12.35%)".
func (i Item) Line() string {
	return fmt.Sprintf("%s: %s%% allocation (ROI: %s%%)", i.Company, i.Allocation, i.ROI)
}

// PlanSummary is the display form of a plan snapshot.
type PlanSummary struct {
	WeightedROI string
	Items       []Item
}

// RenderPlanSummary builds the summary in the snapshot's allocation order.
func RenderPlanSummary(snap *model.PlanSnapshot) PlanSummary {
	s := PlanSummary{WeightedROI: notAvailable}
	if snap.WeightedAvgROI != nil {
		s.WeightedROI = Fixed2(*snap.WeightedAvgROI)
	}
	s.Items = make([]Item, 0, len(snap.InvestmentRatios))
	for _, a := range snap.InvestmentRatios {
		roi := notAvailable
		if v, ok := snap.CompanyROI(a.Company); ok {
			roi = Fixed2(v)
		}
		s.Items = append(s.Items, Item{
			Company:    a.Company,
			Allocation: Fixed2(a.Ratio * 100),
			ROI:        roi,
		})
	}
	return s
}

// Heading is the weighted average ROI line.
func (s PlanSummary) Heading() string {
	return fmt.Sprintf("Portfolio Weighted Average ROI: %s%%", s.WeightedROI)
}

// Lines returns the heading, the section title and one line per company.
func (s PlanSummary) Lines() []string {
	lines := make([]string, 0, len(s.Items)+2)
	lines = append(lines, s.Heading(), companiesHead)
	for _, it := range s.Items {
		lines = append(lines, it.Line())
	}
	return lines
}

// Text renders the summary as plain text, one bullet per company.
func (s PlanSummary) Text() string {
	var b strings.Builder
	b.WriteString(s.Heading() + "\n")
	b.WriteString(companiesHead + "\n")
	for _, it := range s.Items {
		b.WriteString("  • " + it.Line() + "\n")
	}
	return b.String()
}

// HTML renders the summary as the markup of the plan-details container.
func (s PlanSummary) HTML() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p><strong>Portfolio Weighted Average ROI:</strong> %s%%</p>\n", s.WeightedROI))
	b.WriteString("<p><strong>" + companiesHead + "</strong></p>\n<ul>\n")
	for _, it := range s.Items {
		b.WriteString(fmt.Sprintf("<li><strong>%s</strong>: %s%% allocation (ROI: %s%%)</li>\n",
			html.EscapeString(it.Company), it.Allocation, it.ROI))
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// Fixed2 formats v with exactly two decimals, ties away from zero.
func Fixed2(v float64) string {
	return money.Fixed(v, 2)
}
