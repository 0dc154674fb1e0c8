package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"SIPPlanner/internal/model"
	"SIPPlanner/internal/money"
)

// CurrencySymbol prefixes every monetary value on the chart.
const CurrencySymbol = "₹"

// Figure is a Plotly-compatible line chart.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single data series.
type Trace struct {
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	Text          []string  `json:"text,omitempty"` // currency-formatted Y values
	Type          string    `json:"type"`
	Mode          string    `json:"mode"`
	Marker        Marker    `json:"marker"`
	Line          Line      `json:"line"`
	HoverTemplate string    `json:"hovertemplate"`
}

type Marker struct {
	Size   int    `json:"size"`
	Color  string `json:"color"`
	Symbol string `json:"symbol"`
}

type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
	Shape string `json:"shape"`
}

type Font struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
}

type Title struct {
	Text string `json:"text"`
	Font Font   `json:"font"`
}

type Axis struct {
	Title      string `json:"title"`
	TickFormat string `json:"tickformat,omitempty"`
	TickAngle  int    `json:"tickangle,omitempty"`
	ShowGrid   bool   `json:"showgrid"`
	GridColor  string `json:"gridcolor"`
}

type Margin struct {
	T int `json:"t"`
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
}

type Layout struct {
	Title        Title  `json:"title"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
	Margin       Margin `json:"margin"`
	HoverMode    string `json:"hovermode"`
	Template     string `json:"template"`
	PlotBGColor  string `json:"plot_bgcolor"`
	PaperBGColor string `json:"paper_bgcolor"`
}

// Build maps a projection to the future value chart. monthlyInput is the
// amount as the user typed it and only appears in the title.
func Build(result *model.ProjectionResult, monthlyInput string) Figure {
	tr := Trace{
		X:      make([]string, 0, len(result.Points)),
		Y:      make([]float64, 0, len(result.Points)),
		Text:   make([]string, 0, len(result.Points)),
		Type:   "scatter",
		Mode:   "lines+markers",
		Marker: Marker{Size: 10, Color: "#004d99", Symbol: "circle"},
		Line:   Line{Color: "#007bff", Width: 3, Shape: "spline"},
		HoverTemplate: "<b>Period:</b> %{x}<br><b>Future Value:</b> " + CurrencySymbol +
			"%{y:,.2f}<extra></extra>",
	}
	for _, p := range result.Points {
		tr.X = append(tr.X, YearLabel(p.Years))
		tr.Y = append(tr.Y, p.FutureValue)
		tr.Text = append(tr.Text, FormatCurrency(p.FutureValue, 2))
	}

	return Figure{
		Data: []Trace{tr},
		Layout: Layout{
			Title: Title{
				Text: fmt.Sprintf("Future Value of %s%s Monthly SIP", CurrencySymbol, strings.TrimSpace(monthlyInput)),
				Font: Font{Size: 18, Color: "#003366"},
			},
			XAxis:        Axis{Title: "Investment Period", ShowGrid: true, GridColor: "#e0e0e0", TickAngle: 45},
			YAxis:        Axis{Title: "Future Value (INR)", TickFormat: CurrencySymbol + ",.0f", ShowGrid: true, GridColor: "#e0e0e0"},
			Margin:       Margin{T: 60, B: 80, L: 80, R: 20},
			HoverMode:    "x unified",
			Template:     "plotly_white",
			PlotBGColor:  "#f7f9fc",
			PaperBGColor: "#f7f9fc",
		},
	}
}

// YearLabel is the x-axis label for a horizon, e.g. "5 Years".
func YearLabel(years int) string {
	return strconv.Itoa(years) + " Years"
}

// ROIHeading states the annual ROI driving the projection.
func ROIHeading(roi float64) string {
	return "Expected Growth based on " + money.Fixed(roi, 2) + "% Annual ROI"
}

// FormatCurrency renders v as "₹123,456.79" with the given number of decimals.
func FormatCurrency(v float64, decimals int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	s := money.Fixed(v, int32(decimals))
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + CurrencySymbol + s
	}
	return sign + CurrencySymbol + humanize.Comma(n) + frac
}
