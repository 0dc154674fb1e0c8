package chart

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// ASCII renders the first trace of fig as a terminal line chart, followed by
// one legend line per point.
func ASCII(fig Figure, width, height int) string {
	if len(fig.Data) == 0 || len(fig.Data[0].Y) == 0 {
		return "(no data)\n"
	}
	tr := fig.Data[0]
	if height < 4 {
		height = 4
	}

	var b strings.Builder
	b.WriteString(fig.Layout.Title.Text + "\n\n")
	if len(tr.Y) > 1 {
		opts := []asciigraph.Option{asciigraph.Height(height), asciigraph.Precision(0)}
		if width > 0 {
			opts = append(opts, asciigraph.Width(width))
		}
		b.WriteString(asciigraph.Plot(tr.Y, opts...))
		b.WriteString("\n\n")
	}
	labelWidth := 0
	for _, x := range tr.X {
		if len(x) > labelWidth {
			labelWidth = len(x)
		}
	}
	for i, x := range tr.X {
		b.WriteString("  " + x + strings.Repeat(" ", labelWidth-len(x)) + "  ")
		if i < len(tr.Text) {
			b.WriteString(tr.Text[i])
		} else {
			b.WriteString(FormatCurrency(tr.Y[i], 2))
		}
		b.WriteString("\n")
	}
	return b.String()
}
