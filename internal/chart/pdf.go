package chart

import (
	"io"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
)

// The core PDF fonts are cp1252 and cannot draw the rupee sign.
var pdfText = strings.NewReplacer(CurrencySymbol, "Rs. ")

// WritePDF renders fig as a one-page A4 report: heading, a value table and a
// simple line plot.
func WritePDF(w io.Writer, fig Figure, heading string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pdfText.Replace(fig.Layout.Title.Text), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, pdfText.Replace(fig.Layout.Title.Text), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	var tr Trace
	if len(fig.Data) > 0 {
		tr = fig.Data[0]
	}

	// Value table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(224, 231, 255)
	pdf.CellFormat(60, 8, fig.Layout.XAxis.Title, "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, pdfText.Replace(fig.Layout.YAxis.Title), "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, x := range tr.X {
		pdf.CellFormat(60, 7, x, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, pdfText.Replace(FormatCurrency(tr.Y[i], 2)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	if len(tr.Y) > 1 {
		drawPlot(pdf, tr, 20, pdf.GetY(), 170, 90)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func drawPlot(pdf *fpdf.Fpdf, tr Trace, x0, y0, width, height float64) {
	maxY := 0.0
	for _, v := range tr.Y {
		maxY = math.Max(maxY, v)
	}
	if maxY == 0 {
		maxY = 1
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x0, y0, width, height, "D")

	step := width / float64(len(tr.Y)-1)
	px := func(i int) float64 { return x0 + float64(i)*step }
	py := func(v float64) float64 { return y0 + height - v/maxY*height }

	pdf.SetDrawColor(0, 123, 255)
	pdf.SetLineWidth(0.8)
	for i := 1; i < len(tr.Y); i++ {
		pdf.Line(px(i-1), py(tr.Y[i-1]), px(i), py(tr.Y[i]))
	}
	pdf.SetFillColor(0, 77, 153)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	for i, v := range tr.Y {
		pdf.Circle(px(i), py(v), 1.2, "F")
		pdf.Text(px(i)-4, y0+height+5, tr.X[i])
	}
	pdf.Text(x0, y0-2, pdfText.Replace(FormatCurrency(maxY, 0)))
}
