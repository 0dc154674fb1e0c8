package chart

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/pkg/errors"
)

var pageTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f7f9fc; color: #003366; margin: 2rem; }
  h2 { font-weight: 600; }
  #futureValueChart { width: 100%; max-width: 960px; height: 520px; }
</style>
</head>
<body>
<h2 id="roi-info">{{.Heading}}</h2>
<div id="futureValueChart"></div>
<script>
  var fig = {{.Figure}};
  Plotly.newPlot('futureValueChart', fig.data, fig.layout);
</script>
</body>
</html>
`))

// WriteHTML renders fig as a standalone HTML page using Plotly.
func WriteHTML(w io.Writer, fig Figure, heading string) error {
	raw, err := json.Marshal(fig)
	if err != nil {
		return errors.Wrap(err, "marshal figure")
	}
	return pageTemplate.Execute(w, struct {
		Title   string
		Heading string
		Figure  template.JS
	}{
		Title:   fig.Layout.Title.Text,
		Heading: heading,
		Figure:  template.JS(raw),
	})
}
