package console

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"SIPPlanner/internal/chart"
	"SIPPlanner/internal/client"
	"SIPPlanner/internal/validator"
)

func backend(t *testing.T, plan, calc string) *client.BackendClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/plan_details":
			_, _ = w.Write([]byte(plan))
		case "/api/calculate_future_value":
			_, _ = w.Write([]byte(calc))
		}
	}))
	t.Cleanup(srv.Close)
	return client.NewBackendClient(srv.URL, "", zap.NewNop().Sugar())
}

const (
	planOK = `{"success":true,"data":{"investment_ratios":{"A":0.6,"B":0.4},"selected_companies_roi":{"A":12.345},"weighted_avg_roi":10.1}}`
	calcOK = `{"success":true,"future_values":[{"years":1,"future_value":12668.04},{"years":5,"future_value":123456.789}],"weighted_roi":10.1}`
)

func TestProject_PrintsRegions(t *testing.T) {
	var out bytes.Buffer
	err := Project(context.Background(), backend(t, planOK, calcOK), &out, "1000", zap.NewNop().Sugar())
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Portfolio Weighted Average ROI: 10.10%")
	assert.Contains(t, s, "  • A: 60.00% allocation (ROI: 12.35%)")
	assert.Contains(t, s, "  • B: 40.00% allocation (ROI: N/A)")
	assert.Contains(t, s, "Expected Growth based on 10.10% Annual ROI")
	assert.Contains(t, s, "Future Value of ₹1000 Monthly SIP")
	assert.Contains(t, s, "₹123,456.79")
}

func TestProject_Invalid(t *testing.T) {
	var out bytes.Buffer
	err := Project(context.Background(), backend(t, planOK, calcOK), &out, "500", zap.NewNop().Sugar())

	var ve *validator.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, out.String(), "Error: "+validator.Message)
	assert.NotContains(t, out.String(), "Portfolio Weighted Average ROI")
}

func TestProject_LoadFailure(t *testing.T) {
	var out bytes.Buffer
	err := Project(context.Background(), backend(t, `{"success":false,"error":"db down"}`, calcOK), &out, "5000", zap.NewNop().Sugar())

	require.Error(t, err)
	assert.Contains(t, out.String(), "Error loading portfolio analysis: db down.")
	assert.Contains(t, out.String(), "Portfolio analysis data is not yet loaded.")
}

func TestProject_ExportsChart(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "chart.html")
	pdfPath := filepath.Join(dir, "chart.pdf")

	err := Project(context.Background(), backend(t, planOK, calcOK), io.Discard, "1000", zap.NewNop().Sugar(),
		chart.NewHTMLFile(htmlPath), chart.NewPDFFile(pdfPath))
	require.NoError(t, err)

	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Expected Growth based on 10.10% Annual ROI")

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestProject_ExportFailure(t *testing.T) {
	bad := chart.NewHTMLFile(filepath.Join(t.TempDir(), "missing", "chart.html"))
	err := Project(context.Background(), backend(t, planOK, calcOK), io.Discard, "1000", zap.NewNop().Sugar(), bad)
	assert.Error(t, err)
}
