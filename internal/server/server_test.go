package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"SIPPlanner/internal/calculator"
	"SIPPlanner/internal/model"
	"SIPPlanner/internal/strategy"
)

type fakeService struct {
	plan      *strategy.Result
	err       error
	requestID string
	monthly   float64
}

func (f *fakeService) Plan(_ context.Context) (*strategy.Result, error) { return f.plan, f.err }

func (f *fakeService) Project(_ context.Context, monthly float64, requestID string) (*model.ProjectionResult, error) {
	f.monthly, f.requestID = monthly, requestID
	if f.err != nil {
		return nil, f.err
	}
	return &model.ProjectionResult{
		Points:      calculator.Project(monthly, f.plan.WeightedAvgROI),
		WeightedROI: f.plan.WeightedAvgROI,
	}, nil
}

func (f *fakeService) ComputedAt() time.Time {
	if f.plan == nil {
		return time.Time{}
	}
	return time.Unix(1, 0)
}

func samplePlan() *strategy.Result {
	return &strategy.Result{
		Ratios:         model.Allocations{{Company: "ZETA", Ratio: 0.7}, {Company: "ALPHA", Ratio: 0.3}},
		ROI:            map[string]float64{"ZETA": 12, "ALPHA": 8},
		WeightedAvgROI: 10.8,
	}
}

func newTestServer(svc PlanService) *Server {
	gin.SetMode(gin.TestMode)
	return New(svc, NewMetrics(), zap.NewNop().Sugar())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestPlanDetails_PreservesRatioOrder(t *testing.T) {
	s := newTestServer(&fakeService{plan: samplePlan()})

	w := do(t, s, http.MethodGet, "/api/plan_details", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Less(t, strings.Index(body, `"ZETA":0.7`), strings.Index(body, `"ALPHA":0.3`))

	var resp planResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "ZETA", resp.Data.InvestmentRatios[0].Company)
	assert.Equal(t, 10.8, *resp.Data.WeightedAvgROI)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestPlanDetails_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing file", &model.SourceError{Msg: "The data file x.csv was not found."}, "The data file x.csv was not found."},
		{"bad data", &model.DataError{Msg: "Need at least two rows."}, "Data analysis error: Need at least two rows."},
		{"other", errors.New("boom"), "An unexpected error occurred during analysis: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeService{err: tt.err})
			w := do(t, s, http.MethodGet, "/api/plan_details", "")
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"`+tt.want+`"}`, w.Body.String())
		})
	}
}

func TestCalculateFutureValue(t *testing.T) {
	svc := &fakeService{plan: samplePlan()}
	s := newTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate_future_value", strings.NewReader(`{"monthly_investment":1500}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp calculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 10.8, *resp.WeightedROI)
	require.Len(t, resp.FutureValues, 8)
	assert.Equal(t, 1, resp.FutureValues[0].Years)
	assert.Equal(t, 30, resp.FutureValues[7].Years)
	assert.Equal(t, 1500.0, svc.monthly)
	assert.Equal(t, "abc-123", svc.requestID)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCalculateFutureValue_StringAmount(t *testing.T) {
	svc := &fakeService{plan: samplePlan()}
	s := newTestServer(svc)

	w := do(t, s, http.MethodPost, "/api/calculate_future_value", `{"monthly_investment":"2500.5"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2500.5, svc.monthly)
}

func TestCalculateFutureValue_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		svcErr  error
		wantErr string
	}{
		{"missing amount", `{}`, nil, "monthly_investment is required"},
		{"not json", `monthly=5`, nil, "invalid request body"},
		{"analysis failed", `{"monthly_investment":1000}`, &model.DataError{Msg: "No companies meet the criteria"}, "Data analysis error: No companies meet the criteria"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeService{plan: samplePlan(), err: tt.svcErr})
			w := do(t, s, http.MethodPost, "/api/calculate_future_value", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp calculateResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.wantErr)
			assert.Nil(t, resp.WeightedROI)
		})
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	s := newTestServer(&fakeService{plan: samplePlan()})

	w := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","plan_cached":true}`, w.Body.String())

	do(t, s, http.MethodGet, "/api/plan_details", "")
	w = do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sip_http_requests_total{route="/api/plan_details",status="200"} 1`)
	assert.Contains(t, w.Body.String(), "sip_plan_weighted_avg_roi_percent 10.8")
}

func TestCORS(t *testing.T) {
	s := newTestServer(&fakeService{plan: samplePlan()})

	req := httptest.NewRequest(http.MethodGet, "/api/plan_details", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
