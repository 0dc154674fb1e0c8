package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"SIPPlanner/internal/model"
)

const (
	planDetailsPath = "/api/plan_details"
	calculatePath   = "/api/calculate_future_value"
)

// BackendClient talks to the SIP planner backend.
type BackendClient struct {
	BaseURL string
	Client  *http.Client
	log     *zap.SugaredLogger
}

// NewBackendClient creates a client with optional proxy support. No client
// timeout is set; the caller's context bounds every request.
func NewBackendClient(baseURL, proxyURL string, log *zap.SugaredLogger) *BackendClient {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BackendClient{
		BaseURL: baseURL,
		Client:  &http.Client{Transport: transport},
		log:     log,
	}
}

type planResponse struct {
	Success bool                `json:"success"`
	Data    *model.PlanSnapshot `json:"data"`
	Error   string              `json:"error"`
}

type calculateRequest struct {
	MonthlyInvestment float64 `json:"monthly_investment"`
}

type calculateResponse struct {
	Success      bool                    `json:"success"`
	FutureValues []model.ProjectionPoint `json:"future_values"`
	WeightedROI  *float64                `json:"weighted_roi"`
	Error        string                  `json:"error"`
}

// FetchPlanDetails loads the portfolio allocation. Every failure is a *FetchError.
func (c *BackendClient) FetchPlanDetails(ctx context.Context) (*model.PlanSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+planDetailsPath, nil)
	if err != nil {
		return nil, &FetchError{Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	var result planResponse
	status, err := c.do(req, &result)
	if err != nil {
		c.log.Warnf("fetch plan details: %v", err)
		return nil, &FetchError{Message: "request failed", Err: err}
	}
	if !result.Success {
		c.log.Warnf("fetch plan details: backend error (status %d): %s", status, result.Error)
		return nil, &FetchError{Message: result.Error, Remote: true}
	}
	if result.Data == nil {
		return nil, &FetchError{Message: "malformed response", Err: errors.New("missing data")}
	}
	c.log.Debugf("plan details loaded: %d companies", len(result.Data.InvestmentRatios))
	return result.Data, nil
}

// RequestProjection asks the backend to project the monthly investment.
// Every failure is a *CalculationError.
func (c *BackendClient) RequestProjection(ctx context.Context, monthlyInvestment float64) (*model.ProjectionResult, error) {
	body, err := json.Marshal(calculateRequest{MonthlyInvestment: monthlyInvestment})
	if err != nil {
		return nil, &CalculationError{Message: "encode request", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+calculatePath, bytes.NewReader(body))
	if err != nil {
		return nil, &CalculationError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var result calculateResponse
	status, err := c.do(req, &result)
	if err != nil {
		c.log.Warnf("calculate future value: %v", err)
		return nil, &CalculationError{Message: "request failed", Err: err}
	}
	if !result.Success {
		c.log.Warnf("calculate future value: backend error (status %d): %s", status, result.Error)
		return nil, &CalculationError{Message: result.Error, Remote: true}
	}
	if result.WeightedROI == nil {
		return nil, &CalculationError{Message: "malformed response", Err: errors.New("missing weighted_roi")}
	}
	return &model.ProjectionResult{Points: result.FutureValues, WeightedROI: *result.WeightedROI}, nil
}

// do sends req and decodes the JSON body into out whatever the status code,
// since the backend reports failures in the body.
func (c *BackendClient) do(req *http.Request, out interface{}) (int, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Wrapf(err, "decode response (status %d)", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
