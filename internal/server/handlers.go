package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"SIPPlanner/internal/model"
)

type planResponse struct {
	Success bool                `json:"success"`
	Data    *model.PlanSnapshot `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
}

type calculateRequest struct {
	MonthlyInvestment json.Number `json:"monthly_investment"`
}

type calculateResponse struct {
	Success      bool                    `json:"success"`
	FutureValues []model.ProjectionPoint `json:"future_values,omitempty"`
	WeightedROI  *float64                `json:"weighted_roi,omitempty"`
	Error        string                  `json:"error,omitempty"`
}

type healthResponse struct {
	Status     string `json:"status"`
	PlanCached bool   `json:"plan_cached"`
}

// analysisMessage maps an analysis failure to the message clients display.
func analysisMessage(err error) string {
	var se *model.SourceError
	var de *model.DataError
	switch {
	case errors.As(err, &se):
		return se.Msg
	case errors.As(err, &de):
		return "Data analysis error: " + de.Msg
	default:
		return "An unexpected error occurred during analysis: " + err.Error()
	}
}

func (s *Server) planDetails(c *gin.Context) {
	res, err := s.svc.Plan(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, planResponse{Error: analysisMessage(err)})
		return
	}
	s.metrics.WeightedROI.Set(res.WeightedAvgROI)
	c.JSON(http.StatusOK, planResponse{Success: true, Data: res.Snapshot()})
}

func (s *Server) calculateFutureValue(c *gin.Context) {
	fail := func(msg string) {
		s.metrics.Projections.WithLabelValues("error").Inc()
		c.JSON(http.StatusBadRequest, calculateResponse{Error: msg})
	}

	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail("invalid request body: " + err.Error())
		return
	}
	raw := strings.TrimSpace(req.MonthlyInvestment.String())
	if raw == "" {
		fail("monthly_investment is required")
		return
	}
	monthly, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fail("could not convert monthly_investment to float: '" + raw + "'")
		return
	}

	res, err := s.svc.Project(c.Request.Context(), monthly, getRequestID(c))
	if err != nil {
		var se *model.SourceError
		var de *model.DataError
		if errors.As(err, &se) || errors.As(err, &de) {
			fail(analysisMessage(err))
			return
		}
		fail(err.Error())
		return
	}
	s.metrics.Projections.WithLabelValues("ok").Inc()
	roi := res.WeightedROI
	c.JSON(http.StatusOK, calculateResponse{Success: true, FutureValues: res.Points, WeightedROI: &roi})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", PlanCached: !s.svc.ComputedAt().IsZero()})
}
