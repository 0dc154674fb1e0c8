package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"SIPPlanner/internal/model"
	"SIPPlanner/internal/strategy"
)

// PlanService is the analysis the HTTP API exposes.
type PlanService interface {
	Plan(ctx context.Context) (*strategy.Result, error)
	Project(ctx context.Context, monthly float64, requestID string) (*model.ProjectionResult, error)
	ComputedAt() time.Time
}

// Server is the SIP analysis backend.
type Server struct {
	svc     PlanService
	metrics *Metrics
	log     *zap.SugaredLogger
	router  *gin.Engine
}

// New builds the router. Set gin's mode before calling.
func New(svc PlanService, metrics *Metrics, log *zap.SugaredLogger) *Server {
	s := &Server{svc: svc, metrics: metrics, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(log, metrics))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, RequestIDHeader)
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	api.GET("/plan_details", s.planDetails)
	api.POST("/calculate_future_value", s.calculateFutureValue)

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("backend listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down backend")
	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
}
