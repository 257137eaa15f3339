// Package server exposes the rating layer as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devacc8/cybership-carrier-service/internal/telemetry"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Config holds server configuration.
type Config struct {
	Port int
}

// Server is the HTTP server for the carrier service.
type Server struct {
	port     int
	registry *carrier.Registry
	rates    *carrier.RateService
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// New creates a new server instance. metrics may be nil, in which case no
// metrics are recorded.
func New(cfg Config, registry *carrier.Registry, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		port:     cfg.Port,
		registry: registry,
		rates:    carrier.NewRateService(registry, logger),
		logger:   logger,
		metrics:  metrics,
	}
}

// Handler returns the HTTP handler for the service routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/carriers", s.handleCarriers)
	mux.HandleFunc("POST /api/rates/shop", s.handleShopRates)
	mux.HandleFunc("POST /api/rates/{carrier}", s.handleGetRates)
	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"carriers": s.registry.Codes()})
}

func (s *Server) handleShopRates(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRateRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	resp, err := s.rates.ShopRates(r.Context(), req)
	s.recordRequest("shop_rates", "all", err, time.Since(start))

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	code := carrier.CarrierCode(strings.ToUpper(r.PathValue("carrier")))

	req, ok := s.decodeRateRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	resp, err := s.rates.GetRates(r.Context(), code, req)
	s.recordRequest("get_rates", string(code), err, time.Since(start))

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decodeRateRequest(w http.ResponseWriter, r *http.Request) (*carrier.RateRequest, bool) {
	var req carrier.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, carrier.NewCarrierError(carrier.ErrCodeBadRequest,
			"invalid JSON request body").WithCause(err))
		return nil, false
	}
	return &req, true
}

func (s *Server) recordRequest(operation, carrierLabel string, err error, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		if ce, ok := carrier.AsCarrierError(err); ok {
			s.metrics.RecordError(carrierLabel, string(ce.Code))
		}
	}
	s.metrics.RecordRequest(operation, carrierLabel, status, duration.Seconds())
}

// errorBody is the JSON shape of a failed request.
type errorBody struct {
	Code      carrier.ErrorCode   `json:"code"`
	Message   string              `json:"message"`
	Carrier   carrier.CarrierCode `json:"carrier,omitempty"`
	Retryable bool                `json:"retryable"`
	Details   map[string]any      `json:"details,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	ce, ok := carrier.AsCarrierError(err)
	if !ok {
		ce = carrier.NewCarrierError(carrier.ErrCodeUnknown, err.Error())
	}

	s.logger.Warn("Request failed",
		zap.String("code", string(ce.Code)),
		zap.Error(err),
	)

	writeJSON(w, httpStatusFor(ce.Code), map[string]any{"error": errorBody{
		Code:      ce.Code,
		Message:   ce.Message,
		Carrier:   ce.Carrier,
		Retryable: ce.Retryable,
		Details:   ce.Details,
	}})
}

func httpStatusFor(code carrier.ErrorCode) int {
	switch code {
	case carrier.ErrCodeValidation, carrier.ErrCodeBadRequest:
		return http.StatusBadRequest
	case carrier.ErrCodeCarrierNotFound:
		return http.StatusNotFound
	case carrier.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case carrier.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case carrier.ErrCodeAuthFailed, carrier.ErrCodeNetwork,
		carrier.ErrCodeMalformedResponse, carrier.ErrCodeCarrierAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
