// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     server
// Description: REST and websocket surface for the enhancement service
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/cicero/internal/enhance"
	"github.com/msto63/cicero/internal/learning"
	"github.com/msto63/cicero/internal/pipeline"
	"github.com/msto63/cicero/pkg/core/health"
	"github.com/msto63/cicero/pkg/core/logging"
	"github.com/msto63/cicero/pkg/core/version"
)

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	DefaultOptions      pipeline.Options
	SimilarityThreshold float64
}

// Server is the Cicero HTTP server
type Server struct {
	httpServer *http.Server
	handler    *Handler
	health     *health.Registry
	logger     *logging.Logger
	config     Config
}

// New creates the server with its routes and health checks wired up.
// classifier and patterns may be nil; the matching endpoints then answer
// with service unavailable.
func New(cfg Config, svc *enhance.Service, classifier enhance.Classifier, patterns learning.Store) *Server {
	logger := logging.New("cicero-server")

	h := NewHandler(svc, classifier, patterns, cfg.DefaultOptions, cfg.SimilarityThreshold)
	ws := NewStreamHandler(svc, cfg.DefaultOptions)

	healthRegistry := health.NewRegistry("cicero", version.Service)
	healthRegistry.RegisterFunc("http", func(ctx context.Context) health.CheckResult {
		return health.Healthy("http", "HTTP server is running")
	})
	healthRegistry.RegisterFunc("classifier", func(ctx context.Context) health.CheckResult {
		if classifier == nil {
			return health.CheckResult{
				Name:    "classifier",
				Status:  health.StatusDegraded,
				Message: "classifier not configured, unknown text stays unknown",
			}
		}
		return health.Healthy("classifier", "classifier available")
	})
	healthRegistry.RegisterFunc("patterns", func(ctx context.Context) health.CheckResult {
		if patterns == nil {
			return health.CheckResult{
				Name:    "patterns",
				Status:  health.StatusDegraded,
				Message: "learning store not configured",
			}
		}
		return health.Healthy("patterns", "pattern store available")
	})
	h.health = healthRegistry

	mux := http.NewServeMux()
	mux.Handle("/v1/enhance/stream", ws)
	mux.HandleFunc("/v1/enhance", h.Enhance)
	mux.HandleFunc("/v1/classify", h.Classify)
	mux.HandleFunc("/v1/voice-command", h.VoiceCommand)
	mux.HandleFunc("/v1/patterns/similar", h.SimilarPatterns)
	mux.HandleFunc("/v1/health", h.Health)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		handler:    h,
		health:     healthRegistry,
		logger:     logger,
		config:     cfg,
	}
}

// Start runs the server until it is shut down
func (s *Server) Start() error {
	s.logger.Info("Starting Cicero server",
		"host", s.config.Host,
		"port", s.config.Port,
	)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping Cicero server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the listen address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Routes returns the HTTP handler, used by tests and embedding callers
func (s *Server) Routes() http.Handler {
	return s.httpServer.Handler
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper captures the status code for request logging
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working through the logging wrapper
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}
