// Package server provides the HTTP API: text generation endpoints plus a read-mostly view of the
// wizard workspace (state, live preview, export).
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/resume-wizard/internal/export"
	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/jonathan/resume-wizard/internal/preview"
	"github.com/jonathan/resume-wizard/internal/server/ratelimit"
	"github.com/jonathan/resume-wizard/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *store.Store
	generator   generation.Generator
	summarizer  *preview.Summarizer
	exporter    *export.Exporter
	format      export.Format
	rateLimiter *ratelimit.Limiter
	metrics     *metrics
	logger      *log.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	Store     *store.Store
	Generator generation.Generator
	// Exporter defaults to the built-in serializers
	Exporter *export.Exporter
	// ExportFormat is used when a request names none
	ExportFormat export.Format
	// RateLimit defaults to ratelimit.LoadConfig(10)
	RateLimit *ratelimit.Config
	Logger    *log.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server requires a store")
	}
	if cfg.Generator == nil {
		return nil, errors.New("server requires a generator")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	exporter := cfg.Exporter
	if exporter == nil {
		exporter = export.NewExporter(export.Options{Logger: logger})
	}
	format := cfg.ExportFormat
	if format == "" {
		format = export.FormatTeX
	}
	rateCfg := cfg.RateLimit
	if rateCfg == nil {
		rateCfg = ratelimit.LoadConfig(10)
	}

	s := &Server{
		store:       cfg.Store,
		generator:   cfg.Generator,
		summarizer:  preview.NewSummarizer(cfg.Store, cfg.Generator, logger),
		exporter:    exporter,
		format:      format,
		rateLimiter: ratelimit.NewLimiter(rateCfg),
		metrics:     newMetrics(),
		logger:      logger,
	}

	mux := http.NewServeMux()
	// Generation API; method checks live in the handlers so 405 bodies are JSON
	mux.HandleFunc(generation.SummaryPath, s.handleGenerateSummary)
	mux.HandleFunc(generation.BulletsPath, s.handleGenerateBullets)

	// Workspace
	mux.HandleFunc("GET /api/resume", s.handleGetResume)
	mux.HandleFunc("GET /api/resume/preview", s.handlePreview)
	mux.HandleFunc("GET /api/resume/events", s.handleEvents)
	mux.HandleFunc("POST /api/resume/generate-summary", s.handleWorkspaceSummary)
	mux.HandleFunc("GET /api/resume/export", s.handleExport)
	mux.HandleFunc("GET /api/resume/export/status", s.handleExportStatus)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())

	port := cfg.Port
	if port == 0 {
		port = 8080
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // exports and generation calls
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting requests and releases the rate limiter
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.rateLimiter.Stop()
	s.summarizer.Invalidate()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit rejects clients over their per-endpoint budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			s.metrics.rateLimited.Inc()
			retry := int(info.RetryAfter.Seconds() + 0.999)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.logger.Printf("[rate-limit] %s %s rejected for %s", r.Method, r.URL.Path, clientID(r))
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"message":     "Rate limit exceeded. Please try again later.",
				"retry_after": retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID uses the remote IP. Forwarding headers are not trusted.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes {"message": ...}
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"message": message})
}
