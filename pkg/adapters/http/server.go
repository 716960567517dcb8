// Package http exposes the gateway over HTTP: JSON-RPC on POST /mcp plus read-only
// health, tool listing and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/mcpgate/internal/logging"
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/execution"
	"github.com/aretw0/mcpgate/pkg/protocol"
	"github.com/aretw0/mcpgate/pkg/registry"
)

// DefaultMaxBodyBytes caps the size of one inbound envelope.
const DefaultMaxBodyBytes int64 = 1 << 20

// Gateway is the request core served by the handler.
type Gateway interface {
	Handle(ctx context.Context, req protocol.Request) (execution.Sealed, protocol.Response)
	Catalog() *registry.Catalog
}

type server struct {
	gateway Gateway
	metrics http.Handler
	maxBody int64
	logger  *slog.Logger
	ready   func() error
}

// Option configures the handler.
type Option func(*server)

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *server) { s.metrics = h }
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithLogger sets the logger used for transport-level errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *server) { s.logger = logger }
}

// WithReadiness makes /health answer 503 while check returns an error.
func WithReadiness(check func() error) Option {
	return func(s *server) { s.ready = check }
}

// NewHandler creates the HTTP handler for gw.
func NewHandler(gw Gateway, opts ...Option) http.Handler {
	s := &server{
		gateway: gw,
		maxBody: DefaultMaxBodyBytes,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/mcp", s.handleRPC)
	r.Get("/health", s.handleHealth)
	r.Get("/tools", s.handleTools)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Mcp-Session-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleRPC answers every JSON-RPC outcome with HTTP 200, protocol errors included.
// Only an oversized body is refused at the HTTP level.
func (s *server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	req, err := protocol.Decode(body)
	if err != nil {
		f := domain.Classify(err)
		s.logger.Debug("rejected envelope", "reason", f.Reason, "err", f)
		s.writeJSON(w, http.StatusOK, protocol.ErrorResponse(req.ID, f))
		return
	}
	if req.IsNotification() {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	_, resp := s.gateway.Handle(r.Context(), req)
	s.writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status string `json:"status"`
	Tools  int    `json:"tools"`
	Error  string `json:"error,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.ready != nil {
		if err := s.ready(); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Tools: s.gateway.Catalog().Len()})
}

func (s *server) handleTools(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, protocol.NewListToolsResult(s.gateway.Catalog().All()))
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "err", err)
	}
}
