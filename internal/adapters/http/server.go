// Package http exposes the dispatcher over HTTP: POST /mcp for JSON-RPC,
// plus health and metrics endpoints. It is a thin transport shell; all
// protocol decisions live in internal/mcp.
package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	rpc "github.com/raza10006/orderdesk/internal/mcp"
)

const maxBodyBytes int64 = 1 << 20 // 1 MiB

// Dispatcher handles one raw JSON-RPC request body.
type Dispatcher interface {
	Handle(ctx context.Context, body []byte) rpc.Response
}

// Server wires the dispatcher into a router with auth and limits applied
// ahead of dispatch, keeping the core free of transport concerns.
type Server struct {
	dispatcher Dispatcher
	authToken  string
	timeout    time.Duration
	log        *slog.Logger
	metrics    http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithAuthToken enables the bearer-token gate. An empty token leaves the
// endpoint open (local development).
func WithAuthToken(token string) Option {
	return func(s *Server) {
		s.authToken = token
	}
}

// WithRequestTimeout bounds each request's handling, including lookup
// retries (default 30s).
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the transport logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetricsHandler overrides the /metrics handler (tests pass a handler
// backed by a fresh registry).
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler builds the HTTP handler for the MCP surface.
func NewHandler(d Dispatcher, opts ...Option) http.Handler {
	s := &Server{
		dispatcher: d,
		timeout:    30 * time.Second,
		log:        slog.Default(),
		metrics:    promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics)
	r.With(s.auth).Post("/mcp", s.handleMCP)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	// Business failures ride inside the envelope; the HTTP status stays 200.
	writeJSON(w, s.dispatcher.Handle(ctx, body))
}

// auth is the bearer-token gate. It sits outside the dispatcher: a rejected
// request never reaches protocol handling.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header ||
			subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.log.Warn("rejected unauthorized request", "remote", r.RemoteAddr)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "err", err)
	}
}
