// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jeranaias/tacnet-tui/internal/conversation"
	"github.com/jeranaias/tacnet-tui/internal/intel"
	"github.com/jeranaias/tacnet-tui/internal/metrics"
	"github.com/jeranaias/tacnet-tui/internal/model"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the loopback address the relay listens on.
	DefaultAddr = "127.0.0.1:8787"

	// MaxMessageLimit caps the ?limit query parameter.
	MaxMessageLimit = 1000

	// Version is the relay API version.
	Version = "1.0.0"
)

// ============================================================================
// SERVER
// ============================================================================

// Server is the read-only status relay.
type Server struct {
	addr      string
	server    *http.Server
	listener  net.Listener
	startTime time.Time

	store   *conversation.Store
	feed    *intel.Feed
	metrics *metrics.Metrics
	logger  *zap.Logger
	limiter *RateLimiter

	mu sync.RWMutex
}

// NewServer creates a relay bound to addr. An empty addr uses DefaultAddr.
func NewServer(addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		addr:      addr,
		startTime: time.Now(),
		logger:    zap.NewNop(),
		limiter:   DefaultRateLimiter(),
	}
}

// WithStore sets the conversation store served under /v1/messages.
func (s *Server) WithStore(store *conversation.Store) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
	return s
}

// WithFeed sets the intel feed served under /v1/intel.
func (s *Server) WithFeed(feed *intel.Feed) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = feed
	return s
}

// WithMetrics sets the registry served under /metrics.
func (s *Server) WithMetrics(m *metrics.Metrics) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m
	return s
}

// WithLogger sets the request logger.
func (s *Server) WithLogger(l *zap.Logger) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l != nil {
		s.logger = l
	}
	return s
}

// WithRateLimiter replaces the default per-IP limiter.
func (s *Server) WithRateLimiter(rl *RateLimiter) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiter = rl
	return s
}

// Addr returns the listen address. After Start it is the bound address,
// which matters when the configured port was 0.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// ============================================================================
// ROUTES
// ============================================================================

// Handler builds the router with its middleware stack.
func (s *Server) Handler() http.Handler {
	s.mu.RLock()
	logger, m, limiter := s.logger, s.metrics, s.limiter
	s.mu.RUnlock()

	r := chi.NewRouter()
	r.Use(RecoveryMiddleware(logger))
	r.Use(SecurityHeadersMiddleware())
	r.Use(LoggingMiddleware(logger, m))
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", m.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/messages", s.handleMessages)
		r.Get("/messages/{id}", s.handleMessage)
		r.Get("/intel", s.handleIntel)
	})

	return r
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	Messages       int    `json:"messages"`
	IntelReports   int    `json:"intel_reports"`
	Sending        bool   `json:"sending"`
	PendingReplies int    `json:"pending_replies"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	store, feed := s.sources()

	health := HealthResponse{
		Status:        "ok",
		Version:       Version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}
	if store != nil {
		health.Messages = store.Len()
		health.Sending = store.Sending()
		health.PendingReplies = store.PendingReplies()
	}
	if feed != nil {
		health.IntelReports = len(feed.Reports())
	}

	writeJSON(w, http.StatusOK, health)
}

// ============================================================================
// MESSAGE HANDLERS
// ============================================================================

// MessagesResponse is the body of GET /v1/messages.
type MessagesResponse struct {
	Messages       []model.Message `json:"messages"`
	Total          int             `json:"total"`
	Sending        bool            `json:"sending"`
	PendingReplies int             `json:"pending_replies"`
}

// handleMessages serves the log in append order. ?limit=N keeps the newest N.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	store, _ := s.sources()
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "conversation store not attached")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxMessageLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(MaxMessageLimit))
			return
		}
		limit = n
	}

	msgs := store.Messages()
	total := len(msgs)
	if limit > 0 && limit < total {
		msgs = msgs[total-limit:]
	}
	if msgs == nil {
		msgs = []model.Message{}
	}

	writeJSON(w, http.StatusOK, MessagesResponse{
		Messages:       msgs,
		Total:          total,
		Sending:        store.Sending(),
		PendingReplies: store.PendingReplies(),
	})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	store, _ := s.sources()
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "conversation store not attached")
		return
	}

	id := chi.URLParam(r, "id")
	for _, m := range store.Messages() {
		if m.ID == id {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeError(w, http.StatusNotFound, "message not found")
}

// ============================================================================
// INTEL HANDLER
// ============================================================================

// IntelResponse is the body of GET /v1/intel. Reports are newest first.
type IntelResponse struct {
	Reports []model.IntelReport `json:"reports"`
}

func (s *Server) handleIntel(w http.ResponseWriter, r *http.Request) {
	_, feed := s.sources()
	if feed == nil {
		writeError(w, http.StatusServiceUnavailable, "intel feed not attached")
		return
	}

	reps := feed.Reports()
	if reps == nil {
		reps = []model.IntelReport{}
	}
	writeJSON(w, http.StatusOK, IntelResponse{Reports: reps})
}

func (s *Server) sources() (*conversation.Store, *intel.Feed) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store, s.feed
}

// ============================================================================
// LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until Shutdown.
// It returns nil after a clean shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.mu.Lock()
	s.listener = ln
	s.server = srv
	logger := s.logger
	s.mu.Unlock()

	logger.Info("status relay listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the relay.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv, logger := s.server, s.logger
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}

	logger.Info("status relay shutting down")
	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error detail.
type ErrorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Message: message, Code: status}})
}
