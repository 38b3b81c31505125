// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// ActionShowUI asks the overlay to open.
	ActionShowUI = "SHOW_UI"

	// MaxRequestBodySize bounds a single host message.
	MaxRequestBodySize = 64 * 1024

	// DefaultQueueSize is how many messages may wait for the UI.
	DefaultQueueSize = 16

	shutdownTimeout = 2 * time.Second
)

// ErrQueueFull is reported when the UI is not draining messages.
var ErrQueueFull = errors.New("message queue full")

// Message is one inbound host message.
type Message struct {
	Action string `json:"action"`
}

// Known reports whether the overlay reacts to this message.
func (m Message) Known() bool {
	return m.Action == ActionShowUI
}

// ============================================================================
// STATS
// ============================================================================

// Stats counts what the server has seen.
type Stats struct {
	Received  int64
	Delivered int64
	Ignored   int64
	Rejected  int64
	StartTime time.Time
}

type counters struct {
	received  atomic.Int64
	delivered atomic.Int64
	ignored   atomic.Int64
	rejected  atomic.Int64
	start     time.Time
}

func (c *counters) snapshot() Stats {
	return Stats{
		Received:  c.received.Load(),
		Delivered: c.delivered.Load(),
		Ignored:   c.ignored.Load(),
		Rejected:  c.rejected.Load(),
		StartTime: c.start,
	}
}

// ============================================================================
// SERVER
// ============================================================================

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:30125".
	Addr string

	// Token, when set, is required as a bearer token on /message.
	Token string

	// Version is reported by /health.
	Version string

	// QueueSize bounds undelivered messages. Zero means DefaultQueueSize.
	QueueSize int

	// RatePerSecond and Burst limit inbound requests. Zero disables.
	RatePerSecond float64
	Burst         int

	Logger *log.Logger
}

// Server accepts host messages over HTTP.
type Server struct {
	cfg      Config
	logger   *log.Logger
	mux      *http.ServeMux
	handler  http.Handler
	messages chan Message
	stats    *counters

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

// New creates a Server. Call Listen and then Serve, or mount Handler.
func New(cfg Config) *Server {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger.WithPrefix("server"),
		mux:      http.NewServeMux(),
		messages: make(chan Message, cfg.QueueSize),
		stats:    &counters{start: time.Now()},
	}
	s.setupRoutes()

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	s.handler = Chain(
		RecoveryMiddleware(s.logger),
		RequestIDMiddleware(),
		LoggingMiddleware(s.logger),
		RateLimitMiddleware(limiter),
		AuthMiddleware(cfg.Token, s.logger),
	)(s.mux)
	return s
}

// Messages is drained by the UI. It is never closed.
func (s *Server) Messages() <-chan Message {
	return s.messages
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Stats returns a snapshot of the counters.
func (s *Server) Stats() Stats {
	return s.stats.snapshot()
}

// Listen binds the configured address and returns the bound address,
// which differs from the configured one when the port is 0.
func (s *Server) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr(), nil
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln
	return ln.Addr(), nil
}

// Serve runs until ctx is cancelled and then shuts down gracefully. It
// calls Listen if that has not happened yet.
func (s *Server) Serve(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	srv, ln := s.server, s.listener
	s.mu.Unlock()

	s.logger.Info("listening", "addr", addr.String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Debug("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("POST /message", s.handleMessage)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// MessageResponse acknowledges a message.
type MessageResponse struct {
	Status string `json:"status"`
}

// handleMessage handles POST /message.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	s.stats.received.Add(1)

	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		s.stats.rejected.Add(1)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "message too large")
			return
		}
		s.logger.Debug("bad message body", "err", err)
		s.writeError(w, http.StatusBadRequest, "invalid message")
		return
	}

	if !msg.Known() {
		s.stats.ignored.Add(1)
		s.logger.Debug("ignoring message", "action", msg.Action)
		s.writeJSON(w, http.StatusOK, MessageResponse{Status: "ignored"})
		return
	}

	select {
	case s.messages <- msg:
		s.stats.delivered.Add(1)
		s.writeJSON(w, http.StatusAccepted, MessageResponse{Status: "accepted"})
	default:
		s.stats.rejected.Add(1)
		s.logger.Warn("dropping message", "action", msg.Action, "err", ErrQueueFull)
		s.writeError(w, http.StatusServiceUnavailable, ErrQueueFull.Error())
	}
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Received      int64   `json:"messages_received"`
	Delivered     int64   `json:"messages_delivered"`
	Pending       int     `json:"messages_pending"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.stats.snapshot()
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       s.cfg.Version,
		Received:      st.Received,
		Delivered:     st.Delivered,
		Pending:       len(s.messages),
		UptimeSeconds: time.Since(st.StartTime).Seconds(),
	})
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
