// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Event names understood by the host.
const (
	EventCloseUI = "CLOSE_UI"
	EventTestCB  = "TEST_CB"
)

// maxResponseBytes caps how much of a host reply is read.
const maxResponseBytes = 1 << 20

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the host client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ClientError of the same type, so the
// sentinels below work with errors.Is.
func (e *ClientError) Is(target error) bool {
	var other *ClientError
	if !errors.As(target, &other) {
		return false
	}
	return other.Type == e.Type && other.Cause == nil
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNoResource
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeRateLimited
	ErrTypeInvalidRequest
)

// Sentinel errors for easy checking.
var (
	ErrNoResource  = &ClientError{Type: ErrTypeNoResource, Message: "no host resource configured"}
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "host unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "host request timed out"}
	ErrRateLimited = &ClientError{Type: ErrTypeRateLimited, Message: "too many host requests"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Config holds configuration options for the host client.
type Config struct {
	// ResourceName is the host resource that owns the overlay.
	ResourceName string

	// BaseURL overrides the https://{ResourceName} endpoint root.
	// Useful when the host bridge is exposed on plain loopback HTTP.
	BaseURL string

	// Timeout bounds each request (default: 10s)
	Timeout time.Duration

	// RatePerSecond and Burst configure the outbound limiter (default: 5/5)
	RatePerSecond float64
	Burst         int

	// Logger receives request logs. Nil discards them.
	Logger *log.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		RatePerSecond: 5,
		Burst:         5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client posts events to the host. It is safe for concurrent use: the
// interpreter runs async commands off its owning goroutine.
type Client struct {
	mu         sync.RWMutex
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a new host client, filling zero values from
// DefaultConfig.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RatePerSecond == 0 {
		config.RatePerSecond = defaults.RatePerSecond
	}
	if config.Burst == 0 {
		config.Burst = defaults.Burst
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RatePerSecond), config.Burst),
		logger:  logger.WithPrefix("host"),
	}
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Endpoint returns the URL for an event, or "" when no resource is known.
func (c *Client) Endpoint(event string) string {
	c.mu.RLock()
	resource, baseURL := c.config.ResourceName, c.config.BaseURL
	c.mu.RUnlock()

	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		if resource == "" {
			return ""
		}
		base = "https://" + resource
	}
	return base + "/" + event
}

// SetEndpoint re-points the client. Requests already in flight keep their
// original URL.
func (c *Client) SetEndpoint(resource, baseURL string) {
	c.mu.Lock()
	c.config.ResourceName = resource
	c.config.BaseURL = baseURL
	c.mu.Unlock()
}

// =============================================================================
// EVENTS
// =============================================================================

// CloseUI tells the host the overlay was dismissed. The reply is ignored.
func (c *Client) CloseUI(ctx context.Context) error {
	_, err := c.post(ctx, EventCloseUI, struct{}{})
	return err
}

// TestCallback sends text as a JSON string and returns the host's reply
// verbatim.
func (c *Client) TestCallback(ctx context.Context, text string) (string, error) {
	return c.post(ctx, EventTestCB, text)
}

// post sends payload as JSON to the event endpoint and returns the body.
// Non-2xx replies are logged but still returned verbatim; only transport
// failures are errors.
func (c *Client) post(ctx context.Context, event string, payload interface{}) (string, error) {
	endpoint := c.Endpoint(event)
	if endpoint == "" {
		return "", ErrNoResource
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to marshal request", Cause: err}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", &ClientError{Type: ErrTypeRateLimited, Message: "too many host requests", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("host call failed", "event", event, "id", requestID, "err", err)
		if isTimeout(err) {
			return "", &ClientError{Type: ErrTypeTimeout, Message: "host request timed out", Cause: err}
		}
		return "", &ClientError{Type: ErrTypeUnreachable, Message: "host unreachable", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnreachable, Message: "failed to read reply", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("host replied with non-success status", "event", event, "id", requestID, "status", resp.StatusCode)
	}
	c.logger.Debug("host call", "event", event, "id", requestID, "status", resp.StatusCode, "took", time.Since(start))

	return string(data), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
