// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func post(t *testing.T, h http.Handler, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/message", strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// MESSAGE TESTS
// ============================================================================

func TestMessage_ShowUIIsQueued(t *testing.T) {
	s := New(Config{Version: "test"})

	rec := post(t, s.Handler(), `{"action":"SHOW_UI"}`, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	select {
	case msg := <-s.Messages():
		assert.Equal(t, ActionShowUI, msg.Action)
	default:
		t.Fatal("message was not queued")
	}

	st := s.Stats()
	assert.Equal(t, int64(1), st.Received)
	assert.Equal(t, int64(1), st.Delivered)
}

func TestMessage_UnknownActionIgnored(t *testing.T) {
	s := New(Config{})

	for _, body := range []string{`{"action":"HIDE_UI"}`, `{}`, `{"action":"show_ui"}`} {
		rec := post(t, s.Handler(), body, nil)
		assert.Equal(t, http.StatusOK, rec.Code, body)

		var resp MessageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ignored", resp.Status)
	}
	assert.Len(t, s.Messages(), 0)
	assert.Equal(t, int64(3), s.Stats().Ignored)
}

func TestMessage_BadBody(t *testing.T) {
	s := New(Config{})

	rec := post(t, s.Handler(), `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	big := `{"action":"` + strings.Repeat("x", MaxRequestBodySize) + `"}`
	rec = post(t, s.Handler(), big, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	assert.Equal(t, int64(2), s.Stats().Rejected)
}

func TestMessage_QueueFull(t *testing.T) {
	s := New(Config{QueueSize: 1})

	assert.Equal(t, http.StatusAccepted, post(t, s.Handler(), `{"action":"SHOW_UI"}`, nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, post(t, s.Handler(), `{"action":"SHOW_UI"}`, nil).Code)
}

func TestMessage_WrongMethod(t *testing.T) {
	s := New(Config{})
	req := httptest.NewRequest(http.MethodGet, "/message", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ============================================================================
// MIDDLEWARE TESTS
// ============================================================================

func TestAuth(t *testing.T) {
	s := New(Config{Token: "s3cret"})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "Bearer s3cret", http.StatusAccepted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			if tc.header != "" {
				h.Set("Authorization", tc.header)
			}
			rec := post(t, s.Handler(), `{"action":"SHOW_UI"}`, h)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestAuth_HealthIsOpen(t *testing.T) {
	s := New(Config{Token: "s3cret", Version: "1.2.3"})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestValidateBearerToken(t *testing.T) {
	assert.True(t, ValidateBearerToken("a", "a"))
	assert.False(t, ValidateBearerToken("a", "b"))
	assert.False(t, ValidateBearerToken("", ""))
}

func TestRequestID_EchoesCaller(t *testing.T) {
	s := New(Config{})
	h := http.Header{}
	h.Set(RequestIDHeader, "abc-123")
	rec := post(t, s.Handler(), `{"action":"SHOW_UI"}`, h)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	s := New(Config{RatePerSecond: 0.001, Burst: 1})

	assert.Equal(t, http.StatusAccepted, post(t, s.Handler(), `{"action":"SHOW_UI"}`, nil).Code)
	rec := post(t, s.Handler(), `{"action":"SHOW_UI"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRecovery(t *testing.T) {
	s := New(Config{})
	h := Chain(RecoveryMiddleware(s.logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(mark("a"), mark("b"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

// ============================================================================
// LIFECYCLE TESTS
// ============================================================================

func TestServe_ListenAndShutdown(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"})
	addr, err := s.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Post("http://"+addr.String()+"/message", "application/json",
		strings.NewReader(`{"action":"SHOW_UI"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case msg := <-s.Messages():
		assert.Equal(t, ActionShowUI, msg.Action)
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}

	cancel()
	require.NoError(t, <-done)
	client.CloseIdleConnections()
}

func TestListen_BadAddr(t *testing.T) {
	s := New(Config{Addr: "not-an-addr"})
	_, err := s.Listen()
	assert.Error(t, err)
}
