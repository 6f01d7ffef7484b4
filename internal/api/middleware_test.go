package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-Id")
	}))

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen, "expected request ID on the request")
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("preserves id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-Id", "custom-id-123")
		handler.ServeHTTP(w, r)

		assert.Equal(t, "custom-id-123", w.Header().Get("X-Request-Id"))
	})
}

func TestRequestLoggerOmitsBody(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusTeapot)
	}))

	r := httptest.NewRequest(http.MethodPost, "/api/check-password", strings.NewReader(`{"value":"hunter2hunter2"}`))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	out := buf.String()
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/api/check-password")
	assert.NotContains(t, out, "hunter2", "request body leaked into log")
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrapped := SecurityHeadersMiddleware(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	expectedHeaders := map[string]string{
		"Strict-Transport-Security": "max-age=63072000; includeSubDomains",
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Referrer-Policy":           "no-referrer",
		"Permissions-Policy":        "camera=(), microphone=(), geolocation=()",
		"Cache-Control":             "no-store",
	}

	for header, expected := range expectedHeaders {
		assert.Equal(t, expected, w.Header().Get(header), header)
	}

	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"), "Content-Security-Policy header not set")
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"same origin", http.MethodPost, "http://example.com", http.StatusOK, "http://example.com"},
		{"cross origin", http.MethodPost, "https://evil.test", http.StatusOK, ""},
		{"no origin", http.MethodPost, "", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "https://example.com", http.StatusNoContent, "https://example.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, "http://example.com/api/check-email", nil)
			if tc.origin != "" {
				r.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	handler := MaxBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.Error(t, readErr, "expected error reading oversized body")
}
