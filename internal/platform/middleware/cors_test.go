package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/janisto/hello-backend/internal/config"
)

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func corsWithoutCredentials() config.CORSConfig {
	cfg := config.Default().CORS
	cfg.AllowCredentials = false
	return cfg
}

func TestCORSWildcardWithoutCredentials(t *testing.T) {
	called := false
	h := CORS(corsWithoutCredentials())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "http://localhost/api/message", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if !called {
		t.Fatalf("expected downstream handler to be called for GET request")
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("expected no Access-Control-Allow-Credentials, got %q", got)
	}
	expose := resp.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Link", "Location", "X-Request-Id"} {
		if !containsHeader(expose, h) {
			t.Fatalf("expected Access-Control-Expose-Headers to contain %q, got %q", h, expose)
		}
	}
}

func TestCORSWildcardWithCredentialsReflectsOrigin(t *testing.T) {
	h := CORS(config.Default().CORS)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, origin := range []string{"http://localhost:3000", "https://anything.example"} {
		req := httptest.NewRequest(http.MethodGet, "http://localhost/api/message", nil)
		req.Header.Set("Origin", origin)
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, req)

		if got := resp.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Fatalf("expected reflected origin %q, got %q", origin, got)
		}
		if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Fatalf("expected Access-Control-Allow-Credentials true, got %q", got)
		}
		if !containsHeader(strings.Join(resp.Header().Values("Vary"), ","), "Origin") {
			t.Fatalf("expected Vary to contain Origin, got %q", resp.Header().Values("Vary"))
		}
	}
}

func TestCORSExplicitOriginList(t *testing.T) {
	cfg := config.Default().CORS
	cfg.AllowedOrigins = []string{"https://app.example"}

	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		origin string
		want   string
	}{
		{"https://app.example", "https://app.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "http://localhost/api/message", nil)
		req.Header.Set("Origin", tt.origin)
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, req)

		if got := resp.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Fatalf("origin %s: expected %q, got %q", tt.origin, tt.want, got)
		}
	}
}

func TestCORSHandlesPreflightWithoutCallingNext(t *testing.T) {
	called := false
	h := CORS(config.Default().CORS)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "http://localhost/api/message", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "X-Custom-Header")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if called {
		t.Fatalf("expected preflight to be answered by the CORS middleware")
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Methods"); got != http.MethodGet {
		t.Fatalf("expected Access-Control-Allow-Methods GET, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Headers"); !containsHeader(got, "X-Custom-Header") {
		t.Fatalf("expected any requested header to be allowed, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected reflected origin, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Max-Age"); got != "300" {
		t.Fatalf("expected Access-Control-Max-Age 300, got %q", got)
	}
}

func TestCORSPreflightAllowsEveryStandardMethod(t *testing.T) {
	h := CORS(config.Default().CORS)(http.NotFoundHandler())

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		req := httptest.NewRequest(http.MethodOptions, "http://localhost/api/message", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", method)
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, req)

		if got := resp.Header().Get("Access-Control-Allow-Methods"); got != method {
			t.Fatalf("%s: expected method to be allowed, got %q", method, got)
		}
	}
}
