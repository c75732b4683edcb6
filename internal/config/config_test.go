package config

import (
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr() != ":8000" {
		t.Errorf("expected addr :8000, got %q", cfg.Server.Addr())
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Message.Greeting != "Hello from backend" {
		t.Errorf("unexpected greeting %q", cfg.Message.Greeting)
	}
	if !cfg.Message.IncludeHostname {
		t.Error("expected hostname inclusion enabled by default")
	}
	if !cfg.CORS.AllowsAnyOrigin() || !cfg.CORS.AllowCredentials {
		t.Errorf("expected wildcard origin with credentials, got %+v", cfg.CORS)
	}
	if !cfg.CORS.InsecureWildcardCredentials() {
		t.Error("expected default CORS policy to be flagged")
	}
	if cfg.CORS.MaxAge != 300 {
		t.Errorf("expected max age 300, got %d", cfg.CORS.MaxAge)
	}
	if cfg.Log.Level != zapcore.InfoLevel || cfg.Log.Service != "hello-backend" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(lookupFrom(map[string]string{
		"HOST":                     "127.0.0.1",
		"PORT":                     "9090",
		"SHUTDOWN_TIMEOUT":         "3s",
		"MESSAGE_GREETING":         "Hello from worker",
		"MESSAGE_INCLUDE_HOSTNAME": "false",
		"CORS_ALLOWED_ORIGINS":     "https://a.example, https://b.example ,",
		"CORS_ALLOWED_HEADERS":     "Content-Type,X-Request-Id",
		"CORS_ALLOW_CREDENTIALS":   "0",
		"CORS_MAX_AGE":             "60",
		"LOG_LEVEL":                "debug",
		"K_SERVICE":                "hello-backend-staging",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Errorf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("unexpected shutdown timeout %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Message.Greeting != "Hello from worker" || cfg.Message.IncludeHostname {
		t.Errorf("unexpected message config %+v", cfg.Message)
	}
	if !slices.Equal(cfg.CORS.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if !slices.Equal(cfg.CORS.AllowedHeaders, []string{"Content-Type", "X-Request-Id"}) {
		t.Errorf("unexpected headers %v", cfg.CORS.AllowedHeaders)
	}
	if cfg.CORS.AllowCredentials || cfg.CORS.InsecureWildcardCredentials() {
		t.Errorf("expected credentials disabled, got %+v", cfg.CORS)
	}
	if cfg.CORS.MaxAge != 60 {
		t.Errorf("unexpected max age %d", cfg.CORS.MaxAge)
	}
	if cfg.Log.Level != zapcore.DebugLevel || cfg.Log.Service != "hello-backend-staging" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadBlankValuesKeepDefaults(t *testing.T) {
	cfg, err := load(lookupFrom(map[string]string{
		"PORT":             "  ",
		"MESSAGE_GREETING": "",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != DefaultPort || cfg.Message.Greeting != DefaultGreeting {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "http"},
		{"PORT", "70000"},
		{"SHUTDOWN_TIMEOUT", "soon"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"MESSAGE_INCLUDE_HOSTNAME", "maybe"},
		{"CORS_ALLOW_CREDENTIALS", "yes please"},
		{"CORS_MAX_AGE", "-5"},
		{"LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			_, err := load(lookupFrom(map[string]string{tt.key: tt.value}))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), tt.key+":") {
				t.Fatalf("expected error to name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("MESSAGE_INCLUDE_HOSTNAME", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "3000" || cfg.Message.IncludeHostname {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
}
