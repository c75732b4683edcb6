// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort            = "8000"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultGreeting        = "Hello from backend"
	DefaultCORSMaxAge      = 300
	DefaultService         = "hello-backend"
)

// Config is the full process configuration.
type Config struct {
	Server  ServerConfig
	Message MessageConfig
	CORS    CORSConfig
	Log     LogConfig
}

// LogConfig selects the log level and the service name stamped on entries.
type LogConfig struct {
	Level   zapcore.Level
	Service string
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string
	Port            string
	ShutdownTimeout time.Duration
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// MessageConfig parameterizes the /api/message handler.
type MessageConfig struct {
	Greeting        string
	IncludeHostname bool
}

// CORSConfig is the cross-origin policy applied to every response.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// AllowsAnyOrigin reports whether the origin list contains the "*" wildcard.
func (c CORSConfig) AllowsAnyOrigin() bool {
	return slices.Contains(c.AllowedOrigins, "*")
}

// InsecureWildcardCredentials reports the wildcard-origin plus credentials
// combination. Browsers refuse it as-is, so the CORS middleware reflects
// the request origin instead, which lets any site make credentialed calls.
func (c CORSConfig) InsecureWildcardCredentials() bool {
	return c.AllowCredentials && c.AllowsAnyOrigin()
}

// Default returns the configuration used when no variables are set. It
// mirrors the permissive policy the frontend was developed against.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Message: MessageConfig{
			Greeting:        DefaultGreeting,
			IncludeHostname: true,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{
				http.MethodGet,
				http.MethodHead,
				http.MethodPost,
				http.MethodPut,
				http.MethodPatch,
				http.MethodDelete,
				http.MethodOptions,
			},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"Link", "Location", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           DefaultCORSMaxAge,
		},
		Log: LogConfig{
			Level:   zapcore.InfoLevel,
			Service: DefaultService,
		},
	}
}

// Load builds a Config from the process environment on top of Default.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("HOST"); ok {
		cfg.Server.Host = strings.TrimSpace(v)
	}
	if v, ok := nonEmpty(lookup, "PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("PORT: invalid port %q", v)
		}
		cfg.Server.Port = v
	}
	if v, ok := nonEmpty(lookup, "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: must be positive, got %s", d)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v, ok := nonEmpty(lookup, "MESSAGE_GREETING"); ok {
		cfg.Message.Greeting = v
	}
	if v, ok := nonEmpty(lookup, "MESSAGE_INCLUDE_HOSTNAME"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("MESSAGE_INCLUDE_HOSTNAME: %w", err)
		}
		cfg.Message.IncludeHostname = b
	}

	if v, ok := nonEmpty(lookup, "CORS_ALLOWED_ORIGINS"); ok {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
	if v, ok := nonEmpty(lookup, "CORS_ALLOWED_HEADERS"); ok {
		cfg.CORS.AllowedHeaders = splitList(v)
	}
	if v, ok := nonEmpty(lookup, "CORS_ALLOW_CREDENTIALS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("CORS_ALLOW_CREDENTIALS: %w", err)
		}
		cfg.CORS.AllowCredentials = b
	}
	if v, ok := nonEmpty(lookup, "CORS_MAX_AGE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("CORS_MAX_AGE: invalid seconds %q", v)
		}
		cfg.CORS.MaxAge = n
	}

	if v, ok := nonEmpty(lookup, "LOG_LEVEL"); ok {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.Log.Level = level
	}
	// Cloud Run sets K_SERVICE to the deployed service name.
	if v, ok := nonEmpty(lookup, "K_SERVICE"); ok {
		cfg.Log.Service = v
	}

	return cfg, nil
}

func nonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
