package logging

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Options configures the process logger.
type Options struct {
	Level zapcore.Level
	// Service and Version are stamped on every entry as the Cloud Error
	// Reporting serviceContext. Empty Service leaves the field out.
	Service string
	Version string
}

var (
	loggerMu   sync.RWMutex
	baseLogger *zap.Logger
)

// Configure replaces the process logger with one writing Cloud Logging JSON
// to stdout. Loggers already derived from the previous one keep their core.
func Configure(opts Options) *zap.Logger {
	l := newLogger(opts, zapcore.Lock(os.Stdout))
	loggerMu.Lock()
	baseLogger = l
	loggerMu.Unlock()
	return l
}

// Logger returns the process logger, building an info-level one on first use
// when Configure has not been called.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := baseLogger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if baseLogger == nil {
		baseLogger = newLogger(Options{Level: zapcore.InfoLevel}, zapcore.Lock(os.Stdout))
	}
	return baseLogger
}

// Sync flushes buffered log entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}

func newLogger(opts Options, out zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), out, opts.Level)
	// Same sampling as zap's production preset.
	core = zapcore.NewSamplerWithOptions(core, time.Second, 100, 100)

	zapOpts := []zap.Option{zap.AddCaller(), zap.ErrorOutput(out)}
	if opts.Service != "" {
		zapOpts = append(zapOpts, zap.Fields(serviceContext(opts.Service, opts.Version)))
	}
	return zap.New(core, zapOpts...)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = encodeTimeMicros
	cfg.LevelKey = "severity"
	cfg.EncodeLevel = encodeSeverity
	cfg.MessageKey = "message"
	cfg.CallerKey = "caller"
	return cfg
}

func serviceContext(service, version string) zap.Field {
	fields := []zap.Field{zap.String("service", service)}
	if version != "" {
		fields = append(fields, zap.String("version", version))
	}
	return zap.Dict("serviceContext", fields...)
}

func encodeTimeMicros(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(RFC3339Micros))
}

// encodeSeverity maps zap levels to Cloud Logging severity names.
func encodeSeverity(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	severity := "DEFAULT"
	switch level {
	case zapcore.DebugLevel:
		severity = "DEBUG"
	case zapcore.InfoLevel:
		severity = "INFO"
	case zapcore.WarnLevel:
		severity = "WARNING"
	case zapcore.ErrorLevel:
		severity = "ERROR"
	case zapcore.DPanicLevel:
		severity = "CRITICAL"
	case zapcore.PanicLevel:
		severity = "ALERT"
	case zapcore.FatalLevel:
		severity = "EMERGENCY"
	}
	enc.AppendString(severity)
}
