package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	logger = newLogger(zapcore.InfoLevel)
)

func newLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLevel swaps the process logger for one emitting at the given level
// ("debug", "info", "warn", "error"). Unknown names fall back to info.
func SetLevel(name string) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		level = zapcore.InfoLevel
	}
	mu.Lock()
	logger = newLogger(level)
	mu.Unlock()
}

// Use replaces the process logger. Tests use it with zaptest/observer cores.
func Use(l *zap.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Sync flushes buffered entries; call it before exiting.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	current().Debug(msg, toZap(fields)...)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	current().Info(msg, toZap(fields)...)
}

// Warn logs a warning. Content problems (for example a card directive that
// does not parse) are reported here so developers see them without the
// game stopping.
func Warn(msg string, fields Fields) {
	current().Warn(msg, toZap(fields)...)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	current().Error(msg, zf...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	current().Fatal(msg, zf...)
}
