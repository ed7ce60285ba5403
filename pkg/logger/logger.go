// Package logger centralizes zap logger construction so every binary logs
// in the same shape.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger with ISO8601 timestamps under the
// "timestamp" key.
func New() (*zap.Logger, error) {
	return NewAtLevel("")
}

// NewAtLevel builds a production zap logger at the given level. An empty
// level keeps zap's production default (info).
func NewAtLevel(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log level %q: %w", level, err)
		}

		cfg.Level = parsed
	}

	return cfg.Build()
}

// Must panics when the logger could not be built. Intended for main
// functions where a missing logger is fatal anyway.
func Must(logger *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}

	return logger
}

// Named returns a child logger scoped to a component name. A nil base
// yields a no-op logger, so call sites do not need nil checks.
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}

	return base.Named(component)
}
