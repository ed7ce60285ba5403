package simdata

import "time"

// Logger defines the interface for logging within the simulation and its
// storage backends. Implementations receive structured key-value pairs in
// the args slice, alternating keys and values.
//
// This matches the log/slog argument convention, so a slog or zap sugared
// logger adapts with a thin bridge.
type Logger interface {
	// Debug logs fine-grained flow information, for example per-day
	// generation counts.
	Debug(msg string, args ...any)

	// Info logs run-level lifecycle events.
	Info(msg string, args ...any)

	// Warn logs recoverable anomalies.
	Warn(msg string, args ...any)

	// Error logs failures that abort an operation.
	Error(msg string, args ...any)
}

// MetricsCollector defines the interface for collecting operational
// metrics from the simulation and its storage backends. All methods must
// be safe for concurrent use.
type MetricsCollector interface {
	// RecordDuration records how long an operation took, with labels
	// such as the dataset or the simulated date.
	RecordDuration(metric string, duration time.Duration, labels map[string]string)

	// IncrementCounter increments a counter metric.
	IncrementCounter(metric string, labels map[string]string)

	// RecordValue records a point-in-time value such as a record count.
	RecordValue(metric string, value float64, labels map[string]string)
}
