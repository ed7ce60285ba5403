package pgcatalog

import (
	"github.com/freightforge/supplychain-simdata-go/simdata"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithTableName sets the table name for the Store.
func WithTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return simdata.ErrEmptyTableName
		}

		s.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: document counts and durations (production-safe)
// Warn level: non-critical issues like cleanup failures
// Error level: failures that abort an operation.
func WithLogger(logger simdata.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store. The collector
// receives statement durations and database error counts.
func WithMetrics(collector simdata.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}
