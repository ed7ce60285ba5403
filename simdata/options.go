package simdata

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SimulatorOption defines a functional option for configuring a Simulator.
type SimulatorOption func(*Simulator) error

// WithLogger sets the logger for the Simulator.
//
// Debug level: per-day generation details (development use)
// Info level: run lifecycle and progress (production-safe)
// Error level: failures that abort the run.
func WithLogger(logger Logger) SimulatorOption {
	return func(s *Simulator) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Simulator. The collector
// receives per-day durations, generated record counts, and write failure
// counts.
func WithMetrics(collector MetricsCollector) SimulatorOption {
	return func(s *Simulator) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithReferenceClock pins the instant shipment delivery status is judged
// against. Without this option the wall clock at build time is used, which
// keeps generated data fresh but makes status fields depend on when the
// run happens. Pin the clock to make runs fully reproducible.
func WithReferenceClock(instant time.Time) SimulatorOption {
	return func(s *Simulator) error {
		if instant.IsZero() {
			return fmt.Errorf("%w: reference clock must not be the zero time", ErrInvalidConfiguration)
		}

		s.referenceClock = instant

		return nil
	}
}

// WithRunID overrides the randomly assigned run identifier, useful when an
// external scheduler tracks runs.
func WithRunID(id uuid.UUID) SimulatorOption {
	return func(s *Simulator) error {
		if id == uuid.Nil {
			return fmt.Errorf("%w: run id must not be the nil UUID", ErrInvalidConfiguration)
		}

		s.runID = id

		return nil
	}
}
