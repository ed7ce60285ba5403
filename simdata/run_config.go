package simdata

import (
	"fmt"
	"time"
)

// Default universe dimensions, chosen to produce a realistically sized
// mid-market supply chain.
const (
	DefaultNumProducts   = 500
	DefaultNumWarehouses = 50
	DefaultNumSuppliers  = 100
	DefaultSeed          = 42
)

// RunConfig describes one simulation run: the inclusive date range to
// generate, the universe dimensions, and the random seed.
type RunConfig struct {
	StartDate     time.Time
	EndDate       time.Time
	NumProducts   int
	NumWarehouses int
	NumSuppliers  int
	Seed          int64
}

// Validate ensures the configuration describes a runnable simulation.
func (c RunConfig) Validate() error {
	if c.StartDate.IsZero() {
		return fmt.Errorf("%w: start date must be set", ErrInvalidConfiguration)
	}

	if c.EndDate.IsZero() {
		return fmt.Errorf("%w: end date must be set", ErrInvalidConfiguration)
	}

	if ToDateOnly(c.EndDate).Before(ToDateOnly(c.StartDate)) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidConfiguration,
			c.EndDate.Format(DateLayout),
			c.StartDate.Format(DateLayout))
	}

	if c.NumProducts <= 0 {
		return fmt.Errorf("%w: number of products must be positive, got %d",
			ErrInvalidConfiguration, c.NumProducts)
	}

	if c.NumWarehouses <= 0 {
		return fmt.Errorf("%w: number of warehouses must be positive, got %d",
			ErrInvalidConfiguration, c.NumWarehouses)
	}

	if c.NumSuppliers <= 0 {
		return fmt.Errorf("%w: number of suppliers must be positive, got %d",
			ErrInvalidConfiguration, c.NumSuppliers)
	}

	return nil
}

// Days returns how many calendar days the run covers, both bounds
// inclusive.
func (c RunConfig) Days() int {
	start := ToDateOnly(c.StartDate)
	end := ToDateOnly(c.EndDate)

	return int(end.Sub(start).Hours()/24) + 1
}
