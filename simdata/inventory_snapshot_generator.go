package simdata

import "time"

// InventorySnapshotGenerator produces the end-of-day inventory snapshot by
// advancing the shared inventory state. Unlike the other generators it is
// stateful through the store it wraps, generating a day both mutates and
// reports the stock positions.
type InventorySnapshotGenerator struct {
	state *InventoryStateStore
	rng   *RandomSource
}

// NewInventorySnapshotGenerator wires a generator to the run's inventory
// state and random source.
func NewInventorySnapshotGenerator(state *InventoryStateStore, rng *RandomSource) *InventorySnapshotGenerator {
	return &InventorySnapshotGenerator{
		state: state,
		rng:   rng,
	}
}

// Generate advances the inventory state to the date and returns one
// snapshot record per (warehouse, product) pair.
func (g *InventorySnapshotGenerator) Generate(date time.Time) (InventorySnapshotRecords, error) {
	return g.state.AdvanceDay(date, g.rng)
}
