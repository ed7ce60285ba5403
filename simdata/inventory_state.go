package simdata

import (
	"fmt"
	"time"
)

// Stock initialization and daily movement bounds. All integer intervals
// are half-open.
const (
	initialOnHandMin       = 1000
	initialOnHandMax       = 10000
	initialReorderPointMin = 500
	initialReorderPointMax = 2000
	initialSafetyStockMin  = 300
	initialSafetyStockMax  = 1000

	dailySalesMin = 0
	dailySalesMax = 200

	receiptProbability = 0.05
	receiptMin         = 500
	receiptMax         = 5000

	maxReservedShare = 0.3
)

// PairKey identifies one product in one warehouse. It is the composite map
// key for all per-pair inventory state.
type PairKey struct {
	WarehouseID string
	ProductID   string
}

// InventoryRecord is the mutable stock position of one (warehouse, product)
// pair. ReorderPoint and SafetyStock are fixed at initialization, the
// quantity fields change once per simulated day.
type InventoryRecord struct {
	QuantityOnHand   int
	QuantityReserved int
	ReorderPoint     int
	SafetyStock      int
}

// InventoryStateStore holds the stock position of every (warehouse,
// product) pair across the run. It advances exactly once per simulated
// day, in strictly consecutive day order.
type InventoryStateStore struct {
	universe IdentifierUniverse
	records  map[PairKey]*InventoryRecord
	lastDay  time.Time
}

// BuildInventoryStateStore initializes one record per (warehouse, product)
// pair with randomized starting stock. Warehouses iterate in pool order
// with products nested inside, so a given seed always produces the same
// starting positions.
func BuildInventoryStateStore(universe IdentifierUniverse, rng *RandomSource) (*InventoryStateStore, error) {
	if universe.WarehouseCount() == 0 || universe.ProductCount() == 0 {
		return nil, fmt.Errorf("%w: identifier universe has no warehouse/product pairs",
			ErrInvalidConfiguration)
	}

	records := make(map[PairKey]*InventoryRecord, universe.WarehouseCount()*universe.ProductCount())

	for _, warehouseID := range universe.Warehouses() {
		for _, productID := range universe.Products() {
			records[PairKey{WarehouseID: warehouseID, ProductID: productID}] = &InventoryRecord{
				QuantityOnHand:   rng.IntBetween(initialOnHandMin, initialOnHandMax),
				QuantityReserved: 0,
				ReorderPoint:     rng.IntBetween(initialReorderPointMin, initialReorderPointMax),
				SafetyStock:      rng.IntBetween(initialSafetyStockMin, initialSafetyStockMax),
			}
		}
	}

	return &InventoryStateStore{
		universe: universe,
		records:  records,
	}, nil
}

// Len returns the number of (warehouse, product) pairs tracked by the
// store.
func (s *InventoryStateStore) Len() int {
	return len(s.records)
}

// Record returns a copy of the current stock position for one pair.
func (s *InventoryStateStore) Record(warehouseID string, productID string) (InventoryRecord, bool) {
	record, ok := s.records[PairKey{WarehouseID: warehouseID, ProductID: productID}]
	if !ok {
		return InventoryRecord{}, false
	}

	return *record, true
}

// Pairs returns every tracked pair in deterministic universe order,
// warehouses outer and products inner.
func (s *InventoryStateStore) Pairs() []PairKey {
	pairs := make([]PairKey, 0, len(s.records))

	for _, warehouseID := range s.universe.Warehouses() {
		for _, productID := range s.universe.Products() {
			pairs = append(pairs, PairKey{WarehouseID: warehouseID, ProductID: productID})
		}
	}

	return pairs
}

// LastAdvancedDay returns the most recent day the store advanced to, or
// the zero time before the first advance.
func (s *InventoryStateStore) LastAdvancedDay() time.Time {
	return s.lastDay
}

// AdvanceDay applies one day of stock movement to every pair and returns
// the end-of-day snapshot records in deterministic universe order.
//
// Per pair: sales are subtracted, an occasional large receipt is added,
// on-hand is floored at zero, and a fresh reservation of at most 30% of
// on-hand stock is drawn. Available quantity is on-hand minus reserved,
// floored at zero.
//
// A day can only be advanced once, and days must be consecutive. The first
// advance accepts any day and anchors the sequence.
func (s *InventoryStateStore) AdvanceDay(day time.Time, rng *RandomSource) (InventorySnapshotRecords, error) {
	day = ToDateOnly(day)

	if !s.lastDay.IsZero() {
		if day.Equal(s.lastDay) {
			return nil, fmt.Errorf("%w: %s", ErrDayAlreadyAdvanced, day.Format(DateLayout))
		}

		if expected := s.lastDay.AddDate(0, 0, 1); !day.Equal(expected) {
			return nil, fmt.Errorf("%w: expected %s, got %s",
				ErrNonConsecutiveDay, expected.Format(DateLayout), day.Format(DateLayout))
		}
	}

	date := day.Format(DateLayout)
	snapshots := make(InventorySnapshotRecords, 0, len(s.records))

	for _, warehouseID := range s.universe.Warehouses() {
		for _, productID := range s.universe.Products() {
			record := s.records[PairKey{WarehouseID: warehouseID, ProductID: productID}]
			s.moveStock(record, rng)

			available := record.QuantityOnHand - record.QuantityReserved
			if available < 0 {
				available = 0
			}

			snapshots = append(snapshots, InventorySnapshotRecord{
				Date:              date,
				WarehouseID:       warehouseID,
				ProductID:         productID,
				QuantityOnHand:    record.QuantityOnHand,
				QuantityReserved:  record.QuantityReserved,
				QuantityAvailable: available,
				ReorderPoint:      record.ReorderPoint,
				SafetyStockLevel:  record.SafetyStock,
			})
		}
	}

	s.lastDay = day

	return snapshots, nil
}

// moveStock mutates one record by a day's worth of movement.
func (s *InventoryStateStore) moveStock(record *InventoryRecord, rng *RandomSource) {
	sales := rng.IntBetween(dailySalesMin, dailySalesMax)

	receipt := 0
	if rng.Probability(receiptProbability) {
		receipt = rng.IntBetween(receiptMin, receiptMax)
	}

	record.QuantityOnHand = record.QuantityOnHand - sales + receipt
	if record.QuantityOnHand < 0 {
		record.QuantityOnHand = 0
	}

	// The reservation bound collapses to zero when stock runs dry, the
	// empty interval then yields zero reserved units.
	reservedBound := int(float64(record.QuantityOnHand) * maxReservedShare)
	record.QuantityReserved = rng.IntBetween(0, reservedBound)
}
