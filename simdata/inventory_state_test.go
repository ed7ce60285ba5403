package simdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

func buildSmallStateStore(t *testing.T, seed int64) (*simdata.InventoryStateStore, *simdata.RandomSource) {
	t.Helper()

	universe, err := simdata.BuildIdentifierUniverse(3, 2, 2)
	require.NoError(t, err)

	rng := simdata.NewRandomSource(seed)

	store, err := simdata.BuildInventoryStateStore(universe, rng)
	require.NoError(t, err)

	return store, rng
}

func Test_BuildInventoryStateStore_TracksEveryWarehouseProductPair(t *testing.T) {
	store, _ := buildSmallStateStore(t, 42)

	assert.Equal(t, 6, store.Len())
	assert.Len(t, store.Pairs(), 6)
	assert.Equal(t,
		simdata.PairKey{WarehouseID: "WH-001", ProductID: "PRD-0001"},
		store.Pairs()[0])
	assert.True(t, store.LastAdvancedDay().IsZero())
}

func Test_BuildInventoryStateStore_InitializesStockWithinBounds(t *testing.T) {
	store, _ := buildSmallStateStore(t, 42)

	for _, pair := range store.Pairs() {
		record, ok := store.Record(pair.WarehouseID, pair.ProductID)
		require.True(t, ok)

		assert.GreaterOrEqual(t, record.QuantityOnHand, 1000)
		assert.Less(t, record.QuantityOnHand, 10000)
		assert.GreaterOrEqual(t, record.ReorderPoint, 500)
		assert.Less(t, record.ReorderPoint, 2000)
		assert.GreaterOrEqual(t, record.SafetyStock, 300)
		assert.Less(t, record.SafetyStock, 1000)
		assert.Zero(t, record.QuantityReserved)
	}
}

func Test_BuildInventoryStateStore_SameSeedGivesSameStartingPositions(t *testing.T) {
	first, _ := buildSmallStateStore(t, 42)
	second, _ := buildSmallStateStore(t, 42)

	for _, pair := range first.Pairs() {
		firstRecord, ok := first.Record(pair.WarehouseID, pair.ProductID)
		require.True(t, ok)

		secondRecord, ok := second.Record(pair.WarehouseID, pair.ProductID)
		require.True(t, ok)

		assert.Equal(t, firstRecord, secondRecord)
	}
}

func Test_BuildInventoryStateStore_RejectsEmptyUniverse(t *testing.T) {
	_, err := simdata.BuildInventoryStateStore(simdata.IdentifierUniverse{}, simdata.NewRandomSource(1))
	assert.ErrorIs(t, err, simdata.ErrInvalidConfiguration)
}

func Test_InventoryStateStore_AdvanceDay_SnapshotsEveryPairInUniverseOrder(t *testing.T) {
	store, rng := buildSmallStateStore(t, 42)
	day := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	snapshots, err := store.AdvanceDay(day, rng)
	require.NoError(t, err)

	require.Len(t, snapshots, 6)
	assert.Equal(t, "WH-001", snapshots[0].WarehouseID)
	assert.Equal(t, "PRD-0001", snapshots[0].ProductID)
	assert.Equal(t, "WH-002", snapshots[5].WarehouseID)
	assert.Equal(t, "PRD-0003", snapshots[5].ProductID)

	for _, snapshot := range snapshots {
		assert.Equal(t, "2024-03-17", snapshot.Date)
		assert.GreaterOrEqual(t, snapshot.QuantityOnHand, 0)
		assert.GreaterOrEqual(t, snapshot.QuantityReserved, 0)
		assert.LessOrEqual(t,
			float64(snapshot.QuantityReserved),
			float64(snapshot.QuantityOnHand)*0.3)
		assert.Equal(t,
			max(0, snapshot.QuantityOnHand-snapshot.QuantityReserved),
			snapshot.QuantityAvailable)
	}

	assert.Equal(t, day, store.LastAdvancedDay())
}

func Test_InventoryStateStore_AdvanceDay_RejectsRepeatAndGap(t *testing.T) {
	store, rng := buildSmallStateStore(t, 42)
	day := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	_, err := store.AdvanceDay(day, rng)
	require.NoError(t, err)

	_, err = store.AdvanceDay(day, rng)
	assert.ErrorIs(t, err, simdata.ErrDayAlreadyAdvanced)

	_, err = store.AdvanceDay(day.AddDate(0, 0, 2), rng)
	assert.ErrorIs(t, err, simdata.ErrNonConsecutiveDay)

	_, err = store.AdvanceDay(day.AddDate(0, 0, 1), rng)
	assert.NoError(t, err)
}

func Test_InventoryStateStore_AdvanceDay_FirstAdvanceAnchorsAnyDay(t *testing.T) {
	store, rng := buildSmallStateStore(t, 42)

	_, err := store.AdvanceDay(time.Date(2031, 7, 1, 0, 0, 0, 0, time.UTC), rng)
	assert.NoError(t, err)
}

func Test_InventoryStateStore_AdvanceDay_IsDeterministic(t *testing.T) {
	first, firstRNG := buildSmallStateStore(t, 42)
	second, secondRNG := buildSmallStateStore(t, 42)
	day := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	for offset := range 5 {
		firstSnapshots, err := first.AdvanceDay(day.AddDate(0, 0, offset), firstRNG)
		require.NoError(t, err)

		secondSnapshots, err := second.AdvanceDay(day.AddDate(0, 0, offset), secondRNG)
		require.NoError(t, err)

		assert.Equal(t, firstSnapshots, secondSnapshots)
	}
}
