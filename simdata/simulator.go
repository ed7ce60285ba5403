package simdata

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	logMsgRunStarted        = "simulation run started"
	logMsgRunCompleted      = "simulation run completed"
	logMsgRunCanceled       = "simulation run canceled"
	logMsgDailyBatchWritten = "daily batch written"
	logMsgWriteBatchFailed  = "failed to write daily batch"
	logMsgProgress          = "simulation progress"

	logAttrRunID            = "run_id"
	logAttrStartDate        = "start_date"
	logAttrEndDate          = "end_date"
	logAttrDate             = "date"
	logAttrSeed             = "seed"
	logAttrProducts         = "products"
	logAttrWarehouses       = "warehouses"
	logAttrSuppliers        = "suppliers"
	logAttrDays             = "days"
	logAttrShipments        = "shipments"
	logAttrPurchaseOrders   = "purchase_orders"
	logAttrInventoryRecords = "inventory_records"
	logAttrDurationMS       = "duration_ms"
	logAttrError            = "error"

	metricDayDuration      = "simulation_day_duration"
	metricRunDuration      = "simulation_run_duration"
	metricRecordsGenerated = "simulation_records_generated"
	metricWriteFailures    = "simulation_write_failures"

	labelDataset = "dataset"
	labelStatus  = "status"

	statusSuccess = "success"
	statusError   = "error"

	progressLogEveryDays = 30
)

// Simulator drives a complete run: it owns the identifier universe, the
// seeded random source, the identifier sequences, and the inventory state,
// and walks the configured date range one day at a time. Each day's output
// goes to the partition store before the next day starts.
//
// A Simulator is single-use, build a fresh one for every run.
type Simulator struct {
	config           RunConfig
	store            PartitionStore
	universe         IdentifierUniverse
	rng              *RandomSource
	sequences        *SequenceSet
	state            *InventoryStateStore
	shipments        *ShipmentGenerator
	purchaseOrders   *PurchaseOrderGenerator
	inventory        *InventorySnapshotGenerator
	referenceClock   time.Time
	runID            uuid.UUID
	logger           Logger
	metricsCollector MetricsCollector
}

// RunTotals summarizes what a run produced.
type RunTotals struct {
	Days             int
	Shipments        int
	PurchaseOrders   int
	InventoryRecords int
}

// BuildSimulator creates a Simulator for one run. The configuration is
// validated, the identifier universe is built, and the inventory state is
// initialized from the seed, so two simulators built from the same
// configuration start from identical state.
func BuildSimulator(config RunConfig, store PartitionStore, options ...SimulatorOption) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if store == nil {
		return nil, ErrNilPartitionStore
	}

	simulator := &Simulator{
		config:         config,
		store:          store,
		referenceClock: time.Now().UTC(),
		runID:          uuid.New(),
	}

	for _, option := range options {
		if err := option(simulator); err != nil {
			return nil, err
		}
	}

	universe, err := BuildIdentifierUniverse(config.NumProducts, config.NumWarehouses, config.NumSuppliers)
	if err != nil {
		return nil, err
	}

	rng := NewRandomSource(config.Seed)

	state, err := BuildInventoryStateStore(universe, rng)
	if err != nil {
		return nil, err
	}

	sequences := NewSequenceSet()

	simulator.universe = universe
	simulator.rng = rng
	simulator.sequences = sequences
	simulator.state = state
	simulator.shipments = NewShipmentGenerator(universe, rng, sequences, simulator.referenceClock)
	simulator.purchaseOrders = NewPurchaseOrderGenerator(universe, rng, sequences)
	simulator.inventory = NewInventorySnapshotGenerator(state, rng)

	return simulator, nil
}

// RunID returns the identifier assigned to this run.
func (s *Simulator) RunID() uuid.UUID {
	return s.runID
}

// Universe returns the identifier universe built for this run.
func (s *Simulator) Universe() IdentifierUniverse {
	return s.universe
}

// Run walks the configured date range and persists one DailyBatch per day.
// The context is checked between days, cancellation stops the run before
// the next day is generated and returns the totals accumulated so far.
//
// A write failure aborts the run immediately. The failed day was not
// published, so re-running from that date is safe.
func (s *Simulator) Run(ctx context.Context) (RunTotals, error) {
	start := ToDateOnly(s.config.StartDate)
	end := ToDateOnly(s.config.EndDate)
	runStartedAt := time.Now()

	s.logInfo(logMsgRunStarted,
		logAttrRunID, s.runID.String(),
		logAttrStartDate, start.Format(DateLayout),
		logAttrEndDate, end.Format(DateLayout),
		logAttrProducts, s.universe.ProductCount(),
		logAttrWarehouses, s.universe.WarehouseCount(),
		logAttrSuppliers, s.universe.SupplierCount(),
		logAttrSeed, s.config.Seed)

	var totals RunTotals

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		select {
		case <-ctx.Done():
			s.logInfo(logMsgRunCanceled,
				logAttrRunID, s.runID.String(),
				logAttrDays, totals.Days)

			return totals, fmt.Errorf("simulation run canceled after %d days: %w", totals.Days, ctx.Err())
		default:
		}

		if err := s.runDay(ctx, day, &totals); err != nil {
			return totals, err
		}

		if totals.Days%progressLogEveryDays == 0 {
			s.logInfo(logMsgProgress,
				logAttrRunID, s.runID.String(),
				logAttrDays, totals.Days,
				logAttrDate, day.Format(DateLayout))
		}
	}

	s.recordRunMetrics(time.Since(runStartedAt), totals)
	s.logInfo(logMsgRunCompleted,
		logAttrRunID, s.runID.String(),
		logAttrDays, totals.Days,
		logAttrShipments, totals.Shipments,
		logAttrPurchaseOrders, totals.PurchaseOrders,
		logAttrInventoryRecords, totals.InventoryRecords,
		logAttrDurationMS, toMilliseconds(time.Since(runStartedAt)))

	return totals, nil
}

// runDay generates and persists one day.
func (s *Simulator) runDay(ctx context.Context, day time.Time, totals *RunTotals) error {
	dayStartedAt := time.Now()

	shipments := s.shipments.Generate(day)
	purchaseOrders := s.purchaseOrders.Generate(day)

	inventory, err := s.inventory.Generate(day)
	if err != nil {
		return fmt.Errorf("advancing inventory for %s: %w", day.Format(DateLayout), err)
	}

	batch := DailyBatch{
		Date:           day,
		Shipments:      shipments,
		PurchaseOrders: purchaseOrders,
		Inventory:      inventory,
	}

	if err := s.store.WriteDailyBatch(ctx, batch); err != nil {
		s.recordWriteFailure(day)
		s.logError(logMsgWriteBatchFailed, err,
			logAttrRunID, s.runID.String(),
			logAttrDate, day.Format(DateLayout))

		return fmt.Errorf("writing daily batch for %s: %w", day.Format(DateLayout), err)
	}

	totals.Days++
	totals.Shipments += len(shipments)
	totals.PurchaseOrders += len(purchaseOrders)
	totals.InventoryRecords += len(inventory)

	s.recordDayMetrics(time.Since(dayStartedAt), batch)
	s.logDebug(logMsgDailyBatchWritten,
		logAttrRunID, s.runID.String(),
		logAttrDate, day.Format(DateLayout),
		logAttrShipments, len(shipments),
		logAttrPurchaseOrders, len(purchaseOrders),
		logAttrInventoryRecords, len(inventory),
		logAttrDurationMS, toMilliseconds(time.Since(dayStartedAt)))

	return nil
}

// logDebug logs at debug level if the logger is configured.
func (s *Simulator) logDebug(message string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(message, args...)
	}
}

// logInfo logs at info level if the logger is configured.
func (s *Simulator) logInfo(message string, args ...any) {
	if s.logger != nil {
		s.logger.Info(message, args...)
	}
}

// logError logs at error level if the logger is configured.
func (s *Simulator) logError(message string, err error, args ...any) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Error(message, allArgs...)
	}
}

// recordDayMetrics records per-day metrics if the collector is configured.
func (s *Simulator) recordDayMetrics(duration time.Duration, batch DailyBatch) {
	if s.metricsCollector == nil {
		return
	}

	s.metricsCollector.RecordDuration(metricDayDuration, duration,
		map[string]string{labelStatus: statusSuccess})

	s.metricsCollector.RecordValue(metricRecordsGenerated, float64(len(batch.Shipments)),
		map[string]string{labelDataset: DatasetShipments.String()})
	s.metricsCollector.RecordValue(metricRecordsGenerated, float64(len(batch.PurchaseOrders)),
		map[string]string{labelDataset: DatasetPurchaseOrders.String()})
	s.metricsCollector.RecordValue(metricRecordsGenerated, float64(len(batch.Inventory)),
		map[string]string{labelDataset: DatasetInventory.String()})
}

// recordRunMetrics records whole-run metrics if the collector is configured.
func (s *Simulator) recordRunMetrics(duration time.Duration, totals RunTotals) {
	if s.metricsCollector == nil {
		return
	}

	s.metricsCollector.RecordDuration(metricRunDuration, duration,
		map[string]string{labelStatus: statusSuccess})
	s.metricsCollector.RecordValue(metricRecordsGenerated+"_total",
		float64(totals.Shipments+totals.PurchaseOrders+totals.InventoryRecords), nil)
}

// recordWriteFailure counts a failed batch write if the collector is
// configured.
func (s *Simulator) recordWriteFailure(day time.Time) {
	if s.metricsCollector == nil {
		return
	}

	s.metricsCollector.IncrementCounter(metricWriteFailures, map[string]string{
		logAttrDate: day.Format(DateLayout),
		labelStatus: statusError,
	})
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3
// decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
