package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

// ServiceName identifies this API in health responses.
const ServiceName = "Supply Chain Transactional Data API"

const (
	logMsgDocumentServed  = "document served"
	logMsgDatesServed     = "available dates served"
	logMsgRequestRejected = "request rejected"

	logAttrDataset     = "dataset"
	logAttrDate        = "date"
	logAttrRecordCount = "record_count"
	logAttrDateCount   = "date_count"
	logAttrFiltered    = "filtered"
	logAttrDurationMS  = "duration_ms"
	logAttrError       = "error"

	metricRequestDuration = "retrieval_request_duration"
	metricRequestErrors   = "retrieval_request_errors"

	labelDataset   = "dataset"
	labelOperation = "operation"

	operationGetDocument = "get_document"
	operationListDates   = "list_dates"

	healthStatusHealthy = "healthy"
)

// Clock supplies the current time, injectable for deterministic tests.
type Clock func() time.Time

// Service answers read requests against the persisted documents. It is
// storage-agnostic, any DocumentReader and PartitionCatalog pair works.
type Service struct {
	reader           simdata.DocumentReader
	catalog          simdata.PartitionCatalog
	clock            Clock
	logger           simdata.Logger
	metricsCollector simdata.MetricsCollector
}

// ServiceOption defines a functional option for configuring a Service.
type ServiceOption func(*Service) error

// WithClock sets the clock used to default the requested date and to
// stamp health responses.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) error {
		if clock == nil {
			return fmt.Errorf("%w: nil clock supplied", simdata.ErrInvalidConfiguration)
		}

		s.clock = clock

		return nil
	}
}

// WithLogger sets the logger for the Service.
func WithLogger(logger simdata.Logger) ServiceOption {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Service.
func WithMetrics(collector simdata.MetricsCollector) ServiceOption {
	return func(s *Service) error {
		s.metricsCollector = collector
		return nil
	}
}

// BuildService creates a Service reading documents and partition dates
// from the given backends. Both stores of this module implement both
// interfaces, so the same value is typically passed twice.
func BuildService(
	reader simdata.DocumentReader,
	catalog simdata.PartitionCatalog,
	options ...ServiceOption,
) (*Service, error) {
	if reader == nil {
		return nil, simdata.ErrNilDocumentReader
	}

	if catalog == nil {
		return nil, simdata.ErrNilPartitionCatalog
	}

	service := &Service{
		reader:  reader,
		catalog: catalog,
		clock:   time.Now,
	}

	for _, option := range options {
		if err := option(service); err != nil {
			return nil, err
		}
	}

	return service, nil
}

// AppliedFilters echoes which inventory criteria a response was narrowed
// by. Unset criteria serialize as JSON null.
type AppliedFilters struct {
	WarehouseID *string `json:"warehouse_id"`
	ProductID   *string `json:"product_id"`
}

// DocumentResult is one served document, possibly narrowed by an
// inventory filter. FiltersApplied is nil unless the request carried
// criteria.
type DocumentResult struct {
	Dataset        simdata.DatasetKind
	Date           simdata.ISODateString
	TotalRecords   int
	Data           json.RawMessage
	FiltersApplied *AppliedFilters
}

// DatesResult enumerates which dates hold documents for one dataset.
// FirstDate and LastDate are nil when the dataset has no documents yet.
type DatesResult struct {
	Dataset        simdata.DatasetKind
	AvailableDates []simdata.ISODateString
	Total          int
	FirstDate      *simdata.ISODateString
	LastDate       *simdata.ISODateString
}

// HealthStatus reports service liveness.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// GetDailyDocument serves the document for a dataset and date.
//
// An empty rawDate defaults to yesterday relative to the service clock. A
// date that does not parse is rejected with simdata.ErrInvalidDateFormat,
// an unknown dataset with simdata.ErrInvalidArgument, and a date without a
// document with simdata.ErrNotFound.
//
// Filters apply to the inventory dataset only, passing a non-empty filter
// for another dataset is rejected with simdata.ErrInvalidArgument.
func (s *Service) GetDailyDocument(
	ctx context.Context,
	dataset string,
	rawDate string,
	filter Filter,
) (DocumentResult, error) {
	start := time.Now()

	kind, err := simdata.BuildDatasetKind(dataset)
	if err != nil {
		s.rejectRequest(operationGetDocument, dataset, err)
		return DocumentResult{}, err
	}

	if !filter.IsEmpty() && kind != simdata.DatasetInventory {
		err := fmt.Errorf("%w: filters are only supported for the %s dataset",
			simdata.ErrInvalidArgument, simdata.DatasetInventory)
		s.rejectRequest(operationGetDocument, dataset, err)

		return DocumentResult{}, err
	}

	date, err := s.resolveDate(rawDate)
	if err != nil {
		s.rejectRequest(operationGetDocument, dataset, err)
		return DocumentResult{}, err
	}

	document, err := s.reader.ReadDailyDocument(ctx, kind, date)
	if err != nil {
		s.rejectRequest(operationGetDocument, dataset, err)
		return DocumentResult{}, err
	}

	result := DocumentResult{
		Dataset:      kind,
		Date:         date.Format(simdata.DateLayout),
		TotalRecords: document.TotalRecords,
		Data:         document.Data,
	}

	if kind == simdata.DatasetInventory && !filter.IsEmpty() {
		result, err = s.applyInventoryFilter(result, document, filter)
		if err != nil {
			s.rejectRequest(operationGetDocument, dataset, err)
			return DocumentResult{}, err
		}
	}

	duration := time.Since(start)
	s.recordDuration(operationGetDocument, kind, duration)
	s.logDebug(logMsgDocumentServed,
		logAttrDataset, kind.String(),
		logAttrDate, result.Date,
		logAttrRecordCount, result.TotalRecords,
		logAttrFiltered, result.FiltersApplied != nil,
		logAttrDurationMS, toMilliseconds(duration))

	return result, nil
}

// ListAvailableDates serves every date with a document for the dataset,
// in ascending order. A dataset with no documents yields an empty result
// rather than an error.
func (s *Service) ListAvailableDates(ctx context.Context, dataset string) (DatesResult, error) {
	start := time.Now()

	kind, err := simdata.BuildDatasetKind(dataset)
	if err != nil {
		s.rejectRequest(operationListDates, dataset, err)
		return DatesResult{}, err
	}

	dates, err := s.catalog.ListPartitionDates(ctx, kind)
	if err != nil {
		s.rejectRequest(operationListDates, dataset, err)
		return DatesResult{}, err
	}

	if dates == nil {
		dates = make([]simdata.ISODateString, 0)
	}

	result := DatesResult{
		Dataset:        kind,
		AvailableDates: dates,
		Total:          len(dates),
	}

	if len(dates) > 0 {
		first := dates[0]
		last := dates[len(dates)-1]
		result.FirstDate = &first
		result.LastDate = &last
	}

	duration := time.Since(start)
	s.recordDuration(operationListDates, kind, duration)
	s.logDebug(logMsgDatesServed,
		logAttrDataset, kind.String(),
		logAttrDateCount, result.Total,
		logAttrDurationMS, toMilliseconds(duration))

	return result, nil
}

// Health reports liveness with the current service clock reading.
func (s *Service) Health() HealthStatus {
	return HealthStatus{
		Status:    healthStatusHealthy,
		Timestamp: s.clock().UTC().Format(time.RFC3339),
		Service:   ServiceName,
	}
}

// resolveDate parses the requested date or defaults to yesterday.
func (s *Service) resolveDate(rawDate string) (time.Time, error) {
	if rawDate == "" {
		return simdata.ToDateOnly(s.clock().AddDate(0, 0, -1)), nil
	}

	date, err := time.Parse(simdata.DateLayout, rawDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: got %q", simdata.ErrInvalidDateFormat, rawDate)
	}

	return date, nil
}

// applyInventoryFilter narrows the document's records and recomputes the
// served count. The criteria are echoed so clients can see what narrowed
// the data.
func (s *Service) applyInventoryFilter(
	result DocumentResult,
	document simdata.DailyDocument,
	filter Filter,
) (DocumentResult, error) {
	var records simdata.InventorySnapshotRecords
	if err := jsoniter.ConfigFastest.Unmarshal(document.Data, &records); err != nil {
		return DocumentResult{}, errors.Join(simdata.ErrIOFailure, err)
	}

	filtered := make(simdata.InventorySnapshotRecords, 0, len(records))
	for _, record := range records {
		if filter.Matches(record) {
			filtered = append(filtered, record)
		}
	}

	data, err := jsoniter.ConfigFastest.Marshal(filtered)
	if err != nil {
		return DocumentResult{}, errors.Join(simdata.ErrIOFailure, err)
	}

	result.TotalRecords = len(filtered)
	result.Data = data
	result.FiltersApplied = buildAppliedFilters(filter)

	return result, nil
}

// buildAppliedFilters converts set criteria to their response echo.
func buildAppliedFilters(filter Filter) *AppliedFilters {
	if filter.IsEmpty() {
		return nil
	}

	applied := &AppliedFilters{}

	if warehouseID := filter.WarehouseID(); warehouseID != "" {
		applied.WarehouseID = &warehouseID
	}

	if productID := filter.ProductID(); productID != "" {
		applied.ProductID = &productID
	}

	return applied
}

// rejectRequest logs and counts a failed request if observability is
// configured.
func (s *Service) rejectRequest(operation string, dataset string, err error) {
	if s.logger != nil {
		s.logger.Debug(logMsgRequestRejected,
			labelOperation, operation,
			logAttrDataset, dataset,
			logAttrError, err.Error())
	}

	if s.metricsCollector != nil {
		s.metricsCollector.IncrementCounter(metricRequestErrors, map[string]string{
			labelOperation: operation,
			labelDataset:   dataset,
		})
	}
}

// recordDuration records a request duration if the collector is
// configured.
func (s *Service) recordDuration(operation string, dataset simdata.DatasetKind, duration time.Duration) {
	if s.metricsCollector != nil {
		s.metricsCollector.RecordDuration(metricRequestDuration, duration, map[string]string{
			labelOperation: operation,
			labelDataset:   dataset.String(),
		})
	}
}

// logDebug logs at debug level if the logger is configured.
func (s *Service) logDebug(message string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(message, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3
// decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
