package pgcatalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register the postgres dialect
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/freightforge/supplychain-simdata-go/simdata"
	"github.com/freightforge/supplychain-simdata-go/simdata/pgcatalog/internal/adapters"
)

const (
	defaultTableName = "daily_documents"

	colDataset      = "dataset"
	colDocDate      = "doc_date"
	colDocName      = "doc_name"
	colTotalRecords = "total_records"
	colPayload      = "payload"
	colWrittenAt    = "written_at"

	logMsgBuildUpsertQueryFailed = "failed to build document upsert query"
	logMsgBuildSelectQueryFailed = "failed to build document select query"
	logMsgBuildListQueryFailed   = "failed to build date list query"
	logMsgDBExecFailed           = "database execution failed during document write"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgUnexpectedRowsAffected = "document upsert affected unexpected row count"
	logMsgDocumentWritten        = "document written"
	logMsgDocumentRead           = "document read"
	logMsgDatesListed            = "partition dates listed"
	logMsgSQLExecuted            = "executed sql for: "

	logAttrDataset      = "dataset"
	logAttrDate         = "date"
	logAttrQuery        = "query"
	logAttrRecordCount  = "record_count"
	logAttrDateCount    = "date_count"
	logAttrRowsAffected = "rows_affected"
	logAttrDurationMS   = "duration_ms"
	logAttrError        = "error"

	metricWriteDuration  = "pgcatalog_write_duration"
	metricReadDuration   = "pgcatalog_read_duration"
	metricListDuration   = "pgcatalog_list_duration"
	metricDatabaseErrors = "pgcatalog_database_errors"

	labelDataset   = "dataset"
	labelOperation = "operation"

	operationWrite = "write"
	operationRead  = "read"
	operationList  = "list"

	dialectPostgres = "postgres"
	castDate        = "?::date"
	castJsonb       = "?::jsonb"
	conflictTarget  = "dataset, doc_date"
	dateToChar      = "to_char(doc_date, 'YYYY-MM-DD')"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// Interface implementation checks.
var (
	_ simdata.PartitionStore   = Store{}
	_ simdata.DocumentReader   = Store{}
	_ simdata.PartitionCatalog = Store{}
)

// Store reads and writes daily documents in one PostgreSQL table. It
// leverages a database adapter, so applications can supply whichever
// supported connection type they already use.
type Store struct {
	db               adapters.DBAdapter
	tableName        string
	logger           simdata.Logger
	metricsCollector simdata.MetricsCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx pool with optional
// configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, simdata.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolWithReplica creates a new Store that writes to the
// primary pool and reads from the replica pool.
func NewStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil || replica == nil {
		return Store{}, simdata.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional
// configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, simdata.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional
// configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, simdata.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	store := Store{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&store); err != nil {
			return Store{}, err
		}
	}

	return store, nil
}

// WriteDailyBatch upserts the batch as one row per dataset. Each row
// replaces any previous document for the same dataset and date.
func (s Store) WriteDailyBatch(ctx context.Context, batch simdata.DailyBatch) error {
	documents, err := batch.BuildDocuments()
	if err != nil {
		return errors.Join(simdata.ErrIOFailure, err)
	}

	for _, document := range documents {
		if err := s.writeDocument(ctx, document.Dataset, batch.Date, document.Document); err != nil {
			return err
		}
	}

	return nil
}

// ReadDailyDocument loads the document envelope for the dataset and date.
// A missing row is reported with simdata.ErrNotFound.
func (s Store) ReadDailyDocument(
	ctx context.Context,
	dataset simdata.DatasetKind,
	date time.Time,
) (simdata.DailyDocument, error) {
	start := time.Now()

	sqlQuery, err := s.buildSelectDocumentQuery(dataset, date)
	if err != nil {
		return simdata.DailyDocument{}, err
	}

	rows, err := s.executeQuery(ctx, dataset, operationRead, sqlQuery)
	if err != nil {
		return simdata.DailyDocument{}, err
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return simdata.DailyDocument{}, fmt.Errorf("%w: no %s document for %s",
			simdata.ErrNotFound, dataset, date.Format(simdata.DateLayout))
	}

	var payload []byte
	if err := rows.Scan(&payload); err != nil {
		s.recordError(dataset, operationRead)
		s.logError(logMsgScanRowFailed, err, logAttrDataset, dataset.String())

		return simdata.DailyDocument{}, errors.Join(simdata.ErrIOFailure, err)
	}

	var document simdata.DailyDocument
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &document); err != nil {
		s.recordError(dataset, operationRead)
		s.logError(logMsgScanRowFailed, err, logAttrDataset, dataset.String())

		return simdata.DailyDocument{}, errors.Join(simdata.ErrIOFailure, err)
	}

	duration := time.Since(start)
	s.recordDuration(metricReadDuration, dataset, duration)
	s.logDebug(logMsgDocumentRead,
		logAttrDataset, dataset.String(),
		logAttrDate, date.Format(simdata.DateLayout),
		logAttrRecordCount, document.TotalRecords,
		logAttrDurationMS, toMilliseconds(duration))

	return document, nil
}

// ListPartitionDates returns every date with a document for the dataset in
// ascending order. A dataset with no rows yields an empty, non-nil slice.
func (s Store) ListPartitionDates(
	ctx context.Context,
	dataset simdata.DatasetKind,
) ([]simdata.ISODateString, error) {
	start := time.Now()

	sqlQuery, err := s.buildListDatesQuery(dataset)
	if err != nil {
		return nil, err
	}

	rows, err := s.executeQuery(ctx, dataset, operationList, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	dates := make([]simdata.ISODateString, 0)

	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			s.recordError(dataset, operationList)
			s.logError(logMsgScanRowFailed, err, logAttrDataset, dataset.String())

			return nil, errors.Join(simdata.ErrIOFailure, err)
		}

		dates = append(dates, date)
	}

	duration := time.Since(start)
	s.recordDuration(metricListDuration, dataset, duration)
	s.logDebug(logMsgDatesListed,
		logAttrDataset, dataset.String(),
		logAttrDateCount, len(dates),
		logAttrDurationMS, toMilliseconds(duration))

	return dates, nil
}

// writeDocument upserts one document row and validates the outcome.
func (s Store) writeDocument(
	ctx context.Context,
	dataset simdata.DatasetKind,
	date time.Time,
	document simdata.DailyDocument,
) error {
	start := time.Now()

	sqlQuery, err := s.buildUpsertQuery(dataset, date, document)
	if err != nil {
		return err
	}

	rowsAffected, err := s.executeStatement(ctx, dataset, sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected != 1 {
		s.recordError(dataset, operationWrite)

		err := fmt.Errorf("%w: document upsert affected %d rows instead of 1",
			simdata.ErrIOFailure, rowsAffected)
		s.logError(logMsgUnexpectedRowsAffected, err,
			logAttrDataset, dataset.String(),
			logAttrRowsAffected, rowsAffected)

		return err
	}

	duration := time.Since(start)
	s.recordDuration(metricWriteDuration, dataset, duration)
	s.logDebug(logMsgDocumentWritten,
		logAttrDataset, dataset.String(),
		logAttrDate, date.Format(simdata.DateLayout),
		logAttrRecordCount, document.TotalRecords,
		logAttrDurationMS, toMilliseconds(duration))

	return nil
}

func (s Store) buildUpsertQuery(
	dataset simdata.DatasetKind,
	date time.Time,
	document simdata.DailyDocument,
) (sqlQueryString, error) {
	payload, err := jsoniter.ConfigFastest.Marshal(document)
	if err != nil {
		return "", errors.Join(simdata.ErrIOFailure, err)
	}

	row := goqu.Record{
		colDataset:      dataset.String(),
		colDocDate:      goqu.L(castDate, document.Date),
		colDocName:      dataset.DocumentName(date),
		colTotalRecords: document.TotalRecords,
		colPayload:      goqu.L(castJsonb, string(payload)),
	}

	update := goqu.Record{
		colDocName:      dataset.DocumentName(date),
		colTotalRecords: document.TotalRecords,
		colPayload:      goqu.L(castJsonb, string(payload)),
		colWrittenAt:    goqu.L("now()"),
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tableName).
		Rows(row).
		OnConflict(goqu.DoUpdate(conflictTarget, update))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildUpsertQueryFailed, toSQLErr, logAttrDataset, dataset.String())

		return "", errors.Join(simdata.ErrIOFailure, toSQLErr)
	}

	return sqlQuery, nil
}

func (s Store) buildSelectDocumentQuery(
	dataset simdata.DatasetKind,
	date time.Time,
) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colPayload).
		Where(
			goqu.C(colDataset).Eq(dataset.String()),
			goqu.C(colDocDate).Eq(goqu.L(castDate, date.Format(simdata.DateLayout))),
		)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildSelectQueryFailed, toSQLErr, logAttrDataset, dataset.String())

		return "", errors.Join(simdata.ErrIOFailure, toSQLErr)
	}

	return sqlQuery, nil
}

func (s Store) buildListDatesQuery(dataset simdata.DatasetKind) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(goqu.L(dateToChar)).
		Where(goqu.C(colDataset).Eq(dataset.String())).
		Order(goqu.I(colDocDate).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildListQueryFailed, toSQLErr, logAttrDataset, dataset.String())

		return "", errors.Join(simdata.ErrIOFailure, toSQLErr)
	}

	return sqlQuery, nil
}

// executeQuery runs a select statement with timing and debug logging.
func (s Store) executeQuery(
	ctx context.Context,
	dataset simdata.DatasetKind,
	operation string,
	sqlQuery sqlQueryString,
) (adapters.DBRows, error) {
	start := time.Now()

	rows, err := s.db.Query(ctx, sqlQuery)
	if err != nil {
		s.recordError(dataset, operation)
		s.logError(logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)

		return nil, errors.Join(simdata.ErrIOFailure, err)
	}

	s.logQueryWithDuration(sqlQuery, operation, time.Since(start))

	return rows, nil
}

// executeStatement runs a mutating statement and returns the affected row
// count.
func (s Store) executeStatement(
	ctx context.Context,
	dataset simdata.DatasetKind,
	sqlQuery sqlQueryString,
) (rowsAffectedInt64, error) {
	start := time.Now()

	result, err := s.db.Exec(ctx, sqlQuery)
	if err != nil {
		s.recordError(dataset, operationWrite)
		s.logError(logMsgDBExecFailed, err, logAttrQuery, sqlQuery)

		return 0, errors.Join(simdata.ErrIOFailure, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.recordError(dataset, operationWrite)
		s.logError(logMsgRowsAffectedFailed, err)

		return 0, errors.Join(simdata.ErrIOFailure, err)
	}

	s.logQueryWithDuration(sqlQuery, operationWrite, time.Since(start))

	return rowsAffected, nil
}

// closeRows closes the rows iterator and logs a warning on failure.
func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug
// level if the logger is configured.
func (s Store) logQueryWithDuration(sqlQuery sqlQueryString, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action,
			logAttrDurationMS, toMilliseconds(duration),
			logAttrQuery, sqlQuery)
	}
}

// logDebug logs at debug level if the logger is configured.
func (s Store) logDebug(message string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(message, args...)
	}
}

// logError logs error information at error level if the logger is
// configured.
func (s Store) logError(message string, err error, args ...any) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Error(message, allArgs...)
	}
}

// recordDuration records an operation duration if the collector is
// configured.
func (s Store) recordDuration(metric string, dataset simdata.DatasetKind, duration time.Duration) {
	if s.metricsCollector != nil {
		s.metricsCollector.RecordDuration(metric, duration,
			map[string]string{labelDataset: dataset.String()})
	}
}

// recordError counts a database error if the collector is configured.
func (s Store) recordError(dataset simdata.DatasetKind, operation string) {
	if s.metricsCollector != nil {
		s.metricsCollector.IncrementCounter(metricDatabaseErrors, map[string]string{
			labelDataset:   dataset.String(),
			labelOperation: operation,
		})
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3
// decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
