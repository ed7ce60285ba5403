package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

const (
	logMsgDocumentWritten    = "document written"
	logMsgDocumentRead       = "document read"
	logMsgWriteFailed        = "failed to write document"
	logMsgReadFailed         = "failed to read document"
	logMsgListFailed         = "failed to list partition dates"
	logMsgTempCleanupFailed  = "failed to remove temporary document file"
	logMsgSkippedForeignFile = "skipped foreign file in partition directory"

	logAttrDataset    = "dataset"
	logAttrDate       = "date"
	logAttrPath       = "path"
	logAttrBytes      = "bytes"
	logAttrDurationMS = "duration_ms"
	logAttrError      = "error"

	metricWriteDuration = "filestore_write_duration"
	metricReadDuration  = "filestore_read_duration"
	metricStorageErrors = "filestore_errors"

	labelDataset   = "dataset"
	labelOperation = "operation"

	operationWrite = "write"
	operationRead  = "read"
	operationList  = "list"

	partitionDirPerm = 0o755
	documentPerm     = 0o644

	jsonFileSuffix = ".json"
)

// Interface implementation checks.
var (
	_ simdata.PartitionStore   = Store{}
	_ simdata.DocumentReader   = Store{}
	_ simdata.PartitionCatalog = Store{}
)

// Store reads and writes daily documents below one root directory. The
// zero value is not usable, always construct with NewStore.
type Store struct {
	rootDir          string
	logger           simdata.Logger
	metricsCollector simdata.MetricsCollector
}

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store. Document reads and writes are
// logged at debug level with path and duration, failures at error level.
func WithLogger(logger simdata.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store. The collector
// receives read/write durations and storage error counts.
func WithMetrics(collector simdata.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// NewStore creates a Store rooted at the given directory. The directory
// does not need to exist yet, partition directories are created on first
// write.
func NewStore(rootDir string, options ...Option) (Store, error) {
	if strings.TrimSpace(rootDir) == "" {
		return Store{}, simdata.ErrEmptyRootDir
	}

	store := Store{rootDir: rootDir}

	for _, option := range options {
		if err := option(&store); err != nil {
			return Store{}, err
		}
	}

	return store, nil
}

// RootDir returns the root directory documents are stored below.
func (s Store) RootDir() string {
	return s.rootDir
}

// WriteDailyBatch persists the batch as one document file per dataset.
// Each file is written to a temporary name and published with an atomic
// rename, an existing document for the same dataset and date is replaced.
func (s Store) WriteDailyBatch(ctx context.Context, batch simdata.DailyBatch) error {
	documents, err := batch.BuildDocuments()
	if err != nil {
		return errors.Join(simdata.ErrIOFailure, err)
	}

	for _, document := range documents {
		if err := ctx.Err(); err != nil {
			return errors.Join(simdata.ErrIOFailure, err)
		}

		if err := s.writeDocument(document.Dataset, batch.Date, document.Document); err != nil {
			return err
		}
	}

	return nil
}

// ReadDailyDocument loads the document for the dataset and date. A missing
// document file is reported with simdata.ErrNotFound.
func (s Store) ReadDailyDocument(
	ctx context.Context,
	dataset simdata.DatasetKind,
	date time.Time,
) (simdata.DailyDocument, error) {
	if err := ctx.Err(); err != nil {
		return simdata.DailyDocument{}, errors.Join(simdata.ErrIOFailure, err)
	}

	start := time.Now()
	path := s.documentPath(dataset, date)

	data, err := os.ReadFile(path) //nolint:gosec // path is assembled from validated partition components
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return simdata.DailyDocument{}, fmt.Errorf("%w: no %s document for %s",
				simdata.ErrNotFound, dataset, date.Format(simdata.DateLayout))
		}

		s.recordError(dataset, operationRead)
		s.logError(logMsgReadFailed, err, logAttrPath, path)

		return simdata.DailyDocument{}, errors.Join(simdata.ErrIOFailure, err)
	}

	var document simdata.DailyDocument
	if err := jsoniter.ConfigFastest.Unmarshal(data, &document); err != nil {
		s.recordError(dataset, operationRead)
		s.logError(logMsgReadFailed, err, logAttrPath, path)

		return simdata.DailyDocument{}, errors.Join(simdata.ErrIOFailure, err)
	}

	s.recordDuration(metricReadDuration, dataset, time.Since(start))
	s.logDebug(logMsgDocumentRead,
		logAttrDataset, dataset.String(),
		logAttrDate, date.Format(simdata.DateLayout),
		logAttrPath, path,
		logAttrBytes, len(data),
		logAttrDurationMS, toMilliseconds(time.Since(start)))

	return document, nil
}

// ListPartitionDates walks the dataset's partition tree and returns every
// date that holds a document, in ascending order. A dataset directory that
// does not exist yet yields an empty slice.
func (s Store) ListPartitionDates(
	ctx context.Context,
	dataset simdata.DatasetKind,
) ([]simdata.ISODateString, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(simdata.ErrIOFailure, err)
	}

	dates := make([]simdata.ISODateString, 0)
	datasetDir := filepath.Join(s.rootDir, dataset.String())

	years, err := s.readPartitionDir(datasetDir, dataset)
	if err != nil {
		return nil, err
	}

	for _, year := range years {
		months, err := s.readPartitionDir(filepath.Join(datasetDir, year), dataset)
		if err != nil {
			return nil, err
		}

		for _, month := range months {
			days, err := s.readPartitionDir(filepath.Join(datasetDir, year, month), dataset)
			if err != nil {
				return nil, err
			}

			for _, day := range days {
				dayDir := filepath.Join(datasetDir, year, month, day)

				found, err := s.collectDocumentDates(dayDir, dataset)
				if err != nil {
					return nil, err
				}

				dates = append(dates, found...)
			}
		}
	}

	sort.Strings(dates)

	return dates, nil
}

// writeDocument serializes one envelope and publishes it atomically.
func (s Store) writeDocument(
	dataset simdata.DatasetKind,
	date time.Time,
	document simdata.DailyDocument,
) error {
	start := time.Now()
	partitionDir := s.partitionDir(dataset, date)
	path := filepath.Join(partitionDir, dataset.DocumentName(date))

	if err := os.MkdirAll(partitionDir, partitionDirPerm); err != nil {
		s.recordError(dataset, operationWrite)
		s.logError(logMsgWriteFailed, err, logAttrPath, path)

		return errors.Join(simdata.ErrIOFailure, err)
	}

	data, err := jsoniter.ConfigFastest.Marshal(document)
	if err != nil {
		return errors.Join(simdata.ErrIOFailure, err)
	}

	if err := s.publishAtomically(partitionDir, path, data); err != nil {
		s.recordError(dataset, operationWrite)
		s.logError(logMsgWriteFailed, err, logAttrPath, path)

		return errors.Join(simdata.ErrIOFailure, err)
	}

	s.recordDuration(metricWriteDuration, dataset, time.Since(start))
	s.logDebug(logMsgDocumentWritten,
		logAttrDataset, dataset.String(),
		logAttrDate, date.Format(simdata.DateLayout),
		logAttrPath, path,
		logAttrBytes, len(data),
		logAttrDurationMS, toMilliseconds(time.Since(start)))

	return nil
}

// publishAtomically writes data to a temporary file in the target
// directory, syncs it, and renames it onto the final path. The temporary
// file lives in the same directory so the rename never crosses a
// filesystem boundary.
func (s Store) publishAtomically(dir string, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	tmpPath := tmp.Name()

	cleanup := func() {
		if removeErr := os.Remove(tmpPath); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			s.logWarn(logMsgTempCleanupFailed, logAttrPath, tmpPath, logAttrError, removeErr.Error())
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()

		return err
	}

	if err := tmp.Close(); err != nil {
		cleanup()

		return err
	}

	if err := os.Chmod(tmpPath, documentPerm); err != nil {
		cleanup()

		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()

		return err
	}

	return nil
}

// readPartitionDir returns the entry names of one partition tree level.
// A missing directory is normal for datasets that have not been written
// yet and yields no entries.
func (s Store) readPartitionDir(dir string, dataset simdata.DatasetKind) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		s.recordError(dataset, operationList)
		s.logError(logMsgListFailed, err, logAttrPath, dir)

		return nil, errors.Join(simdata.ErrIOFailure, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// collectDocumentDates extracts the dates of well-formed document files in
// one day directory. Files that do not match the dataset's naming scheme
// are skipped.
func (s Store) collectDocumentDates(
	dayDir string,
	dataset simdata.DatasetKind,
) ([]simdata.ISODateString, error) {
	entries, err := os.ReadDir(dayDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		s.recordError(dataset, operationList)
		s.logError(logMsgListFailed, err, logAttrPath, dayDir)

		return nil, errors.Join(simdata.ErrIOFailure, err)
	}

	prefix := dataset.DocumentPrefix() + "_"
	dates := make([]simdata.ISODateString, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, jsonFileSuffix) {
			s.logDebug(logMsgSkippedForeignFile, logAttrPath, filepath.Join(dayDir, name))
			continue
		}

		date := strings.TrimSuffix(strings.TrimPrefix(name, prefix), jsonFileSuffix)
		if _, err := time.Parse(simdata.DateLayout, date); err != nil {
			s.logDebug(logMsgSkippedForeignFile, logAttrPath, filepath.Join(dayDir, name))
			continue
		}

		dates = append(dates, date)
	}

	return dates, nil
}

// partitionDir returns the directory one document lives in.
func (s Store) partitionDir(dataset simdata.DatasetKind, date time.Time) string {
	return filepath.Join(
		s.rootDir,
		dataset.String(),
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", int(date.Month())),
		fmt.Sprintf("%02d", date.Day()),
	)
}

// documentPath returns the full path of one document file.
func (s Store) documentPath(dataset simdata.DatasetKind, date time.Time) string {
	return filepath.Join(s.partitionDir(dataset, date), dataset.DocumentName(date))
}

// logDebug logs at debug level if the logger is configured.
func (s Store) logDebug(message string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(message, args...)
	}
}

// logWarn logs at warn level if the logger is configured.
func (s Store) logWarn(message string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs at error level if the logger is configured.
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

// recordError counts a storage error if the collector is configured.
func (s Store) recordError(dataset simdata.DatasetKind, operation string) {
	if s.metricsCollector != nil {
		s.metricsCollector.IncrementCounter(metricStorageErrors, map[string]string{
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
