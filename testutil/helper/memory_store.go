package helper

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

// MemoryStore is an in-memory implementation of PartitionStore,
// DocumentReader and PartitionCatalog for testing, with optional write
// failure injection.
type MemoryStore struct {
	documents map[simdata.DatasetKind]map[simdata.ISODateString]simdata.DailyDocument
	writeErr  error
	failCount int
	writes    int
	mu        sync.Mutex
}

var (
	_ simdata.PartitionStore   = (*MemoryStore)(nil)
	_ simdata.DocumentReader   = (*MemoryStore)(nil)
	_ simdata.PartitionCatalog = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[simdata.DatasetKind]map[simdata.ISODateString]simdata.DailyDocument),
	}
}

// FailWritesWith makes every subsequent WriteDailyBatch call fail with
// the given error until ClearWriteFailure is called.
func (m *MemoryStore) FailWritesWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeErr = err
	m.failCount = -1
}

// FailNextWritesWith makes the next count WriteDailyBatch calls fail with
// the given error, then writes succeed again.
func (m *MemoryStore) FailNextWritesWith(count int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeErr = err
	m.failCount = count
}

// ClearWriteFailure removes any injected write failure.
func (m *MemoryStore) ClearWriteFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeErr = nil
	m.failCount = 0
}

// WriteDailyBatch implements the PartitionStore interface.
func (m *MemoryStore) WriteDailyBatch(_ context.Context, batch simdata.DailyBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++

	if m.writeErr != nil && m.failCount != 0 {
		err := m.writeErr
		if m.failCount > 0 {
			m.failCount--
			if m.failCount == 0 {
				m.writeErr = nil
			}
		}

		return err
	}

	documents, err := batch.BuildDocuments()
	if err != nil {
		return err
	}

	for _, doc := range documents {
		partition, ok := m.documents[doc.Dataset]
		if !ok {
			partition = make(map[simdata.ISODateString]simdata.DailyDocument)
			m.documents[doc.Dataset] = partition
		}

		partition[doc.Document.Date] = doc.Document
	}

	return nil
}

// ReadDailyDocument implements the DocumentReader interface.
func (m *MemoryStore) ReadDailyDocument(
	_ context.Context,
	dataset simdata.DatasetKind,
	date time.Time,
) (simdata.DailyDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	document, ok := m.documents[dataset][date.Format(simdata.DateLayout)]
	if !ok {
		return simdata.DailyDocument{}, simdata.ErrNotFound
	}

	return document, nil
}

// ListPartitionDates implements the PartitionCatalog interface.
func (m *MemoryStore) ListPartitionDates(
	_ context.Context,
	dataset simdata.DatasetKind,
) ([]simdata.ISODateString, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dates := make([]simdata.ISODateString, 0, len(m.documents[dataset]))
	for date := range m.documents[dataset] {
		dates = append(dates, date)
	}

	sort.Strings(dates)

	return dates, nil
}

// WriteCount returns how many WriteDailyBatch calls were made, including
// failed ones.
func (m *MemoryStore) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.writes
}

// DocumentCount returns how many documents the store holds across all
// datasets.
func (m *MemoryStore) DocumentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, partition := range m.documents {
		count += len(partition)
	}

	return count
}

// Document returns the stored document for the dataset and date, and
// whether it exists.
func (m *MemoryStore) Document(dataset simdata.DatasetKind, date simdata.ISODateString) (simdata.DailyDocument, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	document, ok := m.documents[dataset][date]

	return document, ok
}
