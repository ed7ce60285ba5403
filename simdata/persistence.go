package simdata

import (
	"context"
	"time"
)

// PartitionStore persists one day of generated data. Writing the same
// dataset and date twice replaces the previous document, re-running a day
// is always safe.
type PartitionStore interface {
	// WriteDailyBatch persists the batch as one document per dataset.
	// Each document becomes visible atomically, readers never observe a
	// partially written document. Failures are reported joined with
	// ErrIOFailure.
	WriteDailyBatch(ctx context.Context, batch DailyBatch) error
}

// DocumentReader loads one persisted document.
type DocumentReader interface {
	// ReadDailyDocument returns the document for the dataset and date.
	// A missing document is reported with ErrNotFound, read failures are
	// reported joined with ErrIOFailure.
	ReadDailyDocument(ctx context.Context, dataset DatasetKind, date time.Time) (DailyDocument, error)
}

// PartitionCatalog enumerates which dates hold persisted documents.
type PartitionCatalog interface {
	// ListPartitionDates returns every date with a document for the
	// dataset, in ascending order. A dataset with no documents yields an
	// empty, non-nil slice.
	ListPartitionDates(ctx context.Context, dataset DatasetKind) ([]ISODateString, error)
}
