package simdata

import (
	"errors"
	"time"
)

// DateLayout is the calendar date format used in document names, partition
// paths, record fields, and API query parameters.
const DateLayout = "2006-01-02"

// ISODateString is a type alias for string to make method signatures more
// expressive. It holds a calendar date in DateLayout (YYYY-MM-DD) form.
type ISODateString = string

// ErrInvalidConfiguration is returned when a run configuration or a storage
// configuration contains values the simulation cannot work with.
var ErrInvalidConfiguration = errors.New("invalid configuration supplied")

// ErrInvalidDateFormat is returned when a supplied date string does not
// parse as DateLayout (YYYY-MM-DD).
var ErrInvalidDateFormat = errors.New("date must use YYYY-MM-DD format")

// ErrInvalidArgument is returned when a request argument is outside the
// accepted domain, for example an unknown dataset name.
var ErrInvalidArgument = errors.New("invalid argument supplied")

// ErrNotFound is returned when no document exists for the requested dataset
// and date.
var ErrNotFound = errors.New("no document found for the requested date")

// ErrIOFailure is returned when reading or writing persisted documents
// fails for reasons other than absence, for example filesystem or database
// errors.
var ErrIOFailure = errors.New("document storage input/output failure")

// ErrDayAlreadyAdvanced is returned when the inventory state is asked to
// advance to a day it has already produced a snapshot for.
var ErrDayAlreadyAdvanced = errors.New("inventory state already advanced for this day")

// ErrNonConsecutiveDay is returned when the inventory state is asked to
// advance to a day that does not directly follow the last advanced day.
var ErrNonConsecutiveDay = errors.New("inventory state must advance one day at a time")

// ErrNilPartitionStore is returned when a nil PartitionStore is supplied to
// BuildSimulator.
var ErrNilPartitionStore = errors.New("nil partition store supplied")

// ErrNilDocumentReader is returned when a nil DocumentReader is supplied.
var ErrNilDocumentReader = errors.New("nil document reader supplied")

// ErrNilPartitionCatalog is returned when a nil PartitionCatalog is supplied.
var ErrNilPartitionCatalog = errors.New("nil partition catalog supplied")

// ErrNilDatabaseConnection is returned when a nil database connection
// (pool) is supplied to a storage backend constructor.
var ErrNilDatabaseConnection = errors.New("nil database connection supplied")

// ErrEmptyTableName is returned when an empty table name is supplied to a
// storage backend constructor.
var ErrEmptyTableName = errors.New("empty table name supplied")

// ErrEmptyRootDir is returned when an empty root directory is supplied to
// the filesystem storage backend constructor.
var ErrEmptyRootDir = errors.New("empty root directory supplied")

// ToDateOnly truncates a timestamp to midnight UTC so that values drawn
// from clocks and values parsed from date strings compare equal.
func ToDateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
