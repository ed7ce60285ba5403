package simdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidDocumentJSON is returned when a document payload is malformed or invalid.
	ErrInvalidDocumentJSON = errors.New("document json is not valid")

	// ErrEmptyDocumentDate is returned when a document carries no date.
	ErrEmptyDocumentDate = errors.New("document date must not be empty")

	// ErrNegativeRecordCount is returned when a document carries a negative record count.
	ErrNegativeRecordCount = errors.New("document record count must not be negative")
)

// DailyBatch is everything the simulation produced for one calendar day:
// one record set per dataset, all sharing the same date.
type DailyBatch struct {
	Date           time.Time
	Shipments      ShipmentRecords
	PurchaseOrders PurchaseOrderRecords
	Inventory      InventorySnapshotRecords
}

// DailyDocument is the persisted envelope for one dataset on one date.
// Data holds the serialized record array untouched, so documents can be
// served without re-encoding.
type DailyDocument struct {
	Date         ISODateString   `json:"date"`
	TotalRecords int             `json:"total_records"`
	Data         json.RawMessage `json:"data"`
}

// Validate ensures the document envelope is sound for storage operations.
func (d DailyDocument) Validate() error {
	if d.Date == "" {
		return ErrEmptyDocumentDate
	}

	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return errors.Join(ErrInvalidDateFormat, err)
	}

	if d.TotalRecords < 0 {
		return ErrNegativeRecordCount
	}

	if !jsoniter.ConfigFastest.Valid(d.Data) {
		return ErrInvalidDocumentJSON
	}

	return nil
}

// DatasetDocument pairs a document envelope with the dataset it belongs
// to, ready for a PartitionStore to persist.
type DatasetDocument struct {
	Dataset  DatasetKind
	Document DailyDocument
}

// BuildDailyDocument serializes one record set into its storage envelope.
func BuildDailyDocument(date time.Time, totalRecords int, records any) (DailyDocument, error) {
	data, err := jsoniter.ConfigFastest.Marshal(records)
	if err != nil {
		return DailyDocument{}, errors.Join(ErrInvalidDocumentJSON, err)
	}

	document := DailyDocument{
		Date:         date.Format(DateLayout),
		TotalRecords: totalRecords,
		Data:         data,
	}

	if err := document.Validate(); err != nil {
		return DailyDocument{}, err
	}

	return document, nil
}

// BuildDocuments serializes the batch into one document per dataset, in
// canonical persistence order. Nil record sets serialize as empty arrays,
// a document's data field is never JSON null.
func (b DailyBatch) BuildDocuments() ([]DatasetDocument, error) {
	if b.Shipments == nil {
		b.Shipments = ShipmentRecords{}
	}

	if b.PurchaseOrders == nil {
		b.PurchaseOrders = PurchaseOrderRecords{}
	}

	if b.Inventory == nil {
		b.Inventory = InventorySnapshotRecords{}
	}

	shipments, err := BuildDailyDocument(b.Date, len(b.Shipments), b.Shipments)
	if err != nil {
		return nil, fmt.Errorf("building %s document: %w", DatasetShipments, err)
	}

	purchaseOrders, err := BuildDailyDocument(b.Date, len(b.PurchaseOrders), b.PurchaseOrders)
	if err != nil {
		return nil, fmt.Errorf("building %s document: %w", DatasetPurchaseOrders, err)
	}

	inventory, err := BuildDailyDocument(b.Date, len(b.Inventory), b.Inventory)
	if err != nil {
		return nil, fmt.Errorf("building %s document: %w", DatasetInventory, err)
	}

	return []DatasetDocument{
		{Dataset: DatasetShipments, Document: shipments},
		{Dataset: DatasetPurchaseOrders, Document: purchaseOrders},
		{Dataset: DatasetInventory, Document: inventory},
	}, nil
}

// RecordCount returns the total number of records in the batch across all
// three datasets.
func (b DailyBatch) RecordCount() int {
	return len(b.Shipments) + len(b.PurchaseOrders) + len(b.Inventory)
}
