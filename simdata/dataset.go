package simdata

import (
	"fmt"
	"time"
)

// DatasetKind identifies one of the three transactional datasets the
// simulation produces.
type DatasetKind string

const (
	// DatasetShipments holds outbound shipment records.
	DatasetShipments DatasetKind = "shipments"

	// DatasetPurchaseOrders holds inbound purchase order records.
	DatasetPurchaseOrders DatasetKind = "purchase_orders"

	// DatasetInventory holds per-(warehouse, product) inventory snapshots.
	DatasetInventory DatasetKind = "inventory"
)

// documentPrefixPurchaseOrders is shorter than the dataset name for
// historical reasons, document names use "po" while partition directories
// use the full dataset name.
const (
	documentPrefixShipments      = "shipments"
	documentPrefixPurchaseOrders = "po"
	documentPrefixInventory      = "inventory"
)

// BuildDatasetKind validates a dataset name and converts it to a
// DatasetKind. Unknown names are rejected with ErrInvalidArgument.
func BuildDatasetKind(name string) (DatasetKind, error) {
	switch DatasetKind(name) {
	case DatasetShipments, DatasetPurchaseOrders, DatasetInventory:
		return DatasetKind(name), nil
	default:
		return "", fmt.Errorf("%w: unknown dataset %q, expected one of: %s, %s, %s",
			ErrInvalidArgument, name, DatasetShipments, DatasetPurchaseOrders, DatasetInventory)
	}
}

// AllDatasetKinds returns the datasets in their canonical persistence
// order: shipments first, then purchase orders, then inventory.
func AllDatasetKinds() []DatasetKind {
	return []DatasetKind{DatasetShipments, DatasetPurchaseOrders, DatasetInventory}
}

// String implements fmt.Stringer.
func (dk DatasetKind) String() string {
	return string(dk)
}

// DocumentPrefix returns the file name prefix for documents of this
// dataset.
func (dk DatasetKind) DocumentPrefix() string {
	switch dk {
	case DatasetPurchaseOrders:
		return documentPrefixPurchaseOrders
	case DatasetInventory:
		return documentPrefixInventory
	default:
		return documentPrefixShipments
	}
}

// DocumentName returns the canonical document name for this dataset on the
// given date, for example "po_2024-03-17.json".
func (dk DatasetKind) DocumentName(date time.Time) string {
	return fmt.Sprintf("%s_%s.json", dk.DocumentPrefix(), date.Format(DateLayout))
}
