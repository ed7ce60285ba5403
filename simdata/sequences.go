package simdata

import "fmt"

// Identifier formats embed the calendar year of the record and a
// zero-padded six-digit sequence number, for example SHP-2024-000042.
const (
	shipmentIDFormat      = "SHP-%d-%06d"
	orderIDFormat         = "ORD-%d-%06d"
	purchaseOrderIDFormat = "PO-%d-%06d"
)

// SequenceSet issues the monotonically increasing identifier sequences for
// one simulation run. Counters start at 1 and are never reused within a
// run, a fresh run starts over from 1.
type SequenceSet struct {
	nextShipment      uint64
	nextOrder         uint64
	nextPurchaseOrder uint64
}

// NewSequenceSet creates a sequence set with all counters at their initial
// position.
func NewSequenceSet() *SequenceSet {
	return &SequenceSet{
		nextShipment:      1,
		nextOrder:         1,
		nextPurchaseOrder: 1,
	}
}

// NextShipmentID issues the next shipment identifier for the given year.
func (s *SequenceSet) NextShipmentID(year int) string {
	id := fmt.Sprintf(shipmentIDFormat, year, s.nextShipment)
	s.nextShipment++

	return id
}

// NextOrderID issues the next sales order identifier for the given year.
func (s *SequenceSet) NextOrderID(year int) string {
	id := fmt.Sprintf(orderIDFormat, year, s.nextOrder)
	s.nextOrder++

	return id
}

// NextPurchaseOrderID issues the next purchase order identifier for the
// given year.
func (s *SequenceSet) NextPurchaseOrderID(year int) string {
	id := fmt.Sprintf(purchaseOrderIDFormat, year, s.nextPurchaseOrder)
	s.nextPurchaseOrder++

	return id
}

// ShipmentsIssued returns how many shipment identifiers have been issued.
func (s *SequenceSet) ShipmentsIssued() uint64 {
	return s.nextShipment - 1
}

// OrdersIssued returns how many sales order identifiers have been issued.
func (s *SequenceSet) OrdersIssued() uint64 {
	return s.nextOrder - 1
}

// PurchaseOrdersIssued returns how many purchase order identifiers have
// been issued.
func (s *SequenceSet) PurchaseOrdersIssued() uint64 {
	return s.nextPurchaseOrder - 1
}
