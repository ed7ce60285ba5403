package simdata

import "github.com/shopspring/decimal"

// Purchase order lifecycle states relative to the order's expected
// delivery date.
const (
	PurchaseOrderStatusCompleted = "completed"
	PurchaseOrderStatusDelayed   = "delayed"
	PurchaseOrderStatusPending   = "pending"
)

// PurchaseOrderRecord is one replenishment order placed with a supplier.
// ActualDeliveryDate is nil while the order is still pending, which
// serializes as JSON null.
type PurchaseOrderRecord struct {
	POID                 string          `json:"po_id"`
	SupplierID           string          `json:"supplier_id"`
	ProductID            string          `json:"product_id"`
	OrderDate            ISODateString   `json:"order_date"`
	QuantityOrdered      int             `json:"quantity_ordered"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	ExpectedDeliveryDate ISODateString   `json:"expected_delivery_date"`
	ActualDeliveryDate   *ISODateString  `json:"actual_delivery_date"`
	OrderStatus          string          `json:"order_status"`
	DelayDays            int             `json:"delay_days"`
}

// PurchaseOrderRecords is a type alias for a slice of PurchaseOrderRecord.
type PurchaseOrderRecords = []PurchaseOrderRecord
