package simdata

// InventorySnapshotRecord is the end-of-day stock position of one product
// in one warehouse. QuantityAvailable is always QuantityOnHand minus
// QuantityReserved, floored at zero.
type InventorySnapshotRecord struct {
	Date              ISODateString `json:"date"`
	WarehouseID       string        `json:"warehouse_id"`
	ProductID         string        `json:"product_id"`
	QuantityOnHand    int           `json:"quantity_on_hand"`
	QuantityReserved  int           `json:"quantity_reserved"`
	QuantityAvailable int           `json:"quantity_available"`
	ReorderPoint      int           `json:"reorder_point"`
	SafetyStockLevel  int           `json:"safety_stock_level"`
}

// InventorySnapshotRecords is a type alias for a slice of
// InventorySnapshotRecord.
type InventorySnapshotRecords = []InventorySnapshotRecord
