package simdata

import (
	"fmt"
)

// Identifier format strings. Numbering starts at 1, so a universe with 500
// products spans PRD-0001 through PRD-0500.
const (
	productIDFormat   = "PRD-%04d"
	warehouseIDFormat = "WH-%03d"
	supplierIDFormat  = "SUP-%03d"
)

// IdentifierUniverse holds the fixed pools of product, warehouse, and
// supplier identifiers every generated record draws from. The pools are
// created once per run and never change afterwards.
type IdentifierUniverse struct {
	products   []string
	warehouses []string
	suppliers  []string
}

// BuildIdentifierUniverse creates the identifier pools for a run.
// All three counts must be positive.
func BuildIdentifierUniverse(numProducts int, numWarehouses int, numSuppliers int) (IdentifierUniverse, error) {
	if numProducts <= 0 {
		return IdentifierUniverse{}, fmt.Errorf("%w: number of products must be positive, got %d",
			ErrInvalidConfiguration, numProducts)
	}

	if numWarehouses <= 0 {
		return IdentifierUniverse{}, fmt.Errorf("%w: number of warehouses must be positive, got %d",
			ErrInvalidConfiguration, numWarehouses)
	}

	if numSuppliers <= 0 {
		return IdentifierUniverse{}, fmt.Errorf("%w: number of suppliers must be positive, got %d",
			ErrInvalidConfiguration, numSuppliers)
	}

	return IdentifierUniverse{
		products:   buildIdentifierPool(productIDFormat, numProducts),
		warehouses: buildIdentifierPool(warehouseIDFormat, numWarehouses),
		suppliers:  buildIdentifierPool(supplierIDFormat, numSuppliers),
	}, nil
}

func buildIdentifierPool(format string, count int) []string {
	pool := make([]string, count)
	for i := range count {
		pool[i] = fmt.Sprintf(format, i+1)
	}

	return pool
}

// Products returns the product identifier pool in ascending order.
// Callers must not modify the returned slice.
func (u IdentifierUniverse) Products() []string {
	return u.products
}

// Warehouses returns the warehouse identifier pool in ascending order.
// Callers must not modify the returned slice.
func (u IdentifierUniverse) Warehouses() []string {
	return u.warehouses
}

// Suppliers returns the supplier identifier pool in ascending order.
// Callers must not modify the returned slice.
func (u IdentifierUniverse) Suppliers() []string {
	return u.suppliers
}

// ProductCount returns the number of products in the universe.
func (u IdentifierUniverse) ProductCount() int {
	return len(u.products)
}

// WarehouseCount returns the number of warehouses in the universe.
func (u IdentifierUniverse) WarehouseCount() int {
	return len(u.warehouses)
}

// SupplierCount returns the number of suppliers in the universe.
func (u IdentifierUniverse) SupplierCount() int {
	return len(u.suppliers)
}
