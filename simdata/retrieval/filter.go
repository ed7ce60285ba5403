package retrieval

import (
	"strings"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

// FilterCriterionString is a type alias for string to make filter
// signatures more expressive.
type FilterCriterionString = string

/***** Filter *****/

// Filter narrows an inventory document to records matching the given
// warehouse and/or product. The zero value matches everything.
type Filter struct {
	warehouseID FilterCriterionString
	productID   FilterCriterionString
}

// WarehouseID returns the warehouse criterion, empty when not set.
func (f Filter) WarehouseID() FilterCriterionString {
	return f.warehouseID
}

// ProductID returns the product criterion, empty when not set.
func (f Filter) ProductID() FilterCriterionString {
	return f.productID
}

// IsEmpty reports whether the filter has no criteria.
func (f Filter) IsEmpty() bool {
	return f.warehouseID == "" && f.productID == ""
}

// Matches reports whether the record satisfies every set criterion.
func (f Filter) Matches(record simdata.InventorySnapshotRecord) bool {
	if f.warehouseID != "" && record.WarehouseID != f.warehouseID {
		return false
	}

	if f.productID != "" && record.ProductID != f.productID {
		return false
	}

	return true
}

/***** FilterBuilder *****/

// FilterBuilder builds an inventory Filter. Criteria are optional and
// combine with AND semantics, an unset criterion matches everything.
type FilterBuilder interface {
	// WithWarehouseID sets the warehouse criterion.
	//
	// It sanitizes the input:
	//	- surrounding whitespace is trimmed
	//	- a blank identifier leaves the criterion unset
	WithWarehouseID(id FilterCriterionString) FilterBuilder

	// WithProductID sets the product criterion.
	//
	// It sanitizes the input:
	//	- surrounding whitespace is trimmed
	//	- a blank identifier leaves the criterion unset
	WithProductID(id FilterCriterionString) FilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

// filterBuilder implements FilterBuilder.
type filterBuilder struct {
	filter Filter
}

// BuildInventoryFilter creates a FilterBuilder which must eventually be
// finalized with Finalize().
func BuildInventoryFilter() FilterBuilder {
	return filterBuilder{}
}

// WithWarehouseID sets the warehouse criterion, see FilterBuilder.
func (fb filterBuilder) WithWarehouseID(id FilterCriterionString) FilterBuilder {
	fb.filter.warehouseID = strings.TrimSpace(id)

	return fb
}

// WithProductID sets the product criterion, see FilterBuilder.
func (fb filterBuilder) WithProductID(id FilterCriterionString) FilterBuilder {
	fb.filter.productID = strings.TrimSpace(id)

	return fb
}

// Finalize returns the Filter.
func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}
