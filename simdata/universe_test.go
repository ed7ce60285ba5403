package simdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

func Test_BuildIdentifierUniverse_PoolsAreZeroPaddedAndOrdered(t *testing.T) {
	universe, err := simdata.BuildIdentifierUniverse(3, 2, 4)
	require.NoError(t, err)

	assert.Equal(t, []string{"PRD-0001", "PRD-0002", "PRD-0003"}, universe.Products())
	assert.Equal(t, []string{"WH-001", "WH-002"}, universe.Warehouses())
	assert.Equal(t, []string{"SUP-001", "SUP-002", "SUP-003", "SUP-004"}, universe.Suppliers())

	assert.Equal(t, 3, universe.ProductCount())
	assert.Equal(t, 2, universe.WarehouseCount())
	assert.Equal(t, 4, universe.SupplierCount())
}

func Test_BuildIdentifierUniverse_RejectsNonPositiveCounts(t *testing.T) {
	tests := []struct {
		name       string
		products   int
		warehouses int
		suppliers  int
	}{
		{name: "zero_products", products: 0, warehouses: 2, suppliers: 2},
		{name: "zero_warehouses", products: 2, warehouses: 0, suppliers: 2},
		{name: "zero_suppliers", products: 2, warehouses: 2, suppliers: 0},
		{name: "negative_products", products: -1, warehouses: 2, suppliers: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := simdata.BuildIdentifierUniverse(tc.products, tc.warehouses, tc.suppliers)
			assert.ErrorIs(t, err, simdata.ErrInvalidConfiguration)
		})
	}
}
