package simdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

func Test_BuildDatasetKind_AcceptsKnownDatasets(t *testing.T) {
	tests := []struct {
		name     string
		expected simdata.DatasetKind
	}{
		{name: "shipments", expected: simdata.DatasetShipments},
		{name: "purchase_orders", expected: simdata.DatasetPurchaseOrders},
		{name: "inventory", expected: simdata.DatasetInventory},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := simdata.BuildDatasetKind(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func Test_BuildDatasetKind_RejectsUnknownDataset(t *testing.T) {
	_, err := simdata.BuildDatasetKind("returns")
	assert.ErrorIs(t, err, simdata.ErrInvalidArgument)
}

func Test_DatasetKind_DocumentNames(t *testing.T) {
	date := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "shipments_2024-03-17.json", simdata.DatasetShipments.DocumentName(date))
	assert.Equal(t, "po_2024-03-17.json", simdata.DatasetPurchaseOrders.DocumentName(date))
	assert.Equal(t, "inventory_2024-03-17.json", simdata.DatasetInventory.DocumentName(date))
}

func Test_AllDatasetKinds_CanonicalOrder(t *testing.T) {
	assert.Equal(t,
		[]simdata.DatasetKind{
			simdata.DatasetShipments,
			simdata.DatasetPurchaseOrders,
			simdata.DatasetInventory,
		},
		simdata.AllDatasetKinds())
}
