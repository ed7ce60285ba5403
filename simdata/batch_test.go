package simdata_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

func Test_BuildDailyDocument_WrapsRecordsInEnvelope(t *testing.T) {
	date := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	records := []map[string]string{{"shipment_id": "SHP-2024-000001"}}

	document, err := simdata.BuildDailyDocument(date, len(records), records)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-17", document.Date)
	assert.Equal(t, 1, document.TotalRecords)
	assert.JSONEq(t, `[{"shipment_id":"SHP-2024-000001"}]`, string(document.Data))
	assert.NoError(t, document.Validate())
}

func Test_DailyDocument_Validate_RejectsBrokenEnvelopes(t *testing.T) {
	valid := simdata.DailyDocument{
		Date:         "2024-03-17",
		TotalRecords: 0,
		Data:         json.RawMessage(`[]`),
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		mutate   func(d *simdata.DailyDocument)
		expected error
	}{
		{
			name:     "empty_date",
			mutate:   func(d *simdata.DailyDocument) { d.Date = "" },
			expected: simdata.ErrEmptyDocumentDate,
		},
		{
			name:     "malformed_date",
			mutate:   func(d *simdata.DailyDocument) { d.Date = "17.03.2024" },
			expected: simdata.ErrInvalidDateFormat,
		},
		{
			name:     "negative_record_count",
			mutate:   func(d *simdata.DailyDocument) { d.TotalRecords = -1 },
			expected: simdata.ErrNegativeRecordCount,
		},
		{
			name:     "invalid_json_payload",
			mutate:   func(d *simdata.DailyDocument) { d.Data = json.RawMessage(`[{"broken"`) },
			expected: simdata.ErrInvalidDocumentJSON,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			document := valid
			tc.mutate(&document)

			assert.ErrorIs(t, document.Validate(), tc.expected)
		})
	}
}

func Test_DailyBatch_BuildDocuments_ProducesOneDocumentPerDataset(t *testing.T) {
	date := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	batch := simdata.DailyBatch{
		Date: date,
		Shipments: simdata.ShipmentRecords{
			{ShipmentID: "SHP-2024-000001", OrderID: "ORD-2024-000001"},
			{ShipmentID: "SHP-2024-000002", OrderID: "ORD-2024-000002"},
		},
		PurchaseOrders: simdata.PurchaseOrderRecords{
			{POID: "PO-2024-000001"},
		},
		Inventory: simdata.InventorySnapshotRecords{
			{Date: "2024-03-17", WarehouseID: "WH-001", ProductID: "PRD-0001"},
		},
	}

	documents, err := batch.BuildDocuments()
	require.NoError(t, err)
	require.Len(t, documents, 3)

	assert.Equal(t, simdata.DatasetShipments, documents[0].Dataset)
	assert.Equal(t, simdata.DatasetPurchaseOrders, documents[1].Dataset)
	assert.Equal(t, simdata.DatasetInventory, documents[2].Dataset)

	assert.Equal(t, 2, documents[0].Document.TotalRecords)
	assert.Equal(t, 1, documents[1].Document.TotalRecords)
	assert.Equal(t, 1, documents[2].Document.TotalRecords)

	for _, document := range documents {
		assert.Equal(t, "2024-03-17", document.Document.Date)
		assert.NoError(t, document.Document.Validate())
	}
}

func Test_DailyBatch_BuildDocuments_NilRecordSetsBecomeEmptyArrays(t *testing.T) {
	batch := simdata.DailyBatch{Date: time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)}

	documents, err := batch.BuildDocuments()
	require.NoError(t, err)

	for _, document := range documents {
		assert.Equal(t, 0, document.Document.TotalRecords)
		assert.JSONEq(t, `[]`, string(document.Document.Data))
	}
}

func Test_DailyBatch_RecordCount_SumsAllDatasets(t *testing.T) {
	batch := simdata.DailyBatch{
		Shipments:      make(simdata.ShipmentRecords, 3),
		PurchaseOrders: make(simdata.PurchaseOrderRecords, 2),
		Inventory:      make(simdata.InventorySnapshotRecords, 5),
	}

	assert.Equal(t, 10, batch.RecordCount())
}
