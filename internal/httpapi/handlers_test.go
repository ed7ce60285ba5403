package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightforge/supplychain-simdata-go/internal/httpapi"
	"github.com/freightforge/supplychain-simdata-go/simdata"
	"github.com/freightforge/supplychain-simdata-go/simdata/retrieval"
	"github.com/freightforge/supplychain-simdata-go/testutil/helper"
)

func newTestRouter(t *testing.T, store *helper.MemoryStore) http.Handler {
	t.Helper()

	service, err := retrieval.BuildService(store, store)
	require.NoError(t, err)

	handler := httpapi.NewHandler(service, nil)

	return httpapi.NewRouter(handler, nil)
}

func seedDay(t *testing.T, store *helper.MemoryStore, date time.Time) {
	t.Helper()

	batch := simdata.DailyBatch{
		Date: date,
		Shipments: simdata.ShipmentRecords{
			{ShipmentID: "SHP-2024-000001", OrderID: "ORD-2024-000001", Status: "in_transit"},
			{ShipmentID: "SHP-2024-000002", OrderID: "ORD-2024-000002", Status: "delivered"},
		},
		PurchaseOrders: simdata.PurchaseOrderRecords{
			{POID: "PO-2024-000001", OrderStatus: "pending"},
		},
		Inventory: simdata.InventorySnapshotRecords{
			{Date: date.Format(simdata.DateLayout), WarehouseID: "WH-001", ProductID: "PRD-0001"},
			{Date: date.Format(simdata.DateLayout), WarehouseID: "WH-002", ProductID: "PRD-0001"},
		},
	}

	require.NoError(t, store.WriteDailyBatch(context.Background(), batch))
}

func doRequest(router http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(recorder, request)

	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func Test_Shipments_ServesDocumentWithHeaders(t *testing.T) {
	store := helper.NewMemoryStore()
	seedDay(t, store, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	router := newTestRouter(t, store)

	recorder := doRequest(router, "/api/v1/shipments?date=2024-01-15")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "2", recorder.Header().Get("X-Total-Records"))
	assert.Equal(t, "2024-01-15", recorder.Header().Get("X-Date"))

	body := decodeBody(t, recorder)
	assert.Equal(t, "2024-01-15", body["date"])
	assert.Equal(t, float64(2), body["total_records"])
	assert.Len(t, body["data"], 2)
}

func Test_Shipments_MissingDateIs404WithEnvelope(t *testing.T) {
	router := newTestRouter(t, helper.NewMemoryStore())

	recorder := doRequest(router, "/api/v1/shipments?date=2024-01-15")

	require.Equal(t, http.StatusNotFound, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, float64(http.StatusNotFound), body["status_code"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func Test_Shipments_MalformedDateIs400(t *testing.T) {
	router := newTestRouter(t, helper.NewMemoryStore())

	recorder := doRequest(router, "/api/v1/shipments?date=15-01-2024")

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status_code"])
}

func Test_PurchaseOrders_ServesDocument(t *testing.T) {
	store := helper.NewMemoryStore()
	seedDay(t, store, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	router := newTestRouter(t, store)

	recorder := doRequest(router, "/api/v1/purchase-orders?date=2024-01-15")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("X-Total-Records"))

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["total_records"])
}

func Test_Inventory_UnfilteredHasNullFiltersApplied(t *testing.T) {
	store := helper.NewMemoryStore()
	seedDay(t, store, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	router := newTestRouter(t, store)

	recorder := doRequest(router, "/api/v1/inventory?date=2024-01-15")

	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(2), body["total_records"])

	filtersApplied, present := body["filters_applied"]
	assert.True(t, present, "filters_applied key must always be present")
	assert.Nil(t, filtersApplied)
}

func Test_Inventory_FilterNarrowsAndEchoes(t *testing.T) {
	store := helper.NewMemoryStore()
	seedDay(t, store, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	router := newTestRouter(t, store)

	recorder := doRequest(router, "/api/v1/inventory?date=2024-01-15&warehouse_id=WH-001")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("X-Total-Records"))

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["total_records"])

	filtersApplied, ok := body["filters_applied"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "WH-001", filtersApplied["warehouse_id"])
	assert.Nil(t, filtersApplied["product_id"])
}

func Test_AvailableDates_ListsDocuments(t *testing.T) {
	store := helper.NewMemoryStore()
	seedDay(t, store, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	seedDay(t, store, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC))
	router := newTestRouter(t, store)

	recorder := doRequest(router, "/api/v1/dates/available?dataset=shipments")

	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "shipments", body["dataset"])
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, "2024-01-15", body["first_date"])
	assert.Equal(t, "2024-01-16", body["last_date"])
}

func Test_AvailableDates_EmptyDatasetIs200(t *testing.T) {
	router := newTestRouter(t, helper.NewMemoryStore())

	recorder := doRequest(router, "/api/v1/dates/available?dataset=inventory")

	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(0), body["total"])
	assert.Empty(t, body["available_dates"])
	assert.Nil(t, body["first_date"])
	assert.Nil(t, body["last_date"])
}

func Test_AvailableDates_UnknownDatasetIs400(t *testing.T) {
	router := newTestRouter(t, helper.NewMemoryStore())

	recorder := doRequest(router, "/api/v1/dates/available?dataset=returns")

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["error"])
}

func Test_Health_ReportsHealthy(t *testing.T) {
	router := newTestRouter(t, helper.NewMemoryStore())

	recorder := doRequest(router, "/api/v1/health")

	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, retrieval.ServiceName, body["service"])
	assert.NotEmpty(t, body["timestamp"])
}

func Test_Info_DescribesEndpoints(t *testing.T) {
	router := newTestRouter(t, helper.NewMemoryStore())

	recorder := doRequest(router, "/")

	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, retrieval.ServiceName, body["message"])
	assert.NotEmpty(t, body["endpoints"])
}

func Test_RequestID_IsEchoedAndGenerated(t *testing.T) {
	router := newTestRouter(t, helper.NewMemoryStore())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	request.Header.Set("X-Request-ID", "caller-supplied-id")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "caller-supplied-id", recorder.Header().Get("X-Request-ID"))

	recorder = doRequest(router, "/api/v1/health")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}
