package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightforge/supplychain-simdata-go/client"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func Test_Client_GetShipments_DecodesDocument(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/shipments", r.URL.Path)
		assert.Equal(t, "2024-01-15", r.URL.Query().Get("date"))

		writeJSON(w, http.StatusOK, `{
			"date": "2024-01-15",
			"total_records": 2,
			"data": [
				{"shipment_id": "SHP-2024-000001", "order_id": "ORD-2024-000001", "quantity": 120, "status": "delivered", "shipping_cost": "345.67"},
				{"shipment_id": "SHP-2024-000002", "order_id": "ORD-2024-000002", "quantity": 80, "status": "in_transit", "shipping_cost": "89.10"}
			]
		}`)
	})

	response, err := client.New(server.URL).GetShipments(context.Background(), "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15", response.Date)
	assert.Equal(t, 2, response.TotalRecords)
	require.Len(t, response.Data, 2)
	assert.Equal(t, "SHP-2024-000001", response.Data[0].ShipmentID)
	assert.Equal(t, 120, response.Data[0].Quantity)
	assert.Equal(t, "345.67", response.Data[0].ShippingCost.StringFixed(2))
}

func Test_Client_GetShipments_OmitsEmptyDateParam(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("date"))
		writeJSON(w, http.StatusOK, `{"date": "2024-01-15", "total_records": 0, "data": []}`)
	})

	_, err := client.New(server.URL).GetShipments(context.Background(), "")
	require.NoError(t, err)
}

func Test_Client_GetPurchaseOrders_DecodesPendingOrder(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/purchase-orders", r.URL.Path)

		writeJSON(w, http.StatusOK, `{
			"date": "2024-01-15",
			"total_records": 1,
			"data": [
				{"po_id": "PO-2024-000001", "order_status": "pending", "actual_delivery_date": null, "unit_price": "12.50", "total_cost": "12500"}
			]
		}`)
	})

	response, err := client.New(server.URL).GetPurchaseOrders(context.Background(), "2024-01-15")
	require.NoError(t, err)

	require.Len(t, response.Data, 1)
	assert.Equal(t, "PO-2024-000001", response.Data[0].POID)
	assert.Nil(t, response.Data[0].ActualDeliveryDate)
}

func Test_Client_GetInventory_SendsFilterParams(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inventory", r.URL.Path)
		assert.Equal(t, "WH-001", r.URL.Query().Get("warehouse_id"))
		assert.Equal(t, "PRD-0042", r.URL.Query().Get("product_id"))

		writeJSON(w, http.StatusOK, `{
			"date": "2024-01-15",
			"total_records": 1,
			"filters_applied": {"warehouse_id": "WH-001", "product_id": "PRD-0042"},
			"data": [
				{"date": "2024-01-15", "warehouse_id": "WH-001", "product_id": "PRD-0042", "quantity_on_hand": 5000}
			]
		}`)
	})

	response, err := client.New(server.URL).GetInventory(context.Background(), "2024-01-15", "WH-001", "PRD-0042")
	require.NoError(t, err)

	assert.Equal(t, 1, response.TotalRecords)
	require.NotNil(t, response.FiltersApplied)
	require.NotNil(t, response.FiltersApplied.WarehouseID)
	assert.Equal(t, "WH-001", *response.FiltersApplied.WarehouseID)
	require.Len(t, response.Data, 1)
	assert.Equal(t, 5000, response.Data[0].QuantityOnHand)
}

func Test_Client_AvailableDates_DecodesList(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/dates/available", r.URL.Path)
		assert.Equal(t, "shipments", r.URL.Query().Get("dataset"))

		writeJSON(w, http.StatusOK, `{
			"dataset": "shipments",
			"available_dates": ["2024-01-15", "2024-01-16"],
			"total": 2,
			"first_date": "2024-01-15",
			"last_date": "2024-01-16"
		}`)
	})

	response, err := client.New(server.URL).AvailableDates(context.Background(), "shipments")
	require.NoError(t, err)

	assert.Equal(t, 2, response.Total)
	assert.Equal(t, []string{"2024-01-15", "2024-01-16"}, response.AvailableDates)
	require.NotNil(t, response.FirstDate)
	assert.Equal(t, "2024-01-15", *response.FirstDate)
}

func Test_Client_Health_DecodesStatus(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status": "healthy", "timestamp": "2024-01-16T09:30:00Z", "service": "Supply Chain Transactional Data API"}`)
	})

	response, err := client.New(server.URL).Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "healthy", response.Status)
}

func Test_Client_ErrorEnvelopeBecomesAPIError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{
			"error": true,
			"status_code": 404,
			"message": "no document found for the requested date",
			"timestamp": "2024-01-16T09:30:00Z"
		}`)
	})

	_, err := client.New(server.URL).GetShipments(context.Background(), "2024-02-01")
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.True(t, apiErr.IsNotFound())
	assert.Contains(t, apiErr.Message, "no document found")
}

func Test_Client_NonJSONErrorBodyStillYieldsAPIError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	})

	_, err := client.New(server.URL).Health(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.False(t, apiErr.IsNotFound())
}
