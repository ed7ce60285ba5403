// Package client provides a typed HTTP client for the supply-chain data
// API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

const (
	defaultTimeout = 15 * time.Second

	pathHealth         = "/api/v1/health"
	pathShipments      = "/api/v1/shipments"
	pathPurchaseOrders = "/api/v1/purchase-orders"
	pathInventory      = "/api/v1/inventory"
	pathAvailableDates = "/api/v1/dates/available"

	queryParamDate        = "date"
	queryParamDataset     = "dataset"
	queryParamWarehouseID = "warehouse_id"
	queryParamProductID   = "product_id"
)

// APIError is the decoded error envelope of a non-2xx response.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the server had no document for the request.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// AppliedFilters echoes which inventory criteria the server applied.
type AppliedFilters struct {
	WarehouseID *string `json:"warehouse_id"`
	ProductID   *string `json:"product_id"`
}

// ShipmentsResponse is one day of shipment records.
type ShipmentsResponse struct {
	Date         string                  `json:"date"`
	TotalRecords int                     `json:"total_records"`
	Data         simdata.ShipmentRecords `json:"data"`
}

// PurchaseOrdersResponse is one day of purchase order records.
type PurchaseOrdersResponse struct {
	Date         string                       `json:"date"`
	TotalRecords int                          `json:"total_records"`
	Data         simdata.PurchaseOrderRecords `json:"data"`
}

// InventoryResponse is one day of inventory snapshot records, possibly
// narrowed by filters.
type InventoryResponse struct {
	Date           string                           `json:"date"`
	TotalRecords   int                              `json:"total_records"`
	FiltersApplied *AppliedFilters                  `json:"filters_applied"`
	Data           simdata.InventorySnapshotRecords `json:"data"`
}

// AvailableDatesResponse lists the dates a dataset holds documents for.
type AvailableDatesResponse struct {
	Dataset        string   `json:"dataset"`
	AvailableDates []string `json:"available_dates"`
	Total          int      `json:"total"`
	FirstDate      *string  `json:"first_date"`
	LastDate       *string  `json:"last_date"`
}

// HealthResponse reports API liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// Client calls the supply-chain data API.
type Client struct {
	http *resty.Client
}

// Option defines a functional option for configuring a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithRetryCount enables automatic retries for transport-level failures.
func WithRetryCount(count int) Option {
	return func(c *Client) {
		c.http.SetRetryCount(count)
	}
}

// New creates a Client for the API at baseURL.
func New(baseURL string, options ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(defaultTimeout)

	client := &Client{http: httpClient}

	for _, option := range options {
		option(client)
	}

	return client
}

// GetShipments fetches one day of shipments. An empty date means
// yesterday.
func (c *Client) GetShipments(ctx context.Context, date string) (*ShipmentsResponse, error) {
	var out ShipmentsResponse
	if err := c.get(ctx, pathShipments, dateParams(date), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetPurchaseOrders fetches one day of purchase orders. An empty date
// means yesterday.
func (c *Client) GetPurchaseOrders(ctx context.Context, date string) (*PurchaseOrdersResponse, error) {
	var out PurchaseOrdersResponse
	if err := c.get(ctx, pathPurchaseOrders, dateParams(date), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetInventory fetches one day of inventory snapshots, optionally
// narrowed by warehouse and/or product. An empty date means yesterday.
func (c *Client) GetInventory(
	ctx context.Context,
	date string,
	warehouseID string,
	productID string,
) (*InventoryResponse, error) {
	params := dateParams(date)
	if warehouseID != "" {
		params[queryParamWarehouseID] = warehouseID
	}

	if productID != "" {
		params[queryParamProductID] = productID
	}

	var out InventoryResponse
	if err := c.get(ctx, pathInventory, params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// AvailableDates fetches the dates a dataset holds documents for.
func (c *Client) AvailableDates(ctx context.Context, dataset string) (*AvailableDatesResponse, error) {
	var out AvailableDatesResponse
	params := map[string]string{queryParamDataset: dataset}

	if err := c.get(ctx, pathAvailableDates, params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Health fetches the API liveness report.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, pathHealth, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// get performs one GET request, decoding the success body into result and
// a non-2xx body into an APIError.
func (c *Client) get(ctx context.Context, path string, params map[string]string, result any) error {
	apiErr := &APIError{}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}

	if resp.IsError() {
		if apiErr.StatusCode == 0 {
			apiErr.StatusCode = resp.StatusCode()
			apiErr.Message = resp.Status()
		}

		return apiErr
	}

	return nil
}

// dateParams builds the query parameters shared by the dataset endpoints.
func dateParams(date string) map[string]string {
	params := map[string]string{}
	if date != "" {
		params[queryParamDate] = date
	}

	return params
}
