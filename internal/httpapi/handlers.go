package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/freightforge/supplychain-simdata-go/simdata"
	"github.com/freightforge/supplychain-simdata-go/simdata/retrieval"
)

const apiVersion = "1.0.0"

const (
	headerTotalRecords = "X-Total-Records"
	headerDate         = "X-Date"

	queryParamDate        = "date"
	queryParamDataset     = "dataset"
	queryParamWarehouseID = "warehouse_id"
	queryParamProductID   = "product_id"
)

// Handler holds the HTTP handlers for the retrieval API.
type Handler struct {
	service *retrieval.Service
	logger  *zap.Logger
}

// NewHandler creates the handler set. A nil logger disables handler
// logging.
func NewHandler(service *retrieval.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Info describes the API on the root route.
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, infoResponse{
		Message:     retrieval.ServiceName,
		Version:     apiVersion,
		Description: "Serves synthetic supply-chain shipment, purchase order, and inventory data by date",
		Endpoints: []string{
			"/api/v1/health",
			"/api/v1/shipments",
			"/api/v1/purchase-orders",
			"/api/v1/inventory",
			"/api/v1/dates/available",
		},
	})
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Health())
}

// Shipments serves one day of shipment records. The date query parameter
// defaults to yesterday.
func (h *Handler) Shipments(c *gin.Context) {
	h.serveDataset(c, simdata.DatasetShipments)
}

// PurchaseOrders serves one day of purchase order records. The date query
// parameter defaults to yesterday.
func (h *Handler) PurchaseOrders(c *gin.Context) {
	h.serveDataset(c, simdata.DatasetPurchaseOrders)
}

// Inventory serves one day of inventory snapshot records, optionally
// narrowed by warehouse_id and product_id.
func (h *Handler) Inventory(c *gin.Context) {
	filter := retrieval.BuildInventoryFilter().
		WithWarehouseID(c.Query(queryParamWarehouseID)).
		WithProductID(c.Query(queryParamProductID)).
		Finalize()

	result, err := h.service.GetDailyDocument(
		c.Request.Context(),
		simdata.DatasetInventory.String(),
		c.Query(queryParamDate),
		filter,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setDatasetHeaders(c, result)
	c.JSON(http.StatusOK, inventoryResponse{
		Date:           result.Date,
		TotalRecords:   result.TotalRecords,
		FiltersApplied: result.FiltersApplied,
		Data:           result.Data,
	})
}

// AvailableDates lists every date with a document for the requested
// dataset.
func (h *Handler) AvailableDates(c *gin.Context) {
	result, err := h.service.ListAvailableDates(c.Request.Context(), c.Query(queryParamDataset))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, datesResponse{
		Dataset:        result.Dataset.String(),
		AvailableDates: result.AvailableDates,
		Total:          result.Total,
		FirstDate:      result.FirstDate,
		LastDate:       result.LastDate,
	})
}

// serveDataset handles the shared read path of the shipment and purchase
// order endpoints.
func (h *Handler) serveDataset(c *gin.Context, dataset simdata.DatasetKind) {
	result, err := h.service.GetDailyDocument(
		c.Request.Context(),
		dataset.String(),
		c.Query(queryParamDate),
		retrieval.Filter{},
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setDatasetHeaders(c, result)
	c.JSON(http.StatusOK, documentResponse{
		Date:         result.Date,
		TotalRecords: result.TotalRecords,
		Data:         result.Data,
	})
}

// setDatasetHeaders exposes the served date and record count as headers,
// so consumers can probe with HEAD-style semantics.
func (h *Handler) setDatasetHeaders(c *gin.Context, result retrieval.DocumentResult) {
	c.Header(headerTotalRecords, strconv.Itoa(result.TotalRecords))
	c.Header(headerDate, result.Date)
}

// respondError maps a service error to its status code and the uniform
// error envelope.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusCodeFor(err)

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDHeader)),
			zap.Error(err),
		)
	}

	c.JSON(status, errorEnvelope{
		Error:      true,
		StatusCode: status,
		Message:    err.Error(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// statusCodeFor translates the shared sentinel errors into HTTP status
// codes. Unrecognized errors are treated as internal failures.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, simdata.ErrInvalidDateFormat),
		errors.Is(err, simdata.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, simdata.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
