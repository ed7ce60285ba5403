package httpapi

import (
	"encoding/json"

	"github.com/freightforge/supplychain-simdata-go/simdata/retrieval"
)

// documentResponse is the body of an unfiltered dataset endpoint.
type documentResponse struct {
	Date         string          `json:"date"`
	TotalRecords int             `json:"total_records"`
	Data         json.RawMessage `json:"data"`
}

// inventoryResponse is the body of the inventory endpoint. The
// filters_applied key is always present, null when the request carried no
// criteria.
type inventoryResponse struct {
	Date           string                    `json:"date"`
	TotalRecords   int                       `json:"total_records"`
	FiltersApplied *retrieval.AppliedFilters `json:"filters_applied"`
	Data           json.RawMessage           `json:"data"`
}

// datesResponse is the body of the available dates endpoint. The first
// and last date are null while the dataset has no documents.
type datesResponse struct {
	Dataset        string   `json:"dataset"`
	AvailableDates []string `json:"available_dates"`
	Total          int      `json:"total"`
	FirstDate      *string  `json:"first_date"`
	LastDate       *string  `json:"last_date"`
}

// infoResponse describes the API on its root route.
type infoResponse struct {
	Message     string   `json:"message"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Endpoints   []string `json:"endpoints"`
}

// errorEnvelope is the uniform error body of every non-2xx response.
type errorEnvelope struct {
	Error      bool   `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}
