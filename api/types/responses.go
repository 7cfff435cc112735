package types

import (
	"github.com/Aleksandr-Gamble/scale-serp/internal/models"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/usage"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// SearchResultsResponse wraps a decoded search response
type SearchResultsResponse struct {
	BaseResponse
	Query    string                    `json:"query"`
	Location string                    `json:"location,omitempty"`
	Results  *scaleserp.SearchResponse `json:"results"`
}

// LocationsListResponse wraps a decoded locations response
type LocationsListResponse struct {
	BaseResponse
	Query       string                         `json:"query"`
	Count       int                            `json:"count"`
	Locations   []scaleserp.Location           `json:"locations"`
	RequestInfo scaleserp.LocationsRequestInfo `json:"request_info"`
}

// UsageSummaryResponse for the usage summary endpoint
type UsageSummaryResponse struct {
	BaseResponse
	Summary *usage.Summary `json:"summary"`
}

// UsageRecordsResponse for recent usage records
type UsageRecordsResponse struct {
	BaseResponse
	Records []models.UsageRecord `json:"records"`
	Count   int                  `json:"count"`
}
