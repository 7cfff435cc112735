package usage

// Endpoint labels for recorded requests
const (
	EndpointSearch    = "search"
	EndpointLocations = "locations"
)

// SearchAccounting carries the credit counters returned alongside
// a search response.
type SearchAccounting struct {
	Success                bool
	CreditsUsed            uint
	CreditsUsedThisRequest uint
	CreditsRemaining       uint
	CreditsResetAt         string
}

// Summary is a point-in-time view of account credit usage built from
// the most recent recorded request.
type Summary struct {
	TotalRequests    int64  `json:"total_requests"`
	CreditsUsed      uint   `json:"credits_used"`
	CreditsRemaining uint   `json:"credits_remaining"`
	CreditsResetAt   string `json:"credits_reset_at,omitempty"`
	LastEndpoint     string `json:"last_endpoint,omitempty"`
}
