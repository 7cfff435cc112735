package types

import (
	"context"

	"github.com/Aleksandr-Gamble/scale-serp/internal/database"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/usage"
)

// SerpClient defines the interface for upstream search operations
type SerpClient interface {
	Search(ctx context.Context, params scaleserp.SearchParams) (*scaleserp.SearchResponse, error)
	Locations(ctx context.Context, params scaleserp.LocationParams) (*scaleserp.LocationsResponse, error)
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB           *database.DB
	SerpClient   SerpClient
	UsageService usage.UsageService

	// APIKey is attached to every upstream request built by handlers
	APIKey string
}
