package usage

import (
	"context"

	"github.com/Aleksandr-Gamble/scale-serp/internal/models"
)

// UsageRepository defines the interface for usage record persistence
type UsageRepository interface {
	CreateRecord(ctx context.Context, record *models.UsageRecord) error
	GetRecentRecords(ctx context.Context, limit int) ([]models.UsageRecord, error)
	GetLatestRecord(ctx context.Context) (*models.UsageRecord, error)
	CountRecords(ctx context.Context) (int64, error)
}

// UsageService defines the interface for credit usage accounting
type UsageService interface {
	RecordSearch(ctx context.Context, query, location string, info SearchAccounting) error
	RecordLocations(ctx context.Context, query string, success bool) error
	Recent(ctx context.Context, limit int) ([]models.UsageRecord, error)
	Summary(ctx context.Context) (*Summary, error)
}
