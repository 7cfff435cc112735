package usage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Aleksandr-Gamble/scale-serp/internal/models"
	apperrors "github.com/Aleksandr-Gamble/scale-serp/pkg/errors"
)

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements UsageRepository interface
var _ UsageRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateRecord(ctx context.Context, record *models.UsageRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.DatabaseError("insert", err)
	}
	return nil
}

func (r *Repository) GetRecentRecords(ctx context.Context, limit int) ([]models.UsageRecord, error) {
	var records []models.UsageRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, apperrors.DatabaseError("query", err)
	}
	return records, nil
}

func (r *Repository) GetLatestRecord(ctx context.Context) (*models.UsageRecord, error) {
	var record models.UsageRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError("query", err)
	}
	return &record, nil
}

func (r *Repository) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UsageRecord{}).
		Count(&count).Error; err != nil {
		return 0, apperrors.DatabaseError("count", err)
	}
	return count, nil
}
