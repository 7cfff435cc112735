package usage

import (
	"context"

	"github.com/Aleksandr-Gamble/scale-serp/internal/models"
)

const DefaultRecentLimit = 20

// Service implements the UsageService interface
type Service struct {
	repository  UsageRepository
	recentLimit int
}

// ServiceOption is a functional option for configuring the service
type ServiceOption func(*Service)

// WithRecentLimit sets the default number of records returned by Recent
func WithRecentLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.recentLimit = limit
		}
	}
}

// NewService creates a new usage service with optional configuration
func NewService(repository UsageRepository, opts ...ServiceOption) *Service {
	s := &Service{
		repository:  repository,
		recentLimit: DefaultRecentLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) RecordSearch(ctx context.Context, query, location string, info SearchAccounting) error {
	record := &models.UsageRecord{
		Endpoint:               EndpointSearch,
		Query:                  query,
		Location:               location,
		Success:                info.Success,
		CreditsUsed:            info.CreditsUsed,
		CreditsUsedThisRequest: info.CreditsUsedThisRequest,
		CreditsRemaining:       info.CreditsRemaining,
		CreditsResetAt:         info.CreditsResetAt,
	}
	return s.repository.CreateRecord(ctx, record)
}

func (s *Service) RecordLocations(ctx context.Context, query string, success bool) error {
	// The locations endpoint does not consume credits, so only the
	// request itself is recorded.
	record := &models.UsageRecord{
		Endpoint: EndpointLocations,
		Query:    query,
		Success:  success,
	}
	return s.repository.CreateRecord(ctx, record)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]models.UsageRecord, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	return s.repository.GetRecentRecords(ctx, limit)
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	count, err := s.repository.CountRecords(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalRequests: count}

	// The latest search record carries the account balance snapshot.
	// Locations requests do not update balances, so walk recent
	// records until a search record is found.
	records, err := s.repository.GetRecentRecords(ctx, s.recentLimit)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		summary.LastEndpoint = records[0].Endpoint
	}
	for _, record := range records {
		if record.Endpoint == EndpointSearch {
			summary.CreditsUsed = record.CreditsUsed
			summary.CreditsRemaining = record.CreditsRemaining
			summary.CreditsResetAt = record.CreditsResetAt
			break
		}
	}

	return summary, nil
}
