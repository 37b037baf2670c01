package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trades-market/trades_market/internal/provider"
)

// Service manages reviews and keeps provider rating aggregates in sync.
type Service struct {
	repo      Repository
	providers *provider.Service
}

// NewService builds a review service instance.
func NewService(repo Repository, providers *provider.Service) *Service {
	return &Service{repo: repo, providers: providers}
}

// CreateInput captures data required to leave a review.
type CreateInput struct {
	ProviderID string
	Name       string
	Rating     int
	Comment    string
}

// Create persists a review and folds its rating into the listing's
// aggregates. Returns provider.ErrNotFound when the listing is unknown.
func (s *Service) Create(ctx context.Context, input CreateInput) (Review, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Review{}, errors.New("name is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return Review{}, errors.New("rating must be between 1 and 5")
	}

	if _, err := s.providers.Get(ctx, input.ProviderID); err != nil {
		return Review{}, err
	}

	rev := Review{
		ID:         uuid.New().String(),
		ProviderID: input.ProviderID,
		Name:       name,
		Rating:     input.Rating,
		Comment:    input.Comment,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		return Review{}, err
	}

	if _, err := s.providers.RecordReview(ctx, rev.ProviderID, rev.Rating); err != nil {
		return Review{}, err
	}

	return rev, nil
}

// ListByProvider returns a listing's reviews, newest first. Returns
// provider.ErrNotFound when the listing is unknown.
func (s *Service) ListByProvider(ctx context.Context, providerID string) ([]Review, error) {
	if _, err := s.providers.Get(ctx, providerID); err != nil {
		return nil, err
	}
	return s.repo.ListByProvider(ctx, providerID)
}
