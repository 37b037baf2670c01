package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultRating    = 4.8
	defaultListLimit = 20
)

// Service exposes provider listing operations.
type Service struct {
	repo Repository
}

// NewService builds a provider service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to publish a listing. Rating is
// optional; when absent, new listings start at the marketplace default.
type CreateInput struct {
	Name        string
	Trade       string
	Email       string
	Phone       string
	City        string
	Description string
	HourlyRate  float64
	Rating      *float64
	Badges      []string
}

// Create publishes a provider listing.
func (s *Service) Create(ctx context.Context, input CreateInput) (Provider, error) {
	name := strings.TrimSpace(input.Name)
	trade := strings.TrimSpace(input.Trade)
	if name == "" {
		return Provider{}, errors.New("name is required")
	}
	if trade == "" {
		return Provider{}, errors.New("trade is required")
	}
	if input.HourlyRate < 0 {
		return Provider{}, errors.New("hourly rate cannot be negative")
	}

	rating := defaultRating
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			return Provider{}, errors.New("rating must be between 0 and 5")
		}
		rating = *input.Rating
	}

	badges := input.Badges
	if badges == nil {
		badges = []string{}
	}

	p := Provider{
		ID:          uuid.New().String(),
		Name:        name,
		Trade:       trade,
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		City:        strings.TrimSpace(input.City),
		Description: input.Description,
		HourlyRate:  input.HourlyRate,
		Rating:      rating,
		ReviewCount: 0,
		Badges:      badges,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Provider{}, err
	}

	return p, nil
}

// Get retrieves a single listing.
func (s *Service) Get(ctx context.Context, id string) (Provider, error) {
	return s.repo.Get(ctx, id)
}

// List returns listings matching the filter. A non-positive limit falls
// back to the default page size.
func (s *Service) List(ctx context.Context, f Filter) ([]Provider, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	return s.repo.List(ctx, f)
}

// RecordReview folds a new review rating into the provider's aggregates.
func (s *Service) RecordReview(ctx context.Context, id string, rating int) (Provider, error) {
	return s.repo.ApplyReview(ctx, id, rating)
}
