package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trades-market/trades_market/internal/notification"
)

const defaultListLimit = 20

// Service manages customer job requests.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService builds a request service instance.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// CreateInput captures data required to post a job request.
type CreateInput struct {
	Name    string
	Email   string
	Phone   string
	Trade   string
	City    string
	Title   string
	Details string
	Budget  float64
}

// Create posts a job request and notifies the targeted trade audience.
func (s *Service) Create(ctx context.Context, input CreateInput) (ServiceRequest, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	trade := strings.TrimSpace(input.Trade)
	title := strings.TrimSpace(input.Title)

	if name == "" {
		return ServiceRequest{}, errors.New("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return ServiceRequest{}, errors.New("a valid email is required")
	}
	if trade == "" {
		return ServiceRequest{}, errors.New("trade is required")
	}
	if title == "" {
		return ServiceRequest{}, errors.New("title is required")
	}
	if input.Budget < 0 {
		return ServiceRequest{}, errors.New("budget cannot be negative")
	}

	req := ServiceRequest{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(input.Phone),
		Trade:     trade,
		City:      strings.TrimSpace(input.City),
		Title:     title,
		Details:   input.Details,
		Budget:    input.Budget,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return ServiceRequest{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindServiceRequest,
			Destination: req.Trade,
			Body:        fmt.Sprintf("New job: %s", req.Title),
		})
	}

	return req, nil
}

// List returns job requests matching the filter. A non-positive limit
// falls back to the default page size.
func (s *Service) List(ctx context.Context, f Filter) ([]ServiceRequest, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	return s.repo.List(ctx, f)
}
