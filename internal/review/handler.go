package review

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trades-market/trades_market/internal/provider"
)

// Handler exposes review HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a review HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	ProviderID string `json:"provider_id"`
	Name       string `json:"name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type reviewResponse struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	Name       string    `json:"name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(rev Review) reviewResponse {
	return reviewResponse{
		ID:         rev.ID,
		ProviderID: rev.ProviderID,
		Name:       rev.Name,
		Rating:     rev.Rating,
		Comment:    rev.Comment,
		CreatedAt:  rev.CreatedAt,
	}
}

// Create records a new review against a listing.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	rev, err := h.service.Create(c.UserContext(), CreateInput{
		ProviderID: req.ProviderID,
		Name:       req.Name,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, provider.ErrNotFound.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": rev.ID})
}

// ListByProvider returns the reviews left against a listing.
func (h *Handler) ListByProvider(c *fiber.Ctx) error {
	reviews, err := h.service.ListByProvider(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, provider.ErrNotFound.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]reviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		out = append(out, toResponse(rev))
	}
	return c.Status(http.StatusOK).JSON(out)
}
