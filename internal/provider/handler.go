package provider

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes provider HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a provider HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name        string   `json:"name"`
	Trade       string   `json:"trade"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	City        string   `json:"city"`
	Description string   `json:"description"`
	HourlyRate  float64  `json:"hourly_rate"`
	Rating      *float64 `json:"rating"`
	Badges      []string `json:"badges"`
}

type providerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Trade       string    `json:"trade"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	City        string    `json:"city,omitempty"`
	Description string    `json:"description,omitempty"`
	HourlyRate  float64   `json:"hourly_rate,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Badges      []string  `json:"badges"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(p Provider) providerResponse {
	return providerResponse{
		ID:          p.ID,
		Name:        p.Name,
		Trade:       p.Trade,
		Email:       p.Email,
		Phone:       p.Phone,
		City:        p.City,
		Description: p.Description,
		HourlyRate:  p.HourlyRate,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Badges:      p.Badges,
		CreatedAt:   p.CreatedAt,
	}
}

// Create publishes a new listing.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.service.Create(c.UserContext(), CreateInput{
		Name:        req.Name,
		Trade:       req.Trade,
		Email:       req.Email,
		Phone:       req.Phone,
		City:        req.City,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		Rating:      req.Rating,
		Badges:      req.Badges,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": p.ID})
}

// List returns listings, optionally filtered by trade and city.
func (h *Handler) List(c *fiber.Ctx) error {
	filter := Filter{
		Trade: c.Query("trade"),
		City:  c.Query("city"),
		Limit: c.QueryInt("limit", 0),
	}
	providers, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]providerResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, toResponse(p))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Get returns a single listing.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, ErrNotFound.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(p))
}
