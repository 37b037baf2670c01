package request

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes service request HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a request HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Trade   string  `json:"trade"`
	City    string  `json:"city"`
	Title   string  `json:"title"`
	Details string  `json:"details"`
	Budget  float64 `json:"budget"`
}

type requestResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Trade     string    `json:"trade"`
	City      string    `json:"city,omitempty"`
	Title     string    `json:"title"`
	Details   string    `json:"details,omitempty"`
	Budget    float64   `json:"budget,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(r ServiceRequest) requestResponse {
	return requestResponse{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Trade:     r.Trade,
		City:      r.City,
		Title:     r.Title,
		Details:   r.Details,
		Budget:    r.Budget,
		CreatedAt: r.CreatedAt,
	}
}

// Create posts a new job request.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	created, err := h.service.Create(c.UserContext(), CreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Trade:   req.Trade,
		City:    req.City,
		Title:   req.Title,
		Details: req.Details,
		Budget:  req.Budget,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": created.ID})
}

// List returns job requests, optionally filtered by trade and city.
func (h *Handler) List(c *fiber.Ctx) error {
	filter := Filter{
		Trade: c.Query("trade"),
		City:  c.Query("city"),
		Limit: c.QueryInt("limit", 0),
	}
	requests, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]requestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toResponse(r))
	}
	return c.Status(http.StatusOK).JSON(out)
}
