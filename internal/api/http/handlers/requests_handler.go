package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-bank-service/internal/api/dto"
	"github.com/spec-kit/blood-bank-service/internal/service"
)

// RequestsHandler exposes the caller's blood requests.
type RequestsHandler struct {
	requests *service.BloodRequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requests *service.BloodRequestService) *RequestsHandler {
	return &RequestsHandler{requests: requests}
}

// List handles GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.requests.List(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBloodRequestList(items))
}

// Create handles POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateBloodRequestRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	created, err := h.requests.Create(c.UserContext(), id, service.BloodRequestCreateInput{
		BloodType: req.BloodType,
		Units:     req.Units,
		Urgency:   req.Urgency,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewBloodRequestResponse(*created))
}
