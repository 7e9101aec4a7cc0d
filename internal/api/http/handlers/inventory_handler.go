package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-bank-service/internal/api/dto"
	"github.com/spec-kit/blood-bank-service/internal/service"
)

// InventoryHandler exposes the caller's hospital stock.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.inventory.List(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryList(items))
}

// Upsert handles POST /inventory: 201 when the row is new, 200 otherwise.
func (h *InventoryHandler) Upsert(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpsertInventoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item, created, err := h.inventory.Upsert(c.UserContext(), id, service.InventoryUpsertInput{
		BloodType: req.BloodType,
		Units:     req.Units,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(dto.NewInventoryResponse(*item))
}
