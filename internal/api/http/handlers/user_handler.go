package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-bank-service/internal/api/dto"
	"github.com/spec-kit/blood-bank-service/internal/service"
)

// UserHandler serves the current user.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me handles GET /user.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	details, err := h.users.GetCurrent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(details))
}
