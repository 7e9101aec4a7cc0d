package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-bank-service/internal/auth"
	apperrors "github.com/spec-kit/blood-bank-service/pkg/util/errorutil"
)

// currentIdentity reads the identity stored by the gate.
func currentIdentity(c *fiber.Ctx) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		return auth.Identity{}, apperrors.NewUnauthorized("Unauthorized")
	}
	return id, nil
}

// parseBody decodes the JSON body. A malformed body is an internal error.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("parse body: %w", err))
	}
	return nil
}
