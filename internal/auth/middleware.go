package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-bank-service/internal/domain"
	"github.com/spec-kit/blood-bank-service/internal/observability"
	apperrors "github.com/spec-kit/blood-bank-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

var (
	ErrUnauthenticated       = errors.New("missing bearer token")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// Identity is the authenticated caller, handed explicitly to services.
type Identity struct {
	UserID    string
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
}

// IdentityFromClaims converts decoded token claims.
func IdentityFromClaims(c *Claims) Identity {
	return Identity{UserID: c.ID, Email: c.Email, Role: c.Role, ExpiresAt: c.ExpiresAt()}
}

// Gate checks bearer tokens in front of protected routes.
type Gate struct {
	codec   Codec
	metrics *observability.Metrics
}

// NewGate constructs the gate. metrics may be nil.
func NewGate(codec Codec, metrics *observability.Metrics) *Gate {
	return &Gate{codec: codec, metrics: metrics}
}

// Authorize validates an Authorization header value.
func (g *Gate) Authorize(header string) (*Claims, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, ErrUnauthenticated
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return nil, ErrInvalidOrExpiredToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := g.codec.Decode(token)
	if err != nil {
		return nil, ErrInvalidOrExpiredToken
	}
	return claims, nil
}

// Handle enforces authentication for protected routes.
func (g *Gate) Handle(c *fiber.Ctx) error {
	claims, err := g.Authorize(c.Get(fiber.HeaderAuthorization))
	switch {
	case errors.Is(err, ErrUnauthenticated):
		g.metrics.RecordAuthRejection("missing_token")
		return apperrors.NewUnauthorized("Unauthorized")
	case err != nil:
		// expired and forged tokens look the same to the client
		g.metrics.RecordAuthRejection("invalid_token")
		return apperrors.NewUnauthorized("Invalid token")
	}

	c.Locals(identityKey, IdentityFromClaims(claims))
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}
