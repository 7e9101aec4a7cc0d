package http

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/observability"
)

func TestErrorMiddleware(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), time.Second)
	app.Get("/panic", func(*fiber.Ctx) error { panic("boom") })
	app.Get("/deadline", func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		return c.JSON(fiber.Map{"deadline": ok})
	})

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/panic", status: fiber.StatusInternalServerError, body: `{"error":"Internal server error"}`},
		{path: "/missing", status: fiber.StatusNotFound, body: `{"error":"Cannot GET /missing"}`},
		{path: "/deadline", status: fiber.StatusOK, body: `{"deadline":true}`},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.JSONEq(t, tc.body, string(raw))
			assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))
		})
	}
}
