package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blood-bank-service/internal/domain"
	apperrors "github.com/spec-kit/blood-bank-service/pkg/util/errorutil"
)

func TestGate_Authorize(t *testing.T) {
	codec := NewTokenManager("gate-secret", WithClock(clockAt(fixedNow)))
	gate := NewGate(codec, nil)

	valid, err := codec.Encode(sampleClaims())
	require.NoError(t, err)
	expired, err := NewTokenManager("gate-secret", WithClock(clockAt(fixedNow.Add(-8*24*time.Hour)))).Encode(sampleClaims())
	require.NoError(t, err)

	cases := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "missing header", header: "", wantErr: ErrUnauthenticated},
		{name: "blank header", header: "   ", wantErr: ErrUnauthenticated},
		{name: "bearer without token", header: "Bearer ", wantErr: ErrUnauthenticated},
		{name: "scheme only", header: "Bearer", wantErr: ErrUnauthenticated},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidOrExpiredToken},
		{name: "garbage token", header: "Bearer nope", wantErr: ErrInvalidOrExpiredToken},
		{name: "expired token", header: "Bearer " + expired, wantErr: ErrInvalidOrExpiredToken},
		{name: "valid token", header: "Bearer " + valid},
		{name: "lowercase scheme", header: "bearer " + valid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := gate.Authorize(tc.header)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, sampleClaims().ID, claims.ID)
			assert.Equal(t, domain.RoleDonor, claims.Role)
		})
	}
}

func newGateApp(gate *Gate) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Message})
		},
	})
	app.Get("/me", gate.Handle, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"id": identity.UserID, "role": identity.Role})
	})
	return app
}

func TestGate_Handle(t *testing.T) {
	codec := NewTokenManager("gate-secret", WithClock(clockAt(fixedNow)))
	app := newGateApp(NewGate(codec, nil))
	valid, err := codec.Encode(sampleClaims())
	require.NoError(t, err)

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   map[string]string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantBody: map[string]string{"error": "Unauthorized"}},
		{name: "bad token", header: "Bearer abc", wantStatus: http.StatusUnauthorized, wantBody: map[string]string{"error": "Invalid token"}},
		{name: "ok", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: map[string]string{"id": sampleClaims().ID, "role": "DONOR"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body map[string]string
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tc.wantBody, body)
		})
	}
}
