package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/api/http/handlers"
	"github.com/spec-kit/blood-bank-service/internal/auth"
	"github.com/spec-kit/blood-bank-service/internal/cache"
	"github.com/spec-kit/blood-bank-service/internal/config"
	"github.com/spec-kit/blood-bank-service/internal/domain"
	"github.com/spec-kit/blood-bank-service/internal/events"
	"github.com/spec-kit/blood-bank-service/internal/observability"
	"github.com/spec-kit/blood-bank-service/internal/repository"
	"github.com/spec-kit/blood-bank-service/internal/service"
)

type testServer struct {
	app   *fiber.App
	codec auth.Codec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos := repository.NewMemoryStore().Set()
	codec := auth.NewTokenManager("router-secret")
	hasher := auth.NewPasswordHasher(config.AuthConfig{PasswordScheme: config.PasswordSchemeBcrypt, BcryptCost: 4})
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	logger := zap.NewNop()

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: repos.Users, Codec: codec, Hasher: hasher, Dispatcher: dispatcher,
	})
	app := NewApp(ServerConfig{Name: "test", RequestTimeout: 5 * time.Second, Logger: logger, Metrics: metrics}, RouteConfig{
		Health: handlers.NewHealthHandler("test", "dev"),
		Auth:   handlers.NewAuthHandler(authService),
		User: handlers.NewUserHandler(service.NewUserService(service.UserDependencies{
			UserRepo: repos.Users, ProfileRepo: repos.Profiles,
			AppointmentRepo: repos.Appointments, BloodRequestRepo: repos.BloodRequests,
		})),
		Appointments: handlers.NewAppointmentsHandler(service.NewAppointmentService(repos.Appointments, dispatcher, logger)),
		Requests:     handlers.NewRequestsHandler(service.NewBloodRequestService(repos.BloodRequests, dispatcher, logger)),
		Inventory: handlers.NewInventoryHandler(service.NewInventoryService(service.InventoryDependencies{
			ProfileRepo: repos.Profiles, InventoryRepo: repos.Inventory,
			Cache: cache.NewMemoryCache(), CacheTTL: time.Minute, Dispatcher: dispatcher, Metrics: metrics,
		})),
		Gate: auth.NewGate(codec, metrics),
	})
	return &testServer{app: app, codec: codec}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (s *testServer) register(t *testing.T, body string) string {
	t.Helper()
	status, raw := s.do(t, fiber.MethodPost, "/auth/register", "", body)
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp.Token
}

func TestScenario_RegisterDonor(t *testing.T) {
	srv := newTestServer(t)

	status, raw := srv.do(t, fiber.MethodPost, "/auth/register", "", `{"name":"Jo","email":"jo@x.com","password":"secret1"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var resp struct {
		User struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, "Jo", resp.User.Name)
	assert.Equal(t, "DONOR", resp.User.Role)
	assert.NotContains(t, string(raw), "password")

	claims, err := srv.codec.Decode(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDonor, claims.Role)
	assert.Equal(t, resp.User.ID, claims.ID)
}

func TestScenario_LoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, `{"name":"Jo","email":"jo@x.com","password":"secret1"}`)

	status, raw := srv.do(t, fiber.MethodPost, "/auth/login", "", `{"email":"jo@x.com","password":"nope"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, string(raw))

	status, raw = srv.do(t, fiber.MethodPost, "/auth/login", "", `{"email":"jo@x.com","password":"secret1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), `"token"`)
}

func TestScenario_InventoryUpsert(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register(t, `{"name":"City","email":"h@x.com","password":"pw","role":"HOSPITAL"}`)

	status, raw := srv.do(t, fiber.MethodPost, "/inventory", token, `{"bloodType":"A+","units":3}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &first))
	assert.Equal(t, "LOW", first["status"])

	status, raw = srv.do(t, fiber.MethodPost, "/inventory", token, `{"bloodType":"A+","units":0}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))
	var second map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &second))
	assert.Equal(t, "CRITICAL", second["status"])
	assert.Equal(t, first["id"], second["id"])

	status, raw = srv.do(t, fiber.MethodGet, "/inventory", token, "")
	require.Equal(t, fiber.StatusOK, status)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, float64(0), list[0]["units"])
	assert.Equal(t, "CRITICAL", list[0]["status"])
}

func TestScenario_AppointmentsWithoutToken(t *testing.T) {
	srv := newTestServer(t)

	status, raw := srv.do(t, fiber.MethodGet, "/appointments", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, string(raw))

	status, raw = srv.do(t, fiber.MethodGet, "/appointments", "forged", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"Invalid token"}`, string(raw))
}

func TestInventory_DonorHasNoHospitalProfile(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register(t, `{"name":"Jo","email":"jo@x.com","password":"pw"}`)

	status, raw := srv.do(t, fiber.MethodGet, "/inventory", token, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Hospital profile not found"}`, string(raw))
}

func TestAppointmentsAndRequests(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register(t, `{"name":"Jo","email":"jo@x.com","password":"pw","bloodType":"A-"}`)

	status, raw := srv.do(t, fiber.MethodPost, "/appointments", token, `{"date":"2024-07-01","time":"09:00","location":"Center"}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	assert.Contains(t, string(raw), `"status":"SCHEDULED"`)

	status, raw = srv.do(t, fiber.MethodPost, "/appointments", token, `{"time":"09:00"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Date, time, and location are required"}`, string(raw))

	status, raw = srv.do(t, fiber.MethodPost, "/requests", token, `{"bloodType":"A-","units":2}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	assert.Contains(t, string(raw), `"urgency":"NORMAL"`)

	status, raw = srv.do(t, fiber.MethodPost, "/requests", token, `{"bloodType":"A-"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Blood type and units are required"}`, string(raw))

	status, raw = srv.do(t, fiber.MethodGet, "/user", token, "")
	require.Equal(t, fiber.StatusOK, status)
	var me struct {
		Email         string                   `json:"email"`
		DonorProfile  map[string]interface{}   `json:"donorProfile"`
		Appointments  []map[string]interface{} `json:"appointments"`
		BloodRequests []map[string]interface{} `json:"bloodRequests"`
	}
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "jo@x.com", me.Email)
	assert.Equal(t, "A-", me.DonorProfile["bloodType"])
	assert.Len(t, me.Appointments, 1)
	assert.Len(t, me.BloodRequests, 1)
	assert.NotContains(t, string(raw), "password")
}

func TestRegister_ErrorsAndMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, `{"name":"Jo","email":"jo@x.com","password":"pw"}`)

	status, raw := srv.do(t, fiber.MethodPost, "/auth/register", "", `{"name":"Jo","email":"jo@x.com","password":"pw"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Email already registered"}`, string(raw))

	status, raw = srv.do(t, fiber.MethodPost, "/auth/register", "", `{"email":"a@x.com"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Name, email, and password are required"}`, string(raw))

	status, raw = srv.do(t, fiber.MethodPost, "/auth/login", "", `{"email":`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Internal server error"}`, string(raw))
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	status, _ := srv.do(t, fiber.MethodGet, "/health/live", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = srv.do(t, fiber.MethodGet, "/health/ready", "", "")
	assert.Equal(t, fiber.StatusOK, status)

	srv.do(t, fiber.MethodGet, "/appointments", "", "")
	status, raw := srv.do(t, fiber.MethodGet, "/metrics", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), `blood_bank_auth_rejections_total{reason="missing_token"} 1`)
}
