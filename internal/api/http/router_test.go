package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/drakehanguyen/devpockit/internal/api/http"
	"github.com/drakehanguyen/devpockit/internal/api/http/handlers"
	"github.com/drakehanguyen/devpockit/internal/auth"
	"github.com/drakehanguyen/devpockit/internal/config"
	"github.com/drakehanguyen/devpockit/internal/events"
	"github.com/drakehanguyen/devpockit/internal/observability"
	"github.com/drakehanguyen/devpockit/internal/persistence"
	"github.com/drakehanguyen/devpockit/internal/repository"
	"github.com/drakehanguyen/devpockit/internal/service"
)

type envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Errors  []string       `json:"errors"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Name:      "devpockit",
			Version:   "1.0.0",
			APIPrefix: "/api/v1",
		},
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
		CORS: config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
	}

	userRepo := repository.NewMemoryUserRepository()
	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), cfg)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		APIPrefix:      cfg.App.APIPrefix,
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Tools:          handlers.NewToolsHandler(service.NewToolsService()),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), userRepo),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func registerAlice(t *testing.T, app *fiber.App) envelope {
	t.Helper()
	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    "a@x.com",
		"username": "alice123",
		"password": "longenough",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	return env
}

func TestRegister_EchoesUserWithoutHash(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	env := registerAlice(t, app)
	require.Equal(t, "User registered successfully", env.Message)

	user, ok := env.Data["user"].(map[string]any)
	require.True(t, ok, "data.user missing: %+v", env.Data)
	require.Equal(t, "alice123", user["username"])
	require.Equal(t, "a@x.com", user["email"])
	require.Equal(t, true, user["is_active"])
	require.NotContains(t, user, "password_hash")
	require.NotContains(t, user, "password")
}

func TestRegister_DuplicateIsRejected(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	registerAlice(t, app)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    "a@x.com",
		"username": "other123",
		"password": "longenough",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.False(t, env.Success)
	require.Equal(t, "Email already registered", env.Message)

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    "other@x.com",
		"username": "alice123",
		"password": "longenough",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Username already taken", env.Message)
}

func TestRegister_ValidationFailures(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"short password", map[string]any{"email": "a@x.com", "username": "alice123", "password": "short"}},
		{"short username", map[string]any{"email": "a@x.com", "username": "al", "password": "longenough"}},
		{"symbols in username", map[string]any{"email": "a@x.com", "username": "alice-123", "password": "longenough"}},
		{"malformed email", map[string]any{"email": "not-an-email", "username": "alice123", "password": "longenough"}},
		{"missing password", map[string]any{"email": "a@x.com", "username": "alice123"}},
	}
	for _, tc := range cases {
		resp, env := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", tc.body, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.name)
		require.False(t, env.Success, tc.name)
		require.NotEmpty(t, env.Errors, tc.name)
	}
}

func TestLogin_FailuresIndistinguishable(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	registerAlice(t, app)

	wrongPassword := map[string]any{"username": "alice123", "password": "wrongpassword"}
	unknownUser := map[string]any{"username": "nosuchuser", "password": "longenough"}

	respA, envA := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", wrongPassword, nil)
	respB, envB := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", unknownUser, nil)

	require.Equal(t, http.StatusUnauthorized, respA.StatusCode)
	require.Equal(t, http.StatusUnauthorized, respB.StatusCode)
	require.Equal(t, envA.Message, envB.Message)
	require.Equal(t, envA.Errors, envB.Errors)
}

func TestLoginMeLogoutFlow(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	registerAlice(t, app)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "alice123",
		"password": "longenough",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.Equal(t, "bearer", env.Data["token_type"])

	token, ok := env.Data["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, env.Data["authenticated"])
	user := env.Data["user"].(map[string]any)
	require.Equal(t, "alice123", user["username"])

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "logged_out", env.Data["status"])

	// Logout is an acknowledgment only: the token still works.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMe_Unauthorized(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, env.Success)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer garbage.token.here",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestToolsEndpoints(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/tools/json/format", map[string]any{
		"data":   `{"a":1}`,
		"minify": false,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.Equal(t, "{\n  \"a\": 1\n}", env.Data["formatted_data"])

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/tools/json/format", map[string]any{
		"data": `{"a":`,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.False(t, env.Success)
	require.NotEmpty(t, env.Errors)

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/tools/yaml/convert", map[string]any{
		"data":        `{"name":"devpockit"}`,
		"from_format": "json",
		"to_format":   "yaml",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.Contains(t, env.Data["converted_data"], "name: devpockit")

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/tools/uuid/generate", map[string]any{}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.Equal(t, float64(4), env.Data["version"])
	require.Len(t, env.Data["uuids"], 1)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/tools/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "operational", env.Data["status"])
}

func TestRootAndHealth(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "DevPockit API", body["message"])
	require.Equal(t, "1.0.0", body["version"])

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "healthy", body["status"])

	// Without postgres/redis the readiness probe reports degraded.
	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCORSHeaders(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	tm := auth.NewTokenManager("test-secret", -1) // pre-expired
	token, _, err := tm.Issue("alice123")
	require.NoError(t, err)

	app := newTestApp(t)
	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, env.Success)
}
