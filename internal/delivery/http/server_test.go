package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aiproxy/config"
	"aiproxy/internal/delivery/http/middleware"
	"aiproxy/internal/delivery/http/router"
	"aiproxy/internal/delivery/http/router/handler"
	"aiproxy/internal/domain/entity"
	"aiproxy/internal/domain/service"
	"aiproxy/internal/infra/auth"
	"aiproxy/internal/infra/persistence/memory"
	mockSvc "aiproxy/internal/mocks/service"
	"aiproxy/internal/usecase/impl"
	"aiproxy/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
		Fields  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	} `json:"error"`
}

type testApp struct {
	echo   *echo.Echo
	chat   *mockSvc.MockChatCompletionClient
	tokens service.TokenService
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Auth: &config.AuthConfig{PasswordScheme: auth.SchemeBcrypt, BcryptCost: bcrypt.MinCost},
		AI:   &config.AIConfig{Model: "gpt-4o-mini", Token: "gh-token", Domain: "BCIT Assistant", Temperature: 0.7, MaxTokens: 1000},
	}
	cfg.Env.Env = "test"
	cfg.JWT.Key = "server_test_signing_key_long_enough_for_hs256"
	cfg.JWT.TTL = 2 * time.Hour
	cfg.HTTP.MaxRequestBodySize = "16KB"

	hasher, err := auth.NewPasswordHasher(cfg)
	require.NoError(t, err)
	tokens, err := auth.NewJWTService(cfg, service.SystemClock())
	require.NoError(t, err)
	v := validation.New()

	users, err := impl.NewUserService(impl.UserServiceParams{
		UserRepo:     memory.NewUserRepository(),
		Hasher:       hasher,
		TokenService: tokens,
		Validator:    v,
		Clock:        service.SystemClock(),
		Logger:       logger,
	})
	require.NoError(t, err)

	chat := mockSvc.NewMockChatCompletionClient(t)
	prompts := impl.NewPromptService(impl.PromptServiceParams{Config: cfg, Client: chat, Logger: logger})

	e := newEcho(HTTPParams{
		Config:              cfg,
		Logger:              logger,
		Validator:           v,
		ErrorMiddleware:     middleware.NewErrorMiddleware(logger),
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(logger),
		LoggerMiddleware:    middleware.NewLoggerMiddleware(logger, cfg),
		RouterParams: router.RouterParams{
			UserHandler:    handler.NewUserHandler(users, logger),
			AIHandler:      handler.NewAIHandler(prompts, logger),
			AuthMiddleware: middleware.NewAuthMiddleware(tokens, logger),
		},
	})

	return testApp{echo: e, chat: chat, tokens: tokens}
}

func (a testApp) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

const adaBody = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"secret1"}`

func TestServer_RegisterLoginMePrompt(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(t, stdhttp.MethodPost, "/api/auth/register", adaBody, "")
	require.Equal(t, stdhttp.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")

	var registered entity.PublicUser
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.Equal(t, "ada@example.com", registered.Email)

	rec, env = app.do(t, stdhttp.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"secret1"}`, "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var login struct {
		Token     string             `json:"token"`
		ExpiresAt time.Time          `json:"expiresAt"`
		User      *entity.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, registered.ID, login.User.ID)
	assert.False(t, login.User.LastLogin.Before(registered.LastLogin))

	rec, env = app.do(t, stdhttp.MethodGet, "/api/auth/me", "", login.Token)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var me entity.PublicUser
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, registered.ID, me.ID)

	app.chat.EXPECT().Complete(mock.Anything, mock.AnythingOfType("*entity.ChatRequest")).
		Return(&entity.ChatResponse{Content: "Burnaby, BC."}, nil).Twice()

	for _, body := range []string{`"Where is BCIT?"`, `{"prompt":"Where is BCIT?"}`} {
		rec, env = app.do(t, stdhttp.MethodPost, "/api/ai/prompt", body, login.Token)
		require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
		var answer struct {
			Response string `json:"response"`
			Model    string `json:"model"`
			Domain   string `json:"domain"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &answer))
		assert.Equal(t, "Burnaby, BC.", answer.Response)
		assert.Equal(t, "gpt-4o-mini", answer.Model)
		assert.Equal(t, "BCIT Assistant", answer.Domain)
	}
}

func TestServer_DuplicateRegistrationConflicts(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, stdhttp.MethodPost, "/api/auth/register", adaBody, "")
	require.Equal(t, stdhttp.StatusCreated, rec.Code)

	rec, env := app.do(t, stdhttp.MethodPost, "/api/auth/register", adaBody, "")
	assert.Equal(t, stdhttp.StatusConflict, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Email already registered.", env.Message)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EMAIL_ALREADY_REGISTERED", env.Error.Code)
}

func TestServer_LoginFailuresAreUniform(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, stdhttp.MethodPost, "/api/auth/register", adaBody, "")
	require.Equal(t, stdhttp.StatusCreated, rec.Code)

	wrongRec, wrong := app.do(t, stdhttp.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"nope"}`, "")
	unknownRec, unknown := app.do(t, stdhttp.MethodPost, "/api/auth/login", `{"email":"ghost@example.com","password":"secret1"}`, "")

	assert.Equal(t, stdhttp.StatusUnauthorized, wrongRec.Code)
	assert.Equal(t, stdhttp.StatusUnauthorized, unknownRec.Code)
	assert.Equal(t, "Invalid credentials.", wrong.Message)
	assert.Equal(t, wrong, unknown)
}

func TestServer_RegistrationValidation(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(t, stdhttp.MethodPost, "/api/auth/register", `{"firstName":"","lastName":"L","email":"nope","password":"123"}`, "")
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	fields := make([]string, 0, len(env.Error.Fields))
	for _, f := range env.Error.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"firstName", "email", "password"}, fields)

	rec, env = app.do(t, stdhttp.MethodPost, "/api/auth/register", `{"firstName":`, "")
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestServer_ProtectedRoutesRequireBearer(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{name: "missing", header: "", code: "MISSING_TOKEN"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", code: "INVALID_TOKEN"},
		{name: "empty bearer", header: "Bearer ", code: "INVALID_TOKEN"},
		{name: "garbage", header: "Bearer not.a.token", code: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, route := range []struct{ method, path string }{
				{stdhttp.MethodGet, "/api/auth/me"},
				{stdhttp.MethodPost, "/api/ai/prompt"},
			} {
				req := httptest.NewRequest(route.method, route.path, strings.NewReader(`"hi"`))
				if tt.header != "" {
					req.Header.Set(echo.HeaderAuthorization, tt.header)
				}
				rec := httptest.NewRecorder()
				app.echo.ServeHTTP(rec, req)

				assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code, route.path)
				var env envelope
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
				assert.Equal(t, tt.code, env.Error.Code)
			}
		})
	}
}

func TestServer_PromptValidation(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, stdhttp.MethodPost, "/api/auth/register", adaBody, "")
	require.Equal(t, stdhttp.StatusCreated, rec.Code)
	_, env := app.do(t, stdhttp.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"secret1"}`, "")
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	rec, env = app.do(t, stdhttp.MethodPost, "/api/ai/prompt", `"   "`, login.Token)
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	rec, env = app.do(t, stdhttp.MethodPost, "/api/ai/prompt", `42`, login.Token)
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)

	rec, _ = app.do(t, stdhttp.MethodPost, "/api/ai/prompt", `"`+strings.Repeat("a", 20*1024)+`"`, login.Token)
	assert.Equal(t, stdhttp.StatusRequestEntityTooLarge, rec.Code)
}

func TestServer_HealthAndRequestID(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(stdhttp.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
}

func TestServer_CORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(stdhttp.MethodOptions, "/api/auth/login", nil)
	req.Header.Set(echo.HeaderOrigin, "https://frontend.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, stdhttp.MethodPost)
	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	assert.Equal(t, stdhttp.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestServer_UnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(t, stdhttp.MethodGet, "/nope", "", "")
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}

func TestHTTPServer_StopWithoutStart(t *testing.T) {
	app := newTestApp(t)
	srv := &httpServer{cfg: &config.Config{}, logger: slog.Default(), server: app.echo}

	assert.NoError(t, srv.stop(context.Background()))
}
