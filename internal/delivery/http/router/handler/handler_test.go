package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "aiproxy/internal/delivery/context"
	"aiproxy/internal/delivery/http/response"
	"aiproxy/internal/domain/entity"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/service"
	mockUsecase "aiproxy/internal/mocks/usecase"
	"aiproxy/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data any) response.Response {
	t.Helper()

	var raw struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}

	return raw.Response
}

func TestUserHandler_RegisterUser(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	h := NewUserHandler(uc, discardLogger())

	user := &entity.PublicUser{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	uc.EXPECT().RegisterUser(mock.Anything, &usecase.RegisterUserInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret1",
	}).Return(&usecase.RegisterOutput{User: user}, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"secret1"}`)
	require.NoError(t, h.RegisterUser(c))

	var got entity.PublicUser
	body := decodeResponse(t, rec, &got)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserHandler_RegisterUser_BindingError(t *testing.T) {
	h := NewUserHandler(mockUsecase.NewMockUserUsecase(t), discardLogger())

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", `{"email":42}`)
	require.NoError(t, h.RegisterUser(c))

	body := decodeResponse(t, rec, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", body.Error.Code)
}

func TestUserHandler_RegisterUser_PropagatesUsecaseError(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	h := NewUserHandler(uc, discardLogger())

	uc.EXPECT().RegisterUser(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/register", `{"email":"dup@example.com"}`)
	err := h.RegisterUser(c)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserHandler_Login(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	h := NewUserHandler(uc, discardLogger())

	expires := time.Date(2026, 5, 4, 11, 0, 0, 0, time.UTC)
	uc.EXPECT().Login(mock.Anything, &usecase.LoginInput{Email: "ada@example.com", Password: "secret1"}).
		Return(&usecase.LoginOutput{Token: "signed", ExpiresAt: expires, User: &entity.PublicUser{Email: "ada@example.com"}}, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"secret1"}`)
	require.NoError(t, h.Login(c))

	var got usecase.LoginOutput
	decodeResponse(t, rec, &got)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed", got.Token)
	assert.True(t, expires.Equal(got.ExpiresAt))
}

func TestUserHandler_Me(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	h := NewUserHandler(uc, discardLogger())

	userID := uuid.New()
	uc.EXPECT().Me(mock.Anything, userID).Return(&entity.PublicUser{ID: userID, Email: "ada@example.com"}, nil)

	c, rec := newJSONContext(http.MethodGet, "/api/auth/me", "")
	deliverycontext.SetClaims(c, &service.Claims{UserID: userID})
	require.NoError(t, h.Me(c))

	var got entity.PublicUser
	decodeResponse(t, rec, &got)
	assert.Equal(t, userID, got.ID)
}

func TestUserHandler_Me_WithoutClaims(t *testing.T) {
	h := NewUserHandler(mockUsecase.NewMockUserUsecase(t), discardLogger())

	c, rec := newJSONContext(http.MethodGet, "/api/auth/me", "")
	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAIHandler_SendPrompt_AcceptsStringAndObject(t *testing.T) {
	for _, body := range []string{`"hello"`, `  "hello"  `, `{"prompt":"hello"}`} {
		uc := mockUsecase.NewMockPromptUsecase(t)
		h := NewAIHandler(uc, discardLogger())

		uc.EXPECT().SendPrompt(mock.Anything, &usecase.PromptInput{Prompt: "hello"}).
			Return(&usecase.PromptOutput{Response: "hi", Model: "gpt-4o-mini", Domain: "BCIT Assistant"}, nil)

		c, rec := newJSONContext(http.MethodPost, "/api/ai/prompt", body)
		require.NoError(t, h.SendPrompt(c))

		var got usecase.PromptOutput
		decodeResponse(t, rec, &got)
		assert.Equal(t, "hi", got.Response, body)
	}
}

func TestAIHandler_SendPrompt_EmptyBodyReachesValidation(t *testing.T) {
	uc := mockUsecase.NewMockPromptUsecase(t)
	h := NewAIHandler(uc, discardLogger())

	uc.EXPECT().SendPrompt(mock.Anything, &usecase.PromptInput{}).
		Return(nil, domainerrors.NewValidationError(domainerrors.FieldViolation{Field: "prompt", Message: "Prompt cannot be empty."}))

	c, _ := newJSONContext(http.MethodPost, "/api/ai/prompt", "")
	err := h.SendPrompt(c)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAIHandler_SendPrompt_RejectsOtherJSON(t *testing.T) {
	for _, body := range []string{`42`, `["a"]`, `"unterminated`, `{"prompt":7}`} {
		h := NewAIHandler(mockUsecase.NewMockPromptUsecase(t), discardLogger())

		c, rec := newJSONContext(http.MethodPost, "/api/ai/prompt", body)
		require.NoError(t, h.SendPrompt(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestAIHandler_SendPrompt_UsecaseErrorPropagates(t *testing.T) {
	uc := mockUsecase.NewMockPromptUsecase(t)
	h := NewAIHandler(uc, discardLogger())

	uc.EXPECT().SendPrompt(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrAIUnavailable)

	c, _ := newJSONContext(http.MethodPost, "/api/ai/prompt", `"hello"`)
	assert.True(t, errors.Is(h.SendPrompt(c), domainerrors.ErrAIUnavailable))
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")
	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

