package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"aiproxy/internal/delivery/http/response"
	"aiproxy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AIHandler proxies prompts from authenticated users to the assistant.
type AIHandler struct {
	uc     usecase.PromptUsecase
	logger *slog.Logger
}

// NewAIHandler is the constructor for AIHandler, injected by Fx.
func NewAIHandler(uc usecase.PromptUsecase, logger *slog.Logger) *AIHandler {
	return &AIHandler{
		uc:     uc,
		logger: logger,
	}
}

// SendPrompt accepts either a bare JSON string or {"prompt": "..."}.
func (h *AIHandler) SendPrompt(c echo.Context) error {
	input, err := decodePrompt(c.Request().Body)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			// Body limit exceeded while reading.
			return errors.WithStack(err)
		}

		return response.BadRequest(c, "INVALID_INPUT", "Body must be a JSON string or an object with a prompt field")
	}

	output, err := h.uc.SendPrompt(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Prompt answered")
}

func decodePrompt(body io.Reader) (*usecase.PromptInput, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "read prompt body")
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &usecase.PromptInput{}, nil
	}

	switch raw[0] {
	case '"':
		var prompt string
		if err := json.Unmarshal(raw, &prompt); err != nil {
			return nil, errors.Wrap(err, "decode prompt string")
		}

		return &usecase.PromptInput{Prompt: prompt}, nil
	case '{':
		var input usecase.PromptInput
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, errors.Wrap(err, "decode prompt object")
		}

		return &input, nil
	default:
		return nil, errors.New("unsupported prompt body")
	}
}
