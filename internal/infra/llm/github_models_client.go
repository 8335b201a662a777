// Package llm talks to the hosted chat-completion provider.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"aiproxy/config"
	"aiproxy/internal/domain/entity"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	// UserAgent identifies this service to the provider.
	UserAgent = "AiMiddleTierApp"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
	maxReplyBody   = 1 << 20
)

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []entity.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// githubModelsClient implements service.ChatCompletionClient against an
// OpenAI-compatible chat/completions endpoint such as GitHub Models.
type githubModelsClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewChatCompletionClient builds the provider client from the ai config section.
func NewChatCompletionClient(cfg *config.Config) service.ChatCompletionClient {
	var aiCfg config.AIConfig
	if cfg != nil && cfg.AI != nil {
		aiCfg = *cfg.AI
	}

	timeout := aiCfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return newGitHubModelsClient(aiCfg.Endpoint, aiCfg.Token, &http.Client{Timeout: timeout})
}

func newGitHubModelsClient(endpoint, token string, httpClient *http.Client) *githubModelsClient {
	return &githubModelsClient{
		endpoint:   strings.TrimSpace(endpoint),
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

// Complete posts the conversation and returns the first choice.
func (c *githubModelsClient) Complete(ctx context.Context, chatReq *entity.ChatRequest) (*entity.ChatResponse, error) {
	if c.endpoint == "" {
		return nil, errors.New("chat completion endpoint is not configured")
	}
	if chatReq == nil {
		return nil, errors.New("chat request is required")
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       chatReq.Model,
		Messages:    chatReq.Messages,
		Temperature: chatReq.Temperature,
		MaxTokens:   chatReq.MaxTokens,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal chat completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build chat completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	// The token only ever travels in this header; it is never part of an error.
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "chat completion request failed")
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, readErr := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		if readErr != nil {
			return nil, errors.Wrap(readErr, "read chat completion error body")
		}

		return nil, errors.WithStack(&service.UpstreamStatusError{
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		})
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxReplyBody)).Decode(&decoded); err != nil {
		return nil, domainerrors.ErrMalformedUpstreamResponse.WithCause(err)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == nil {
		return nil, domainerrors.ErrMalformedUpstreamResponse.WrapMessage("completion has no message content")
	}

	model := decoded.Model
	if model == "" {
		model = chatReq.Model
	}

	return &entity.ChatResponse{
		Model:   model,
		Content: *decoded.Choices[0].Message.Content,
	}, nil
}
