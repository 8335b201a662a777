package service

import (
	"context"
	"strconv"

	"aiproxy/internal/domain/entity"
)

// ChatCompletionClient sends a conversation to the hosted language model.
type ChatCompletionClient interface {
	// Complete returns the first choice of the completion.
	// A non-2xx answer is an *UpstreamStatusError; an answer without a usable
	// choice is domainerrors.ErrMalformedUpstreamResponse.
	Complete(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error)
}

// UpstreamStatusError reports a non-success HTTP status from the provider.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *UpstreamStatusError) Error() string {
	return "upstream returned status " + strconv.Itoa(e.StatusCode)
}
