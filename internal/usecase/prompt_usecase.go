package usecase

import "context"

// MaxPromptLength is the longest prompt, in characters, forwarded to the provider.
const MaxPromptLength = 4000

// PromptInput is a single user prompt for the assistant.
type PromptInput struct {
	Prompt string `json:"prompt"`
}

// PromptOutput is the assistant's reply.
type PromptOutput struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	Domain   string `json:"domain"`
}

// PromptUsecase proxies prompts to the hosted language model.
type PromptUsecase interface {
	SendPrompt(ctx context.Context, input *PromptInput) (*PromptOutput, error)
}
