package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"aiproxy/config"
	deliverycontext "aiproxy/internal/delivery/context"
	"aiproxy/internal/domain/entity"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/service"
	"aiproxy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DefaultSystemPrompt grounds the assistant when ai.systemPrompt is not configured.
const DefaultSystemPrompt = `You are a great assistant dedicated to providing accurate and factual information. Your core principles are:

1. **Accuracy First**: Always strive to provide the most accurate and up-to-date information available
2. **Factual Foundation**: Base your responses on verified facts and reliable sources
3. **Honest About Limitations**: If you don't know something, be transparent about it
4. **Guidance When Uncertain**: When you lack specific information, provide clear instructions on how the user can find accurate information
5. **Helpful Resources**: Suggest appropriate sources, websites, contacts, or methods for obtaining reliable information

Response Guidelines:
- Provide clear, well-structured answers
- Cite general knowledge areas when appropriate
- If uncertain, say 'I don't have specific information about this, but here's how you can find accurate details...'
- Suggest authoritative sources like official websites, government agencies, academic institutions, or professional organizations
- Maintain a helpful, supportive, and professional tone
- Ask clarifying questions if the request is ambiguous

Your goal is to be genuinely helpful while maintaining the highest standards of information accuracy and reliability.`

// maxUpstreamDetail caps how much of a provider error body is echoed back.
const maxUpstreamDetail = 512

type promptService struct {
	client service.ChatCompletionClient
	cfg    config.AIConfig
	logger *slog.Logger
}

// PromptServiceParams holds dependencies for PromptService, injected by Fx.
type PromptServiceParams struct {
	fx.In

	Config *config.Config
	Client service.ChatCompletionClient
	Logger *slog.Logger
}

// NewPromptService is the constructor for promptService.
func NewPromptService(params PromptServiceParams) usecase.PromptUsecase {
	var aiCfg config.AIConfig
	if params.Config != nil && params.Config.AI != nil {
		aiCfg = *params.Config.AI
	}
	if strings.TrimSpace(aiCfg.SystemPrompt) == "" {
		aiCfg.SystemPrompt = DefaultSystemPrompt
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &promptService{
		client: params.Client,
		cfg:    aiCfg,
		logger: logger,
	}
}

func (srv *promptService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendPrompt forwards a single user prompt to the provider and returns the first choice.
func (srv *promptService) SendPrompt(ctx context.Context, input *usecase.PromptInput) (*usecase.PromptOutput, error) {
	prompt := ""
	if input != nil {
		prompt = input.Prompt
	}

	if strings.TrimSpace(prompt) == "" {
		return nil, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   "prompt",
			Message: "Prompt cannot be empty.",
		})
	}
	if utf8.RuneCountInString(prompt) > usecase.MaxPromptLength {
		return nil, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   "prompt",
			Message: "Prompt too long. Maximum " + strconv.Itoa(usecase.MaxPromptLength) + " characters allowed.",
		})
	}

	if srv.cfg.Token == "" || srv.client == nil {
		srv.log(ctx).Warn("AI provider token is not configured")

		return nil, domainerrors.ErrAIUnavailable.WrapMessage("prompt rejected")
	}

	resp, err := srv.client.Complete(ctx, &entity.ChatRequest{
		Model: srv.cfg.Model,
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleSystem, Content: srv.cfg.SystemPrompt},
			{Role: entity.ChatRoleUser, Content: prompt},
		},
		Temperature: srv.cfg.Temperature,
		MaxTokens:   srv.cfg.MaxTokens,
	})
	if err != nil {
		var statusErr *service.UpstreamStatusError
		if errors.As(err, &statusErr) {
			srv.log(ctx).Warn("AI provider rejected the prompt",
				slog.Int("status", statusErr.StatusCode),
				slog.String("body", truncate(statusErr.Body, maxUpstreamDetail)))

			return nil, errors.WithStack(domainerrors.ErrUpstreamFailed.WithDetails(
				"provider status " + strconv.Itoa(statusErr.StatusCode)))
		}
		if errors.Is(err, domainerrors.ErrMalformedUpstreamResponse) {
			srv.log(ctx).Warn("AI provider returned an unreadable completion", slog.Any("error", err))

			return nil, err
		}
		srv.log(ctx).Error("AI provider call failed", slog.Any("error", err))

		return nil, domainerrors.ErrUpstreamFailed.WithCause(err)
	}

	return &usecase.PromptOutput{
		Response: resp.Content,
		Model:    srv.cfg.Model,
		Domain:   srv.cfg.Domain,
	}, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return s[:limit]
}
