package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/retry"
)

// Completer sends one chat-completion request and returns the text of the first choice.
//
//go:generate mockgen -destination=../../mocks/mock_completer.go -package=mocks . Completer
type Completer interface {
	Complete(ctx context.Context, messages []core.ChatMessage) (string, error)
}

// OpenAICompleter talks to any OpenAI-compatible chat-completions endpoint.
type OpenAICompleter struct {
	client         openai.Client
	model          string
	requestTimeout time.Duration
	policy         retry.Policy
	logger         *slog.Logger
}

// NewOpenAICompleter creates a Completer for cfg. The SDK's own retries are turned
// off; transport failures are retried by a constant-delay policy instead.
func NewOpenAICompleter(cfg config.AIConfig, httpClient *http.Client, logger *slog.Logger) (*OpenAICompleter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, core.NewError(core.KindConfig, "llm client", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &OpenAICompleter{
		client:         openai.NewClient(opts...),
		model:          cfg.Model,
		requestTimeout: cfg.RequestTimeout,
		policy:         retry.ConstantPolicy("chat completion", cfg.MaxAttempts, cfg.RetryDelay),
		logger:         logger,
	}, nil
}

func (c *OpenAICompleter) Complete(ctx context.Context, messages []core.ChatMessage) (string, error) {
	params, err := c.params(messages)
	if err != nil {
		return "", err
	}

	return retry.Do(ctx, c.logger, c.policy, func(ctx context.Context) (string, error) {
		if c.requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
			defer cancel()
		}

		c.logger.DebugContext(ctx, "sending chat completion request", "model", c.model, "messages", len(messages))
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", classifyError(err)
		}
		if len(resp.Choices) == 0 {
			return "", core.NewError(core.KindTransient, "chat completion", errors.New("response has no choices"))
		}
		return resp.Choices[0].Message.Content, nil
	})
}

func (c *OpenAICompleter) params(messages []core.ChatMessage) (openai.ChatCompletionNewParams, error) {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			converted = append(converted, openai.SystemMessage(m.Content))
		case core.RoleUser:
			converted = append(converted, openai.UserMessage(m.Content))
		default:
			return openai.ChatCompletionNewParams{}, core.NewError(core.KindValidation, "chat completion", fmt.Errorf("unsupported message role %q", m.Role))
		}
	}
	return openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: converted,
	}, nil
}

// classifyError maps SDK and transport errors onto the core taxonomy.
func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return core.NewError(kindForStatus(apiErr.StatusCode), "chat completion", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	// Timeouts and connection failures.
	return core.NewError(core.KindTransient, "chat completion", err)
}

func kindForStatus(status int) core.Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return core.KindAuth
	case status == http.StatusRequestTimeout, status == http.StatusConflict,
		status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return core.KindTransient
	default:
		return core.KindAPI
	}
}
