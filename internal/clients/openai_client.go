package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/sentiaura/config"
)

var ErrEmptyCompletion = errors.New("openai returned no content")

type OpenAIClient struct {
	Client *openai.Client
	model  string
}

// NewOpenAIClient builds a client once at startup; it holds no per-request state
// and is safe for concurrent use.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithHeader("User-Agent", USER_AGENT),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout),
		slog.Int("max_retries", cfg.MaxRetries))

	return &OpenAIClient{
		Client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Complete sends a single system+user exchange asking for a JSON object and
// returns the raw content of the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	start := time.Now()

	completion, err := c.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userText),
		}),
		Model:       openai.F(openai.ChatModel(c.model)),
		Temperature: openai.Float(OPENAI_TEMPERATURE),
		ResponseFormat: openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONObjectParam{
				Type: openai.F(openai.ResponseFormatJSONObjectTypeJSONObject),
			},
		),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			slog.Error("[OpenAIClient] Chat completion rejected",
				slog.Int("status_code", apiErr.StatusCode),
				slog.Duration("elapsed", time.Since(start)))
		} else {
			slog.Error("[OpenAIClient] Chat completion failed",
				slog.String("error", err.Error()),
				slog.Duration("elapsed", time.Since(start)))
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: zero choices", ErrEmptyCompletion)
	}

	choice := completion.Choices[0]
	slog.Debug("[OpenAIClient] Chat completion finished",
		slog.String("finish_reason", string(choice.FinishReason)),
		slog.Duration("elapsed", time.Since(start)))

	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("%w: finish_reason=%s", ErrEmptyCompletion, choice.FinishReason)
	}

	return choice.Message.Content, nil
}
