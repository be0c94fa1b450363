package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"docforge-ai-api/internal/config"
)

// anthropicBackend Claude Messages API 后端
type anthropicBackend struct {
	client    anthropic.Client
	modelName string
	maxTokens int
}

func newAnthropicBackend(pc config.ProviderConfig) (*anthropicBackend, error) {
	if pc.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	// SDK 内置重试关闭，由 Adapter 统一重试
	opts := []option.RequestOption{
		option.WithAPIKey(pc.APIKey),
		option.WithMaxRetries(0),
	}
	if pc.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(pc.BaseURL))
	}
	if pc.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(pc.Timeout))
	}

	maxTokens := pc.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &anthropicBackend{
		client:    anthropic.NewClient(opts...),
		modelName: pc.Model,
		maxTokens: maxTokens,
	}, nil
}

func (b *anthropicBackend) Name() string  { return ProviderAnthropic }
func (b *anthropicBackend) Model() string { return b.modelName }

// Complete 调用 Messages API
func (b *anthropicBackend) Complete(ctx context.Context, req Request) (Completion, error) {
	maxTokens := b.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	// Claude 的温度范围为 [0,1]
	temperature := req.Temperature
	if temperature > 1 {
		temperature = 1
	}

	msg, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(b.modelName),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return Completion{}, classifyAnthropicError(err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return Completion{
		Text: sb.String(),
		Usage: &TokenUsage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}

// classifyAnthropicError 4xx（408/429 除外）不重试
func classifyAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if isClientError(apiErr.StatusCode) {
			return Permanent(fmt.Errorf("anthropic api call failed: %w", err))
		}
	}
	return fmt.Errorf("anthropic api call failed: %w", err)
}
