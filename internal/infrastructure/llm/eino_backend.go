package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	goopenai "github.com/meguminnnnnnnnn/go-openai"

	"docforge-ai-api/internal/config"
)

// einoBackend 基于 Eino OpenAI ChatModel 的后端
// gemini 通过其 OpenAI 兼容端点接入
type einoBackend struct {
	name      string
	modelName string
	chat      model.BaseChatModel
}

func newEinoBackend(ctx context.Context, name string, pc config.ProviderConfig) (*einoBackend, error) {
	if pc.APIKey == "" {
		return nil, fmt.Errorf("%s api key is required", name)
	}

	maxTokens := pc.MaxTokens
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:    pc.APIKey,
		BaseURL:   pc.BaseURL,
		Model:     pc.Model,
		MaxTokens: &maxTokens,
		Timeout:   pc.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	return &einoBackend{
		name:      name,
		modelName: pc.Model,
		chat:      chatModel,
	}, nil
}

func (b *einoBackend) Name() string  { return b.name }
func (b *einoBackend) Model() string { return b.modelName }

// Complete 单轮用户消息补全，token 统计交给全局回调
func (b *einoBackend) Complete(ctx context.Context, req Request) (Completion, error) {
	msgs := []*schema.Message{schema.UserMessage(req.Prompt)}

	opts := []model.Option{model.WithTemperature(float32(req.Temperature))}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}

	out, err := b.chat.Generate(ctx, msgs, opts...)
	if err != nil {
		return Completion{}, classifyEinoError(b.name, err)
	}
	if out == nil {
		return Completion{}, errEmptyOutput
	}
	return Completion{Text: out.Content}, nil
}

// classifyEinoError 4xx（408/429 除外）不重试
func classifyEinoError(name string, err error) error {
	wrapped := fmt.Errorf("%s api call failed: %w", name, err)
	if isClientError(einoStatusCode(err)) {
		return Permanent(wrapped)
	}
	return wrapped
}

// einoStatusCode 提取 HTTP 状态码，未知时返回 0
func einoStatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var rawAPIErr *goopenai.APIError
	if errors.As(err, &rawAPIErr) {
		return rawAPIErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func isClientError(status int) bool {
	return status >= 400 && status < 500 &&
		status != http.StatusTooManyRequests && status != http.StatusRequestTimeout
}
