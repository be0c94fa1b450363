// Package llm 提供 LLM 提供商适配器与具体后端实现
package llm

import (
	"context"
	"errors"
	"fmt"

	"docforge-ai-api/internal/config"
)

// 支持的提供商
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderLorem     = "lorem"
)

// Request 单次补全请求
type Request struct {
	Prompt      string
	Temperature float64
	// MaxTokens 为 0 时使用后端配置值
	MaxTokens int
}

// TokenUsage token 消耗
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
}

// Completion 补全结果
type Completion struct {
	Text string
	// Usage 为 nil 表示由 eino 全局回调统计
	Usage *TokenUsage
}

// Backend 具体提供商后端
type Backend interface {
	Name() string
	Model() string
	Complete(ctx context.Context, req Request) (Completion, error)
}

// permanentError 不可重试的错误（鉴权失败、参数错误等）
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent 标记错误不可重试
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent 是否为不可重试错误
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// newBackend 按提供商名称创建后端，客户端在此处一次性初始化
func newBackend(ctx context.Context, name string, pc config.ProviderConfig) (Backend, error) {
	switch name {
	case ProviderOpenAI, ProviderGemini:
		return newEinoBackend(ctx, name, pc)
	case ProviderAnthropic:
		return newAnthropicBackend(pc)
	case ProviderLorem:
		return newLoremBackend(pc), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", name)
	}
}
