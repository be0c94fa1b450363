package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/service"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
	"docforge-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("llm")

var errEmptyOutput = errors.New("empty llm response")

// Options 适配器调用策略
type Options struct {
	Temperature  float64
	CallTimeout  time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Adapter 统一的文本生成入口，实现 service.TextGenerator
type Adapter struct {
	backend Backend
	opts    Options
}

var _ service.TextGenerator = (*Adapter)(nil)

// NewAdapter 根据配置创建适配器，后端客户端在此一次性构建
func NewAdapter(ctx context.Context, cfg *config.LLMConfig) (*Adapter, error) {
	pc, ok := cfg.Active()
	if !ok {
		return nil, fmt.Errorf("llm provider %q not configured", cfg.Provider)
	}

	backend, err := newBackend(ctx, cfg.Provider, pc)
	if err != nil {
		return nil, err
	}

	return NewAdapterWithBackend(backend, Options{
		Temperature:  cfg.Temperature,
		CallTimeout:  cfg.CallTimeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}), nil
}

// NewAdapterWithBackend 使用指定后端创建适配器
func NewAdapterWithBackend(backend Backend, opts Options) *Adapter {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Adapter{backend: backend, opts: opts}
}

// Provider 当前提供商
func (a *Adapter) Provider() string {
	return a.backend.Name()
}

// Generate 生成文本
// 每次尝试受 CallTimeout 约束，失败按指数退避重试；最终失败统一为 CodeGenerationFailed
func (a *Adapter) Generate(ctx context.Context, prompt string, opts ...service.GenerateOption) (string, error) {
	o := service.ApplyGenerateOptions(a.opts.Temperature, opts...)

	provider := a.backend.Name()
	modelName := a.backend.Model()
	ctx = service.WithProvider(ctx, provider)
	workflow := service.WorkflowFromContext(ctx)

	ctx, span := tracer.Start(ctx, "llm.Adapter.Generate", trace.WithAttributes(
		attribute.String("llm.provider", provider),
		attribute.String("llm.model", modelName),
		attribute.String("eino.workflow", workflow),
		attribute.Float64("llm.temperature", o.Temperature),
		attribute.Int("llm.prompt_chars", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	req := Request{Prompt: prompt, Temperature: o.Temperature, MaxTokens: o.MaxTokens}
	comp, attempts, err := a.completeWithRetry(ctx, req)

	metrics.LLMCallDuration.WithLabelValues(workflow, provider, modelName).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("llm.attempts", attempts))

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(workflow, provider, modelName, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", apperrors.ErrGenerationFailed.WithDetail(err.Error()).WithError(err)
	}

	metrics.LLMCallTotal.WithLabelValues(workflow, provider, modelName, "success").Inc()
	if comp.Usage != nil {
		metrics.LLMTokensUsed.WithLabelValues(workflow, provider, modelName, "prompt").Add(float64(comp.Usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(workflow, provider, modelName, "completion").Add(float64(comp.Usage.CompletionTokens))
	}
	return comp.Text, nil
}

// completeWithRetry 执行带超时与重试的补全，返回去除首尾空白的结果
func (a *Adapter) completeWithRetry(ctx context.Context, req Request) (Completion, int, error) {
	backoff := a.opts.RetryBackoff
	var lastErr error

	for attempt := 0; attempt <= a.opts.MaxRetries; attempt++ {
		comp, err := a.completeOnce(ctx, req)
		if err == nil {
			return comp, attempt + 1, nil
		}
		lastErr = err

		// 调用方取消或不可重试错误立即返回
		if ctx.Err() != nil || IsPermanent(err) || attempt == a.opts.MaxRetries {
			return Completion{}, attempt + 1, lastErr
		}

		metrics.LLMRetriesTotal.WithLabelValues(a.backend.Name()).Inc()
		logger.Warn(ctx, "llm call failed, retrying",
			"provider", a.backend.Name(),
			"attempt", attempt+1,
			"backoff", backoff.String(),
			"error", err.Error(),
		)

		if err := sleepContext(ctx, backoff); err != nil {
			return Completion{}, attempt + 1, lastErr
		}
		backoff *= 2
	}

	return Completion{}, a.opts.MaxRetries + 1, lastErr
}

func (a *Adapter) completeOnce(ctx context.Context, req Request) (Completion, error) {
	callCtx := ctx
	if a.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.opts.CallTimeout)
		defer cancel()
	}

	comp, err := a.backend.Complete(callCtx, req)
	if err != nil {
		return Completion{}, err
	}
	comp.Text = strings.TrimSpace(comp.Text)
	if comp.Text == "" {
		return Completion{}, errEmptyOutput
	}
	return comp, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
