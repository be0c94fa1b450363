package service

import (
	"context"
	"strings"
)

type llmCtxKey struct{ name string }

var (
	workflowKey = llmCtxKey{"workflow"}
	providerKey = llmCtxKey{"provider"}
)

const unknownLabel = "unknown"

// WithWorkflow 标记本次 LLM 调用所属的业务流程（用于指标与追踪标签）
func WithWorkflow(ctx context.Context, workflow string) context.Context {
	return withLabel(ctx, workflowKey, workflow)
}

// WithProvider 标记本次 LLM 调用使用的提供商
func WithProvider(ctx context.Context, provider string) context.Context {
	return withLabel(ctx, providerKey, provider)
}

// WorkflowFromContext 读取业务流程标签，缺省为 unknown
func WorkflowFromContext(ctx context.Context) string {
	return labelFromContext(ctx, workflowKey)
}

// ProviderFromContext 读取提供商标签，缺省为 unknown
func ProviderFromContext(ctx context.Context) string {
	return labelFromContext(ctx, providerKey)
}

func withLabel(ctx context.Context, key llmCtxKey, value string) context.Context {
	v := strings.TrimSpace(value)
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func labelFromContext(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknownLabel
	}
	if s, ok := ctx.Value(key).(string); ok && s != "" {
		return s
	}
	return unknownLabel
}
