// Package service 定义跨层的领域服务契约（port）
package service

import "context"

// DefaultTemperature 未指定时的采样温度
const DefaultTemperature = 0.7

// TextGenerator LLM 提供商适配器契约
// 实现需保证：失败统一返回 CodeGenerationFailed，成功返回去除首尾空白的文本
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)

	// Provider 返回进程启动时选定的提供商名称
	Provider() string
}

// GenerateOptions 单次生成参数
type GenerateOptions struct {
	Temperature float64
	// MaxTokens 为 0 时使用提供商配置
	MaxTokens int
}

// GenerateOption 生成参数选项
type GenerateOption func(*GenerateOptions)

// WithTemperature 设置采样温度
func WithTemperature(t float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = t
	}
}

// WithMaxTokens 设置最大输出 token 数
func WithMaxTokens(n int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = n
	}
}

// ApplyGenerateOptions 合并选项
func ApplyGenerateOptions(defaultTemperature float64, opts ...GenerateOption) GenerateOptions {
	o := GenerateOptions{Temperature: defaultTemperature}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
