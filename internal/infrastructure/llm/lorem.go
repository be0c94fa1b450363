package llm

import (
	"context"
	"strings"
	"sync"
	"time"

	loremgen "github.com/bozaro/golorem"

	"docforge-ai-api/internal/config"
)

// loremBackend 离线开发用后端，生成占位文本，不调用任何外部服务
type loremBackend struct {
	mu        sync.Mutex
	generator *loremgen.Lorem
	delay     time.Duration
}

func newLoremBackend(pc config.ProviderConfig) *loremBackend {
	return &loremBackend{
		generator: loremgen.New(),
		delay:     pc.Delay,
	}
}

func (b *loremBackend) Name() string  { return ProviderLorem }
func (b *loremBackend) Model() string { return "lorem-ipsum" }

// Complete 模拟网络延迟后返回若干段落
func (b *loremBackend) Complete(ctx context.Context, req Request) (Completion, error) {
	if err := sleepContext(ctx, b.delay); err != nil {
		return Completion{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	paragraphs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		paragraphs = append(paragraphs, b.generator.Paragraph(3, 5))
	}
	text := strings.Join(paragraphs, "\n\n")

	return Completion{
		Text: text,
		Usage: &TokenUsage{
			PromptTokens:     len(strings.Fields(req.Prompt)),
			CompletionTokens: len(strings.Fields(text)),
		},
	}, nil
}
