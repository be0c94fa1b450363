package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/service"
	apperrors "docforge-ai-api/pkg/errors"
)

type scriptedBackend struct {
	mu       sync.Mutex
	replies  []string
	errs     []error
	calls    int
	requests []Request
	block    bool
}

func (b *scriptedBackend) Name() string  { return "fake" }
func (b *scriptedBackend) Model() string { return "fake-1" }

func (b *scriptedBackend) Complete(ctx context.Context, req Request) (Completion, error) {
	b.mu.Lock()
	i := b.calls
	b.calls++
	b.requests = append(b.requests, req)
	b.mu.Unlock()

	if b.block {
		<-ctx.Done()
		return Completion{}, ctx.Err()
	}
	if i < len(b.errs) && b.errs[i] != nil {
		return Completion{}, b.errs[i]
	}
	if i < len(b.replies) {
		return Completion{Text: b.replies[i]}, nil
	}
	return Completion{}, errors.New("no scripted reply")
}

func testOptions() Options {
	return Options{
		Temperature:  0.7,
		CallTimeout:  time.Second,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	}
}

func TestAdapter_TrimsOutputAndPassesOptions(t *testing.T) {
	backend := &scriptedBackend{replies: []string{"  \n hello world \n\t"}}
	a := NewAdapterWithBackend(backend, testOptions())

	got, err := a.Generate(context.Background(), "prompt", service.WithMaxTokens(128))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("got %q", got)
	}
	req := backend.requests[0]
	if req.Temperature != 0.7 || req.MaxTokens != 128 || req.Prompt != "prompt" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestAdapter_RetriesTransientFailures(t *testing.T) {
	backend := &scriptedBackend{
		errs:    []error{errors.New("503"), errors.New("reset")},
		replies: []string{"", "", "third time"},
	}
	a := NewAdapterWithBackend(backend, testOptions())

	got, err := a.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "third time" || backend.calls != 3 {
		t.Fatalf("got %q after %d calls", got, backend.calls)
	}
}

func TestAdapter_NormalizesFailureAfterExhaustion(t *testing.T) {
	cause := errors.New("quota exceeded")
	backend := &scriptedBackend{errs: []error{cause, cause, cause}}
	a := NewAdapterWithBackend(backend, testOptions())

	_, err := a.Generate(context.Background(), "p")
	if !apperrors.HasCode(err, apperrors.CodeGenerationFailed) {
		t.Fatalf("want CodeGenerationFailed, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause should be preserved: %v", err)
	}
	if appErr := apperrors.AsAppError(err); appErr.Detail != "quota exceeded" {
		t.Fatalf("detail=%q", appErr.Detail)
	}
	if backend.calls != 3 {
		t.Fatalf("calls=%d want 3", backend.calls)
	}
}

func TestAdapter_DoesNotRetryPermanentErrors(t *testing.T) {
	backend := &scriptedBackend{errs: []error{Permanent(errors.New("invalid api key"))}}
	a := NewAdapterWithBackend(backend, testOptions())

	if _, err := a.Generate(context.Background(), "p"); !apperrors.HasCode(err, apperrors.CodeGenerationFailed) {
		t.Fatalf("want CodeGenerationFailed, got %v", err)
	}
	if backend.calls != 1 {
		t.Fatalf("calls=%d want 1", backend.calls)
	}
}

func TestAdapter_EmptyOutputIsFailure(t *testing.T) {
	backend := &scriptedBackend{replies: []string{" ", "\n", "\t"}}
	a := NewAdapterWithBackend(backend, testOptions())

	_, err := a.Generate(context.Background(), "p")
	if !apperrors.HasCode(err, apperrors.CodeGenerationFailed) {
		t.Fatalf("want CodeGenerationFailed, got %v", err)
	}
}

func TestAdapter_CallTimeoutAndCancellation(t *testing.T) {
	backend := &scriptedBackend{block: true}
	opts := testOptions()
	opts.CallTimeout = 10 * time.Millisecond
	opts.MaxRetries = 1
	a := NewAdapterWithBackend(backend, opts)

	if _, err := a.Generate(context.Background(), "p"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
	if backend.calls != 2 {
		t.Fatalf("calls=%d want 2", backend.calls)
	}

	// 调用方取消后不再重试
	backend.calls = 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Generate(ctx, "p"); err == nil {
		t.Fatalf("expected error on cancelled context")
	}
	if backend.calls != 1 {
		t.Fatalf("calls=%d want 1", backend.calls)
	}
}

func TestNewAdapter_Lorem(t *testing.T) {
	cfg := &config.LLMConfig{
		Provider:    ProviderLorem,
		Providers:   map[string]config.ProviderConfig{ProviderLorem: {}},
		Temperature: 0.7,
		CallTimeout: time.Second,
	}
	a, err := NewAdapter(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	if a.Provider() != ProviderLorem {
		t.Fatalf("provider=%q", a.Provider())
	}
	text, err := a.Generate(context.Background(), "Project Topic: x")
	if err != nil || text == "" {
		t.Fatalf("text=%q err=%v", text, err)
	}
}

func TestNewAdapter_RejectsUnknownOrIncompleteProvider(t *testing.T) {
	cases := []*config.LLMConfig{
		{Provider: "mystery", Providers: map[string]config.ProviderConfig{"mystery": {}}},
		{Provider: ProviderOpenAI, Providers: map[string]config.ProviderConfig{}},
		{Provider: ProviderAnthropic, Providers: map[string]config.ProviderConfig{ProviderAnthropic: {Model: "claude"}}},
	}
	for _, cfg := range cases {
		if _, err := NewAdapter(context.Background(), cfg); err == nil {
			t.Errorf("provider %q: expected error", cfg.Provider)
		}
	}
}
