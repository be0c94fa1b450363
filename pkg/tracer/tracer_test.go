package tracer

import (
	"context"
	"testing"
)

func TestNewSampler(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.5, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range cases {
		if got := newSampler(tc.rate).Description(); got != tc.want {
			t.Errorf("rate %v: got %q want %q", tc.rate, got, tc.want)
		}
	}
}

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	ctx, span := Start(context.Background(), "test.span")
	defer span.End()
	if TraceID(ctx) != "" {
		t.Fatalf("noop tracer should not produce a valid trace id")
	}
}
