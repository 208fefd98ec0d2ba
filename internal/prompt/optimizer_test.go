package prompt

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"brandgenius/internal/infra"
)

type fakeGenerator struct {
	generate func(ctx context.Context, system, user string) (string, error)
}

func (f fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	return f.generate(ctx, system, user)
}

func (f fakeGenerator) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	return "", errors.New("not implemented")
}

func discardLogger() *infra.Logger {
	l := infra.Logger(zerolog.New(io.Discard))
	return &l
}

func TestOptimizeReturnsRewrittenPrompt(t *testing.T) {
	var gotSystem, gotUser string
	gen := fakeGenerator{generate: func(ctx context.Context, system, user string) (string, error) {
		gotSystem, gotUser = system, user
		return "  A minimalist pastel flat-lay of a ceramic coffee cup on linen.  ", nil
	}}
	opt := NewOptimizer(gen, 0, discardLogger())

	got := opt.Optimize(context.Background(), "a coffee cup", "Minimalist, pastel colors, no text overlays")
	if got != "A minimalist pastel flat-lay of a ceramic coffee cup on linen." {
		t.Fatalf("Optimize = %q", got)
	}
	if !strings.Contains(gotSystem, "visual prompt engineer") {
		t.Fatalf("system instruction not compiled: %q", gotSystem)
	}
	if !strings.Contains(gotUser, "Minimalist, pastel colors") || !strings.Contains(gotUser, "a coffee cup") {
		t.Fatalf("user turn missing inputs: %q", gotUser)
	}
}

func TestOptimizeFallsBackToOriginalOnFailure(t *testing.T) {
	gen := fakeGenerator{generate: func(ctx context.Context, system, user string) (string, error) {
		return "", errors.New("timeout")
	}}
	opt := NewOptimizer(gen, 0, discardLogger())

	for _, userPrompt := range []string{"a coffee cup", "storefront at dusk", "x"} {
		if got := opt.Optimize(context.Background(), userPrompt, "any context"); got != userPrompt {
			t.Fatalf("Optimize(%q) = %q, want the original prompt", userPrompt, got)
		}
	}
}

func TestOptimizeFallsBackOnEmptyRewrite(t *testing.T) {
	gen := fakeGenerator{generate: func(ctx context.Context, system, user string) (string, error) {
		return "   \n  ", nil
	}}
	opt := NewOptimizer(gen, 0, discardLogger())

	if got := opt.Optimize(context.Background(), "a coffee cup", ""); got != "a coffee cup" {
		t.Fatalf("Optimize = %q, want the original prompt", got)
	}
}
