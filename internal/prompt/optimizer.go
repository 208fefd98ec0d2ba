package prompt

import (
	"context"
	"strings"

	"brandgenius/internal/infra"
	"brandgenius/internal/providers/text"
)

// Optimizer rewrites a terse user request into a detailed, brand-aligned
// visual description by chaining a fast text model.
type Optimizer struct {
	generator    text.Generator
	contextLimit int
	logger       *infra.Logger
}

// NewOptimizer constructs an optimizer around the given text provider.
// contextLimit caps the guideline text embedded in the rewrite instruction;
// zero means MaxContextChars.
func NewOptimizer(generator text.Generator, contextLimit int, logger *infra.Logger) *Optimizer {
	return &Optimizer{generator: generator, contextLimit: contextLimit, logger: logger}
}

// Optimize returns the detailed visual prompt, or the original userPrompt
// unchanged if the rewrite step fails for any reason. Image generation should
// proceed with a plausible prompt rather than fail the whole request, so this
// never returns an error.
func (o *Optimizer) Optimize(ctx context.Context, userPrompt, brandContext string) string {
	system, user := CompileVisualOptimization(userPrompt, brandContext, o.contextLimit)
	rewritten, err := o.generator.Generate(ctx, system, user)
	if err != nil {
		if o.logger != nil {
			o.logger.Warn().Err(err).Msg("prompt optimization failed, using original prompt")
		}
		return userPrompt
	}
	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		if o.logger != nil {
			o.logger.Warn().Msg("prompt optimization returned empty text, using original prompt")
		}
		return userPrompt
	}
	return rewritten
}
