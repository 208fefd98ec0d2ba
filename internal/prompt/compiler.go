// Package prompt builds the literal instructions sent to the generative models
// and runs the visual prompt optimization chain.
package prompt

import (
	"fmt"
	"strings"

	"brandgenius/internal/brand"
)

// MaxContextChars is the default bound on how much guideline text is embedded
// into a compiled prompt, keeping request size and cost predictable for large
// uploads. Callers override it per deployment via CONTEXT_CHAR_LIMIT.
const MaxContextChars = 10000

const optimizerSystemInstruction = "You are an expert visual prompt engineer. Rewrite the user request into a highly detailed visual description that matches the Brand Guidelines. Output ONLY the rewritten prompt."

const analyzerInstruction = "Describe the lighting, color palette, and composition of this reference image, then combine that style description with the request below into a single detailed visual prompt."

const auditSchema = `{"overall_score":<integer 0-100>,"tone_score":<integer 0-100>,"rubric_breakdown":[<strings>],"improvement_suggestions":<string>}`

// TruncateContext caps guideline text at limit runes and substitutes the
// default persona when no context was supplied. A non-positive limit falls
// back to MaxContextChars.
func TruncateContext(context string, limit int) string {
	if limit <= 0 {
		limit = MaxContextChars
	}
	context = strings.TrimSpace(context)
	if context == "" {
		return brand.DefaultContext
	}
	runes := []rune(context)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return context
}

// CompileCopySystem is the system instruction for on-brand copy generation.
func CompileCopySystem(context string, limit int) string {
	return fmt.Sprintf("You are a Senior Brand Strategist. Strictly adhere to these guidelines:\n\n%s", TruncateContext(context, limit))
}

// CompileVisualOptimization returns the system and user instructions for the
// prompt-rewriting stage of the image pipeline.
func CompileVisualOptimization(userRequest, context string, limit int) (system, user string) {
	user = fmt.Sprintf("BRAND GUIDELINES:\n%s\n\nUSER REQUEST: %s\n\nDETAILED VISUAL PROMPT:", TruncateContext(context, limit), userRequest)
	return optimizerSystemInstruction, user
}

// CompileStyleAnalysis returns the instruction that accompanies a style
// reference image on the multimodal analysis call.
func CompileStyleAnalysis(userRequest string) string {
	return fmt.Sprintf("%s\n\nREQUEST: %s", analyzerInstruction, userRequest)
}

// CompileAudit returns the system and user instructions for a structured
// compliance audit of arbitrary content.
func CompileAudit(content, context string, limit int) (system, user string) {
	system = fmt.Sprintf(
		"You are a brand compliance auditor. Judge content strictly against these guidelines:\n\n%s\n\nRespond with ONLY a JSON object matching this schema, no prose and no markdown: %s",
		TruncateContext(context, limit), auditSchema)
	user = fmt.Sprintf("CONTENT TO AUDIT:\n%s", content)
	return system, user
}
