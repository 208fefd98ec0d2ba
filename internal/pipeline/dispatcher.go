// Package pipeline chains the prompt compiler, optimizer, reference analyzer,
// and provider calls into the four generation operations of the service.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"brandgenius/internal/audit"
	"brandgenius/internal/domain"
	"brandgenius/internal/imageconv"
	"brandgenius/internal/infra"
	"brandgenius/internal/prompt"
	"brandgenius/internal/providers/image"
	"brandgenius/internal/providers/text"
	"brandgenius/internal/providers/vision"
)

// Reference is an optional style-reference image supplied with a generation
// request.
type Reference struct {
	Data     []byte
	MimeType string
}

// GenerateRequest describes an image-generation request.
type GenerateRequest struct {
	Prompt    string
	Context   string
	Reference *Reference
}

// EditRequest describes an image-editing request over an uploaded source.
type EditRequest struct {
	Prompt  string
	Context string
	Source  []byte
	Mode    image.EditMode
}

// Asset is a generated or edited image returned to the caller.
type Asset struct {
	Data     []byte
	MimeType string
}

// Dispatcher routes finalized requests to the correct downstream capability
// and normalizes provider responses. Collaborator failures are caught here and
// surfaced as domain errors with a short cause, never as raw provider output.
type Dispatcher struct {
	text         text.Generator
	image        image.Generator
	vision       vision.Analyzer
	optimizer    *prompt.Optimizer
	contextLimit int
	logger       *infra.Logger
}

// NewDispatcher wires the dispatcher from its collaborators. contextLimit caps
// the guideline text embedded in compiled prompts; zero means
// prompt.MaxContextChars.
func NewDispatcher(textGen text.Generator, imageGen image.Generator, analyzer vision.Analyzer, optimizer *prompt.Optimizer, contextLimit int, logger *infra.Logger) *Dispatcher {
	return &Dispatcher{
		text:         textGen,
		image:        imageGen,
		vision:       analyzer,
		optimizer:    optimizer,
		contextLimit: contextLimit,
		logger:       logger,
	}
}

// GenerateCopy produces on-brand marketing copy for the given request.
func (d *Dispatcher) GenerateCopy(ctx context.Context, userPrompt, brandContext string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrInvalidRequest)
	}
	system := prompt.CompileCopySystem(brandContext, d.contextLimit)
	out, err := d.text.Generate(ctx, system, userPrompt)
	if err != nil {
		d.logger.Error().Err(err).Msg("copy generation failed")
		return "", fmt.Errorf("%w: text provider error: %v", domain.ErrGeneration, err)
	}
	return out, nil
}

// GenerateImage runs the optimize → (optional) analyze → generate chain and
// returns PNG bytes.
func (d *Dispatcher) GenerateImage(ctx context.Context, req GenerateRequest) (*Asset, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidRequest)
	}

	working := d.optimizer.Optimize(ctx, req.Prompt, req.Context)

	if req.Reference != nil && len(req.Reference.Data) > 0 {
		described, err := d.vision.Describe(ctx, req.Reference.Data, req.Reference.MimeType, prompt.CompileStyleAnalysis(working))
		if err != nil {
			// Degrade to the un-analyzed prompt rather than failing the
			// request; the image is still generated, just less style-tuned.
			d.logger.Warn().Err(err).Msg("style analysis failed, continuing with un-analyzed prompt")
		} else {
			working = described
		}
	}

	asset, err := d.image.Generate(ctx, image.GenerateRequest{
		Prompt: d.withContext(working, req.Context),
	})
	if err != nil {
		d.logger.Error().Err(err).Msg("image generation failed")
		return nil, fmt.Errorf("%w: image provider error: %v", domain.ErrGeneration, err)
	}
	return d.canonicalize(asset)
}

// EditImage normalizes the uploaded source to PNG, optimizes the prompt, and
// dispatches an edit-mode generation call.
func (d *Dispatcher) EditImage(ctx context.Context, req EditRequest) (*Asset, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidRequest)
	}
	if len(req.Source) == 0 {
		return nil, fmt.Errorf("%w: source image is required", domain.ErrInvalidRequest)
	}

	// Force-decode and re-encode so corrupt or foreign formats never reach
	// the provider unmodified.
	source, err := imageconv.ToPNG(req.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: source image could not be decoded: %v", domain.ErrInvalidRequest, err)
	}

	mode := req.Mode
	if mode == image.ModeNone {
		mode = image.ModeBackgroundSwap
	}

	working := d.optimizer.Optimize(ctx, req.Prompt, req.Context)
	asset, err := d.image.Generate(ctx, image.GenerateRequest{
		Prompt: d.withContext(working, req.Context),
		Mode:   mode,
		Source: &image.SourceImage{Data: source, MimeType: "image/png"},
	})
	if err != nil {
		d.logger.Error().Err(err).Msg("image edit failed")
		return nil, fmt.Errorf("%w: image provider error: %v", domain.ErrGeneration, err)
	}
	return d.canonicalize(asset)
}

// AuditContent judges the content against the guidelines and returns the
// validated structured report.
func (d *Dispatcher) AuditContent(ctx context.Context, content, brandContext string) (*domain.AuditReport, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidRequest)
	}
	system, user := prompt.CompileAudit(content, brandContext, d.contextLimit)
	raw, err := d.text.GenerateJSON(ctx, system, user)
	if err != nil {
		d.logger.Error().Err(err).Msg("audit generation failed")
		return nil, fmt.Errorf("%w: text provider error: %v", domain.ErrGeneration, err)
	}
	report, err := audit.Parse(raw)
	if err != nil {
		d.logger.Error().Err(err).Msg("audit response failed schema validation")
		return nil, err
	}
	return report, nil
}

// withContext appends the truncated guideline text to the working prompt so
// the terminal image call still sees the brand constraints even when the
// optimization stage fell back.
func (d *Dispatcher) withContext(working, brandContext string) string {
	return fmt.Sprintf("%s\n\nBRAND GUIDELINES:\n%s", working, prompt.TruncateContext(brandContext, d.contextLimit))
}

func (d *Dispatcher) canonicalize(asset *image.Asset) (*Asset, error) {
	data := asset.Data
	if !imageconv.IsPNG(data) {
		converted, err := imageconv.ToPNG(data)
		if err != nil {
			return nil, fmt.Errorf("%w: provider returned undecodable image: %v", domain.ErrGeneration, err)
		}
		data = converted
	}
	return &Asset{Data: data, MimeType: "image/png"}, nil
}
