// Package image provides the image-generation and image-editing collaborator.
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// EditMode selects the image-editing behavior applied to a source image.
type EditMode string

const (
	ModeNone           EditMode = "none"
	ModeBackgroundSwap EditMode = "background-swap"
	ModeProductImage   EditMode = "product-image"
)

// NormalizeEditMode sanitizes free-form user input into a supported mode.
func NormalizeEditMode(mode string) EditMode {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case string(ModeBackgroundSwap):
		return ModeBackgroundSwap
	case string(ModeProductImage):
		return ModeProductImage
	default:
		return ModeNone
	}
}

// SourceImage is a canonicalized image supplied for editing.
type SourceImage struct {
	Data     []byte
	MimeType string
}

// GenerateRequest describes a normalized request passed to the provider.
type GenerateRequest struct {
	Prompt string
	Mode   EditMode
	Source *SourceImage
}

// Asset is a generated or edited image.
type Asset struct {
	Data     []byte
	MimeType string
}

// Generator is the contract implemented by image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
}

// GeminiOptions controls how the Gemini image client is configured.
type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiGenerator calls the Gemini image model via the generateContent REST
// API with IMAGE response modality.
type GeminiGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewGeminiGenerator constructs a Gemini image client with sane defaults.
func NewGeminiGenerator(opts GeminiOptions) (*GeminiGenerator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.5-flash-image"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	return &GeminiGenerator{apiKey: opts.APIKey, model: model, baseURL: baseURL, client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("prompt is required")
	}
	if req.Mode != ModeNone && (req.Source == nil || len(req.Source.Data) == 0) {
		return nil, fmt.Errorf("edit mode %q requires a source image", req.Mode)
	}

	parts := []geminiPart{{Text: buildInstruction(req)}}
	if req.Source != nil && len(req.Source.Data) > 0 {
		mime := req.Source.MimeType
		if mime == "" {
			mime = "image/png"
		}
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(req.Source.Data),
		}})
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	}

	var out geminiResponse
	if err := g.invoke(ctx, fmt.Sprintf("/models/%s:generateContent", url.PathEscape(g.model)), payload, &out); err != nil {
		return nil, err
	}

	for _, cand := range out.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode inline data: %w", err)
			}
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return &Asset{Data: data, MimeType: mime}, nil
		}
	}
	return nil, fmt.Errorf("gemini model %s returned no image content", g.model)
}

// buildInstruction prefixes the prompt with the edit-mode directive so the
// model treats the inline image as the subject to manipulate.
func buildInstruction(req GenerateRequest) string {
	switch req.Mode {
	case ModeBackgroundSwap:
		return fmt.Sprintf("Isolate and preserve the foreground subject of the provided image exactly as it is. Replace only the background with: %s", req.Prompt)
	case ModeProductImage:
		return fmt.Sprintf("Use the provided product photo as the main subject. Preserve its shape, texture, and any logo without warping. Stage it as: %s", req.Prompt)
	default:
		return req.Prompt
	}
}

func (g *GeminiGenerator) invoke(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

var _ Generator = (*GeminiGenerator)(nil)
