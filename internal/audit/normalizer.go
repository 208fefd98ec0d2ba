// Package audit normalizes and validates the structured output of a
// compliance audit.
package audit

import (
	"encoding/json"
	"fmt"
	"strings"

	"brandgenius/internal/domain"
)

// Normalize strips the formatting artifacts a text model may wrap around its
// JSON reply despite instructions. It is idempotent.
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// Parse normalizes the raw model output and decodes it as an AuditReport. Any
// failure after normalization is a provider contract violation, never a
// best-effort empty report.
func Parse(raw string) (*domain.AuditReport, error) {
	cleaned := Normalize(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty audit response", domain.ErrProviderContract)
	}
	var report domain.AuditReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderContract, err)
	}
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderContract, err)
	}
	return &report, nil
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
