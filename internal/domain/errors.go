package domain

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrExtraction       = errors.New("extraction failed")
	ErrAnalysis         = errors.New("style analysis failed")
	ErrGeneration       = errors.New("generation failed")
	ErrProviderContract = errors.New("provider contract violation")
)
