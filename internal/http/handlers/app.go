// Package handlers exposes the service operations over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"brandgenius/internal/brand"
	"brandgenius/internal/domain"
	"brandgenius/internal/infra"
	"brandgenius/internal/pipeline"
)

// App is the handler container wiring the dispatcher, the brand context
// store, and request limits.
type App struct {
	Dispatcher     *pipeline.Dispatcher
	Store          *brand.Store
	Logger         *infra.Logger
	MaxUploadBytes int64
}

// NewApp constructs the handler container.
func NewApp(dispatcher *pipeline.Dispatcher, store *brand.Store, logger *infra.Logger, maxUploadBytes int64) *App {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &App{
		Dispatcher:     dispatcher,
		Store:          store,
		Logger:         logger,
		MaxUploadBytes: maxUploadBytes,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}

// fail maps a pipeline error onto the uniform error envelope. Raw provider
// detail stays in the logs; the caller gets a short cause.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrExtraction):
		a.error(w, http.StatusBadRequest, "extraction_failed", err.Error())
	case errors.Is(err, domain.ErrProviderContract):
		a.error(w, http.StatusBadGateway, "audit_unavailable", "the audit could not be completed: the model returned an unusable report")
	case errors.Is(err, domain.ErrGeneration):
		a.error(w, http.StatusBadGateway, "generation_failed", "the generation provider failed to produce a result")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}
