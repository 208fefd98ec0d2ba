package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"brandgenius/internal/brand"
	"brandgenius/internal/http/handlers"
	"brandgenius/internal/infra"
	"brandgenius/internal/middleware"
	"brandgenius/internal/pipeline"
	"brandgenius/internal/prompt"
	"brandgenius/internal/providers/image"
)

type stubText struct{}

func (stubText) Generate(ctx context.Context, system, user string) (string, error) {
	return "generated copy", nil
}

func (stubText) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	return "", errors.New("not used")
}

type stubImage struct{}

func (stubImage) Generate(ctx context.Context, req image.GenerateRequest) (*image.Asset, error) {
	return nil, errors.New("not used")
}

type stubVision struct{}

func (stubVision) Describe(ctx context.Context, data []byte, mime, instruction string) (string, error) {
	return "", errors.New("not used")
}

func testRouter() http.Handler {
	logger := infra.Logger(zerolog.New(io.Discard))
	optimizer := prompt.NewOptimizer(stubText{}, 0, &logger)
	dispatcher := pipeline.NewDispatcher(stubText{}, stubImage{}, stubVision{}, optimizer, 0, &logger)
	app := handlers.NewApp(dispatcher, brand.NewStore(), &logger, 1<<20)
	return NewRouter(app, logger, []string{"*"})
}

func TestRouterServesHealthAndStatus(t *testing.T) {
	router := testRouter()
	for _, path := range []string{"/", "/v1/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("GET %s missing request id header", path)
		}
	}
}

func TestRouterEchoesCallerRequestID(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "trace-42" {
		t.Fatalf("request id = %q, want %q", got, "trace-42")
	}
}

func TestRouterServesUploadAliases(t *testing.T) {
	router := testRouter()
	for _, path := range []string{"/extract-context-from-file", "/upload-brand-assets"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("not multipart"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		// Both aliases must reach the handler, which rejects the bad body.
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("POST %s status = %d, want 400", path, rec.Code)
		}
	}
}

func TestRouterAllowsConfiguredOrigin(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodPost, "/generate-copy", strings.NewReader(`{"prompt":"tagline"}`))
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://anywhere.example.com" {
		t.Fatalf("CORS header = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouterHandlesPreflight(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodOptions, "/generate-copy", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
}
