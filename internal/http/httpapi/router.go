package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"brandgenius/internal/http/handlers"
	"brandgenius/internal/infra"
	"brandgenius/internal/middleware"
)

// NewRouter wires all endpoints, including the legacy aliases kept for older
// clients of the upload and image routes.
func NewRouter(app *handlers.App, logger infra.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(allowedOrigins),
	)

	r.Get("/", app.Home)
	r.Get("/v1/healthz", app.Health)

	r.Post("/extract-context-from-file", app.ExtractContext)
	r.Post("/upload-brand-assets", app.ExtractContext)

	r.Post("/generate-copy", app.GenerateCopy)

	r.Post("/generate-image", app.GenerateImage)
	r.Post("/generate-visual", app.GenerateImage)
	r.Post("/swap-background", app.SwapBackground)

	r.Post("/audit-content", app.AuditContent)

	return r
}
