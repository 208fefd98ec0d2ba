package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer is the service's outward listener with the timeouts taken from
// Config. Read header timeout stays fixed since it guards against slowloris
// rather than slow uploads.
type HTTPServer struct {
	server *http.Server
}

const readHeaderTimeout = 5 * time.Second

// NewHTTPServer builds the listener for the given router.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{server: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *HTTPServer) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests within the context deadline.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
