package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"brandgenius/internal/brand"
	"brandgenius/internal/http/handlers"
	httpapi "brandgenius/internal/http/httpapi"
	"brandgenius/internal/infra"
	"brandgenius/internal/pipeline"
	"brandgenius/internal/prompt"
	imageprovider "brandgenius/internal/providers/image"
	textprovider "brandgenius/internal/providers/text"
	visionprovider "brandgenius/internal/providers/vision"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	providerHTTP := &http.Client{Timeout: cfg.ProviderTimeout}

	textGen, err := textprovider.NewGeminiClient(textprovider.GeminiOptions{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiTextModel,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: providerHTTP,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure text provider")
	}

	analyzer, err := visionprovider.NewGeminiAnalyzer(visionprovider.GeminiOptions{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiTextModel,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: providerHTTP,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure vision provider")
	}

	imageGen, err := imageprovider.NewGeminiGenerator(imageprovider.GeminiOptions{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiImageModel,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: providerHTTP,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure image provider")
	}

	optimizer := prompt.NewOptimizer(textGen, cfg.ContextCharLimit, &logger)
	dispatcher := pipeline.NewDispatcher(textGen, imageGen, analyzer, optimizer, cfg.ContextCharLimit, &logger)

	store := brand.NewStore()
	app := handlers.NewApp(dispatcher, store, &logger, cfg.MaxUploadBytes)
	router := httpapi.NewRouter(app, logger, cfg.AllowedOrigins)

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
