package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"neuranote.app/assistant/common/llm"
	"neuranote.app/assistant/common/logger"
	"neuranote.app/assistant/common/otel"
	"neuranote.app/assistant/core/config"
	"neuranote.app/assistant/internal/blockers"
	"neuranote.app/assistant/internal/http/handler"
	"neuranote.app/assistant/internal/http/middleware"
	httprouter "neuranote.app/assistant/internal/http/router"
	"neuranote.app/assistant/internal/plan"
	"neuranote.app/assistant/internal/prompt"
	"neuranote.app/assistant/internal/refs"
	"neuranote.app/assistant/internal/search"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "assistant starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)

	llmClient, err := llm.New(llm.Config{
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm client", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "llm client ready", "model", llmClient.Model())

	searchProvider, err := search.NewProvider(cfg.Search)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create search provider", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "search provider ready", "provider", searchProvider.Name())

	collector := refs.NewCollector(searchProvider, llmClient)
	composer := plan.NewComposer(llmClient, collector)
	identifier := blockers.NewIdentifier(llmClient)
	responder := prompt.NewRouter(prompt.KeywordClassifier{}, composer, identifier)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, composer, identifier, responder)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, composer *plan.Composer, identifier *blockers.Identifier, responder *prompt.Router) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	assistantHandler := handler.NewAssistantHandler(composer, identifier, responder)
	httprouter.SetupAssistantRoutes(router, assistantHandler)

	return router
}

const banner = `
███╗   ██╗███████╗██╗   ██╗██████╗  █████╗ ███╗   ██╗ ██████╗ ████████╗███████╗
████╗  ██║██╔════╝██║   ██║██╔══██╗██╔══██╗████╗  ██║██╔═══██╗╚══██╔══╝██╔════╝
██╔██╗ ██║█████╗  ██║   ██║██████╔╝███████║██╔██╗ ██║██║   ██║   ██║   █████╗
██║╚██╗██║██╔══╝  ██║   ██║██╔══██╗██╔══██║██║╚██╗██║██║   ██║   ██║   ██╔══╝
██║ ╚████║███████╗╚██████╔╝██║  ██║██║  ██║██║ ╚████║╚██████╔╝   ██║   ███████╗
╚═╝  ╚═══╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝    ╚═╝   ╚══════╝
`
