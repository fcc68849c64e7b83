package main

import (
	"context"
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
	"neuranote.app/assistant/internal/http/handler"
	"neuranote.app/assistant/internal/http/middleware"
	httprouter "neuranote.app/assistant/internal/http/router"
	"neuranote.app/assistant/internal/intent"
	"neuranote.app/assistant/internal/planner"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypePlanner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "planner starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)

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

	var classifier intent.Classifier
	if cfg.Intent.Enabled() {
		classifier = intent.NewHFClassifier(cfg.Intent)
		slog.InfoContext(ctx, "intent gate enabled", "model", cfg.Intent.Model)
	} else {
		slog.WarnContext(ctx, "intent gate disabled (no HF_API_KEY)")
	}

	focus := planner.NewFocusAssistant(llmClient)
	paths := planner.NewPathPlanner(llmClient)
	timetables := planner.NewTimetableBuilder(intent.NewGate(classifier))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	plannerHandler := handler.NewPlannerHandler(focus, paths, timetables)
	httprouter.SetupPlannerRoutes(router, plannerHandler)

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
