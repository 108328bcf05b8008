package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-solo/internal/config"
	"github.com/iamasit07/connect4-solo/internal/logger"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"github.com/iamasit07/connect4-solo/internal/service/cleanup"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/internal/telemetry"
	transportHttp "github.com/iamasit07/connect4-solo/internal/transport/http"
	"github.com/iamasit07/connect4-solo/internal/transport/websocket"
	"go.opentelemetry.io/otel"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Telemetry
	shutdownOtel, err := telemetry.InitOtel(ctx, telemetry.Options{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
	})
	if err != nil {
		slog.Error("Failed to initialize OpenTelemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(flushCtx); err != nil {
			slog.Error("Failed to flush telemetry", "error", err)
		}
	}()

	searchObserver, err := telemetry.NewSearchObserver(otel.GetMeterProvider(), otel.GetTracerProvider())
	if err != nil {
		slog.Error("Failed to create search instruments", "error", err)
		os.Exit(1)
	}

	// 2. Engine and sessions
	strategy, err := bot.ParseStrategy(cfg.DefaultStrategy)
	if err != nil {
		slog.Error("Invalid default strategy", "error", err)
		os.Exit(1)
	}

	engine := bot.NewEngine(
		bot.WithDepth(cfg.SearchDepth),
		bot.WithObserver(searchObserver),
	)
	sessionManager := game.NewSessionManager(engine)
	gameService := game.NewService(sessionManager, engine, strategy)

	// 3. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdle, cfg.CleanupInterval)
	cleanupDone := cleanupWorker.Start(ctx)

	// 4. Handlers
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), gameService, cfg.AllowedOrigins)
	gameHandler := transportHttp.NewGameHandler(gameService)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := transportHttp.NewRouter(gameHandler, cfg.AllowedOrigins, gin.WrapF(wsHandler.HandleWebSocket))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Shutdown does not wait for hijacked websocket connections
	srv.RegisterOnShutdown(wsHandler.Shutdown)

	go func() {
		slog.Info("Server starting",
			"port", cfg.Port,
			"strategy", string(strategy),
			"depth", engine.Depth(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	<-cleanupDone

	slog.Info("Server exited gracefully")
}
