package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homestead/internal/api"
	"homestead/internal/config"
	"homestead/internal/db"
	"homestead/internal/game"
	"homestead/internal/narrative"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	var gen narrative.Generator = narrative.Fallback{}
	if cfg.GeminiAPIKey != "" {
		gen = narrative.NewGemini(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	gameSvc := game.NewService(pool, logger, gen, cfg.NarrativeTimeout)

	if cfg.SeedDemoFarm {
		if _, err := gameSvc.EnsurePlayer(ctx, "demo", "Demo Farm"); err != nil {
			logger.Error("seed demo farm failed", "err", err)
			os.Exit(1)
		}
	}

	server := api.New(cfg, logger, gameSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("homestead api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
