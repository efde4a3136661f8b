package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/lyricflow/config"
	"github.com/spacesedan/lyricflow/internal/app"
	"github.com/spacesedan/lyricflow/internal/logging"
	"github.com/spacesedan/lyricflow/internal/server"
)

func main() {
	config.LoadEnv(config.AppEnv())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.Build(ctx, cfg, true)
	if err != nil {
		slog.Error("[Main] Failed to build analysis pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pipeline.Close()

	srv, err := server.New(pipeline.Analyzer, pipeline.TranslatorHealthy)
	if err != nil {
		slog.Error("[Main] Failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		slog.Error("[Main] Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Server stopped")
}
