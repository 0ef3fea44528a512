package main

import (
	"context"
	"log/slog"
	"os"

	"postshub/internal/config"
	"postshub/internal/database"
	"postshub/internal/logger"
	"postshub/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetupDefault(os.Stdout, cfg.LogLevel)

	m, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	factory := service.NewFactory(m, cfg, slog.Default())

	posts, err := factory.Posts().GetAll(context.Background())
	if err != nil {
		slog.Error("store check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("store ready", "path", cfg.DBPath, "posts", len(posts))
}
