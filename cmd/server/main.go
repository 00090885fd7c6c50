package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/contentadmin/mediastore/internal/api"
	"github.com/contentadmin/mediastore/pkg/mediastore/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	coordinator, err := cfg.BuildCoordinator(logger)
	if err != nil {
		slog.Error("Failed to build coordinator", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(coordinator)

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Starting server",
		"addr", addr,
		"environment", cfg.Environment,
		"database", cfg.DatabaseType,
		"storage", cfg.StorageType)

	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
