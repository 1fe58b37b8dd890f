package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/clipforge/clip-composer/config"
	"github.com/clipforge/clip-composer/internal/renderer"
	"github.com/clipforge/clip-composer/internal/server"
	"github.com/clipforge/clip-composer/internal/storage"
	"github.com/clipforge/clip-composer/internal/uploader"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to configuration file")
	port := flag.String("port", "", "Server port (overrides configuration)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	store, err := newStorage(cfg)
	if err != nil {
		slog.Error("Failed to create storage", "type", cfg.Storage.Type, "error", err)
		os.Exit(1)
	}

	client := renderer.NewClient(cfg.Renderer.BaseURL, time.Duration(cfg.Renderer.RequestTimeoutSeconds)*time.Second)
	uploads := uploader.New(store, cfg.Upload.MaxSizeMB*1024*1024)

	srv := server.New(cfg, client, uploads)

	listenPort := cfg.Server.Port
	if *port != "" {
		listenPort = *port
	}

	slog.Info("Starting clip composer API server", "port", listenPort, "renderer", cfg.Renderer.BaseURL)
	if err := srv.Start(listenPort); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.Storage.Type == "gcs" {
		return storage.NewGCSStorage(
			context.Background(),
			cfg.Storage.Bucket,
			cfg.Storage.ObjectPrefix,
			cfg.Storage.PublicBaseURL,
			cfg.Storage.CredentialsFile,
		)
	}
	return storage.NewLocalStorage(cfg.Storage.OutputDir, cfg.Storage.PublicBaseURL)
}
