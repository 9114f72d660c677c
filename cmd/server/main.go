package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/youruser/shopmosaic/internal/api"
	"github.com/youruser/shopmosaic/internal/config"
	imagepkg "github.com/youruser/shopmosaic/internal/image"
	"github.com/youruser/shopmosaic/internal/logging"
	"github.com/youruser/shopmosaic/internal/shop"
)

func main() {
	cfg, exists, err := config.Load(os.Getenv("SHOPMOSAIC_CONFIG"))
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		slog.Error("init logger", "error", err)
		os.Exit(1)
	}
	if !exists {
		logger.Info("no config file found, using defaults")
	}

	// Assets are required for every render, so a failure here is fatal.
	assets, err := imagepkg.LoadAssets(imagepkg.AssetPaths{
		Font:       cfg.Paths.Font,
		Overlay:    cfg.Paths.Overlay,
		Background: cfg.Paths.Background,
	})
	if err != nil {
		logger.Error("load assets", "error", err)
		os.Exit(1)
	}

	pipeline := shop.New(assets, shop.Options{
		OutputDir: cfg.Paths.OutputDir,
		Workers:   cfg.Shop.Workers,
		Logger:    logger,
	})

	r := gin.Default()
	api.RegisterRoutes(r, api.NewHandler(pipeline, shop.SettingsFromConfig(cfg.Shop), logger))

	addr := cfg.Server.Bind
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
