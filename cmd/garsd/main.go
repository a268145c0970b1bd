// Command garsd serves GARS coordinate conversion, grid labels and map tile
// grid overlays over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/beetlebugorg/gars/internal/cache"
	"github.com/beetlebugorg/gars/internal/config"
	"github.com/beetlebugorg/gars/internal/logging"
	"github.com/beetlebugorg/gars/internal/server"
	"github.com/beetlebugorg/gars/internal/telemetry"
	"github.com/beetlebugorg/gars/pkg/gars"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	props := gars.DefaultProperties()
	if cfg.Grids.Properties != "" {
		props, err = gars.LoadProperties(cfg.Grids.Properties)
		if err != nil {
			log.Fatalf("grid properties: %v", err)
		}
		slog.Info("grid properties loaded", "path", cfg.Grids.Properties)
	}

	deps := &server.Dependencies{
		Grids:          gars.NewGridsFrom(props),
		CacheTTL:       time.Duration(cfg.Valkey.TTL) * time.Second,
		MaxLabels:      cfg.Grids.MaxLabels,
		TileSize:       cfg.Grids.TileSize,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Tile cache: Valkey when configured, otherwise in memory
	switch {
	case cfg.Valkey.Addr != "":
		tiles, err := cache.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable, serving without tile cache", "error", err)
			break
		}
		defer tiles.Close()
		deps.Cache = tiles

		if cfg.Valkey.WarmZoom >= 0 {
			go func() {
				start := time.Now()
				n, err := server.WarmTileCache(ctx, deps, cfg.Valkey.WarmZoom)
				if err != nil {
					slog.Warn("tile cache warm-up stopped", "stored", n, "error", err)
					return
				}
				slog.Info("tile cache warmed", "tiles", n, "max_zoom", cfg.Valkey.WarmZoom,
					"duration", time.Since(start).String())
			}()
		}
	case cfg.Cache.MemoryBytes > 0:
		deps.Cache = cache.NewMemory(cfg.Cache.MemoryBytes)
		slog.Info("using in-memory tile cache", "max_bytes", cfg.Cache.MemoryBytes)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		AppName:      "GARS",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		MaxAge:       3600,
	}))

	server.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("GARS server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
