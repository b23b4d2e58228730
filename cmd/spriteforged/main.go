// Command spriteforged runs the SpriteForge studio service: the HTTP API
// the authoring UI talks to, backed by the session database and the
// export pipeline.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spriteforge/spriteforge"
	"github.com/spriteforge/spriteforge/internal/api"
	"github.com/spriteforge/spriteforge/internal/capture"
	"github.com/spriteforge/spriteforge/internal/config"
	"github.com/spriteforge/spriteforge/internal/export"
	"github.com/spriteforge/spriteforge/internal/logging"
	"github.com/spriteforge/spriteforge/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting spriteforged", "version", spriteforge.Version, "data_dir", cfg.DataDir())

	// Route the pipeline's own diagnostics (grid remainder warnings and
	// the like) through the service logger.
	spriteforge.SetLogger(logging.WithComponent(logger, "pipeline"))

	db, err := store.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	server := api.NewServer(api.ServerConfig{
		Port:       cfg.Port(),
		Repository: store.NewRepository(db.Conn()),
		Exporter:   export.NewExporter(cfg.AssetsDir(), logger),
		Extractor:  capture.NewExtractor(logging.WithComponent(logger, "capture")),
		Logger:     logger,
		StartTime:  startTime,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("studio API ready", "addr", server.Addr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
