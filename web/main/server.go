package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jyouturner/mediabox/pkg/config"
	"github.com/jyouturner/mediabox/pkg/content"
	"github.com/jyouturner/mediabox/pkg/documents"
	"github.com/jyouturner/mediabox/pkg/logger"
	"github.com/jyouturner/mediabox/pkg/media"
	"github.com/jyouturner/mediabox/pkg/metrics"
	"github.com/jyouturner/mediabox/web/handlers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mediabox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	deps, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("mediabox listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", logger.Error(err))
	}
	log.Info("mediabox stopped")
	return nil
}

func buildDeps(cfg *config.Config, log logger.Logger) (handlers.Deps, error) {
	library, err := content.LoadLibrary(cfg.Data.Dir)
	if err != nil {
		log.Warn("content library unavailable, content routes will fail",
			logger.String("dir", cfg.Data.Dir), logger.Error(err))
		library = content.NewLibrary(nil, nil, nil)
	}

	svc := cfg.Services
	deps := handlers.Deps{
		Logger:    log,
		Metrics:   metrics.New(),
		DataDir:   cfg.Data.Dir,
		MaxMemory: cfg.Server.MaxMemory,
		Media:     media.NewProcessor(cfg.Tools.FFmpeg, cfg.Tools.TempDir),
		PDF:       documents.NewRenderer(cfg.Tools.TempDir),
		Library:   library,
		Bible:     content.NewBibleClient(svc.BibleAPI, svc.HTTPTimeout),
		Shortener: content.NewShortener(svc.TinyURLAPI, svc.HTTPTimeout),
		Remover:   content.NewBackgroundRemover(svc.RemoveBgAPI, svc.RemoveBgKey, svc.HTTPTimeout),
		Fancy:     content.Fancy,
	}

	if cfg.Archive.Bucket != "" {
		archive, err := documents.NewS3Archive(cfg.Archive.Region, cfg.Archive.Bucket, cfg.Archive.Prefix, cfg.Archive.TTL)
		if err != nil {
			return handlers.Deps{}, err
		}
		deps.Archive = archive
		log.Info("pdf archive enabled", logger.String("bucket", cfg.Archive.Bucket))
	}
	return deps, nil
}
