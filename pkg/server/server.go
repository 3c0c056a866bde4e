// Package server exposes the diagnostic core over HTTP with gin.
//
// Each request takes one catalog snapshot from the Store and uses it for its
// whole run, so a catalog reload never mixes catalogs within one report.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mrhapile/hvac-diagnoser/pkg/config"
)

// Serve runs the HTTP service until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func Serve(ctx context.Context, cfg config.Config) error {
	snap, err := cfg.Snapshot()
	if err != nil {
		return err
	}
	store, err := NewStore(snap, cfg.Snapshot)
	if err != nil {
		return err
	}

	if cfg.Server.WatchCatalogs {
		watcher, err := NewCatalogWatcher(store, cfg.Catalogs.Refrigerants, cfg.Catalogs.Signatures)
		if err != nil {
			return err
		}
		if watcher != nil {
			go watcher.Run(ctx)
			slog.Info("Watching catalog files for changes")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	handlers := NewHandlers(store, Options{BatchConcurrency: cfg.Engine.BatchConcurrency})

	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     NewRouter(handlers),
		ReadTimeout: cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening",
			"addr", cfg.Server.Addr,
			"refrigerants", len(snap.Refrigerants.IDs()),
			"signatures", snap.Signatures.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	slog.Info("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
