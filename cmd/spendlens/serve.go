package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spendlens/spendlens/pkg/api"
	"github.com/spendlens/spendlens/pkg/config"
	"github.com/spendlens/spendlens/pkg/server"
)

// runServe starts the HTTP API and blocks until SIGINT/SIGTERM.
func runServe(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "config.json", "config file (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	var classification api.Classification
	if cfg.ClassificationFile != "" {
		classification, err = config.LoadClassification(cfg.ClassificationFile)
		if err != nil {
			return err
		}
		logger.Info("loaded classification", "file", cfg.ClassificationFile, "retailers", len(classification))
	}

	srv := server.New(server.Config{
		Classification: classification,
		MaxUploadBytes: cfg.MaxUploadBytes,
		WindowDays:     cfg.WindowDays,
	}, logger.With("component", "server"))

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.Addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("server stopped")
	return nil
}
