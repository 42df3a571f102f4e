package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/config"
	"github.com/mcoot/tictactoe-go/internal/factory"
)

// janitorInterval is how often idle spectator hubs and stale session locks are dropped
const janitorInterval = time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	app, err := factory.New(cfg.Factory(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close failed", slog.String("error", err.Error()))
		}
	}()

	server := api.NewServer(app.Handler(), cfg.Server(), logger)
	server.RegisterOnShutdown(app.HubManager.CloseAll)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				app.HubManager.CleanupEmptyHubs()
				app.GameController.PruneLocks(ctx)
			}
		}
	})

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
	)

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
