package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/townhall/internal/api"
	"github.com/talgya/townhall/internal/config"
	"github.com/talgya/townhall/internal/engine"
	"github.com/talgya/townhall/internal/entropy"
	"github.com/talgya/townhall/internal/events"
	"github.com/talgya/townhall/internal/llm"
	"github.com/talgya/townhall/internal/persistence"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the negotiation API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	store, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("session store opened", "path", cfg.DBPath)

	client := llm.NewClient(cfg.AnthropicAPIKey)
	if client.Enabled() {
		slog.Info("LLM client enabled")
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — AI responses will use placeholders")
	}

	rng := rand.New(rand.NewSource(entropy.Seed()))
	injector := events.NewInjectorWithCatalog(rng, cfg.EventProbability, events.Catalog)
	eng := engine.New(injector, llm.NewResponder(client))

	server := &api.Server{
		Store:     store,
		Engine:    eng,
		MaxRounds: cfg.MaxRounds,
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API starting", "addr", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
