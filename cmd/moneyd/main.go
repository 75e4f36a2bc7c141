// Command moneyd serves checkout quotes and locale-aware money
// formatting and parsing over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ledgerkit/money/internal/api"
	"github.com/ledgerkit/money/internal/checkout"
	"github.com/ledgerkit/money/internal/config"
	"github.com/ledgerkit/money/internal/logger"
	"github.com/ledgerkit/money/internal/registry"
	"github.com/ledgerkit/money/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Logger is not configured yet
		_ = logger.Init(&config.LogConfig{Level: "info"}, os.Stderr)
		logger.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log, os.Stdout); err != nil {
		_ = logger.Init(&config.LogConfig{Level: "info"}, os.Stderr)
		logger.Error().Err(err).Msg("failed to initialize logger")
		os.Exit(1)
	}
	logger.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Env).
		Msg("starting")

	locales, err := registry.New(&cfg.Money)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build locale registry")
		os.Exit(1)
	}
	logger.Info().Strs("locales", locales.Names()).Msg("locales registered")

	calc := checkout.NewCalculator(cfg.Money.MaxInstallments)
	router := api.NewRouter(cfg, api.NewHandler(locales, calc))
	srv := server.New(&cfg.Server, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
