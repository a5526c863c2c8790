package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mkaran/eodpipe/internal/config"
	"github.com/mkaran/eodpipe/internal/rawzone"
	"github.com/mkaran/eodpipe/internal/universe"
	"github.com/mkaran/eodpipe/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	skipRaw := flag.Bool("skip-raw", false, "refresh the symbol config only, without landing a stock list")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	logger.Info("starting symbols refresh",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	scraper := universe.NewScraper(universe.WithLogger(logger))
	constituents, err := scraper.Fetch(ctx)
	if err != nil {
		logger.Error("constituent scrape failed", "error", err)
		os.Exit(1)
	}

	asOf := time.Now().UTC()
	symbolsDir := filepath.Dir(cfg.Domain.SymbolsPath)
	if err := universe.SaveSymbols(symbolsDir, cfg.Domain.Name, asOf, universe.Symbols(constituents)); err != nil {
		logger.Error("failed to save symbol config", "error", err)
		os.Exit(1)
	}
	logger.Info("symbol config saved", "dir", symbolsDir, "symbols", len(constituents))

	if *skipRaw {
		logger.Info("symbols refresh finished")
		return
	}

	backend, err := rawzone.NewBackend(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to create storage backend", "error", err)
		os.Exit(1)
	}

	records, err := universe.Records(constituents)
	if err != nil {
		logger.Error("failed to marshal constituents", "error", err)
		os.Exit(1)
	}

	writer := rawzone.NewWriter(backend, cfg.Domain, logger)
	key, err := writer.WriteStockList(ctx, universe.WikiURL, asOf, records)
	if err != nil {
		logger.Error("stock list write failed", "error", err)
		os.Exit(1)
	}

	logger.Info("symbols refresh finished", "key", key, "records", len(records))
}
