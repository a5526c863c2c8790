package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mkaran/eodpipe/internal/config"
	"github.com/mkaran/eodpipe/internal/eodhd"
	"github.com/mkaran/eodpipe/internal/rawzone"
	"github.com/mkaran/eodpipe/internal/universe"
	"github.com/mkaran/eodpipe/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	mode := flag.String("mode", "incremental", "ingestion mode: historical or incremental")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Local development keeps secrets in a .env file; absence is fine.
	_ = godotenv.Load()

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	logger.Info("starting ingest",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
		"mode", *mode,
	)

	if *mode != "historical" && *mode != "incremental" {
		logger.Error("invalid mode, want historical or incremental", "mode", *mode)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"domain", cfg.Domain.Name,
		"storage_backend", cfg.Storage.Backend,
	)

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

	backend, err := rawzone.NewBackend(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to create storage backend", "error", err)
		os.Exit(1)
	}

	client := eodhd.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		eodhd.WithLogger(logger),
		eodhd.WithTimeout(cfg.API.Timeout),
	)

	writer := rawzone.NewWriter(backend, cfg.Domain, logger)

	symbols, err := universe.LoadSymbols(cfg.Domain.SymbolsPath)
	if err != nil {
		logger.Error("failed to load symbol universe", "error", err)
		os.Exit(1)
	}
	logger.Info("symbol universe loaded", "symbols", len(symbols))

	switch *mode {
	case "historical":
		runHistorical(ctx, logger, client, writer, symbols)
	case "incremental":
		runIncremental(ctx, logger, client, writer, symbols)
	}

	logger.Info("ingest finished")
}

// runHistorical pulls the full price history for every symbol in the
// universe. A failed symbol is logged and skipped so one delisting or API
// hiccup does not abort the whole backfill.
func runHistorical(ctx context.Context, logger *slog.Logger, client *eodhd.Client, writer *rawzone.Writer, symbols []string) {
	written, failed := 0, 0
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			logger.Warn("ingest cancelled", "written", written, "failed", failed)
			return
		}

		records, err := client.FetchHistorical(ctx, symbol)
		if err != nil {
			logger.Warn("symbol fetch failed", "symbol", symbol, "error", err)
			failed++
			continue
		}

		if _, err := writer.WriteHistorical(ctx, symbol, records); err != nil {
			logger.Warn("symbol write failed", "symbol", symbol, "error", err)
			failed++
			continue
		}
		written++
	}

	logger.Info("historical ingest complete", "written", written, "failed", failed)
	if failed > 0 && written == 0 {
		os.Exit(1)
	}
}

// runIncremental pulls yesterday's bulk EOD data for the whole universe in
// one call. Yesterday is computed in UTC; Sundays and Mondays map to
// weekend dates with no session, so the run is skipped outright.
func runIncremental(ctx context.Context, logger *slog.Logger, client *eodhd.Client, writer *rawzone.Writer, symbols []string) {
	asOf := time.Now().UTC().AddDate(0, 0, -1)

	switch time.Now().UTC().Weekday() {
	case time.Sunday, time.Monday:
		logger.Info("no session on the prior day, skipping",
			"as_of", asOf.Format("2006-01-02"))
		return
	}

	records, err := client.FetchIncremental(ctx, symbols)
	if err != nil {
		logger.Error("bulk fetch failed", "error", err)
		os.Exit(1)
	}

	key, skipped, err := writer.WriteIncremental(ctx, asOf, records)
	if err != nil {
		logger.Error("incremental write failed", "error", err)
		os.Exit(1)
	}
	if skipped {
		logger.Info("incremental ingest already landed", "key", key)
		return
	}

	logger.Info("incremental ingest complete", "key", key, "records", len(records))
}
