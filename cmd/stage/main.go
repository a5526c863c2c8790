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
	"github.com/mkaran/eodpipe/internal/database"
	"github.com/mkaran/eodpipe/internal/model"
	"github.com/mkaran/eodpipe/internal/rawzone"
	"github.com/mkaran/eodpipe/internal/staging"
	"github.com/mkaran/eodpipe/internal/universe"
	"github.com/mkaran/eodpipe/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	mode := flag.String("mode", "incremental", "staging mode: historical, incremental or meta")
	listDate := flag.String("list-date", "", "stock list date for meta mode (YYYY-MM-DD, default today UTC)")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	logger.Info("starting stage",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
		"mode", *mode,
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

	backend, err := rawzone.NewBackend(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to create storage backend", "error", err)
		os.Exit(1)
	}

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	switch *mode {
	case "historical":
		symbols, err := universe.LoadSymbols(cfg.Domain.SymbolsPath)
		if err != nil {
			logger.Error("failed to load symbol universe", "error", err)
			os.Exit(1)
		}

		loader := staging.NewPriceLoader(backend, pool, model.KindHistorical, logger)
		inserted, err := loader.LoadHistorical(ctx, cfg.Domain.Name, symbols)
		if err != nil {
			logger.Error("historical staging load failed", "error", err)
			os.Exit(1)
		}
		logger.Info("historical staging load complete", "inserted", inserted)

	case "incremental":
		asOf := time.Now().UTC().AddDate(0, 0, -1)
		loader := staging.NewPriceLoader(backend, pool, model.KindIncremental, logger)
		inserted, err := loader.LoadIncremental(ctx, cfg.Domain.Name, asOf)
		if err != nil {
			logger.Error("incremental staging load failed", "error", err)
			os.Exit(1)
		}
		logger.Info("incremental staging load complete",
			"as_of", asOf.Format("2006-01-02"), "inserted", inserted)

	case "meta":
		asOf := time.Now().UTC()
		if *listDate != "" {
			asOf, err = time.Parse("2006-01-02", *listDate)
			if err != nil {
				logger.Error("invalid -list-date", "value", *listDate, "error", err)
				os.Exit(1)
			}
		}

		loader := staging.NewMetaLoader(backend, pool, logger)
		key := rawzone.StockListKey(cfg.Domain.Name, asOf)
		inserted, err := loader.Load(ctx, key)
		if err != nil {
			logger.Error("stock meta staging load failed", "error", err)
			os.Exit(1)
		}
		logger.Info("stock meta staging load complete", "key", key, "inserted", inserted)

	default:
		logger.Error("invalid mode, want historical, incremental or meta", "mode", *mode)
		os.Exit(1)
	}

	logger.Info("stage finished")
}
