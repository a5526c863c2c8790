package staging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkaran/eodpipe/internal/contract"
	"github.com/mkaran/eodpipe/internal/database"
	"github.com/mkaran/eodpipe/internal/model"
	"github.com/mkaran/eodpipe/internal/rawzone"
)

const insertPriceSQL = `
	INSERT INTO staging.stocks (
		symbol, domain, source, ingestion_type, ingested_at,
		trade_date, open, high, low, close, adjusted_close, volume
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (symbol, trade_date) DO NOTHING
`

// PriceLoader moves EOD price records from one raw-zone object into
// staging.stocks.
type PriceLoader struct {
	backend rawzone.Backend
	db      database.Execer
	kind    model.IngestionKind
	logger  *slog.Logger
}

// NewPriceLoader creates a loader bound to one ingestion kind. The kind is
// enforced by the contract: an envelope of the other kind is rejected, not
// silently accepted.
func NewPriceLoader(backend rawzone.Backend, db database.Execer, kind model.IngestionKind, logger *slog.Logger) *PriceLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceLoader{backend: backend, db: db, kind: kind, logger: logger}
}

// Load reads one raw object and upserts its records sequentially. Rejected
// and conflict-skipped records are excluded from the returned count, so a
// zero distinguishes "nothing new" from "nothing read" only together with
// the returned error.
func (l *PriceLoader) Load(ctx context.Context, key string) (int, error) {
	body, err := l.backend.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("read raw object: %w", err)
	}

	meta, data, err := splitEnvelope(body)
	if err != nil {
		return 0, fmt.Errorf("raw object %s: %w", key, err)
	}

	inserted := 0
	for i, record := range data {
		grain, err := contract.ValidatePrice(meta, record, l.kind)
		if err != nil {
			l.logger.Warn("record rejected", "key", key, "index", i, "error", err)
			continue
		}

		ct, err := l.db.Exec(ctx, insertPriceSQL,
			grain.Symbol,
			grain.Domain,
			grain.Source,
			string(grain.IngestionType),
			grain.IngestedAt,
			grain.TradeDate,
			grain.Open.StringFixed(4),
			grain.High.StringFixed(4),
			grain.Low.StringFixed(4),
			grain.Close.StringFixed(4),
			grain.AdjustedClose.StringFixed(4),
			grain.Volume,
		)
		if err != nil {
			l.logger.Warn("record insert failed",
				"key", key, "symbol", grain.Symbol,
				"trade_date", grain.TradeDate.Format("2006-01-02"),
				"error", err)
			continue
		}
		inserted += int(ct.RowsAffected())
	}

	l.logger.Info("staging load complete",
		"key", key, "records", len(data), "inserted", inserted)
	return inserted, nil
}

// LoadHistorical loads every symbol's historical partition. A symbol whose
// object is missing or broken is logged and skipped; the rest of the
// universe still loads.
func (l *PriceLoader) LoadHistorical(ctx context.Context, domain string, symbols []string) (int, error) {
	if l.kind != model.KindHistorical {
		return 0, fmt.Errorf("loader kind is %q, want historical", l.kind)
	}

	total := 0
	for _, symbol := range symbols {
		key := rawzone.HistoricalKey(domain, symbol)
		n, err := l.Load(ctx, key)
		if err != nil {
			l.logger.Warn("symbol skipped", "symbol", symbol, "error", err)
			continue
		}
		total += n
	}
	return total, nil
}

// LoadIncremental loads the single partition for one trading day. With only
// one object per run there is nothing to continue past, so failures
// propagate.
func (l *PriceLoader) LoadIncremental(ctx context.Context, domain string, asOf time.Time) (int, error) {
	if l.kind != model.KindIncremental {
		return 0, fmt.Errorf("loader kind is %q, want incremental", l.kind)
	}
	return l.Load(ctx, rawzone.IncrementalKey(domain, asOf))
}
