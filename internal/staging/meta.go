package staging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkaran/eodpipe/internal/contract"
	"github.com/mkaran/eodpipe/internal/database"
	"github.com/mkaran/eodpipe/internal/rawzone"
)

const insertMetaSQL = `
	INSERT INTO staging.stocks_meta (
		symbol, name, sector, sub_industry, cik, domain, source, ingested_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (symbol, cik) DO NOTHING
`

// MetaLoader moves symbol-universe records from a raw stock-list object into
// staging.stocks_meta.
type MetaLoader struct {
	backend rawzone.Backend
	db      database.Execer
	logger  *slog.Logger
}

func NewMetaLoader(backend rawzone.Backend, db database.Execer, logger *slog.Logger) *MetaLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetaLoader{backend: backend, db: db, logger: logger}
}

// Load reads one stock-list object and upserts its records. Same partial
// success semantics as the price loads: bad rows are logged and skipped.
func (l *MetaLoader) Load(ctx context.Context, key string) (int, error) {
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
		row, err := contract.ValidateStockMeta(meta, record)
		if err != nil {
			l.logger.Warn("stock meta rejected", "key", key, "index", i, "error", err)
			continue
		}

		ct, err := l.db.Exec(ctx, insertMetaSQL,
			row.Symbol,
			row.Name,
			row.Sector,
			row.SubIndustry,
			row.CIK,
			row.Domain,
			row.Source,
			row.IngestedAt,
		)
		if err != nil {
			l.logger.Warn("stock meta insert failed", "key", key, "symbol", row.Symbol, "error", err)
			continue
		}
		inserted += int(ct.RowsAffected())
	}

	l.logger.Info("stock meta load complete",
		"key", key, "records", len(data), "inserted", inserted)
	return inserted, nil
}
