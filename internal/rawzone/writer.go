package rawzone

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkaran/eodpipe/internal/config"
	"github.com/mkaran/eodpipe/internal/model"
)

// Writer lands provider payloads in the raw zone, wrapped in the metadata
// envelope. It never inspects record contents; validation happens in the
// staging load.
type Writer struct {
	backend Backend
	domain  config.DomainConfig
	logger  *slog.Logger

	// now is injected so tests can pin the ingested_at stamp.
	now func() time.Time
}

// NewWriter creates a raw-zone writer for one domain.
func NewWriter(backend Backend, domain config.DomainConfig, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		backend: backend,
		domain:  domain,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WriteHistorical replaces the full-history partition for one symbol and
// returns its key. Historical partitions are overwritten on re-runs; the
// backend's atomic put keeps readers consistent.
func (w *Writer) WriteHistorical(ctx context.Context, symbol string, records []json.RawMessage) (string, error) {
	key := HistoricalKey(w.domain.Name, symbol)

	body, err := w.envelope(model.Envelope{
		Symbol:        symbol,
		Domain:        w.domain.Name,
		Source:        w.domain.HistoricalSource,
		IngestionType: model.KindHistorical,
		Data:          records,
	})
	if err != nil {
		return "", err
	}

	if err := w.backend.Put(ctx, key, body); err != nil {
		return "", err
	}

	w.logger.Info("historical partition written", "key", key, "records", len(records))
	return key, nil
}

// WriteIncremental lands one trading day's bulk pull. The write is
// idempotent by construction: if the partition already exists the call is a
// no-op and skipped is true. Duplicate runs racing on the same day are only
// safe because of this existence check; concurrent deployments would need a
// conditional-put primitive instead.
func (w *Writer) WriteIncremental(ctx context.Context, asOf time.Time, records []json.RawMessage) (key string, skipped bool, err error) {
	key = IncrementalKey(w.domain.Name, asOf)

	exists, err := w.backend.Exists(ctx, key)
	if err != nil {
		return "", false, err
	}
	if exists {
		w.logger.Info("incremental partition already exists, skipping", "key", key)
		return key, true, nil
	}

	body, err := w.envelope(model.Envelope{
		Domain:        w.domain.Name,
		Source:        w.domain.IncrementalSource,
		IngestionType: model.KindIncremental,
		Data:          records,
	})
	if err != nil {
		return "", false, err
	}

	if err := w.backend.Put(ctx, key, body); err != nil {
		return "", false, err
	}

	w.logger.Info("incremental partition written", "key", key, "records", len(records))
	return key, false, nil
}

// WriteStockList lands a dated symbol-universe dump. Stock-list envelopes
// carry no ingestion_type; they feed the meta staging load only.
func (w *Writer) WriteStockList(ctx context.Context, source string, asOf time.Time, records []json.RawMessage) (string, error) {
	key := StockListKey(w.domain.Name, asOf)

	body, err := w.envelope(model.Envelope{
		Domain: w.domain.Name,
		Source: source,
		Data:   records,
	})
	if err != nil {
		return "", err
	}

	if err := w.backend.Put(ctx, key, body); err != nil {
		return "", err
	}

	w.logger.Info("stock list written", "key", key, "records", len(records))
	return key, nil
}

// envelope stamps ingested_at with the write time, not the fetch time, so
// re-runs remain distinguishable in the raw zone.
func (w *Writer) envelope(env model.Envelope) ([]byte, error) {
	env.IngestedAt = w.now()

	body, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return body, nil
}
