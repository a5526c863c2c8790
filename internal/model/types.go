package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// IngestionKind distinguishes full-history loads from daily delta loads.
type IngestionKind string

const (
	// KindHistorical is a full per-symbol history pull. The symbol is carried
	// once at the envelope level.
	KindHistorical IngestionKind = "historical"

	// KindIncremental is a one-day bulk pull across the whole universe. The
	// provider carries the symbol per-record in the "code" field.
	KindIncremental IngestionKind = "incremental"
)

// Envelope is the raw-zone object format. The data array holds provider
// records verbatim; everything else is ingestion metadata. The JSON shape is
// a wire contract shared with every reader of previously written partitions.
type Envelope struct {
	Symbol        string            `json:"symbol,omitempty"`
	Domain        string            `json:"domain"`
	Source        string            `json:"source"`
	IngestionType IngestionKind     `json:"ingestion_type,omitempty"`
	IngestedAt    time.Time         `json:"ingested_at"`
	Data          []json.RawMessage `json:"data"`
}

// PriceGrain is one validated EOD price row. Exactly one grain exists per
// (symbol, trade date) in staging.
type PriceGrain struct {
	Symbol        string
	Domain        string
	Source        string
	IngestionType IngestionKind
	IngestedAt    time.Time
	TradeDate     time.Time
	Open          decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	Close         decimal.Decimal
	AdjustedClose decimal.Decimal
	Volume        int64
}

// StockMeta is one validated symbol-universe row, keyed by (symbol, cik).
// Free-text labels are stored in normalized snake-case token form.
type StockMeta struct {
	Symbol      string
	Name        string
	Sector      string
	SubIndustry string
	CIK         int64
	Domain      string
	Source      string
	IngestedAt  time.Time
}
