package contract

import (
	"fmt"

	"github.com/mkaran/eodpipe/internal/model"
)

// Required envelope metadata fields per ingestion kind. Historical payloads
// carry the symbol once at the envelope level; incremental payloads carry it
// per-record in "code" instead. The asymmetry is a provider quirk and part
// of the wire contract.
var (
	historicalMetaFields  = []string{"symbol", "domain", "source", "ingestion_type", "ingested_at"}
	incrementalMetaFields = []string{"domain", "source", "ingestion_type", "ingested_at"}

	historicalDataFields  = []string{"date", "open", "high", "low", "close", "adjusted_close", "volume"}
	incrementalDataFields = []string{"code", "date", "open", "high", "low", "close", "adjusted_close", "volume"}
)

// ValidatePrice checks one raw EOD record against the envelope metadata and
// returns the typed price grain. kind must match the envelope's
// ingestion_type; a mismatch is a hard rejection.
func ValidatePrice(meta map[string]any, record map[string]any, kind model.IngestionKind) (model.PriceGrain, error) {
	var grain model.PriceGrain

	metaFields := historicalMetaFields
	dataFields := historicalDataFields
	if kind == model.KindIncremental {
		metaFields = incrementalMetaFields
		dataFields = incrementalDataFields
	}

	for _, f := range metaFields {
		if _, ok := meta[f]; !ok {
			return grain, missingField(f)
		}
	}

	ingestionType, err := stringField(meta, "ingestion_type")
	if err != nil {
		return grain, err
	}
	if model.IngestionKind(ingestionType) != kind {
		return grain, invalidField("ingestion_type",
			fmt.Sprintf("payload is %q, loader expects %q", ingestionType, kind))
	}

	for _, f := range dataFields {
		if _, ok := record[f]; !ok {
			return grain, missingField(f)
		}
	}

	if kind == model.KindIncremental {
		if grain.Symbol, err = stringField(record, "code"); err != nil {
			return grain, err
		}
	} else {
		if grain.Symbol, err = stringField(meta, "symbol"); err != nil {
			return grain, err
		}
	}

	if grain.Domain, err = stringField(meta, "domain"); err != nil {
		return grain, err
	}
	if grain.Source, err = stringField(meta, "source"); err != nil {
		return grain, err
	}
	grain.IngestionType = kind
	if grain.IngestedAt, err = coerceTimestamp("ingested_at", meta["ingested_at"]); err != nil {
		return grain, err
	}

	if grain.TradeDate, err = coerceDate("date", record["date"]); err != nil {
		return grain, err
	}
	if grain.Open, err = coercePrice("open", record["open"]); err != nil {
		return grain, err
	}
	if grain.High, err = coercePrice("high", record["high"]); err != nil {
		return grain, err
	}
	if grain.Low, err = coercePrice("low", record["low"]); err != nil {
		return grain, err
	}
	if grain.Close, err = coercePrice("close", record["close"]); err != nil {
		return grain, err
	}
	if grain.AdjustedClose, err = coercePrice("adjusted_close", record["adjusted_close"]); err != nil {
		return grain, err
	}
	if grain.Volume, err = coerceVolume("volume", record["volume"]); err != nil {
		return grain, err
	}

	return grain, nil
}
