package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mkaran/eodpipe/internal/model"
)

func decodeRecord(t *testing.T, raw string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return m
}

func historicalMeta() map[string]any {
	return map[string]any{
		"symbol":         "AAA",
		"domain":         "sp500",
		"source":         "https://eodhd.com/api/eod/",
		"ingestion_type": "historical",
		"ingested_at":    "2024-01-03T06:00:00Z",
	}
}

func validRecord(t *testing.T) map[string]any {
	return decodeRecord(t, `{
		"date": "2024-01-02",
		"open": "10.00005",
		"high": "10.5",
		"low": "9.5",
		"close": "10.1",
		"adjusted_close": "10.1",
		"volume": "1000"
	}`)
}

func TestValidatePrice_Historical(t *testing.T) {
	grain, err := ValidatePrice(historicalMeta(), validRecord(t), model.KindHistorical)
	if err != nil {
		t.Fatalf("ValidatePrice() error = %v", err)
	}

	if grain.Symbol != "AAA" {
		t.Errorf("Symbol = %s, want AAA", grain.Symbol)
	}
	if grain.Domain != "sp500" {
		t.Errorf("Domain = %s, want sp500", grain.Domain)
	}
	if grain.IngestionType != model.KindHistorical {
		t.Errorf("IngestionType = %s, want historical", grain.IngestionType)
	}
	wantDate := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !grain.TradeDate.Equal(wantDate) {
		t.Errorf("TradeDate = %v, want %v", grain.TradeDate, wantDate)
	}
	if got := grain.Open.StringFixed(4); got != "10.0001" {
		t.Errorf("Open = %s, want 10.0001 (half-up at 4 places)", got)
	}
	if got := grain.High.StringFixed(4); got != "10.5000" {
		t.Errorf("High = %s, want 10.5000", got)
	}
	if grain.Volume != 1000 {
		t.Errorf("Volume = %d, want 1000", grain.Volume)
	}
	if grain.IngestedAt != time.Date(2024, 1, 3, 6, 0, 0, 0, time.UTC) {
		t.Errorf("IngestedAt = %v", grain.IngestedAt)
	}
}

func TestValidatePrice_RoundingLaw(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.23455", "1.2346"},
		{"1.23445", "1.2345"},
		{"1.234549", "1.2345"},
		{"10.00005", "10.0001"},
		{"9.99995", "10.0000"},
		{"1.2345", "1.2345"},
		{"7", "7.0000"},
	}

	for _, tc := range cases {
		rec := validRecord(t)
		rec["close"] = tc.in
		grain, err := ValidatePrice(historicalMeta(), rec, model.KindHistorical)
		if err != nil {
			t.Fatalf("ValidatePrice(close=%s) error = %v", tc.in, err)
		}
		if got := grain.Close.StringFixed(4); got != tc.want {
			t.Errorf("close %s quantized to %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestValidatePrice_NumericJSONInput(t *testing.T) {
	// Provider sometimes sends numbers instead of strings. The string
	// round-trip must still quantize from the original token.
	rec := decodeRecord(t, `{
		"date": "2024-01-02",
		"open": 10.00005,
		"high": 10.5,
		"low": 9.5,
		"close": 10.1,
		"adjusted_close": 10.1,
		"volume": 1000
	}`)

	grain, err := ValidatePrice(historicalMeta(), rec, model.KindHistorical)
	if err != nil {
		t.Fatalf("ValidatePrice() error = %v", err)
	}
	if got := grain.Open.StringFixed(4); got != "10.0001" {
		t.Errorf("Open = %s, want 10.0001", got)
	}
	if grain.Volume != 1000 {
		t.Errorf("Volume = %d, want 1000", grain.Volume)
	}
}

func TestValidatePrice_MissingFields(t *testing.T) {
	for _, field := range []string{"date", "open", "high", "low", "close", "adjusted_close", "volume"} {
		rec := validRecord(t)
		delete(rec, field)

		_, err := ValidatePrice(historicalMeta(), rec, model.KindHistorical)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("missing %s: error = %v, want ValidationError", field, err)
		}
		if verr.Field != field {
			t.Errorf("missing %s reported as field %q", field, verr.Field)
		}
	}

	for _, field := range []string{"symbol", "domain", "source", "ingestion_type", "ingested_at"} {
		meta := historicalMeta()
		delete(meta, field)

		_, err := ValidatePrice(meta, validRecord(t), model.KindHistorical)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("missing %s: error = %v, want ValidationError", field, err)
		}
		if verr.Field != field {
			t.Errorf("missing %s reported as field %q", field, verr.Field)
		}
	}
}

func TestValidatePrice_KindMismatch(t *testing.T) {
	_, err := ValidatePrice(historicalMeta(), validRecord(t), model.KindIncremental)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestValidatePrice_NegativeVolume(t *testing.T) {
	rec := validRecord(t)
	rec["volume"] = "-5"

	_, err := ValidatePrice(historicalMeta(), rec, model.KindHistorical)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if verr.Field != "volume" {
		t.Errorf("rejected field = %q, want volume", verr.Field)
	}
}

func TestValidatePrice_IncrementalSymbolFromCode(t *testing.T) {
	meta := map[string]any{
		"domain":         "sp500",
		"source":         "https://eodhd.com/api/eod-bulk-last-day/US",
		"ingestion_type": "incremental",
		"ingested_at":    "2024-01-03T06:00:00Z",
	}
	rec := validRecord(t)
	rec["code"] = "MSFT"

	grain, err := ValidatePrice(meta, rec, model.KindIncremental)
	if err != nil {
		t.Fatalf("ValidatePrice() error = %v", err)
	}
	if grain.Symbol != "MSFT" {
		t.Errorf("Symbol = %s, want MSFT (from record code)", grain.Symbol)
	}

	// Without code the record is incomplete for incremental loads.
	delete(rec, "code")
	if _, err := ValidatePrice(meta, rec, model.KindIncremental); err == nil {
		t.Error("expected rejection for incremental record without code")
	}
}
