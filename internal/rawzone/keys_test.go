package rawzone

import (
	"testing"
	"time"
)

// Key layouts are a storage contract shared with existing partitions; these
// tests pin them byte-for-byte.
func TestPartitionKeys(t *testing.T) {
	asOf := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	if got, want := HistoricalKey("sp500", "AMD"),
		"raw/stocks/daily/historical/domain=sp500/symbol=AMD/eod_history.json"; got != want {
		t.Errorf("HistoricalKey = %q, want %q", got, want)
	}

	if got, want := IncrementalKey("sp500", asOf),
		"raw/stocks/daily/incremental/domain=sp500/date=2024-01-02/eod_incremental.json"; got != want {
		t.Errorf("IncrementalKey = %q, want %q", got, want)
	}

	if got, want := StockListKey("sp500", asOf),
		"raw/stocks/stock_lists/domain=sp500/stock_list_2024-01-02.json"; got != want {
		t.Errorf("StockListKey = %q, want %q", got, want)
	}
}
