package rawzone

import (
	"fmt"
	"time"
)

// Partition key grammar. These strings are a storage contract: every reader
// of previously written partitions depends on them byte-for-byte.

// HistoricalKey returns the partition key for a full-history snapshot.
func HistoricalKey(domain, symbol string) string {
	return fmt.Sprintf("raw/stocks/daily/historical/domain=%s/symbol=%s/eod_history.json", domain, symbol)
}

// IncrementalKey returns the partition key for one trading day's bulk pull.
func IncrementalKey(domain string, asOf time.Time) string {
	return fmt.Sprintf("raw/stocks/daily/incremental/domain=%s/date=%s/eod_incremental.json", domain, asOf.Format("2006-01-02"))
}

// StockListKey returns the partition key for a dated symbol-universe dump.
func StockListKey(domain string, asOf time.Time) string {
	return fmt.Sprintf("raw/stocks/stock_lists/domain=%s/stock_list_%s.json", domain, asOf.Format("2006-01-02"))
}
