package curated

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// scriptedDB replays a fixed sequence of row counts and records the
// statements it saw.
type scriptedDB struct {
	counts []int64
	seen   []string
	fail   map[int]error
}

func (db *scriptedDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	i := len(db.seen)
	db.seen = append(db.seen, sql)
	if err, ok := db.fail[i]; ok {
		return pgconn.CommandTag{}, err
	}
	n := int64(0)
	if i < len(db.counts) {
		n = db.counts[i]
	}
	return pgconn.NewCommandTag(fmt.Sprintf("INSERT 0 %d", n)), nil
}

func TestLoadIncremental_PhaseOrderAndCounts(t *testing.T) {
	db := &scriptedDB{counts: []int64{3, 2, 500}}
	loader := NewLoader(db, nil)

	dates, facts, err := loader.LoadIncremental(context.Background())
	if err != nil {
		t.Fatalf("LoadIncremental() error = %v", err)
	}

	if dates != 3 {
		t.Errorf("datesInserted = %d, want 3", dates)
	}
	if facts != 500 {
		t.Errorf("factsInserted = %d, want 500", facts)
	}

	if len(db.seen) != 3 {
		t.Fatalf("statements = %d, want 3", len(db.seen))
	}
	if !strings.Contains(db.seen[0], "dim_trade_date") {
		t.Errorf("first statement must refresh the date dimension, got: %s", db.seen[0])
	}
	if !strings.Contains(db.seen[1], "dim_stock_meta") {
		t.Errorf("second statement must refresh the stock dimension, got: %s", db.seen[1])
	}
	if !strings.Contains(db.seen[2], "fact_stock_prices") {
		t.Errorf("third statement must append facts, got: %s", db.seen[2])
	}
}

func TestLoadIncremental_EmptyDelta(t *testing.T) {
	// Nothing new staged: every phase affects zero rows and that is a clean
	// run, not an error.
	db := &scriptedDB{counts: []int64{0, 0, 0}}
	loader := NewLoader(db, nil)

	dates, facts, err := loader.LoadIncremental(context.Background())
	if err != nil {
		t.Fatalf("LoadIncremental() error = %v", err)
	}
	if dates != 0 || facts != 0 {
		t.Errorf("inserted (%d, %d), want (0, 0)", dates, facts)
	}
}

func TestLoadIncremental_DimensionFailureStopsFactAppend(t *testing.T) {
	db := &scriptedDB{fail: map[int]error{0: fmt.Errorf("deadlock detected")}}
	loader := NewLoader(db, nil)

	if _, _, err := loader.LoadIncremental(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(db.seen) != 1 {
		t.Errorf("statements = %d, want 1 (fact append must not run)", len(db.seen))
	}
}

func TestWatermarkSQL(t *testing.T) {
	// The empty-table boundary must be explicit: no watermark means load
	// everything, expressed via COALESCE to -infinity.
	if !strings.Contains(insertFactsSQL, "COALESCE") || !strings.Contains(insertFactsSQL, "'-infinity'::date") {
		t.Error("fact append must bound the watermark explicitly for an empty fact table")
	}
	if !strings.Contains(insertFactsSQL, "sp.trade_date > COALESCE") {
		t.Error("fact append must filter strictly greater than the watermark")
	}
	if !strings.Contains(insertFactsSQL, "ON CONFLICT ON CONSTRAINT fact_stock_grain DO NOTHING") {
		t.Error("fact append must rely on the named grain constraint")
	}
}
