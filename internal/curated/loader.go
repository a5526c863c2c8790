package curated

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkaran/eodpipe/internal/database"
)

// insertDatesSQL derives calendar rows for every staged trade date not yet
// present in the date dimension. The dimension is append-only, keyed by the
// calendar date itself.
const insertDatesSQL = `
	INSERT INTO curated.dim_trade_date (date, day, month, year, iso_weekday)
	SELECT DISTINCT
		sp.trade_date,
		EXTRACT(DAY FROM sp.trade_date)::int,
		EXTRACT(MONTH FROM sp.trade_date)::int,
		EXTRACT(YEAR FROM sp.trade_date)::int,
		EXTRACT(ISODOW FROM sp.trade_date)::int
	FROM staging.stocks AS sp
	ON CONFLICT (date) DO NOTHING
`

const insertStockMetaSQL = `
	INSERT INTO curated.dim_stock_meta (symbol, name, sector, sub_industry, cik, domain)
	SELECT DISTINCT sm.symbol, sm.name, sm.sector, sm.sub_industry, sm.cik, sm.domain
	FROM staging.stocks_meta AS sm
	ON CONFLICT (symbol) DO NOTHING
`

// insertFactsSQL appends staged rows strictly newer than the watermark,
// resolving surrogate keys by natural-key join. An empty fact table yields
// no MAX, so COALESCE pins the bound at -infinity: load everything currently
// staged. The fact_stock_grain constraint backstops the date filter.
const insertFactsSQL = `
	INSERT INTO curated.fact_stock_prices (
		symbol_sk, trade_date_sk, open, high, low, close, adjusted_close, volume
	)
	SELECT
		sm.stock_meta_sk,
		td.date_sk,
		sp.open,
		sp.high,
		sp.low,
		sp.close,
		sp.adjusted_close,
		sp.volume
	FROM staging.stocks AS sp
	JOIN curated.dim_stock_meta AS sm
		ON sp.symbol = sm.symbol
	JOIN curated.dim_trade_date AS td
		ON sp.trade_date = td.date
	WHERE sp.trade_date > COALESCE(
		(
			SELECT MAX(td2.date)
			FROM curated.fact_stock_prices AS fp
			JOIN curated.dim_trade_date AS td2
				ON fp.trade_date_sk = td2.date_sk
		),
		'-infinity'::date
	)
	ON CONFLICT ON CONSTRAINT fact_stock_grain DO NOTHING
`

// Loader runs the incremental staging-to-curated load.
type Loader struct {
	db     database.Execer
	logger *slog.Logger
}

func NewLoader(db database.Execer, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{db: db, logger: logger}
}

// LoadIncremental refreshes the dimensions, then appends facts newer than
// the current watermark. The order is fixed: the fact join needs every
// staged date and symbol to resolve a surrogate key.
func (l *Loader) LoadIncremental(ctx context.Context) (datesInserted, factsInserted int64, err error) {
	ct, err := l.db.Exec(ctx, insertDatesSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("refresh date dimension: %w", err)
	}
	datesInserted = ct.RowsAffected()

	ct, err = l.db.Exec(ctx, insertStockMetaSQL)
	if err != nil {
		return datesInserted, 0, fmt.Errorf("refresh stock dimension: %w", err)
	}
	stocksInserted := ct.RowsAffected()

	ct, err = l.db.Exec(ctx, insertFactsSQL)
	if err != nil {
		return datesInserted, 0, fmt.Errorf("append facts: %w", err)
	}
	factsInserted = ct.RowsAffected()

	l.logger.Info("curated load complete",
		"dates_inserted", datesInserted,
		"stocks_inserted", stocksInserted,
		"facts_inserted", factsInserted,
	)
	return datesInserted, factsInserted, nil
}
