package contract

import (
	"fmt"
	"strconv"

	"github.com/mkaran/eodpipe/internal/model"
)

var (
	stockMetaEnvelopeFields = []string{"domain", "source", "ingested_at"}
	stockMetaDataFields     = []string{"symbol", "name", "sector", "sub_industry", "cik"}
)

// ValidateStockMeta checks one raw symbol-universe record and returns the
// typed row. Free-text labels are normalized so comparisons against stored
// rows always use the same token form.
func ValidateStockMeta(meta map[string]any, record map[string]any) (model.StockMeta, error) {
	var row model.StockMeta

	for _, f := range stockMetaEnvelopeFields {
		if _, ok := meta[f]; !ok {
			return row, missingField(f)
		}
	}
	for _, f := range stockMetaDataFields {
		if _, ok := record[f]; !ok {
			return row, missingField(f)
		}
	}

	var err error
	if row.Symbol, err = stringField(record, "symbol"); err != nil {
		return row, err
	}

	name, err := stringField(record, "name")
	if err != nil {
		return row, err
	}
	sector, err := stringField(record, "sector")
	if err != nil {
		return row, err
	}
	subIndustry, err := stringField(record, "sub_industry")
	if err != nil {
		return row, err
	}
	row.Name = NormalizeLabel(name)
	row.Sector = NormalizeLabel(sector)
	row.SubIndustry = NormalizeLabel(subIndustry)

	cik, err := numericString(record["cik"])
	if err != nil {
		return row, invalidField("cik", err.Error())
	}
	if row.CIK, err = strconv.ParseInt(cik, 10, 64); err != nil {
		return row, invalidField("cik", fmt.Sprintf("cannot parse %q as integer", cik))
	}

	if row.Domain, err = stringField(meta, "domain"); err != nil {
		return row, err
	}
	if row.Source, err = stringField(meta, "source"); err != nil {
		return row, err
	}
	if row.IngestedAt, err = coerceTimestamp("ingested_at", meta["ingested_at"]); err != nil {
		return row, err
	}

	return row, nil
}
