package contract

import (
	"errors"
	"testing"
)

func stockListMeta() map[string]any {
	return map[string]any{
		"domain":      "sp500",
		"source":      "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies",
		"ingested_at": "2024-01-03T06:00:00Z",
	}
}

func stockRecord() map[string]any {
	return map[string]any{
		"symbol":       "AMD",
		"name":         "Advanced Micro Devices",
		"sector":       "Information Technology",
		"sub_industry": "Semiconductors",
		"cik":          "0000002488",
	}
}

func TestValidateStockMeta(t *testing.T) {
	row, err := ValidateStockMeta(stockListMeta(), stockRecord())
	if err != nil {
		t.Fatalf("ValidateStockMeta() error = %v", err)
	}

	if row.Symbol != "AMD" {
		t.Errorf("Symbol = %s, want AMD", row.Symbol)
	}
	if row.Name != "advanced_micro_devices" {
		t.Errorf("Name = %s, want advanced_micro_devices", row.Name)
	}
	if row.Sector != "information_technology" {
		t.Errorf("Sector = %s, want information_technology", row.Sector)
	}
	if row.CIK != 2488 {
		t.Errorf("CIK = %d, want 2488", row.CIK)
	}
	if row.Domain != "sp500" {
		t.Errorf("Domain = %s, want sp500", row.Domain)
	}
}

func TestValidateStockMeta_MissingFields(t *testing.T) {
	for _, field := range []string{"symbol", "name", "sector", "sub_industry", "cik"} {
		rec := stockRecord()
		delete(rec, field)

		_, err := ValidateStockMeta(stockListMeta(), rec)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("missing %s: error = %v, want ValidationError", field, err)
		}
		if verr.Field != field {
			t.Errorf("missing %s reported as field %q", field, verr.Field)
		}
	}
}

func TestValidateStockMeta_BadCIK(t *testing.T) {
	rec := stockRecord()
	rec["cik"] = "not-a-number"

	_, err := ValidateStockMeta(stockListMeta(), rec)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if verr.Field != "cik" {
		t.Errorf("rejected field = %q, want cik", verr.Field)
	}
}

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Consumer Discretionary", "consumer_discretionary"},
		{"  A&B -- C  ", "a_b_c"},
		{"Health Care", "health_care"},
		{"REITs", "reits"},
		{"Oil, Gas & Consumable Fuels", "oil_gas_consumable_fuels"},
		{"___", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeLabel(tc.in); got != tc.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
