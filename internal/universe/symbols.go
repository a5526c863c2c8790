package universe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SymbolFile is the versioned symbol-universe config consumed by the fetch
// loops.
type SymbolFile struct {
	Domain  string   `json:"domain"`
	Date    string   `json:"date"`
	Symbols []string `json:"symbols"`
}

// LoadSymbols reads the symbol list from a config file, usually the
// domain's latest.json.
func LoadSymbols(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read symbol config: %w", err)
	}

	var file SymbolFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse symbol config: %w", err)
	}
	if len(file.Symbols) == 0 {
		return nil, fmt.Errorf("symbol config %s has no symbols", path)
	}
	return file.Symbols, nil
}

// SaveSymbols writes a dated version of the symbol list and updates
// latest.json alongside it.
func SaveSymbols(dir, domain string, asOf time.Time, symbols []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file := SymbolFile{
		Domain:  domain,
		Date:    asOf.Format("2006-01-02"),
		Symbols: symbols,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal symbol config: %w", err)
	}

	versioned := filepath.Join(dir, file.Date+".json")
	if err := os.WriteFile(versioned, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", versioned, err)
	}

	latest := filepath.Join(dir, "latest.json")
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", latest, err)
	}
	return nil
}

// Records marshals constituents for the raw-zone stock list.
func Records(constituents []Constituent) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(constituents))
	for _, c := range constituents {
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("marshal constituent %s: %w", c.Symbol, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

// Symbols extracts the ticker list from constituents.
func Symbols(constituents []Constituent) []string {
	out := make([]string, 0, len(constituents))
	for _, c := range constituents {
		out = append(out, c.Symbol)
	}
	return out
}
