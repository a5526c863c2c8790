package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL           = "https://eodhd.com/api"
	DefaultAPITimeout        = 15 * time.Second
	DefaultStorageBackend    = "s3"
	DefaultDBPort            = 5432
	DefaultDBSSLMode         = "prefer"
	DefaultMaxConns          = 10
	DefaultMinConns          = 2
	DefaultDomain            = "sp500"
	DefaultSymbolsPath       = "config/domains/sp500/latest.json"
	DefaultHistoricalSource  = "https://eodhd.com/api/eod/"
	DefaultIncrementalSource = "https://eodhd.com/api/eod-bulk-last-day/US"
)

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultStorageBackend
	}

	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	if c.Domain.Name == "" {
		c.Domain.Name = DefaultDomain
	}
	if c.Domain.SymbolsPath == "" {
		c.Domain.SymbolsPath = DefaultSymbolsPath
	}
	if c.Domain.HistoricalSource == "" {
		c.Domain.HistoricalSource = DefaultHistoricalSource
	}
	if c.Domain.IncrementalSource == "" {
		c.Domain.IncrementalSource = DefaultIncrementalSource
	}
}
