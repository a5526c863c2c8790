package config

import "time"

// Config is the root configuration for a pipeline run. It is built once at
// process start, validated, and passed into component constructors; nothing
// reads configuration from the environment after startup.
type Config struct {
	API      APIConfig     `yaml:"api"`
	Storage  StorageConfig `yaml:"storage"`
	Database DBConfig      `yaml:"database"`
	Domain   DomainConfig  `yaml:"domain"`
}

// APIConfig holds EODHD API settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig selects and configures the raw-zone backend.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // "s3" or "local"
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // optional, for S3-compatible stores
	LocalRoot string `yaml:"local_root"`
}

// DBConfig holds the warehouse connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// DomainConfig identifies the equity domain being ingested and where its
// symbol universe lives.
type DomainConfig struct {
	Name              string `yaml:"name"`
	SymbolsPath       string `yaml:"symbols_path"`
	HistoricalSource  string `yaml:"historical_source"`
	IncrementalSource string `yaml:"incremental_source"`
}
