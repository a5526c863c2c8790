package rawzone

import (
	"context"
	"fmt"

	"github.com/mkaran/eodpipe/internal/config"
)

// Backend is the narrow object-storage contract the raw zone consumes.
type Backend interface {
	// Put writes an object. S3 puts are atomic by the backend's contract;
	// the local backend guarantees the same via temp-file-and-rename.
	Put(ctx context.Context, key string, body []byte) error

	// Get reads a whole object.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether the key is already present.
	Exists(ctx context.Context, key string) (bool, error)
}

// NewBackend builds the backend selected by configuration.
func NewBackend(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3Backend(ctx, cfg)
	case "local":
		return NewLocalBackend(cfg.LocalRoot)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
