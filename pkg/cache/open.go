package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string
	TTL     time.Duration
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open creates the backend named by opts.Backend. An empty backend means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile, "":
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		rc, err := NewRedisCache(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendMongo:
		mc, err := NewMongoCache(ctx, opts.Mongo)
		if err != nil {
			return nil, err
		}
		return mc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}

// DefaultDir returns the per-user cache directory for matteray.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("user cache dir: %w", err)
	}
	return filepath.Join(base, "matteray"), nil
}
