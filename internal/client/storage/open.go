package storage

import (
	"context"
	"fmt"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and addresses a store backend.
type Options struct {
	Driver    string
	DSN       string
	RedisAddr string
}

// Open builds the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverSQLite:
		return OpenSQLite(ctx, opts.DSN)
	case DriverRedis:
		return NewRedisStore(ctx, opts.RedisAddr)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
