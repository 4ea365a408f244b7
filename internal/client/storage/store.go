// Package storage persists the handful of opaque strings the client keeps
// between runs: the session token and the identifiers returned by the
// backend. Values are never inspected.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnknownKey    = errors.New("unknown storage key")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Store is the single-key contract used by the session facade.
//
// Get reports absence as ("", false, nil). Remove of an absent key is not
// an error. Implementations serialise their own single-key operations;
// callers do not lock.
type Store interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	Set(ctx context.Context, key Key, value string) error
	Remove(ctx context.Context, key Key) error
}

// Lister is implemented by stores that can enumerate their contents.
type Lister interface {
	List(ctx context.Context) (map[Key]string, error)
}

// Backend is what Open hands out: a store that can also be listed,
// written in bulk and closed.
type Backend interface {
	Store
	Lister
	SetMany(ctx context.Context, values map[Key]string) error
	Close() error
}

func checkKey(key Key) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}
	return nil
}

func checkKeys(values map[Key]string) error {
	for k := range values {
		if err := checkKey(k); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Backend = (*MemoryStore)(nil)
	_ Backend = (*SQLiteStore)(nil)
	_ Backend = (*RedisStore)(nil)
)
