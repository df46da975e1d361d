// Package db defines the key-value storage contract the repositories build
// on, with a Redis implementation in the redis subpackage.
package db

import (
	"context"
	"time"
)

// Store is the storage facade. Consumers depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	KVStore
	HashStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// HashStore provides hash-based operations plus key enumeration.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HDel(ctx context.Context, key string, fields ...string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}
