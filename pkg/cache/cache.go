// Package cache stores rendered documents and artifacts.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] and
// [MongoCache] for shared deployments, and [NullCache] to disable caching.
// Keys come from a [Keyer] so that every backend sees the same layout:
//
//	doc:<sha256 of settings, content and sheet>
//	artifact:<sha256 of document hash and format options>
//
// A cache failure never fails a build; callers treat errors as misses.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Entry lifetimes.
const (
	TTLDocument = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
