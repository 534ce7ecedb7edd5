// Package cache provides pluggable byte caches and deterministic cache keys
// for composed views. Backends: in-memory (server default), file-based (CLI),
// Redis (shared deployments) and a null cache for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// TTLs per cached object kind. Composed views and rendered artifacts are
// derived purely from snapshot+view content hashes so they can live long.
const (
	TTLCompose = 24 * time.Hour
	TTLRender  = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// A ttl of zero means no expiration.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys. Implementations must be deterministic: the same
// inputs always produce the same key.
type Keyer interface {
	// ComposeKey identifies a composed view model for a snapshot/view pair.
	ComposeKey(snapshotHash, viewHash string) string
	// RenderKey identifies a rendered artifact (e.g. SVG) for a composed view.
	RenderKey(composeHash, format string) string
}

// DefaultKeyer generates versioned, hash-based keys. The embedded version
// constant invalidates all existing entries when the composed view model's
// shape changes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

const keyVersion = "v1"

func (k *DefaultKeyer) ComposeKey(snapshotHash, viewHash string) string {
	return hashKey("compose", keyVersion, snapshotHash, viewHash)
}

func (k *DefaultKeyer) RenderKey(composeHash, format string) string {
	return hashKey("render", keyVersion, composeHash, format)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
