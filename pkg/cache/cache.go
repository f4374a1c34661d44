// Package cache stores rendered artifacts and construction graphs so that
// re-importing an unchanged document is free.
//
// # Backends
//
//   - [NullCache]: stores nothing; every Get is a miss
//   - [FileCache]: one JSON file per key under a local directory
//   - [RedisCache]: a shared Redis instance, for several API servers
//
// # Keys
//
// Keys are produced by a [Keyer] from content hashes and the options that
// influence the cached value, so different documents or options never
// collide. A [ScopedKeyer] prefixes every key, which lets several tenants
// share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// GraphKeyOpts are the import options a cached construction graph depends on.
type GraphKeyOpts struct {
	DependentStroke string `json:"stroke,omitempty"`
	DependentFill   string `json:"fill,omitempty"`
}

// ArtifactKeyOpts are the render options a cached artifact depends on.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Unit     float64 `json:"unit,omitempty"`
	OriginX  float64 `json:"origin_x,omitempty"`
	OriginY  float64 `json:"origin_y,omitempty"`
	Hidden   bool    `json:"hidden,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// GraphKey identifies the construction graph of a document.
	GraphKey(documentHash string, opts GraphKeyOpts) string

	// ArtifactKey identifies a rendering of a construction graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the content hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey returns "graph:<sha256>".
func (DefaultKeyer) GraphKey(documentHash string, opts GraphKeyOpts) string {
	return hashKey("graph", documentHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
