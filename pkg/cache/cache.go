// Package cache stores pipeline results keyed by content hash.
//
// Analysis results are pure functions of the intersection definition and the
// solver settings, so they can be cached indefinitely under a key derived
// from both. Three backends are provided:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that callers can namespace them with
// [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	TTLResult = 7 * 24 * time.Hour
	TTLRender = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKeyOpts are the solver settings that change an analysis result.
type ResultKeyOpts struct {
	Strategy      string `json:"strategy"`
	MaxExactNodes int    `json:"max_exact_nodes"`
}

// RenderKeyOpts are the settings that change a rendered conflict graph.
type RenderKeyOpts struct {
	Format    string  `json:"format"`
	Highlight int     `json:"highlight"`
	Scale     float64 `json:"scale,omitempty"` // PNG only
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey keys an analysis result by the hash of its input.
	ResultKey(inputHash string, opts ResultKeyOpts) string

	// RenderKey keys a rendered artifact by the hash of its result.
	RenderKey(resultHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces "result:<sha256>" and "render:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(resultHash string, opts RenderKeyOpts) string {
	return hashKey("render", resultHash, opts)
}
