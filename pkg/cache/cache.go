// Package cache stores rendered structograms between runs.
//
// Rendering is keyed in two stages. A scene key covers the class file, the
// selected method and the layout configuration; an artifact key covers the
// scene plus the output options (format, style, title, scale). Re-rendering
// the same method in another format therefore skips layout entirely.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit. Misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// SceneKey identifies a painted scene.
	SceneKey(classHash string, opts SceneKeyOpts) string
	// ArtifactKey identifies a rendered output file.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the inputs that change a scene besides the class file.
type SceneKeyOpts struct {
	Method   string `json:"method"`
	Line     int    `json:"line,omitempty"`
	Config   any    `json:"config"`
	Measurer string `json:"measurer"`
}

// ArtifactKeyOpts are the output options of a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Style     string  `json:"style,omitempty"`
	Title     string  `json:"title,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Viz       string  `json:"viz,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey returns "scene:<hash>".
func (DefaultKeyer) SceneKey(classHash string, opts SceneKeyOpts) string {
	return hashKey("scene", classHash, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), sceneHash, opts)
}

// Default TTLs. Scenes depend only on the class content hash, so they can
// live long; artifacts are cheap to rebuild from a cached scene.
const (
	TTLScene    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
