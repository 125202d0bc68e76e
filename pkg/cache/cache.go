// Package cache provides byte caches for derived artifacts.
//
// illustgrid caches encoded thumbnails so that reopening a folder, or
// switching back to a thumbnail width used before, does not decode and
// resample every image again. Two implementations are provided:
//
//   - [FileCache]: entries as files under a directory (CLI default,
//     $XDG_CACHE_HOME/illustgrid)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys are derived by a [Keyer] from everything that influences the cached
// bytes, so stale entries are simply never looked up again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. A miss is reported as hit == false
	// with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ThumbnailKeyOpts identifies one encoded thumbnail.
type ThumbnailKeyOpts struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
}

// Keyer derives cache keys.
type Keyer interface {
	ThumbnailKey(opts ThumbnailKeyOpts) string
}

// DefaultKeyer hashes all key components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ThumbnailKey returns "thumb:<sha256>" over the source file identity and
// the target size.
func (DefaultKeyer) ThumbnailKey(opts ThumbnailKeyOpts) string {
	id := fmt.Sprintf("%s\x00%d\x00%d\x00%dx%d",
		opts.Path, opts.Size, opts.ModTime.UTC().UnixNano(), opts.Width, opts.Height)
	return "thumb:" + Hash([]byte(id))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache never stores anything; every Get misses.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }
