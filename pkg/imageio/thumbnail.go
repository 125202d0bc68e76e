package imageio

import (
	"bytes"
	"context"
	"image"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/illustgrid/pkg/cache"
	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/grid"
	"github.com/matzehuels/illustgrid/pkg/observability"
)

// Thumbnailer produces resized bitmaps for placements.
type Thumbnailer struct {
	store  *Store
	cache  cache.Cache
	keyer  cache.Keyer
	open   OpenFunc
	logger *log.Logger
}

// ThumbnailerOption configures a Thumbnailer.
type ThumbnailerOption func(*Thumbnailer)

// WithCache stores encoded thumbnails in c across runs.
func WithCache(c cache.Cache) ThumbnailerOption {
	return func(t *Thumbnailer) {
		if c != nil {
			t.cache = c
		}
	}
}

// WithThumbnailOpen replaces the decoder, e.g. in tests.
func WithThumbnailOpen(fn OpenFunc) ThumbnailerOption {
	return func(t *Thumbnailer) { t.open = fn }
}

// WithThumbnailLogger sets the logger.
func WithThumbnailLogger(logger *log.Logger) ThumbnailerOption {
	return func(t *Thumbnailer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewThumbnailer creates a thumbnailer with an empty in-memory store and,
// unless [WithCache] is given, no disk cache.
func NewThumbnailer(opts ...ThumbnailerOption) *Thumbnailer {
	t := &Thumbnailer{
		store:  NewStore(),
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		open:   Open,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Store returns the in-memory thumbnail store.
func (t *Thumbnailer) Store() *Store { return t.store }

// Prime stores a thumbnail of an already decoded image at the size p gives
// it, so the first render does not decode the file a second time.
func (t *Thumbnailer) Prime(ref grid.ImageRef, img image.Image, p grid.Params) {
	if !ref.Known() || p.ThumbnailWidth <= 0 {
		return
	}
	w, h := grid.Size(ref.Width, ref.Height, p)
	if _, ok := t.store.Get(ref.ID, w, h); ok {
		return
	}
	t.store.Put(ref.ID, w, h, Resize(img, w, h))
}

// Thumbnail returns the bitmap of ref at w x h, from memory, the disk
// cache, or by decoding the file, in that order.
func (t *Thumbnailer) Thumbnail(ctx context.Context, ref grid.ImageRef, w, h int) (image.Image, error) {
	if img, ok := t.store.Get(ref.ID, w, h); ok {
		return img, nil
	}

	key, keyed := t.key(ref.ID, w, h)
	if keyed {
		if img, ok := t.fromCache(ctx, key); ok {
			t.store.Put(ref.ID, w, h, img)
			return img, nil
		}
	}

	src, err := t.open(ref.ID)
	if err != nil {
		return nil, err
	}
	img := Resize(src, w, h)
	t.store.Put(ref.ID, w, h, img)

	if keyed {
		t.toCache(ctx, key, img)
	}
	return img, nil
}

// Thumbnails fetches the bitmaps of all placements on a bounded worker
// pool. The result is aligned with placements; an entry is nil when its
// image failed to decode, which is logged but not returned as an error.
func (t *Thumbnailer) Thumbnails(ctx context.Context, placements []grid.Placement, workers int) ([]image.Image, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]image.Image, len(placements))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range placements {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := t.Thumbnail(ctx, p.Image, p.Width, p.Height)
			if err != nil {
				t.logger.Warn("Skipping thumbnail", "name", p.Image.Name, "err", err)
				return nil
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Thumbnailer) key(path string, w, h int) (string, bool) {
	if _, null := t.cache.(*cache.NullCache); null {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	return t.keyer.ThumbnailKey(cache.ThumbnailKeyOpts{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Width:   w,
		Height:  h,
	}), true
}

func (t *Thumbnailer) fromCache(ctx context.Context, key string) (image.Image, bool) {
	data, hit, err := t.cache.Get(ctx, key)
	if err != nil {
		t.logger.Debug("Thumbnail cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "thumbnail")
		return nil, false
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		_ = t.cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "thumbnail")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "thumbnail")
	return img, true
}

func (t *Thumbnailer) toCache(ctx context.Context, key string, img image.Image) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.logger.Debug("Thumbnail encode failed", "err", errors.Wrap(errors.ErrCodeInternal, err, "encode thumbnail"))
		return
	}
	if err := t.cache.Set(ctx, key, buf.Bytes(), 0); err != nil {
		t.logger.Debug("Thumbnail cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "thumbnail", buf.Len())
}
