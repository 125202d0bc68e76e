package imageio

import (
	"context"
	"image"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/illustgrid/pkg/grid"
)

// Failure records an image that could not be decoded.
type Failure struct {
	ID  string
	Err error
}

// Result is the outcome of [Loader.Load].
type Result struct {
	// Images are the input refs in input order, with sizes filled in for
	// every image that decoded.
	Images []grid.ImageRef

	// Failures lists the images that did not decode, in input order.
	Failures []Failure
}

// Loaded returns the number of images with a known size.
func (r Result) Loaded() int {
	return len(r.Images) - len(r.Failures)
}

// Loader decodes images on a bounded worker pool.
type Loader struct {
	workers   int
	open      OpenFunc
	logger    *log.Logger
	onDecoded func(grid.ImageRef, image.Image)
	onDone    func(done, total int)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWorkers sets the number of concurrent decoders (default GOMAXPROCS).
func WithWorkers(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithOpenFunc replaces the decoder, e.g. in tests.
func WithOpenFunc(fn OpenFunc) LoaderOption {
	return func(l *Loader) { l.open = fn }
}

// WithLogger sets the logger used to report decode failures.
func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDecoded registers a callback that receives every decoded bitmap,
// typically [Thumbnailer.Prime]. It runs on the worker goroutines.
func WithDecoded(fn func(grid.ImageRef, image.Image)) LoaderOption {
	return func(l *Loader) { l.onDecoded = fn }
}

// WithProgress registers a callback invoked after each image, from the
// worker goroutines.
func WithProgress(fn func(done, total int)) LoaderOption {
	return func(l *Loader) { l.onDone = fn }
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		workers: runtime.GOMAXPROCS(0),
		open:    Open,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load decodes refs and fills in their intrinsic sizes. Decode failures are
// logged and collected in the result; only cancellation of ctx returns an
// error.
func (l *Loader) Load(ctx context.Context, refs []grid.ImageRef) (Result, error) {
	out := make([]grid.ImageRef, len(refs))
	errs := make([]error, len(refs))
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i], errs[i] = l.decode(ref)
			if l.onDone != nil {
				l.onDone(int(done.Add(1)), len(refs))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Images: out}
	for i, err := range errs {
		if err != nil {
			res.Failures = append(res.Failures, Failure{ID: refs[i].ID, Err: err})
		}
	}
	return res, nil
}

func (l *Loader) decode(ref grid.ImageRef) (grid.ImageRef, error) {
	img, err := l.open(ref.ID)
	if err != nil {
		l.logger.Warn("Skipping image", "name", ref.Name, "err", err)
		ref.Width, ref.Height = 0, 0
		return ref, err
	}
	b := img.Bounds()
	ref.Width, ref.Height = b.Dx(), b.Dy()
	l.logger.Debug("Decoded image", "name", ref.Name, "width", ref.Width, "height", ref.Height)
	if l.onDecoded != nil {
		l.onDecoded(ref, img)
	}
	return ref, nil
}
