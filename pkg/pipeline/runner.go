package pipeline

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/illustgrid/pkg/cache"
	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/gallery"
	"github.com/matzehuels/illustgrid/pkg/grid"
	"github.com/matzehuels/illustgrid/pkg/imageio"
	"github.com/matzehuels/illustgrid/pkg/observability"
	"github.com/matzehuels/illustgrid/pkg/render/sink"
)

// Runner encapsulates pipeline execution with thumbnail caching.
//
// The Runner holds the thumbnail store and the disk cache across stages,
// so a viewer that renders many frames decodes each file once.
type Runner struct {
	Cache  cache.Cache
	Thumbs *imageio.Thumbnailer
	Logger *log.Logger

	dir string // folder of the last Load
}

// NewRunner creates a runner with the given thumbnail cache.
// If cache is nil, a NullCache is used (disk caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache: c,
		Thumbs: imageio.NewThumbnailer(
			imageio.WithCache(c),
			imageio.WithThumbnailLogger(logger),
		),
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.WantsFormat(FormatPNG) {
		opts.PrimeThumbnails = true
	}
	result := &Result{Seed: opts.Seed}

	// Stage 1: Load
	loadStart := time.Now()
	loaded, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Images = loaded.Images
	result.Failures = loaded.Failures
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ImageCount = len(loaded.Images)
	result.Stats.Failed = len(loaded.Failures)
	if len(loaded.Images) == 0 {
		result.Warnings = append(result.Warnings, emptyDirectory(opts.Dir))
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	m, err := r.Gallery(loaded.Images, opts)
	if err != nil {
		return nil, err
	}
	layout, err := r.ComputeLayout(ctx, m)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Placed = len(layout.Placements)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// Load scans opts.Dir and decodes every image. A folder without images is
// logged as a warning and yields an empty result.
func (r *Runner) Load(ctx context.Context, opts Options) (res imageio.Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return imageio.Result{}, err
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Dir)
	defer func() {
		observability.Pipeline().OnLoadComplete(ctx, opts.Dir, res.Loaded(), len(res.Failures), time.Since(start), err)
	}()

	refs, err := imageio.Scan(opts.Dir)
	if err != nil {
		return imageio.Result{}, err
	}
	if r.dir != "" && r.dir != opts.Dir {
		r.Thumbs.Store().Reset()
	}
	r.dir = opts.Dir
	if len(refs) == 0 {
		opts.Logger.Warn(errors.UserMessage(emptyDirectory(opts.Dir)))
		return imageio.Result{}, nil
	}
	opts.Logger.Debug("Scanned folder", "dir", opts.Dir, "images", len(refs))

	loaderOpts := []imageio.LoaderOption{
		imageio.WithWorkers(opts.Workers),
		imageio.WithLogger(opts.Logger),
	}
	if opts.Progress != nil {
		loaderOpts = append(loaderOpts, imageio.WithProgress(opts.Progress))
	}
	if opts.PrimeThumbnails {
		p := opts.LayoutParams()
		loaderOpts = append(loaderOpts, imageio.WithDecoded(func(ref grid.ImageRef, img image.Image) {
			r.Thumbs.Prime(ref, img, p)
		}))
	}
	return imageio.NewLoader(loaderOpts...).Load(ctx, refs)
}

// Gallery builds the gallery model for images.
func (r *Runner) Gallery(images []grid.ImageRef, opts Options) (*gallery.Model, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	return gallery.New(images,
		gallery.WithParams(opts.LayoutParams()),
		gallery.WithSeed(opts.Seed),
		gallery.WithContainer(opts.Width, opts.Height),
		gallery.WithBackgroundShade(opts.ShadeValue()),
	), nil
}

// ComputeLayout returns the current layout of m, reporting it to the
// pipeline hooks.
func (r *Runner) ComputeLayout(ctx context.Context, m *gallery.Model) (grid.Layout, error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(m.Images()))
	l, err := m.Layout()
	observability.Pipeline().OnLayoutComplete(ctx, l.Columns, time.Since(start), err)
	if err != nil {
		return grid.Layout{}, err
	}
	r.Logger.Debug("Computed layout",
		"columns", l.Columns,
		"placed", len(l.Placements),
		"skipped", len(l.Skipped),
		"height", l.ContentHeight)
	return l, nil
}

// Render generates output artifacts in the requested formats.
func (r *Runner) Render(ctx context.Context, l grid.Layout, opts Options) (artifacts map[string][]byte, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	bg := color.Gray{Y: opts.ShadeValue()}
	artifacts = make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatSVG:
			svgOpts := []sink.SVGOption{sink.WithBackground(bg)}
			if opts.Captions {
				svgOpts = append(svgOpts, sink.WithSVGCaptions())
			}
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithPNGBackground(bg), sink.WithWorkers(opts.Workers)}
			if opts.Captions {
				pngOpts = append(pngOpts, sink.WithCaptions())
			}
			data, err = sink.RenderPNG(ctx, l, r.Thumbs, pngOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONSeed(opts.Seed), sink.WithJSONShade(opts.ShadeValue()))
		default:
			return nil, ValidateFormat(format)
		}
		if err != nil {
			return nil, wrapRender(format, err)
		}
		artifacts[format] = data
		opts.Logger.Debug("Rendered artifact", "format", format, "bytes", len(data))
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func emptyDirectory(dir string) error {
	return errors.New(errors.ErrCodeEmptyDirectory, "no .jpg, .jpeg or .png images in %s", dir)
}

func wrapRender(format string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "render %s", format)
}
