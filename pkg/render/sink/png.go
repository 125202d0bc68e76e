package sink

import (
	"bytes"
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/grid"
)

// ThumbnailSource fetches bitmaps for placements at their placed size. The
// result is aligned with placements; nil entries are left blank.
type ThumbnailSource interface {
	Thumbnails(ctx context.Context, placements []grid.Placement, workers int) ([]image.Image, error)
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	background color.Gray
	captions   bool
	workers    int
	top        int
	height     int
}

// WithPNGBackground sets the background shade (default gray 85).
func WithPNGBackground(c color.Gray) PNGOption { return func(r *pngRenderer) { r.background = c } }

// WithCaptions prints each file name over the bottom of its thumbnail.
func WithCaptions() PNGOption { return func(r *pngRenderer) { r.captions = true } }

// WithWorkers bounds concurrent thumbnail fetches (default GOMAXPROCS).
func WithWorkers(n int) PNGOption { return func(r *pngRenderer) { r.workers = n } }

// WithViewport renders only the window [top, top+height) of the content.
// A height of 0 means the full content height.
func WithViewport(top, height int) PNGOption {
	return func(r *pngRenderer) { r.top, r.height = max(0, top), max(0, height) }
}

// RenderPNG composites the thumbnails of l onto a gray canvas and encodes
// it as PNG.
func RenderPNG(ctx context.Context, l grid.Layout, src ThumbnailSource, opts ...PNGOption) ([]byte, error) {
	img, err := Composite(ctx, l, src, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Composite builds the raster image [RenderPNG] encodes.
func Composite(ctx context.Context, l grid.Layout, src ThumbnailSource, opts ...PNGOption) (*image.NRGBA, error) {
	r := pngRenderer{background: color.Gray{Y: 85}}
	for _, opt := range opts {
		opt(&r)
	}

	height := r.height
	if height == 0 {
		height = max(0, l.ContentHeight-r.top)
	}
	canvas := imaging.New(max(1, l.ContainerWidth), max(1, height), r.background)

	visible := l.Visible(r.top, height)
	if len(visible) == 0 {
		return canvas, nil
	}
	thumbs, err := src.Thumbnails(ctx, visible, r.workers)
	if err != nil {
		return nil, err
	}

	for i, p := range visible {
		pos := image.Pt(p.X, p.Y-r.top)
		if thumbs[i] != nil {
			canvas = imaging.Paste(canvas, thumbs[i], pos)
		}
		if r.captions {
			canvas = drawCaption(canvas, p.Image.Name, image.Rect(pos.X, pos.Y, pos.X+p.Width, pos.Y+p.Height))
		}
	}
	return canvas, nil
}
