package grid

import (
	"github.com/matzehuels/illustgrid/pkg/errors"
)

// Validate checks that p can drive a layout pass. It enforces the engine's
// hard limits only; range limits of the UI sliders live in the gallery model.
func (p Params) Validate() error {
	if p.ThumbnailWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "thumbnail width must be positive, got %d", p.ThumbnailWidth)
	}
	if err := errors.ValidateNonNegative("column gap", p.ColumnGap); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("row gap", p.RowGap); err != nil {
		return err
	}
	return errors.ValidateNonNegative("max height", p.MaxHeight)
}

// Columns returns the number of columns that fit in containerWidth.
// The result is always at least 1, so a container narrower than one
// thumbnail still shows a single (clipped) column.
func Columns(containerWidth int, p Params) int {
	pitch := p.ThumbnailWidth + p.ColumnGap
	if pitch <= 0 || containerWidth <= 0 {
		return 1
	}
	return max(1, (containerWidth+p.ColumnGap)/pitch)
}

// ColumnX returns the left edge of column c.
func ColumnX(c int, p Params) int {
	return p.ColumnGap + c*(p.ThumbnailWidth+p.ColumnGap)
}

// Size returns the rendered size of an image with the given intrinsic
// dimensions. Width is min(ThumbnailWidth, intrinsicWidth) and the height
// follows the aspect ratio, rounded half up. Both are at least 1.
func Size(intrinsicWidth, intrinsicHeight int, p Params) (w, h int) {
	w = min(p.ThumbnailWidth, intrinsicWidth)
	h = max(1, divRound(intrinsicHeight*w, intrinsicWidth))
	if p.MaxHeight > 0 && h > p.MaxHeight {
		h = p.MaxHeight
		w = max(1, divRound(intrinsicWidth*p.MaxHeight, intrinsicHeight))
	}
	return w, h
}

// Compute lays out images in the given order inside a container of the
// given width. Images with unknown size are skipped.
func Compute(images []ImageRef, containerWidth int, p Params) (Layout, error) {
	if err := p.Validate(); err != nil {
		return Layout{}, err
	}
	if err := errors.ValidateNonNegative("container width", containerWidth); err != nil {
		return Layout{}, err
	}

	cols := Columns(containerWidth, p)
	l := Layout{
		Columns:        cols,
		ContainerWidth: containerWidth,
		Params:         p,
		Placements:     make([]Placement, 0, len(images)),
	}

	x := make([]int, cols)
	for c := range x {
		x[c] = ColumnX(c, p)
	}
	y := make([]int, cols)

	col := 0
	for _, img := range images {
		if !img.Known() {
			l.Skipped = append(l.Skipped, img.ID)
			continue
		}
		w, h := Size(img.Width, img.Height, p)
		l.Placements = append(l.Placements, Placement{
			Image:  img,
			Column: col,
			X:      x[col],
			Y:      y[col],
			Width:  w,
			Height: h,
		})
		l.ContentHeight = max(l.ContentHeight, y[col]+h)
		y[col] += h + p.RowGap

		col++
		if col >= cols {
			col = 0
		}
	}
	return l, nil
}

// divRound returns a/b rounded half up, for a >= 0 and b > 0.
func divRound(a, b int) int {
	return (2*a + b) / (2 * b)
}
