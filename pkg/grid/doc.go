// Package grid computes masonry-style placements for a gallery of images.
//
// # Overview
//
// The layout engine is a pure function of an ordered image list, a container
// width and a set of [Params]. It assigns every image to a column and a
// vertical offset:
//
//   - The column count is max(1, (containerWidth + ColumnGap) / (ThumbnailWidth + ColumnGap)).
//     A column only opens once a full thumbnail plus one gap fits.
//   - Column c starts at x = ColumnGap + c*(ThumbnailWidth + ColumnGap).
//   - Images are dealt round robin: the k-th placed image lands in column
//     k mod columns, regardless of how tall each column already is.
//   - Each image sits directly below the previous image of its column,
//     separated by RowGap.
//
// Round robin is deliberate. It keeps the visual order of a shuffle stable
// (reading left to right, top to bottom approximates the list order) at the
// cost of ragged column bottoms; it is not shortest-column-first packing.
//
// # Sizing
//
// Images are scaled down to ThumbnailWidth preserving their aspect ratio and
// never scaled up: an image narrower than the thumbnail keeps its own width.
// When [Params.MaxHeight] is set, very tall images are shrunk further so
// their height does not exceed it.
//
// # Failures
//
// An [ImageRef] whose size is unknown (zero width or height, typically a
// decode failure) is skipped. It does not consume a column slot and does not
// contribute to [Layout.ContentHeight]; its id is reported in
// [Layout.Skipped]. Invalid parameters are rejected with an
// INVALID_PARAMETER error from [github.com/matzehuels/illustgrid/pkg/errors].
//
// # Usage
//
//	l, err := grid.Compute(images, 960, grid.Params{
//	    ThumbnailWidth: 300,
//	    ColumnGap:      15,
//	    RowGap:         20,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, p := range l.Placements {
//	    draw(p.Image.ID, p.X, p.Y, p.Width, p.Height)
//	}
//	setScrollHeight(l.ContentHeight)
//
// [Compute] has no side effects; calling it twice with identical inputs
// yields identical results.
package grid
