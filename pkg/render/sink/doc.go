// Package sink renders a computed [grid.Layout] to output files.
//
// # Overview
//
// A "sink" turns a layout into bytes. This package provides:
//
//   - SVG: the gallery as a vector document referencing the source files
//   - PNG: a composited raster image with decoded thumbnails
//   - JSON: the placements and parameters for external tools
//
// # SVG Output
//
// [RenderSVG] draws a background rectangle in the gallery shade and one
// <image> element per placement, linked to the original file:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithBackground(color.Gray{Y: 85}),
//	    sink.WithSVGCaptions(),
//	)
//
// # PNG Output
//
// [RenderPNG] needs a [ThumbnailSource], usually an [imageio.Thumbnailer],
// to fetch bitmaps at their placed sizes:
//
//	png, err := sink.RenderPNG(ctx, layout, thumbs,
//	    sink.WithPNGBackground(color.Gray{Y: 85}),
//	    sink.WithCaptions(),
//	)
//
// Placements whose bitmap cannot be produced are left as background.
// [WithViewport] restricts the output to a vertical window, which is how
// the viewer exports the visible frame.
//
// # JSON Output
//
// [RenderJSON] exports container width, content height, columns, params
// and every placement. Images skipped for lack of a size are listed by id.
//
// [grid.Layout]: github.com/matzehuels/illustgrid/pkg/grid.Layout
// [imageio.Thumbnailer]: github.com/matzehuels/illustgrid/pkg/imageio.Thumbnailer
package sink
