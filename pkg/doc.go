// Package pkg provides the core libraries for Illustgrid, a masonry viewer
// for folders of reference images.
//
// # Overview
//
// Illustgrid places every image of a folder into fixed-width columns,
// round robin in a shuffled order, and shows the result in the terminal or
// writes it to SVG, PNG or JSON. The pkg directory is organized into:
//
//  1. [grid] - The layout engine (columns, sizes, positions)
//  2. [gallery] - The interactive model (order, parameters, scroll, events)
//  3. [imageio] - Folder scanning, concurrent decoding, thumbnails
//  4. [render/sink] - Output formats (SVG, PNG, JSON)
//  5. [pipeline] - Orchestration (load → layout → render)
//
// # Architecture
//
// The typical data flow:
//
//	Image folder
//	     ↓
//	[imageio] package (scan + decode intrinsic sizes)
//	     ↓
//	[gallery] package (shuffle + parameters)
//	     ↓
//	[grid] package (placements)
//	     ↓
//	[render/sink] package (SVG/PNG/JSON) or the terminal viewer
//
// # Quick Start
//
//	refs, _ := imageio.Scan("~/refs")
//	res, _ := imageio.NewLoader().Load(ctx, refs)
//
//	m := gallery.New(res.Images, gallery.WithContainer(1280, 800))
//	l, _ := m.Layout()
//
//	svg := sink.RenderSVG(l, sink.WithBackground(m.Background()))
//
// Or let the pipeline do all of it:
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Dir:     "~/refs",
//	    Formats: []string{pipeline.FormatPNG, pipeline.FormatJSON},
//	})
//
// # Supporting Packages
//
// [cache] - Disk cache for resized thumbnails (file and null backends).
//
// [errors] - Coded errors and input validation shared by every package.
//
// [observability] - Hooks for pipeline stages and cache hits.
//
// [buildinfo] - Version information injected at build time.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/grid
// [gallery]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/gallery
// [imageio]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/imageio
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/illustgrid/pkg/buildinfo
package pkg
