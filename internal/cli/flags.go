package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/illustgrid/pkg/gallery"
	"github.com/matzehuels/illustgrid/pkg/grid"
	"github.com/matzehuels/illustgrid/pkg/pipeline"
)

// galleryFlags holds the layout flags shared by view, render and layout.
type galleryFlags struct {
	width     int
	thumb     int
	gap       int
	rowGap    int
	maxHeight int
	shade     int
	seed      uint64
	workers   int
	noCache   bool
}

func defaultGalleryFlags() galleryFlags {
	return galleryFlags{
		width:     pipeline.DefaultWidth,
		thumb:     gallery.DefaultThumbnailWidth,
		gap:       gallery.DefaultColumnGap,
		rowGap:    gallery.DefaultRowGap,
		maxHeight: gallery.DefaultMaxHeight,
		shade:     gallery.DefaultBackgroundShade,
	}
}

// register adds the flags to cmd. withWidth is false for the viewer, whose
// width follows the terminal.
func (f *galleryFlags) register(cmd *cobra.Command, withWidth bool) {
	if withWidth {
		cmd.Flags().IntVar(&f.width, "width", f.width, "container width in pixels")
	}
	cmd.Flags().IntVar(&f.thumb, "thumb-width", f.thumb, "thumbnail width in pixels (50-1000)")
	cmd.Flags().IntVar(&f.gap, "gap", f.gap, "horizontal gap between columns (0-100)")
	cmd.Flags().IntVar(&f.rowGap, "row-gap", f.rowGap, "vertical gap between thumbnails (0-100)")
	cmd.Flags().IntVar(&f.maxHeight, "max-height", f.maxHeight, "cap thumbnail height (0 for no cap)")
	cmd.Flags().IntVar(&f.shade, "shade", f.shade, "background gray level (0-255)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "shuffle seed (0 for random)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent decoders (0 for one per CPU)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the thumbnail cache")
}

// options converts the flags into pipeline options for dir.
func (f galleryFlags) options(dir string) pipeline.Options {
	shade := f.shade
	return pipeline.Options{
		Dir:     dir,
		Workers: f.workers,
		Width:   f.width,
		Params: &grid.Params{
			ThumbnailWidth: f.thumb,
			ColumnGap:      f.gap,
			RowGap:         f.rowGap,
			MaxHeight:      f.maxHeight,
		},
		Seed:  f.seed,
		Shade: &shade,
	}
}
