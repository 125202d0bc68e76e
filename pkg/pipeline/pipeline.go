// Package pipeline provides the load → layout → render pipeline shared by
// the illustgrid commands.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: scan a folder and decode every image to learn its size
//  2. Layout: shuffle the images into a [gallery.Model] and compute the grid
//  3. Render: write the layout as SVG, PNG and/or JSON
//
// Each stage can be run on its own or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Dir:     "~/Pictures/refs",
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// The interactive viewer runs the stages separately:
//
//	loaded, err := runner.Load(ctx, opts)
//	m, err := runner.Gallery(loaded.Images, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/gallery"
	"github.com/matzehuels/illustgrid/pkg/grid"
	"github.com/matzehuels/illustgrid/pkg/imageio"
)

// =============================================================================
// Default Values - Single Source of Truth for the commands
// =============================================================================

const (
	// DefaultWidth is the container width in pixels for file output.
	DefaultWidth = 1280

	// DefaultHeight is the viewport height in pixels.
	DefaultHeight = 800
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Dir     string `json:"dir"`
	Workers int    `json:"workers,omitempty"` // 0 means GOMAXPROCS

	// Layout options
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	Params *grid.Params `json:"params,omitempty"` // nil means gallery.DefaultParams
	Seed   uint64       `json:"seed,omitempty"` // 0 picks a random seed

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Shade    *int     `json:"shade,omitempty"` // nil means gallery.DefaultBackgroundShade
	Captions bool     `json:"captions,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Progress, when set, is called after each image is decoded. It runs
	// on the decoder goroutines.
	Progress func(done, total int) `json:"-"`

	// PrimeThumbnails keeps a thumbnail of every decoded image so the
	// first render does not decode the files again.
	PrimeThumbnails bool `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Images are the loaded images in folder order, with sizes where
	// decoding succeeded.
	Images []grid.ImageRef

	// Failures lists images that did not decode.
	Failures []imageio.Failure

	// Layout is the computed grid.
	Layout grid.Layout

	// Seed is the shuffle seed actually used.
	Seed uint64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings holds non-fatal conditions such as an empty folder.
	Warnings []error

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount int
	Failed     int
	Placed     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated list such as "svg,png".
func ParseFormats(s string) []string {
	var out []string
	for f := range strings.SplitSeq(s, ",") {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the folder path.
func (o *Options) ValidateForLoad() error {
	if err := errors.ValidatePath(o.Dir); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("workers", o.Workers); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Params == nil {
		p := gallery.DefaultParams()
		o.Params = &p
	}
	for o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateNonNegative("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("height", o.Height); err != nil {
		return err
	}
	return gallery.ValidateParams(o.LayoutParams())
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Shade == nil {
		s := gallery.DefaultBackgroundShade
		o.Shade = &s
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return errors.ValidateRange("background shade", *o.Shade, gallery.MinBackgroundShade, gallery.MaxBackgroundShade)
}

// LayoutParams returns the layout parameters, or the defaults when unset.
func (o *Options) LayoutParams() grid.Params {
	if o.Params == nil {
		return gallery.DefaultParams()
	}
	return *o.Params
}

// ShadeValue returns the background shade, or the default when unset.
func (o *Options) ShadeValue() uint8 {
	if o.Shade == nil {
		return gallery.DefaultBackgroundShade
	}
	return uint8(*o.Shade)
}

// WantsFormat reports whether format is among the requested formats.
func (o *Options) WantsFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
