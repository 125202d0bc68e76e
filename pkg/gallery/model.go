package gallery

import (
	"image/color"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/grid"
)

// Slider ranges and defaults.
const (
	MinThumbnailWidth     = 50
	MaxThumbnailWidth     = 1000
	DefaultThumbnailWidth = 300

	MinColumnGap     = 0
	MaxColumnGap     = 100
	DefaultColumnGap = 15

	MinRowGap     = 0
	MaxRowGap     = 100
	DefaultRowGap = 20

	MinBackgroundShade     = 0
	MaxBackgroundShade     = 255
	DefaultBackgroundShade = 85

	// DefaultMaxHeight caps thumbnail height; 0 disables the cap.
	DefaultMaxHeight = 0

	// DefaultScrollUnit is the scroll step used while the viewport height
	// is unknown.
	DefaultScrollUnit = 40
)

// DefaultParams returns the layout parameters a new gallery starts with.
func DefaultParams() grid.Params {
	return grid.Params{
		ThumbnailWidth: DefaultThumbnailWidth,
		ColumnGap:      DefaultColumnGap,
		RowGap:         DefaultRowGap,
		MaxHeight:      DefaultMaxHeight,
	}
}

// Model is the state of one gallery session.
type Model struct {
	images []grid.ImageRef
	order  []grid.ImageRef
	params grid.Params

	width, height int
	shade         uint8
	scrollY       int

	rng    *rand.Rand
	layout grid.Layout
	stale  bool
}

// Option configures a Model.
type Option func(*Model)

// WithParams sets the initial layout parameters. Values are validated by
// [New] against the slider ranges; each invalid field falls back to its
// default.
func WithParams(p grid.Params) Option {
	return func(m *Model) { m.params = p }
}

// WithSeed makes the shuffle sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Model) { m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithContainer sets the initial container size in pixels.
func WithContainer(width, height int) Option {
	return func(m *Model) { m.width, m.height = max(0, width), max(0, height) }
}

// WithBackgroundShade sets the initial background shade.
func WithBackgroundShade(v uint8) Option {
	return func(m *Model) { m.shade = v }
}

// WithoutShuffle keeps the discovery order for the initial order.
func WithoutShuffle() Option {
	return func(m *Model) { m.order = slices.Clone(m.images) }
}

// New creates a model over images. The initial order is a random
// permutation unless [WithoutShuffle] is given.
func New(images []grid.ImageRef, opts ...Option) *Model {
	m := &Model{
		images: slices.Clone(images),
		params: DefaultParams(),
		shade:  DefaultBackgroundShade,
		stale:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m.params = sanitizeParams(m.params)
	if m.order == nil {
		m.order = m.shuffled()
	}
	return m
}

// Images returns the discovered images in discovery order.
func (m *Model) Images() []grid.ImageRef { return slices.Clone(m.images) }

// Order returns the current shuffle order.
func (m *Model) Order() []grid.ImageRef { return slices.Clone(m.order) }

// Params returns the current layout parameters.
func (m *Model) Params() grid.Params { return m.params }

// ContainerSize returns the current container size.
func (m *Model) ContainerSize() (width, height int) { return m.width, m.height }

// BackgroundShade returns the current background shade.
func (m *Model) BackgroundShade() uint8 { return m.shade }

// Background returns the background shade as a grayscale colour.
func (m *Model) Background() color.Gray { return color.Gray{Y: m.shade} }

// ScrollY returns the vertical scroll offset in pixels.
func (m *Model) ScrollY() int { return m.scrollY }

// NeedsRelayout reports whether the layout must be recomputed before the
// next render.
func (m *Model) NeedsRelayout() bool { return m.stale }

// Reshuffle replaces the order with a fresh uniform permutation of all
// discovered images and returns it. Layout parameters are untouched.
func (m *Model) Reshuffle() []grid.ImageRef {
	m.order = m.shuffled()
	m.stale = true
	return m.Order()
}

// SetThumbnailWidth updates the thumbnail width.
func (m *Model) SetThumbnailWidth(w int) error {
	if err := errors.ValidateRange("thumbnail width", w, MinThumbnailWidth, MaxThumbnailWidth); err != nil {
		return err
	}
	m.setParams(func(p *grid.Params) { p.ThumbnailWidth = w })
	return nil
}

// SetColumnGap updates the horizontal gap between columns.
func (m *Model) SetColumnGap(g int) error {
	if err := errors.ValidateRange("column gap", g, MinColumnGap, MaxColumnGap); err != nil {
		return err
	}
	m.setParams(func(p *grid.Params) { p.ColumnGap = g })
	return nil
}

// SetRowGap updates the vertical gap between images of a column.
func (m *Model) SetRowGap(g int) error {
	if err := errors.ValidateRange("row gap", g, MinRowGap, MaxRowGap); err != nil {
		return err
	}
	m.setParams(func(p *grid.Params) { p.RowGap = g })
	return nil
}

// SetBackgroundShade updates the background shade. It does not affect the
// layout.
func (m *Model) SetBackgroundShade(v int) error {
	if err := errors.ValidateRange("background shade", v, MinBackgroundShade, MaxBackgroundShade); err != nil {
		return err
	}
	m.shade = uint8(v)
	return nil
}

// OnContainerResized stores the new container size. A height of zero means
// the viewport height is unknown.
func (m *Model) OnContainerResized(width, height int) error {
	if err := errors.ValidateNonNegative("container width", width); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("container height", height); err != nil {
		return err
	}
	m.width, m.height = width, height
	m.stale = true
	return nil
}

// ScrollUnit returns the distance of one scroll step: a tenth of the
// viewport height.
func (m *Model) ScrollUnit() int {
	if m.height <= 0 {
		return DefaultScrollUnit
	}
	return max(1, m.height/10)
}

// Scroll moves the viewport by n scroll units, down for positive n. The
// offset is clamped so the viewport stays within the content.
func (m *Model) Scroll(n int) {
	m.scrollY = m.clampScroll(m.scrollY + n*m.ScrollUnit())
}

// Layout returns the current layout, recomputing it if it is stale.
func (m *Model) Layout() (grid.Layout, error) {
	if !m.stale {
		return m.layout, nil
	}
	l, err := grid.Compute(m.order, m.width, m.params)
	if err != nil {
		return grid.Layout{}, err
	}
	m.layout = l
	m.stale = false
	m.scrollY = m.clampScroll(m.scrollY)
	return l, nil
}

func (m *Model) setParams(fn func(*grid.Params)) {
	p := m.params
	fn(&p)
	m.params = p
	m.stale = true
}

func (m *Model) shuffled() []grid.ImageRef {
	order := slices.Clone(m.images)
	m.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

func (m *Model) clampScroll(y int) int {
	limit := max(0, m.layout.ContentHeight-m.height)
	return min(max(0, y), limit)
}

// ValidateParams checks p against the slider ranges of the model.
func ValidateParams(p grid.Params) error {
	if err := errors.ValidateRange("thumbnail width", p.ThumbnailWidth, MinThumbnailWidth, MaxThumbnailWidth); err != nil {
		return err
	}
	if err := errors.ValidateRange("column gap", p.ColumnGap, MinColumnGap, MaxColumnGap); err != nil {
		return err
	}
	if err := errors.ValidateRange("row gap", p.RowGap, MinRowGap, MaxRowGap); err != nil {
		return err
	}
	return errors.ValidateNonNegative("max height", p.MaxHeight)
}

func sanitizeParams(p grid.Params) grid.Params {
	d := DefaultParams()
	if p.ThumbnailWidth < MinThumbnailWidth || p.ThumbnailWidth > MaxThumbnailWidth {
		p.ThumbnailWidth = d.ThumbnailWidth
	}
	if p.ColumnGap < MinColumnGap || p.ColumnGap > MaxColumnGap {
		p.ColumnGap = d.ColumnGap
	}
	if p.RowGap < MinRowGap || p.RowGap > MaxRowGap {
		p.RowGap = d.RowGap
	}
	if p.MaxHeight < 0 {
		p.MaxHeight = d.MaxHeight
	}
	return p
}
