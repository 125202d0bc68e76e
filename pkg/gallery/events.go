package gallery

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/grid"
)

// Event is a user action delivered by a UI shell.
type Event interface {
	event()
}

// Param names a slider-controlled value.
type Param int

// Slider-controlled values.
const (
	ParamThumbnailWidth Param = iota
	ParamColumnGap
	ParamRowGap
	ParamBackgroundShade
)

func (p Param) String() string {
	switch p {
	case ParamThumbnailWidth:
		return "thumbnail width"
	case ParamColumnGap:
		return "column gap"
	case ParamRowGap:
		return "row gap"
	case ParamBackgroundShade:
		return "background shade"
	default:
		return fmt.Sprintf("param(%d)", int(p))
	}
}

// Scroll directions for [ScrollDelta].
const (
	ScrollUp   = -1
	ScrollDown = 1
)

// Reshuffled asks for a new random order.
type Reshuffled struct{}

// ParamChanged sets a slider value.
type ParamChanged struct {
	Param Param
	Value int
}

// Resized reports a new container size in pixels.
type Resized struct {
	Width, Height int
}

// ScrollDelta scrolls by one unit per step; negative is up.
type ScrollDelta struct {
	Direction int
}

func (Reshuffled) event()   {}
func (ParamChanged) event() {}
func (Resized) event()      {}
func (ScrollDelta) event()  {}

// Frame is everything a renderer needs to draw the gallery once.
type Frame struct {
	Layout     grid.Layout
	Width      int
	Height     int
	Background color.Gray
	ScrollY    int
}

// Renderer draws frames.
type Renderer interface {
	Render(Frame) error
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(Frame) error

// Render calls f.
func (f RendererFunc) Render(fr Frame) error { return f(fr) }

// Apply updates the model for ev without rendering.
func (m *Model) Apply(ev Event) error {
	switch ev := ev.(type) {
	case Reshuffled:
		m.Reshuffle()
		return nil
	case ParamChanged:
		return m.setParam(ev.Param, ev.Value)
	case Resized:
		return m.OnContainerResized(ev.Width, ev.Height)
	case ScrollDelta:
		// Scrolling is clamped against the layout, so it must be current.
		if _, err := m.Layout(); err != nil {
			return err
		}
		switch {
		case ev.Direction > 0:
			m.Scroll(1)
		case ev.Direction < 0:
			m.Scroll(-1)
		}
		return nil
	case nil:
		return errors.New(errors.ErrCodeInternal, "nil event")
	default:
		return errors.New(errors.ErrCodeInternal, "unknown event %T", ev)
	}
}

// Dispatch applies ev, recomputes the layout if it became stale and hands
// the resulting frame to r. Rejected events return their error and render
// nothing.
func (m *Model) Dispatch(ev Event, r Renderer) error {
	if err := m.Apply(ev); err != nil {
		return err
	}
	fr, err := m.Frame()
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	return r.Render(fr)
}

// Frame returns the current frame, recomputing the layout if needed.
func (m *Model) Frame() (Frame, error) {
	l, err := m.Layout()
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Layout:     l,
		Width:      m.width,
		Height:     m.height,
		Background: m.Background(),
		ScrollY:    m.scrollY,
	}, nil
}

func (m *Model) setParam(p Param, v int) error {
	switch p {
	case ParamThumbnailWidth:
		return m.SetThumbnailWidth(v)
	case ParamColumnGap:
		return m.SetColumnGap(v)
	case ParamRowGap:
		return m.SetRowGap(v)
	case ParamBackgroundShade:
		return m.SetBackgroundShade(v)
	default:
		return errors.New(errors.ErrCodeInvalidParameter, "unknown parameter %s", p)
	}
}

// Value returns the current value of a slider-controlled parameter.
func (m *Model) Value(p Param) int {
	switch p {
	case ParamThumbnailWidth:
		return m.params.ThumbnailWidth
	case ParamColumnGap:
		return m.params.ColumnGap
	case ParamRowGap:
		return m.params.RowGap
	case ParamBackgroundShade:
		return int(m.shade)
	default:
		return 0
	}
}
