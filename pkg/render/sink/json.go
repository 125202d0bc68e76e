package sink

import (
	"encoding/json"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/grid"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed  uint64
	shade *int
}

// WithJSONSeed records the shuffle seed so the order can be reproduced.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONShade records the background shade.
func WithJSONShade(v uint8) JSONOption {
	return func(r *jsonRenderer) { s := int(v); r.shade = &s }
}

type jsonOutput struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Columns    int             `json:"columns"`
	Params     grid.Params     `json:"params"`
	Seed       uint64          `json:"seed,omitempty"`
	Shade      *int            `json:"shade,omitempty"`
	Placements []jsonPlacement `json:"placements"`
	Skipped    []string        `json:"skipped,omitempty"`
}

type jsonPlacement struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Column int    `json:"column"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RenderJSON exports l as a pretty-printed JSON document.
func RenderJSON(l grid.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      l.ContainerWidth,
		Height:     l.ContentHeight,
		Columns:    l.Columns,
		Params:     l.Params,
		Seed:       r.seed,
		Shade:      r.shade,
		Placements: make([]jsonPlacement, 0, len(l.Placements)),
	}
	for _, p := range l.Placements {
		out.Placements = append(out.Placements, jsonPlacement{
			ID:     p.Image.ID,
			Name:   p.Image.Name,
			Column: p.Column,
			X:      p.X,
			Y:      p.Y,
			Width:  p.Width,
			Height: p.Height,
		})
	}
	out.Skipped = l.Skipped

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}
