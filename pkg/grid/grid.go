package grid

// ImageRef identifies one discovered image.
//
// Width and Height are the intrinsic pixel dimensions. They are zero until
// the image has been decoded, and stay zero when decoding failed.
type ImageRef struct {
	ID     string `json:"id"`   // stable identifier, the absolute file path
	Name   string `json:"name"` // display name, the base file name
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Known reports whether the intrinsic size of the image is available.
func (r ImageRef) Known() bool { return r.Width > 0 && r.Height > 0 }

// Params holds the layout parameters of one pass.
type Params struct {
	ThumbnailWidth int `json:"thumbnail_width" toml:"thumbnail_width"`
	ColumnGap      int `json:"column_gap" toml:"column_gap"`
	RowGap         int `json:"row_gap" toml:"row_gap"`
	MaxHeight      int `json:"max_height,omitempty" toml:"max_height"` // 0 means unbounded
}

// Placement is the position of one image in a layout.
type Placement struct {
	Image  ImageRef `json:"image"`
	Column int      `json:"column"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
}

// Bottom returns the y coordinate just below the placement.
func (p Placement) Bottom() int { return p.Y + p.Height }

// Right returns the x coordinate just right of the placement.
func (p Placement) Right() int { return p.X + p.Width }

// Layout is the result of one layout pass.
type Layout struct {
	Placements     []Placement `json:"placements"`
	Columns        int         `json:"columns"`
	ContainerWidth int         `json:"container_width"`
	ContentHeight  int         `json:"content_height"`
	Params         Params      `json:"params"`
	Skipped        []string    `json:"skipped,omitempty"`
}

// Visible returns the placements that intersect the vertical window
// [top, top+height), in placement order.
func (l Layout) Visible(top, height int) []Placement {
	if height <= 0 {
		return nil
	}
	bottom := top + height
	var out []Placement
	for _, p := range l.Placements {
		if p.Bottom() > top && p.Y < bottom {
			out = append(out, p)
		}
	}
	return out
}

// Column returns the placements assigned to column c, top to bottom.
func (l Layout) Column(c int) []Placement {
	var out []Placement
	for _, p := range l.Placements {
		if p.Column == c {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the placement of the image with the given id.
func (l Layout) Find(id string) (Placement, bool) {
	for _, p := range l.Placements {
		if p.Image.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}
