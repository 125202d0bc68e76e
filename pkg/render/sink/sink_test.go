package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/illustgrid/pkg/grid"
)

var red = color.NRGBA{R: 255, A: 255}

// solidSource returns red bitmaps at the placed size, except for ids in
// missing, which yield nil.
type solidSource struct {
	missing map[string]bool
	calls   int
	got     []grid.Placement
}

func (s *solidSource) Thumbnails(_ context.Context, placements []grid.Placement, _ int) ([]image.Image, error) {
	s.calls++
	s.got = placements
	out := make([]image.Image, len(placements))
	for i, p := range placements {
		if !s.missing[p.Image.ID] {
			out[i] = imaging.New(p.Width, p.Height, red)
		}
	}
	return out, nil
}

func testLayout(t *testing.T) grid.Layout {
	t.Helper()
	images := []grid.ImageRef{
		{ID: "/pics/a.png", Name: "a.png", Width: 400, Height: 300},
		{ID: "/pics/b&c.png", Name: "b&c.png", Width: 400, Height: 300},
		{ID: "/pics/d.png", Name: "d.png", Width: 400, Height: 300},
		{ID: "/pics/broken.png", Name: "broken.png"},
	}
	l, err := grid.Compute(images, 420, grid.Params{ThumbnailWidth: 200, ColumnGap: 10, RowGap: 10})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRenderSVG(t *testing.T) {
	l := testLayout(t)
	svg := string(RenderSVG(l, WithBackground(color.Gray{Y: 85})))

	if !strings.Contains(svg, `viewBox="0 0 420 310"`) {
		t.Errorf("missing viewBox 420x310:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#555555"`) {
		t.Error("missing background #555555")
	}
	if n := strings.Count(svg, "<image "); n != 3 {
		t.Errorf("got %d <image> elements, want 3", n)
	}
	if !strings.Contains(svg, `href="file:///pics/b&amp;c.png"`) {
		t.Errorf("href not escaped:\n%s", svg)
	}
	if strings.Contains(svg, "<text") {
		t.Error("captions rendered without WithSVGCaptions")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	l := testLayout(t)
	svg := string(RenderSVG(l,
		WithSVGCaptions(),
		WithHref(func(ref grid.ImageRef) string { return "thumbs/" + ref.Name }),
	))

	if n := strings.Count(svg, "<text"); n != 3 {
		t.Errorf("got %d captions, want 3", n)
	}
	if !strings.Contains(svg, `>b&amp;c.png</text>`) {
		t.Error("caption text not escaped")
	}
	if !strings.Contains(svg, `href="thumbs/a.png"`) {
		t.Error("custom href not used")
	}
}

func TestHexGray(t *testing.T) {
	tests := []struct {
		v    uint8
		want string
	}{
		{0, "#000000"},
		{85, "#555555"},
		{255, "#ffffff"},
	}
	for _, tt := range tests {
		if got := hexGray(color.Gray{Y: tt.v}); got != tt.want {
			t.Errorf("hexGray(%d) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestComposite(t *testing.T) {
	l := testLayout(t)
	src := &solidSource{missing: map[string]bool{"/pics/d.png": true}}

	img, err := Composite(context.Background(), l, src, WithPNGBackground(color.Gray{Y: 85}))
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(420, 310) {
		t.Fatalf("canvas size = %v, want 420x310", got)
	}

	gray := color.NRGBA{R: 85, G: 85, B: 85, A: 255}
	checks := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"first thumbnail", 10 + 100, 75, red},
		{"second thumbnail", 220 + 100, 75, red},
		{"left gap", 5, 75, gray},
		{"missing bitmap", 10 + 100, 160 + 75, gray},
		{"below second column", 320, 200, gray},
	}
	for _, c := range checks {
		if got := img.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("%s: pixel(%d,%d) = %v, want %v", c.name, c.x, c.y, got, c.want)
		}
	}
}

func TestCompositeViewport(t *testing.T) {
	l := testLayout(t)
	src := &solidSource{}

	img, err := Composite(context.Background(), l, src, WithViewport(150, 100))
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(420, 100) {
		t.Fatalf("viewport size = %v, want 420x100", got)
	}
	if len(src.got) != 1 || src.got[0].Image.Name != "d.png" {
		t.Errorf("fetched %v, want only d.png", src.got)
	}
	// d.png starts at y=160, i.e. 10 px into the window.
	if got := img.NRGBAAt(110, 5); got == red {
		t.Error("row gap painted as thumbnail")
	}
	if got := img.NRGBAAt(110, 15); got != red {
		t.Errorf("pixel(110,15) = %v, want thumbnail", got)
	}
}

func TestCompositeEmpty(t *testing.T) {
	src := &solidSource{}
	img, err := Composite(context.Background(), grid.Layout{ContainerWidth: 100}, src)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(100, 1) {
		t.Errorf("empty canvas size = %v", got)
	}
	if src.calls != 0 {
		t.Error("empty layout fetched thumbnails")
	}
}

func TestCompositeCaptions(t *testing.T) {
	l := testLayout(t)
	img, err := Composite(context.Background(), l, &solidSource{}, WithCaptions())
	if err != nil {
		t.Fatal(err)
	}
	// Left edge of the strip, clear of the centered text.
	got := img.NRGBAAt(11, 145)
	if got.R >= 200 {
		t.Errorf("caption strip not drawn: pixel = %v", got)
	}
	if above := img.NRGBAAt(11, 100); above != red {
		t.Errorf("caption spilled above strip: pixel = %v", above)
	}
}

func TestRenderPNG(t *testing.T) {
	l := testLayout(t)
	data, err := RenderPNG(context.Background(), l, &solidSource{})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(420, 310) {
		t.Errorf("png size = %v", got)
	}
}

func TestRenderJSON(t *testing.T) {
	l := testLayout(t)
	data, err := RenderJSON(l, WithJSONSeed(42), WithJSONShade(85))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 420 || out.Height != 310 || out.Columns != 2 {
		t.Errorf("header = %dx%d/%d, want 420x310/2", out.Width, out.Height, out.Columns)
	}
	if out.Params.ThumbnailWidth != 200 {
		t.Errorf("Params.ThumbnailWidth = %d", out.Params.ThumbnailWidth)
	}
	if out.Seed != 42 || out.Shade == nil || *out.Shade != 85 {
		t.Errorf("seed/shade = %d/%v", out.Seed, out.Shade)
	}
	if len(out.Placements) != 3 {
		t.Fatalf("Placements count = %d, want 3", len(out.Placements))
	}
	if p := out.Placements[2]; p.Name != "d.png" || p.Column != 0 || p.Y != 160 {
		t.Errorf("third placement = %+v", p)
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "/pics/broken.png" {
		t.Errorf("Skipped = %v", out.Skipped)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(grid.Layout{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"placements": []`) {
		t.Errorf("empty layout should export an empty list:\n%s", data)
	}
	if strings.Contains(string(data), "shade") {
		t.Error("shade exported without WithJSONShade")
	}
}

func TestTruncateText(t *testing.T) {
	face := basicfont.Face7x13 // 7 px per glyph
	tests := []struct {
		text     string
		maxWidth int
		want     string
	}{
		{"short.png", 100, "short.png"},
		{"a-very-long-name.png", 70, "a-very-..."},
		{"abc", 14, ""},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := truncateText(tt.text, face, tt.maxWidth); got != tt.want {
			t.Errorf("truncateText(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
		}
	}
}
