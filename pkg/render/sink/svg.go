package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"net/url"
	"path/filepath"

	"github.com/matzehuels/illustgrid/pkg/grid"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background color.Gray
	captions   bool
	href       func(grid.ImageRef) string
}

// WithBackground sets the background shade (default gray 85).
func WithBackground(c color.Gray) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithSVGCaptions prints each file name over the bottom of its thumbnail.
func WithSVGCaptions() SVGOption { return func(r *svgRenderer) { r.captions = true } }

// WithHref overrides how an image is linked; the default is a file URL of
// its id.
func WithHref(fn func(grid.ImageRef) string) SVGOption {
	return func(r *svgRenderer) {
		if fn != nil {
			r.href = fn
		}
	}
}

// RenderSVG renders l as an SVG document sized to the container width and
// the content height.
func RenderSVG(l grid.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{background: color.Gray{Y: 85}, href: fileHref}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := l.ContainerWidth, l.ContentHeight
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexGray(r.background))

	for _, p := range l.Placements {
		fmt.Fprintf(&buf, `  <image x="%d" y="%d" width="%d" height="%d" href="%s" preserveAspectRatio="none"/>`+"\n",
			p.X, p.Y, p.Width, p.Height, escapeXML(r.href(p.Image)))
	}

	if r.captions {
		for _, p := range l.Placements {
			renderSVGCaption(&buf, p)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGCaption(buf *bytes.Buffer, p grid.Placement) {
	if p.Height < captionHeight {
		return
	}
	top := p.Bottom() - captionHeight
	fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="black" fill-opacity="0.7"/>`+"\n",
		p.X, top, p.Width, captionHeight)
	fmt.Fprintf(buf, `  <text x="%d" y="%d" font-family="monospace" font-size="12" fill="white" text-anchor="middle">%s</text>`+"\n",
		p.X+p.Width/2, top+14, escapeXML(p.Image.Name))
}

func fileHref(ref grid.ImageRef) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(ref.ID)}
	return u.String()
}

// hexGray formats c as #VVVVVV.
func hexGray(c color.Gray) string {
	return fmt.Sprintf("#%02x%02x%02x", c.Y, c.Y, c.Y)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
