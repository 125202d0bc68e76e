package sink

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionHeight = 20

// drawCaption lays a translucent strip with name across the bottom of cell.
// Cells shorter than the strip get no caption.
func drawCaption(dst *image.NRGBA, name string, cell image.Rectangle) *image.NRGBA {
	w := cell.Dx()
	if cell.Dy() < captionHeight || w <= 0 {
		return dst
	}

	strip := imaging.New(w, captionHeight, color.NRGBA{A: 180})
	face := basicfont.Face7x13
	text := truncateText(name, face, w-10)
	tw := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P((w-tw)/2, (captionHeight+face.Metrics().Ascent.Ceil())/2),
	}
	d.DrawString(text)

	return imaging.Overlay(dst, strip, image.Pt(cell.Min.X, cell.Max.Y-captionHeight), 1.0)
}

// truncateText shortens text with an ellipsis until it fits maxWidth.
func truncateText(text string, face font.Face, maxWidth int) string {
	if font.MeasureString(face, text).Ceil() <= maxWidth {
		return text
	}
	const ellipsis = "..."
	if font.MeasureString(face, ellipsis).Ceil() > maxWidth {
		return ""
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if font.MeasureString(face, string(runes)+ellipsis).Ceil() <= maxWidth {
			return string(runes) + ellipsis
		}
	}
	return ellipsis
}
