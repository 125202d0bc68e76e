package imageio

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/illustgrid/pkg/errors"
)

// OpenFunc decodes the image at path.
type OpenFunc func(path string) (image.Image, error)

// Open decodes the image at path, applying its EXIF orientation so the
// reported size matches what is displayed.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailure, err, "decode %s", path)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New(errors.ErrCodeDecodeFailure, "decode %s: empty image", path)
	}
	return img, nil
}

// Resize scales img to exactly w x h with a Lanczos filter. Images that
// already have that size are returned as is.
func Resize(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
