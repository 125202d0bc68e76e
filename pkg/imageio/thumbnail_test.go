package imageio

import (
	"context"
	"image"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/illustgrid/pkg/cache"
	"github.com/matzehuels/illustgrid/pkg/grid"
)

func countingOpen(n *atomic.Int64) OpenFunc {
	return func(path string) (image.Image, error) {
		n.Add(1)
		return Open(path)
	}
}

func TestThumbnail(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "a.png", 400, 300)
	ref := grid.ImageRef{ID: path, Name: "a.png", Width: 400, Height: 300}

	var opens atomic.Int64
	th := NewThumbnailer(WithThumbnailOpen(countingOpen(&opens)))

	img, err := th.Thumbnail(context.Background(), ref, 200, 150)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(200, 150) {
		t.Errorf("thumbnail size = %v, want 200x150", got)
	}

	if _, err := th.Thumbnail(context.Background(), ref, 200, 150); err != nil {
		t.Fatal(err)
	}
	if opens.Load() != 1 {
		t.Errorf("file decoded %d times, want 1 (second call from memory)", opens.Load())
	}
}

func TestThumbnailDiskCache(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "a.jpg", 300, 600)
	ref := grid.ImageRef{ID: path, Name: "a.jpg", Width: 300, Height: 600}

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var opens atomic.Int64
	first := NewThumbnailer(WithCache(fc), WithThumbnailOpen(countingOpen(&opens)))
	if _, err := first.Thumbnail(context.Background(), ref, 100, 200); err != nil {
		t.Fatal(err)
	}

	// A fresh thumbnailer has an empty store but shares the disk cache.
	second := NewThumbnailer(WithCache(fc), WithThumbnailOpen(countingOpen(&opens)))
	img, err := second.Thumbnail(context.Background(), ref, 100, 200)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(100, 200) {
		t.Errorf("cached thumbnail size = %v", got)
	}
	if opens.Load() != 1 {
		t.Errorf("file decoded %d times, want 1", opens.Load())
	}
}

func TestThumbnailPrime(t *testing.T) {
	var opens atomic.Int64
	th := NewThumbnailer(WithThumbnailOpen(countingOpen(&opens)))

	ref := grid.ImageRef{ID: "/nowhere/a.png", Width: 400, Height: 300}
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	p := grid.Params{ThumbnailWidth: 200}
	th.Prime(ref, src, p)

	img, err := th.Thumbnail(context.Background(), ref, 200, 150)
	if err != nil {
		t.Fatalf("primed thumbnail: %v", err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("primed width = %d", img.Bounds().Dx())
	}
	if opens.Load() != 0 {
		t.Error("primed thumbnail should not open the file")
	}

	th.Prime(grid.ImageRef{ID: "unknown"}, src, p)
	if th.Store().Len() != 1 {
		t.Errorf("unknown-size prime stored a thumbnail")
	}
}

func TestThumbnails(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", 100, 100)
	b := writeFile(t, dir, "b.png", []byte("broken"))

	placements := []grid.Placement{
		{Image: grid.ImageRef{ID: a, Name: "a.png", Width: 100, Height: 100}, Width: 50, Height: 50},
		{Image: grid.ImageRef{ID: b, Name: "b.png", Width: 100, Height: 100}, Width: 50, Height: 50},
	}

	imgs, err := NewThumbnailer().Thumbnails(context.Background(), placements, 2)
	if err != nil {
		t.Fatal(err)
	}
	if imgs[0] == nil {
		t.Error("a.png thumbnail missing")
	}
	if imgs[1] != nil {
		t.Error("broken file should yield a nil thumbnail")
	}
}
