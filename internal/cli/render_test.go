package cli

import (
	"context"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/pipeline"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, dir, want string
	}{
		{"", "/home/me/refs", "refs"},
		{"", "/home/me/refs/", "refs"},
		{"out.png", "refs", "out"},
		{"out.svg", "refs", "out"},
		{"out.json", "refs", "out"},
		{"out.jpg", "refs", "out.jpg"},
		{"grids/daily", "refs", "grids/daily"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.dir); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.dir, got, tt.want)
		}
	}
}

func testFolder(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for i, name := range []string{"a.png", "b.png", "c.jpg"} {
		img := imaging.New(100+50*i, 80, color.NRGBA{B: 255, A: 255})
		if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunRender(t *testing.T) {
	dir := testFolder(t)
	out := filepath.Join(t.TempDir(), "grid")

	flags := defaultGalleryFlags()
	opts := flags.options(dir)
	opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatJSON}

	c := New(io.Discard, LogInfo)
	if err := c.runRender(context.Background(), opts, out, true); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	for _, ext := range []string{".svg", ".json"} {
		info, err := os.Stat(out + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
}

func TestRunRenderSingleOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "exact-name.bin")
	flags := defaultGalleryFlags()
	opts := flags.options(testFolder(t))
	opts.Formats = []string{pipeline.FormatPNG}

	c := New(io.Discard, LogInfo)
	if err := c.runRender(context.Background(), opts, out, true); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("single format should honor --output verbatim: %v", err)
	}
}

func TestRunRenderRejects(t *testing.T) {
	c := New(io.Discard, LogInfo)
	flags := defaultGalleryFlags()

	opts := flags.options(testFolder(t))
	opts.Formats = []string{"pdf"}
	if err := c.runRender(context.Background(), opts, "", true); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("pdf = %v, want INVALID_FORMAT", err)
	}

	for _, thumb := range []int{20, 0, -1} {
		flags.thumb = thumb
		opts = flags.options(testFolder(t))
		opts.Formats = []string{"png"}
		if err := c.runRender(context.Background(), opts, "", true); !errors.Is(err, errors.ErrCodeInvalidParameter) {
			t.Errorf("thumb %d = %v, want INVALID_PARAMETER", thumb, err)
		}
	}

	opts = defaultGalleryFlags().options(filepath.Join(t.TempDir(), "missing"))
	opts.Formats = []string{"png"}
	if err := c.runRender(context.Background(), opts, "", true); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing folder = %v, want NOT_FOUND", err)
	}
}
