package imageio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/illustgrid/pkg/errors"
)

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.jpg", true},
		{"a.jpeg", true},
		{"a.png", true},
		{"archive.tar.png", true},
		{"a.JPG", false},
		{"a.gif", false},
		{"a.webp", false},
		{"jpg", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImage(tt.name); got != tt.want {
				t.Errorf("IsImage(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "b.png", 10, 10)
	writeImage(t, dir, "a.jpg", 10, 10)
	writeImage(t, dir, "c.jpeg", 10, 10)
	writeFile(t, dir, "notes.txt", []byte("hello"))
	writeFile(t, dir, "d.gif", []byte("GIF89a"))
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}
	writeImage(t, filepath.Join(dir, "sub.png"), "nested.png", 10, 10)

	refs, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{"a.jpg", "b.png", "c.jpeg"}
	if len(refs) != len(want) {
		t.Fatalf("Scan found %d images, want %d: %+v", len(refs), len(want), refs)
	}
	for i, r := range refs {
		if r.Name != want[i] {
			t.Errorf("refs[%d].Name = %s, want %s", i, r.Name, want[i])
		}
		if !filepath.IsAbs(r.ID) || filepath.Base(r.ID) != want[i] {
			t.Errorf("refs[%d].ID = %s, want absolute path", i, r.ID)
		}
		if r.Known() {
			t.Errorf("refs[%d] has a size before decoding", i)
		}
	}
}

func TestScanEmpty(t *testing.T) {
	refs, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan(empty) = %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("Scan(empty) = %v", refs)
	}
}

func TestScanMissing(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Scan(missing) = %v, want NOT_FOUND", err)
	}
}
