package imageio

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/grid"
)

// Extensions are the file extensions treated as images.
var Extensions = []string{".jpg", ".jpeg", ".png"}

// IsImage reports whether name has one of [Extensions].
func IsImage(name string) bool {
	return slices.Contains(Extensions, filepath.Ext(name))
}

// Scan lists the images directly inside dir, sorted by name. Each ImageRef
// carries the absolute path as id and has no size yet.
//
// A missing or unreadable folder is reported as NOT_FOUND or
// PERMISSION_DENIED. An empty result is not an error here; callers decide
// how to treat EMPTY_DIRECTORY.
func Scan(dir string) ([]grid.ImageRef, error) {
	if err := errors.ValidateDir(dir); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", dir)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.Wrap(errors.ErrCodePermissionDenied, err, "read folder %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read folder %s", dir)
	}

	var refs []grid.ImageRef
	for _, e := range entries {
		if !isFile(e) || !IsImage(e.Name()) {
			continue
		}
		refs = append(refs, grid.ImageRef{
			ID:   filepath.Join(abs, e.Name()),
			Name: e.Name(),
		})
	}
	return refs, nil
}

// isFile accepts regular files and symlinks; symlinks that do not resolve
// to a file fail later at decode time.
func isFile(e fs.DirEntry) bool {
	return e.Type().IsRegular() || e.Type()&fs.ModeSymlink != 0
}
