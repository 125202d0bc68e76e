package errors

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

// ValidateRange checks that value lies in [lo, hi]. The name is used in the
// message, e.g. "thumbnail width 2000 out of range [50, 1000]".
func ValidateRange(name string, value, lo, hi int) error {
	if value < lo || value > hi {
		return New(ErrCodeInvalidParameter, "%s %d out of range [%d, %d]", name, value, lo, hi)
	}
	return nil
}

// ValidateNonNegative checks that value is >= 0.
func ValidateNonNegative(name string, value int) error {
	if value < 0 {
		return New(ErrCodeInvalidParameter, "%s must not be negative, got %d", name, value)
	}
	return nil
}

// ValidatePath rejects paths that cannot name a folder on any host:
// empty strings, null bytes and other control characters.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateDir checks that path exists, is a directory and can be listed.
// Missing folders map to NOT_FOUND and access problems to PERMISSION_DENIED;
// both are fatal at startup.
func ValidateDir(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return Wrap(ErrCodeNotFound, err, "folder %s does not exist", path)
	case stderrors.Is(err, fs.ErrPermission):
		return Wrap(ErrCodePermissionDenied, err, "cannot access folder %s", path)
	case err != nil:
		return Wrap(ErrCodeInternal, err, "stat %s", path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is not a folder", path)
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrPermission) {
			return Wrap(ErrCodePermissionDenied, err, "cannot read folder %s", path)
		}
		return Wrap(ErrCodeInternal, err, "open %s", path)
	}
	return f.Close()
}
