package errors

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"lower bound", 50, false},
		{"upper bound", 1000, false},
		{"inside", 300, false},
		{"below", 49, true},
		{"above", 2000, true},
		{"zero", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("thumbnail width", tt.value, 50, 1000)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidParameter) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidParameter)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("gap", 0); err != nil {
		t.Errorf("ValidateNonNegative(0) = %v", err)
	}
	if err := ValidateNonNegative("gap", -1); !Is(err, ErrCodeInvalidParameter) {
		t.Errorf("ValidateNonNegative(-1) = %v, want INVALID_PARAMETER", err)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "Images", false},
		{"absolute", "/home/me/Pictures", false},
		{"with spaces", "my pictures", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("ValidateDir(existing) = %v", err)
	}

	missing := filepath.Join(dir, "missing")
	if err := ValidateDir(missing); !Is(err, ErrCodeNotFound) {
		t.Errorf("ValidateDir(missing) = %v, want NOT_FOUND", err)
	}

	file := filepath.Join(dir, "a.png")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateDir(file); !Is(err, ErrCodeInvalidPath) {
		t.Errorf("ValidateDir(file) = %v, want INVALID_PATH", err)
	}
}

func TestValidateDirPermission(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if err := ValidateDir(dir); !Is(err, ErrCodePermissionDenied) {
		t.Errorf("ValidateDir(locked) = %v, want PERMISSION_DENIED", err)
	}
}
