package cli

import (
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		fn   func() (string, error)
		env  string
		dot  string
	}{
		{"cache", cacheDir, "XDG_CACHE_HOME", ".cache"},
		{"config", configDir, "XDG_CONFIG_HOME", ".config"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" default", func(t *testing.T) {
			t.Setenv(tt.env, "")
			dir, err := tt.fn()
			if err != nil {
				t.Fatalf("%sDir() error: %v", tt.name, err)
			}
			if want := filepath.Join(home, tt.dot, appName); dir != want {
				t.Errorf("%sDir() = %q, want %q", tt.name, dir, want)
			}
		})

		t.Run(tt.name+" xdg", func(t *testing.T) {
			custom := filepath.Join(t.TempDir(), "xdg")
			t.Setenv(tt.env, custom)
			dir, err := tt.fn()
			if err != nil {
				t.Fatalf("%sDir() error: %v", tt.name, err)
			}
			if want := filepath.Join(custom, appName); dir != want {
				t.Errorf("%sDir() with %s = %q, want %q", tt.name, tt.env, dir, want)
			}
		})
	}
}
