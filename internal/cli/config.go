package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/illustgrid/pkg/errors"
)

// Config holds user defaults read from a TOML file. Every field is
// optional; unset fields leave the built-in defaults alone. The file is
// never written.
//
//	thumbnail_width = 240
//	column_gap = 10
//	shade = 40
//	formats = ["png", "json"]
type Config struct {
	Width          *int     `toml:"width"`
	ThumbnailWidth *int     `toml:"thumbnail_width"`
	ColumnGap      *int     `toml:"column_gap"`
	RowGap         *int     `toml:"row_gap"`
	MaxHeight      *int     `toml:"max_height"`
	Shade          *int     `toml:"shade"`
	Workers        *int     `toml:"workers"`
	Formats        []string `toml:"formats"`
	Captions       *bool    `toml:"captions"`
	NoCache        *bool    `toml:"no_cache"`

	loaded bool
}

// readConfig decodes the file at path. A missing file is an error only
// when the path was given explicitly.
func readConfig(path string, explicit bool) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.loaded = true
	return cfg, nil
}

// flagValues maps flag names to the config value that backs them.
func (cfg Config) flagValues() map[string]string {
	out := make(map[string]string)
	setInt := func(flag string, v *int) {
		if v != nil {
			out[flag] = strconv.Itoa(*v)
		}
	}
	setBool := func(flag string, v *bool) {
		if v != nil {
			out[flag] = strconv.FormatBool(*v)
		}
	}

	setInt("width", cfg.Width)
	setInt("thumb-width", cfg.ThumbnailWidth)
	setInt("gap", cfg.ColumnGap)
	setInt("row-gap", cfg.RowGap)
	setInt("max-height", cfg.MaxHeight)
	setInt("shade", cfg.Shade)
	setInt("workers", cfg.Workers)
	setBool("captions", cfg.Captions)
	setBool("no-cache", cfg.NoCache)
	if len(cfg.Formats) > 0 {
		out["format"] = strings.Join(cfg.Formats, ",")
	}
	return out
}

// applyConfig sets every flag of cmd that the user did not pass and the
// config defines. Flags override the file; the file overrides built-in
// defaults.
func applyConfig(cmd *cobra.Command, cfg Config) error {
	flags := cmd.Flags()
	for name, value := range cfg.flagValues() {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config value for %s", name)
		}
	}
	return nil
}
