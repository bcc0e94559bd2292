// Package config loads the optional structogram configuration file.
//
// The file is TOML with one table per concern. Every key is optional; absent
// keys keep their defaults:
//
//	[layout]
//	row_height = 28
//	inset_width = 24
//	font_size = 13
//	empty_label = "(empty)"
//
//	[render]
//	style = "print"
//	formats = ["svg", "png"]
//	scale = 2.0
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	request_timeout = "30s"
//	key_prefix = "structogram:"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/structogram/pkg/cache"
	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/pipeline"
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
)

const appName = "structogram"

// Config is the decoded configuration file.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Render Render        `toml:"render"`
	Cache  cache.Options `toml:"cache"`
	Server Server        `toml:"server"`
}

// Render holds output defaults.
type Render struct {
	Style     string   `toml:"style"`
	Formats   []string `toml:"formats"`
	Scale     float64  `toml:"scale"`
	Measurer  string   `toml:"measurer"`
	NoTitle   bool     `toml:"no_title"`
	EmbedFont bool     `toml:"embed_font"`
}

// Server holds HTTP service settings.
type Server struct {
	Addr           string `toml:"addr"`
	RequestTimeout string `toml:"request_timeout"`
	KeyPrefix      string `toml:"key_prefix"`
	MaxBodyBytes   int64  `toml:"max_body_bytes"`
}

// Timeout parses RequestTimeout. Validate has already rejected bad values.
func (s Server) Timeout() time.Duration {
	d, _ := time.ParseDuration(s.RequestTimeout)
	return d
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Render: Render{
			Style:   pipeline.DefaultStyle,
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
		},
		Cache: cache.Options{Backend: cache.BackendFile},
		Server: Server{
			Addr:           ":8080",
			RequestTimeout: "30s",
			KeyPrefix:      appName + ":",
			MaxBodyBytes:   4 << 20,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/structogram/config.toml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load decodes the file at path over [Default]. Unknown keys are errors so
// typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Layout = cfg.Layout.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOptional loads path when it is set, and otherwise the file at
// [DefaultPath] if one exists. With no file it returns [Default].
func LoadOptional(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	def, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(def); err != nil {
		return Default(), nil
	}
	return Load(def)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(pipeline.VizStructogram, c.Render.Formats); err != nil {
		return err
	}
	if c.Render.Scale <= 0 || c.Render.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must be in (0, 8], got %g", c.Render.Scale)
	}
	if c.Render.Measurer != "" {
		if err := pipeline.ValidateMeasurer(c.Render.Measurer); err != nil {
			return err
		}
	}
	backends := []string{"", cache.BackendFile, cache.BackendRedis, cache.BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	if d, err := time.ParseDuration(c.Server.RequestTimeout); err != nil || d <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout must be a positive duration, got %q", c.Server.RequestTimeout)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// Apply fills the zero-valued fields of opts from the configuration.
// Explicit options always win.
func (c Config) Apply(opts *pipeline.Options) {
	if opts.Layout == (layout.Config{}) {
		opts.Layout = c.Layout
	}
	if opts.Style == "" {
		opts.Style = c.Render.Style
	}
	if len(opts.Formats) == 0 {
		opts.Formats = slices.Clone(c.Render.Formats)
	}
	if opts.Scale == 0 {
		opts.Scale = c.Render.Scale
	}
	if opts.Measurer == "" {
		opts.Measurer = c.Render.Measurer
	}
	if c.Render.NoTitle {
		opts.NoTitle = true
	}
	if c.Render.EmbedFont {
		opts.EmbedFont = true
	}
}
