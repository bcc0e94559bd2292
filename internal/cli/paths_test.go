package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/structogram/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		want func(home string) string
	}{
		{
			name: "home fallback",
			want: func(home string) string { return filepath.Join(home, ".cache", "structogram") },
		},
		{
			name: "xdg cache home",
			xdg:  "/tmp/xdg-cache",
			want: func(string) string { return "/tmp/xdg-cache/structogram" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			home, err := os.UserHomeDir()
			if err != nil {
				t.Skipf("no home directory: %v", err)
			}
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if want := tt.want(home); dir != want {
				t.Errorf("cacheDir() = %q, want %q", dir, want)
			}
		})
	}
}

func TestConfigFillsCacheDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	c := &CLI{}
	cfg, err := c.config()
	if err != nil {
		t.Fatalf("config() error: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, cache.BackendFile)
	}
	if want := filepath.Join(cacheHome, "structogram"); cfg.Cache.Dir != want {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, want)
	}

	dir, err := c.localCacheDir()
	if err != nil {
		t.Fatalf("localCacheDir() error: %v", err)
	}
	if dir != cfg.Cache.Dir {
		t.Errorf("localCacheDir() = %q, want %q", dir, cfg.Cache.Dir)
	}
}

func TestConfigReadsXDGConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	path := filepath.Join(configHome, "structogram", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := (&CLI{}).config()
	if err != nil {
		t.Fatalf("config() error: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, cache.BackendNone)
	}
	if cfg.Cache.Dir != "" {
		t.Errorf("Cache.Dir = %q, want empty for the none backend", cfg.Cache.Dir)
	}
}
