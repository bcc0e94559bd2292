package layout

import (
	"testing"

	"github.com/matzehuels/structogram/pkg/errors"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero row height", func(c *Config) { c.RowHeight = 0 }},
		{"negative header", func(c *Config) { c.HeaderHeight = -1 }},
		{"zero if header", func(c *Config) { c.IfHeaderHeight = 0 }},
		{"zero label band", func(c *Config) { c.LabelBandHeight = 0 }},
		{"negative inset", func(c *Config) { c.InsetWidth = -4 }},
		{"negative padding", func(c *Config) { c.Padding = -1 }},
		{"zero font", func(c *Config) { c.FontSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{RowHeight: 30, NoElseLabel: "-"}.WithDefaults()
	d := DefaultConfig()

	if cfg.RowHeight != 30 {
		t.Errorf("RowHeight = %d, want 30", cfg.RowHeight)
	}
	if cfg.NoElseLabel != "-" {
		t.Errorf("NoElseLabel = %q, want -", cfg.NoElseLabel)
	}
	if cfg.HeaderHeight != d.HeaderHeight || cfg.FontSize != d.FontSize || cfg.EmptyLabel != d.EmptyLabel {
		t.Errorf("WithDefaults() = %+v, missing defaults", cfg)
	}
}

func TestMonoMeasurer(t *testing.T) {
	m := MonoMeasurer{Advance: 8}
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 24},
		{"x ← 5", 40},
	}
	for _, tt := range tests {
		if got := m.Measure(tt.in); got != tt.want {
			t.Errorf("Measure(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFontMeasurer(t *testing.T) {
	m, err := NewFontMeasurer(13)
	if err != nil {
		t.Fatalf("NewFontMeasurer() error = %v", err)
	}
	if got := m.Measure(""); got != 0 {
		t.Errorf("Measure(\"\") = %d, want 0", got)
	}
	short, long := m.Measure("i"), m.Measure("iiii")
	if short <= 0 {
		t.Errorf("Measure(i) = %d, want > 0", short)
	}
	// Go Mono is monospaced.
	if long < 4*short-4 || long > 4*short {
		t.Errorf("Measure(iiii) = %d, want about %d", long, 4*short)
	}
	if m.Measure("W") != short {
		t.Errorf("Measure(W) = %d, want %d", m.Measure("W"), short)
	}
}

func TestNewBuilderDefaultMeasurer(t *testing.T) {
	b := NewBuilder(DefaultConfig(), nil)
	n := b.Build(stmt("x = 5;")).(*Statement)
	// 13pt at 60% rounds to an 8 unit advance.
	if n.W != 56 {
		t.Errorf("Width() = %d, want 56", n.W)
	}
}
