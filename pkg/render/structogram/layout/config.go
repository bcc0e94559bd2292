package layout

import "github.com/matzehuels/structogram/pkg/errors"

// Config holds the fixed sizing constants of the engine. It is passed by
// value and never mutated, so one Config can serve any number of builds.
// All lengths are in user units (pixels in SVG output).
type Config struct {
	RowHeight       int     `toml:"row_height" json:"row_height"`               // statement rows
	HeaderHeight    int     `toml:"header_height" json:"header_height"`         // loop, switch and try bands
	IfHeaderHeight  int     `toml:"if_header_height" json:"if_header_height"`   // split if header
	LabelBandHeight int     `toml:"label_band_height" json:"label_band_height"` // case, catch and finally labels
	InsetWidth      int     `toml:"inset_width" json:"inset_width"`             // loop body indent
	TextPadding     int     `toml:"text_padding" json:"text_padding"`           // horizontal text margin
	MinWidth        int     `toml:"min_width" json:"min_width"`                 // narrowest box
	Padding         int     `toml:"padding" json:"padding"`                     // canvas margin
	FontSize        float64 `toml:"font_size" json:"font_size"`

	EmptyLabel  string `toml:"empty_label" json:"empty_label"`
	NoElseLabel string `toml:"no_else_label" json:"no_else_label"`
	TrueLabel   string `toml:"true_label" json:"true_label"`
	FalseLabel  string `toml:"false_label" json:"false_label"`
}

// DefaultConfig returns the standard sizing constants. Heights are multiples
// of 14 so the text sink maps rows onto whole terminal cells.
func DefaultConfig() Config {
	return Config{
		RowHeight:       28,
		HeaderHeight:    28,
		IfHeaderHeight:  42,
		LabelBandHeight: 28,
		InsetWidth:      24,
		TextPadding:     8,
		MinWidth:        48,
		Padding:         14,
		FontSize:        13,
		EmptyLabel:      "(empty)",
		NoElseLabel:     "(no else)",
		TrueLabel:       "true",
		FalseLabel:      "false",
	}
}

// WithDefaults fills zero fields from [DefaultConfig].
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	setInt := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	setInt(&c.RowHeight, d.RowHeight)
	setInt(&c.HeaderHeight, d.HeaderHeight)
	setInt(&c.IfHeaderHeight, d.IfHeaderHeight)
	setInt(&c.LabelBandHeight, d.LabelBandHeight)
	setInt(&c.InsetWidth, d.InsetWidth)
	setInt(&c.TextPadding, d.TextPadding)
	setInt(&c.MinWidth, d.MinWidth)
	setInt(&c.Padding, d.Padding)
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	setString := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	setString(&c.EmptyLabel, d.EmptyLabel)
	setString(&c.NoElseLabel, d.NoElseLabel)
	setString(&c.TrueLabel, d.TrueLabel)
	setString(&c.FalseLabel, d.FalseLabel)
	return c
}

// Validate rejects configurations that would break the height > 0 invariant
// or produce negative geometry.
func (c Config) Validate() error {
	heights := []struct {
		name string
		v    int
	}{
		{"row_height", c.RowHeight},
		{"header_height", c.HeaderHeight},
		{"if_header_height", c.IfHeaderHeight},
		{"label_band_height", c.LabelBandHeight},
	}
	for _, h := range heights {
		if h.v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %d", h.name, h.v)
		}
	}
	if c.InsetWidth < 0 || c.TextPadding < 0 || c.MinWidth < 0 || c.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "widths and paddings must not be negative")
	}
	if c.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font_size must be positive, got %g", c.FontSize)
	}
	return nil
}
