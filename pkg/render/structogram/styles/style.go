package styles

import (
	"bytes"
	"image/color"
	"slices"
	"strings"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
)

// Style defines the visual appearance of a structogram.
type Style interface {
	// Name is the identifier accepted by [ByName].
	Name() string
	// RenderDefs writes SVG <defs> content and shared CSS.
	RenderDefs(buf *bytes.Buffer)
	// RenderRect writes a rectangle.
	RenderRect(buf *bytes.Buffer, r scene.Rect)
	// RenderLine writes a line segment.
	RenderLine(buf *bytes.Buffer, l scene.Line)
	// RenderText writes a text run at the given font size.
	RenderText(buf *bytes.Buffer, t scene.Text, size float64)
	// Palette returns the colors for raster output.
	Palette() Palette
}

// Palette holds the colors of a style.
type Palette struct {
	Background  color.RGBA
	Stroke      color.RGBA
	Text        color.RGBA
	Muted       color.RGBA // placeholder text
	StrokeWidth float64
	FontFamily  string
	Fills       map[scene.Role]color.RGBA
	Padding     color.RGBA // filled rects that carry no content
}

// Fill returns the fill color for role, or the background when the role has
// no dedicated fill.
func (p Palette) Fill(role scene.Role) color.RGBA {
	if c, ok := p.Fills[role]; ok {
		return c
	}
	return p.Background
}

// RectFill returns the fill for r. Filled rects take the padding color;
// all others are filled by role.
func (p Palette) RectFill(r scene.Rect) color.RGBA {
	if r.Filled {
		return p.Padding
	}
	return p.Fill(r.Role)
}

// TextColor returns the text color for role.
func (p Palette) TextColor(role scene.Role) color.RGBA {
	if role == scene.RolePlaceholder {
		return p.Muted
	}
	return p.Text
}

var registry = map[string]Style{
	"simple": Simple{},
	"print":  Print{},
}

// Names lists the registered style names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName resolves a style. The empty name selects [Simple].
func ByName(name string) (Style, error) {
	if name == "" {
		return Simple{}, nil
	}
	if s, ok := registry[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want one of: %s)", name, strings.Join(Names(), ", "))
}
