package styles

import (
	"bytes"
	"image/color"

	"github.com/matzehuels/structogram/pkg/fonts"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
)

// Simple is the default on-screen style.
type Simple struct{}

var simplePalette = Palette{
	Background:  color.RGBA{0xff, 0xff, 0xff, 0xff},
	Stroke:      color.RGBA{0x33, 0x33, 0x33, 0xff},
	Text:        color.RGBA{0x1f, 0x23, 0x28, 0xff},
	Muted:       color.RGBA{0x8c, 0x95, 0x9f, 0xff},
	StrokeWidth: 1,
	FontFamily:  fonts.FallbackFontFamily,
	Fills: map[scene.Role]color.RGBA{
		scene.RoleCondition: {0xee, 0xf4, 0xfb, 0xff},
		scene.RoleHeader:    {0xee, 0xf4, 0xfb, 0xff},
		scene.RoleFooter:    {0xee, 0xf4, 0xfb, 0xff},
		scene.RoleLabel:     {0xf6, 0xf8, 0xfa, 0xff},
	},
	Padding: color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
}

func (Simple) Name() string     { return "simple" }
func (Simple) Palette() Palette { return simplePalette }

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderRect(buf *bytes.Buffer, r scene.Rect) { writeRect(buf, r, simplePalette) }

func (Simple) RenderLine(buf *bytes.Buffer, l scene.Line) { writeLine(buf, l, simplePalette) }

func (Simple) RenderText(buf *bytes.Buffer, t scene.Text, size float64) {
	writeText(buf, t, size, simplePalette)
}
