package styles

import (
	"bytes"
	"image/color"

	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
)

// Print is a monochrome style for paper and PDF. Only filled rects are
// shaded, with a hatch pattern in SVG and flat grey in raster output.
type Print struct{}

var printPalette = Palette{
	Background:  color.RGBA{0xff, 0xff, 0xff, 0xff},
	Stroke:      color.RGBA{0x00, 0x00, 0x00, 0xff},
	Text:        color.RGBA{0x00, 0x00, 0x00, 0xff},
	Muted:       color.RGBA{0x55, 0x55, 0x55, 0xff},
	StrokeWidth: 1.5,
	FontFamily:  "Georgia, Times New Roman, serif",
	Padding:     color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
}

const hatchDefs = `  <defs>
    <pattern id="hatch" patternUnits="userSpaceOnUse" width="6" height="6" patternTransform="rotate(45)">
      <line x1="0" y1="0" x2="0" y2="6" stroke="#000" stroke-width="0.6"/>
    </pattern>
  </defs>
`

func (Print) Name() string     { return "print" }
func (Print) Palette() Palette { return printPalette }

func (Print) RenderDefs(buf *bytes.Buffer) { buf.WriteString(hatchDefs) }

func (Print) RenderRect(buf *bytes.Buffer, r scene.Rect) {
	if !r.Filled {
		writeRect(buf, r, printPalette)
		return
	}
	var tmp bytes.Buffer
	writeRect(&tmp, r, printPalette)
	buf.Write(bytes.Replace(tmp.Bytes(), []byte(`fill="#dddddd"`), []byte(`fill="url(#hatch)"`), 1))
}

func (Print) RenderLine(buf *bytes.Buffer, l scene.Line) { writeLine(buf, l, printPalette) }

func (Print) RenderText(buf *bytes.Buffer, t scene.Text, size float64) {
	writeText(buf, t, size, printPalette)
}
