package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"

	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
)

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func anchor(a scene.Align) string {
	switch a {
	case scene.AlignCenter:
		return "middle"
	case scene.AlignRight:
		return "end"
	}
	return "start"
}

func writeRect(buf *bytes.Buffer, r scene.Rect, p Palette) {
	fill := p.RectFill(r)
	fmt.Fprintf(buf, `  <rect class="%s" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		r.Role, r.X, r.Y, r.W, r.H, Hex(fill), Hex(p.Stroke), p.StrokeWidth)
}

func writeLine(buf *bytes.Buffer, l scene.Line, p Palette) {
	fmt.Fprintf(buf, `  <line class="%s" x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%.1f"/>`+"\n",
		l.Role, l.X1, l.Y1, l.X2, l.Y2, Hex(p.Stroke), p.StrokeWidth)
}

func writeText(buf *bytes.Buffer, t scene.Text, size float64, p Palette) {
	fmt.Fprintf(buf, `  <text class="%s" x="%d" y="%d" text-anchor="%s" dominant-baseline="central" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
		t.Role, t.X, t.Y, anchor(t.Align), p.FontFamily, size, Hex(p.TextColor(t.Role)), EscapeXML(t.S))
}
