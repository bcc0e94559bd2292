package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/structogram/pkg/fonts"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
	"github.com/matzehuels/structogram/pkg/render/structogram/styles"
)

// TitleHeight is the height of the caption band added by [WithTitle].
const TitleHeight = 28

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     styles.Style
	title     string
	fontSize  float64
	embedFont bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithTitle(t string) SVGOption       { return func(r *svgRenderer) { r.title = t } }
func WithFontSize(pt float64) SVGOption  { return func(r *svgRenderer) { r.fontSize = pt } }

// WithEmbeddedFont inlines the Go Mono face so the SVG looks the same on
// machines without it installed.
func WithEmbeddedFont(on bool) SVGOption { return func(r *svgRenderer) { r.embedFont = on } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, fontSize: 13}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) offset() int {
	if r.title == "" {
		return 0
	}
	return TitleHeight
}

// RenderSVG writes sc as a standalone SVG document.
func RenderSVG(sc scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	pal := r.style.Palette()
	height := sc.Height + r.offset()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		sc.Width, height, sc.Width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	if r.embedFont {
		fmt.Fprintf(&buf, "  <defs><style>%s</style></defs>\n", fonts.FaceCSS())
	}
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
		sc.Width, height, styles.Hex(pal.Background))

	if r.title != "" {
		r.style.RenderText(&buf, scene.Text{
			X: sc.Width / 2, Y: TitleHeight / 2, S: r.title,
			Align: scene.AlignCenter, Role: "title",
		}, r.fontSize)
		fmt.Fprintf(&buf, "  <g transform=\"translate(0,%d)\">\n", TitleHeight)
	}
	renderPrimitives(&buf, r, sc.Primitives)
	if r.title != "" {
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderPrimitives(buf *bytes.Buffer, r svgRenderer, ps []scene.Primitive) {
	for _, p := range ps {
		switch v := p.(type) {
		case scene.Rect:
			r.style.RenderRect(buf, v)
		case scene.Line:
			r.style.RenderLine(buf, v)
		case scene.Text:
			r.style.RenderText(buf, v, r.fontSize)
		}
	}
}
