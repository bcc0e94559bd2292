package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
	"github.com/matzehuels/structogram/pkg/render/structogram/styles"
)

// supersample is the oversampling factor; the canvas is drawn this much
// larger and scaled down with Catmull-Rom.
const supersample = 2

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgRenderer
	scale float64
}

// WithPNGSVGOptions applies SVG options (style, title, font size) to the
// raster output.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) {
		for _, opt := range opts {
			opt(&r.svgRenderer)
		}
	}
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

type canvas struct {
	img   *image.RGBA
	scale float64
	pal   styles.Palette
	face  font.Face
}

// RenderPNG rasterizes the scene without external tools.
func RenderPNG(sc scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{svgRenderer: newSVGRenderer(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || r.scale > 8 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be in (0, 8], got %g", r.scale)
	}

	off := r.offset()
	w, h := sc.Width, sc.Height+off
	big := r.scale * supersample

	face, err := layout.NewFace(r.fontSize * big)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}
	defer face.Close()

	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, scaled(w, big), scaled(h, big))),
		scale: big,
		pal:   r.style.Palette(),
		face:  face,
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.pal.Background), image.Point{}, draw.Src)

	if r.title != "" {
		c.text(scene.Text{X: w / 2, Y: TitleHeight / 2, S: r.title, Align: scene.AlignCenter}, 0)
	}
	for _, p := range sc.Primitives {
		switch v := p.(type) {
		case scene.Rect:
			c.rect(v, off)
		case scene.Line:
			c.line(v.X1, v.Y1+off, v.X2, v.Y2+off)
		case scene.Text:
			c.text(v, off)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, scaled(w, r.scale), scaled(h, r.scale)))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func scaled(v int, s float64) int { return int(math.Round(float64(v) * s)) }

func (c *canvas) rect(r scene.Rect, off int) {
	y := r.Y + off
	area := image.Rect(scaled(r.X, c.scale), scaled(y, c.scale), scaled(r.X+r.W, c.scale), scaled(y+r.H, c.scale))
	draw.Draw(c.img, area, image.NewUniform(c.pal.RectFill(r)), image.Point{}, draw.Src)
	c.line(r.X, y, r.X+r.W, y)
	c.line(r.X, y+r.H, r.X+r.W, y+r.H)
	c.line(r.X, y, r.X, y+r.H)
	c.line(r.X+r.W, y, r.X+r.W, y+r.H)
}

// line draws a segment with the palette stroke width by stamping along its
// length and across its normal.
func (c *canvas) line(x1, y1, x2, y2 int) {
	fx1, fy1 := float64(x1)*c.scale, float64(y1)*c.scale
	dx, dy := float64(x2-x1)*c.scale, float64(y2-y1)*c.scale
	half := max(c.pal.StrokeWidth*c.scale/2, 0.5)

	dist := math.Hypot(dx, dy)
	steps := max(math.Abs(dx), math.Abs(dy), 1)
	px, py := 0.0, 1.0
	if dist > 0 {
		px, py = -dy/dist, dx/dist
	}
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx, cy := fx1+dx*t, fy1+dy*t
		for o := -half; o <= half; o += 0.5 {
			c.set(cx+px*o, cy+py*o, c.pal.Stroke)
		}
	}
}

func (c *canvas) set(x, y float64, col color.RGBA) {
	c.img.SetRGBA(int(math.Floor(x)), int(math.Floor(y)), col)
}

func (c *canvas) text(t scene.Text, off int) {
	width := font.MeasureString(c.face, t.S)
	x := fixed.I(scaled(t.X, c.scale))
	switch t.Align {
	case scene.AlignCenter:
		x -= width / 2
	case scene.AlignRight:
		x -= width
	}
	m := c.face.Metrics()
	baseline := fixed.I(scaled(t.Y+off, c.scale)) + (m.Ascent-m.Descent)/2

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.pal.TextColor(t.Role)),
		Face: c.face,
		Dot:  fixed.Point26_6{X: x, Y: baseline},
	}
	d.DrawString(t.S)
}
