package layout

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"

	"github.com/matzehuels/structogram/pkg/fonts"
)

// Measurer estimates the rendered width of a single-line label.
type Measurer interface {
	Measure(text string) int
}

// MonoMeasurer charges a fixed advance per rune. It needs no font data and
// is what tests use to get predictable sizes.
type MonoMeasurer struct {
	Advance int
}

// Measure returns the rune count times the advance.
func (m MonoMeasurer) Measure(text string) int {
	return utf8.RuneCountInString(text) * m.Advance
}

// FontMeasurer measures text with the embedded Go Mono face, the same face
// the PNG sink draws with. It is safe for concurrent use.
type FontMeasurer struct {
	mu   sync.Mutex
	face font.Face
	size float64
}

// NewFontMeasurer loads Go Mono at the given point size (72 DPI, so points
// equal pixels).
func NewFontMeasurer(size float64) (*FontMeasurer, error) {
	face, err := NewFace(size)
	if err != nil {
		return nil, err
	}
	return &FontMeasurer{face: face, size: size}, nil
}

// NewFace returns an unhinted Go Mono face at size points.
func NewFace(size float64) (font.Face, error) {
	return fonts.Face(size)
}

// Measure returns the advance width of text rounded up to whole units.
func (m *FontMeasurer) Measure(text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return font.MeasureString(m.face, text).Ceil()
}

// Size returns the point size the measurer was created with.
func (m *FontMeasurer) Size() float64 { return m.size }
