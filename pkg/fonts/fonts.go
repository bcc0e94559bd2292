// Package fonts provides the embedded Go Mono face used to measure and
// draw structogram labels.
//
// The same face backs text measurement, the PNG rasterizer and the optional
// @font-face rule embedded in SVG output, so box widths match the glyphs
// that end up on screen.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name of the embedded face.
const FontFamily = "Go Mono"

// FallbackFontFamily lists fallbacks for viewers without the embedded font.
const FallbackFontFamily = "Go Mono, Menlo, Consolas, monospace"

// MonoTTF returns the Go Mono TrueType data.
func MonoTTF() []byte {
	return gomono.TTF
}

var (
	parsed     *opentype.Font
	parseErr   error
	parsedOnce sync.Once
)

// Mono returns the parsed Go Mono font. It is parsed once per process.
func Mono() (*opentype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parseErr = opentype.Parse(gomono.TTF)
	})
	return parsed, parseErr
}

// Face returns an unhinted Go Mono face at size points (72 DPI, so points
// equal pixels). Faces are not safe for concurrent use.
func Face(size float64) (font.Face, error) {
	fnt, err := Mono()
	if err != nil {
		return nil, fmt.Errorf("parse go mono: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("go mono face: %w", err)
	}
	return face, nil
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// MonoTTFBase64 returns the TTF data as a base64 string.
// The result is cached after first computation.
func MonoTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gomono.TTF)
	})
	return ttfBase64
}

// FaceCSS returns an @font-face rule that embeds the font as a data URI.
func FaceCSS() string {
	return fmt.Sprintf("@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
		FontFamily, MonoTTFBase64())
}
