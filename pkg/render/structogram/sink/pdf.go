package sink

import (
	"github.com/matzehuels/structogram/pkg/render"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
)

// RenderPDF renders the scene as PDF via SVG conversion. SVG options such
// as [WithStyle] and [WithTitle] apply.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(sc scene.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(sc, opts...))
}
