// Package sink provides output format renderers for structograms.
//
// # Overview
//
// A "sink" transforms a painted [scene.Scene] into a final output format:
//
//   - SVG: scalable vector graphics, styled by a [styles.Style]
//   - PNG: native raster output drawn with the embedded Go Mono face
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the primitive list, for caching and external tools
//   - Text: box-drawing art for terminals
//
// # SVG Output
//
//	svg := sink.RenderSVG(sc,
//	    sink.WithStyle(styles.Print{}),
//	    sink.WithTitle("public int sum(int[] values)"),
//	)
//
// [WithTitle] adds a caption band above the diagram holding the method
// declaration, the way an editor panel labels its viewport.
//
// # JSON Output
//
// [RenderJSON] and [ParseJSON] round-trip a scene exactly. The pipeline
// caches scenes in this form and re-renders them into any other format.
//
// # Text Output
//
// [RenderText] maps the scene onto a character grid with one cell per
// 8x14 units, which matches the default row height. Diagonal lines of if
// and switch headers are drawn with slashes.
//
// [scene.Scene]: github.com/matzehuels/structogram/pkg/render/structogram/scene.Scene
// [styles.Style]: github.com/matzehuels/structogram/pkg/render/structogram/styles.Style
package sink
