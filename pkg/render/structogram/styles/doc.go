// Package styles defines visual styles for structogram rendering.
//
// A [Style] turns scene primitives into SVG elements and supplies the
// [Palette] the PNG sink paints with, so both vector and raster output look
// the same. Two styles ship with the package:
//
//   - [Simple]: soft fills for header bands and padding, sans-serif text
//   - [Print]: black on white with heavier strokes and a serif face
//
// Use [ByName] to resolve a style from a flag or request field:
//
//	style, err := styles.ByName("print")
//	svg := sink.RenderSVG(sc, sink.WithStyle(style))
package styles
