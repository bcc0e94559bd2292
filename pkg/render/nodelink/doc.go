// Package nodelink renders control trees as node-link diagrams.
//
// # Overview
//
// This package draws the raw control tree of a method with Graphviz: one
// box per construct, edges labeled with the role of the child (then, else,
// body, case, catch, finally). It is the debugging counterpart of the
// structogram view and shows exactly what an analyzer produced, before any
// normalization or layout.
//
// # Usage
//
//	dot := nodelink.ToDOT(method, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Normalize: statement boxes show normalized labels ("x ← 5")
//     instead of the raw source text
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
