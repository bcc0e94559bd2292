// Package render provides output rendering for control-flow diagrams.
//
// # Overview
//
// The rendering pipeline turns a method's control tree into visual output.
// This package provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Structograms (in the [structogram] subpackages)
//   - Node-link control trees (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(sc, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Structograms
//
// Nassi-Shneiderman diagrams are built in two passes:
//   - [structogram/label]: statement text normalization
//   - [structogram/layout]: the measure pass and column fitting
//   - [structogram/scene]: the paint pass producing draw primitives
//   - [structogram/sink]: output formats (SVG, PNG, PDF, JSON, text)
//   - [structogram/styles]: visual styles (simple, print)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the raw control tree as a directed
// graph using Graphviz, which is handy when debugging an analyzer.
//
//	dot := nodelink.ToDOT(m, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [structogram]: github.com/matzehuels/structogram/pkg/render/structogram
// [structogram/label]: github.com/matzehuels/structogram/pkg/render/structogram/label
// [structogram/layout]: github.com/matzehuels/structogram/pkg/render/structogram/layout
// [structogram/scene]: github.com/matzehuels/structogram/pkg/render/structogram/scene
// [structogram/sink]: github.com/matzehuels/structogram/pkg/render/structogram/sink
// [structogram/styles]: github.com/matzehuels/structogram/pkg/render/structogram/styles
// [nodelink]: github.com/matzehuels/structogram/pkg/render/nodelink
package render
