// Package layout measures control trees for structogram rendering.
//
// Building is the first of two passes. [Builder.Build] walks a [flow.Node]
// tree bottom-up and returns a parallel tree of layout nodes that carry
// their minimum width and exact height plus the normalized labels that
// will be painted. The second pass, in package scene, assigns coordinates.
//
// # Sizing rules
//
//   - Sequence: width is the widest child, height is the sum of children.
//   - If: width covers the split header and both branches side by side.
//   - Loop: a header band over an inset body. Post-condition loops put the
//     condition in a footer band instead.
//   - Switch: a header band, a row of case label bands and one column per
//     case. Column widths are stretched with [Fit] so the header fits.
//   - Try: stacked sections (try, each catch, finally), each a label band
//     followed by its body.
//
// Sizes are integers. Text width comes from a [Measurer]; production code
// uses [FontMeasurer] so that boxes fit the Go Mono glyphs the PNG sink
// draws, tests use [MonoMeasurer].
//
// Empty bodies never produce zero-height boxes: they are replaced with a
// placeholder row labeled [Config.EmptyLabel].
package layout
