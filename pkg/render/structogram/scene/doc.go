// Package scene positions measured structograms and emits draw primitives.
//
// [Paint] is the second pass after [layout.Builder.Build]. It walks the
// layout tree top-down, hands each child its absolute origin and a forced
// width, and appends [Rect], [Line] and [Text] primitives. Widths forced by
// a parent are split between siblings with [layout.Fit], so no node is ever
// measured twice.
//
// [Render] wraps the root in a padded canvas and returns a [Scene] that the
// sinks in package sink turn into SVG, PNG, PDF, JSON or terminal text.
//
// [layout.Builder.Build]: github.com/matzehuels/structogram/pkg/render/structogram/layout.Builder.Build
// [layout.Fit]: github.com/matzehuels/structogram/pkg/render/structogram/layout.Fit
package scene
