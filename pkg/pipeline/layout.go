package pipeline

import (
	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/flow"
	"github.com/matzehuels/structogram/pkg/render/nodelink"
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
	"github.com/matzehuels/structogram/pkg/render/structogram/sink"
)

// =============================================================================
// Structogram
// =============================================================================

// NewMeasurer returns the label measurer named by opts.Measurer.
func NewMeasurer(opts Options) (layout.Measurer, error) {
	switch opts.Measurer {
	case MeasurerMono:
		return layout.MonoMeasurer{Advance: sink.CellWidth}, nil
	case MeasurerFont, "":
		m, err := layout.NewFontMeasurer(opts.Layout.FontSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load measuring font")
		}
		return m, nil
	}
	return nil, ValidateMeasurer(opts.Measurer)
}

// BuildLayout runs the layout engine on the method body. It returns a nil
// tree when the method has no body; callers then paint a placeholder.
func BuildLayout(m flow.Method, opts Options) (layout.Node, error) {
	if !m.HasBody() {
		return nil, nil
	}
	meas, err := NewMeasurer(opts)
	if err != nil {
		return nil, err
	}
	return layout.NewBuilder(opts.Layout, meas).Build(m.Body), nil
}

// PaintScene turns a layout tree into a scene. A nil tree yields the
// "No structogram available" placeholder.
func PaintScene(root layout.Node, opts Options) scene.Scene {
	if root == nil {
		return scene.Placeholder(scene.NoDataMessage, opts.Layout)
	}
	return scene.Render(root, opts.Layout)
}

// GenerateScene is BuildLayout followed by PaintScene.
func GenerateScene(m flow.Method, opts Options) (layout.Node, scene.Scene, error) {
	root, err := BuildLayout(m, opts)
	if err != nil {
		return nil, scene.Scene{}, err
	}
	return root, PaintScene(root, opts), nil
}

// =============================================================================
// Nodelink
// =============================================================================

// GenerateDOT converts the method's control tree to Graphviz DOT.
func GenerateDOT(m flow.Method, opts Options) string {
	return nodelink.ToDOT(m, nodelink.Options{Normalize: opts.Normalize})
}
