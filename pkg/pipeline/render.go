package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/render/nodelink"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
	"github.com/matzehuels/structogram/pkg/render/structogram/sink"
	"github.com/matzehuels/structogram/pkg/render/structogram/styles"
)

// Render generates structogram artifacts in the requested formats. The
// title labels every format except txt, which is prefixed with it.
func Render(ctx context.Context, sc scene.Scene, title string, opts Options) (map[string][]byte, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := buildSVGOptions(style, title, opts)

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(sc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(sc, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(sc, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(sc, sink.WithJSONTitle(title), sink.WithJSONStyle(style.Name()))
		case FormatText:
			data = []byte(textWithTitle(sink.RenderText(sc), title))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported structogram format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderNodelink generates node-link outputs from a DOT graph.
func RenderNodelink(ctx context.Context, dot string, opts Options) (map[string][]byte, error) {
	if dot == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nodelink render needs a DOT graph")
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options shared by svg, png and pdf.
func buildSVGOptions(style styles.Style, title string, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithFontSize(opts.Layout.FontSize),
	}
	if title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(title))
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont(true))
	}
	return svgOpts
}

func textWithTitle(body, title string) string {
	if title == "" {
		return body
	}
	return title + "\n" + body
}

// RenderFromSceneData renders output from serialized scene JSON.
// The title and style recorded in the document are used unless opts
// override them.
func RenderFromSceneData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	doc, err := sink.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	if opts.Style == "" {
		opts.Style = doc.Style
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	opts.Layout = opts.Layout.WithDefaults()
	title := doc.Title
	if opts.NoTitle {
		title = ""
	}
	return Render(ctx, doc.Scene, title, opts)
}
