package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/flow"
	"github.com/matzehuels/structogram/pkg/render"
	"github.com/matzehuels/structogram/pkg/render/structogram/label"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Normalize shows statement labels as the structogram would draw them.
	// When false, the cleaned source text is shown.
	Normalize bool
}

// maxLabel bounds box labels; longer text is cut with an ellipsis.
const maxLabel = 48

type dotWriter struct {
	buf  bytes.Buffer
	opts Options
	next int
}

// ToDOT converts a method's control tree to Graphviz DOT. The root box holds
// the method declaration. Methods without a body produce a single box.
func ToDOT(m flow.Method, opts Options) string {
	w := &dotWriter{opts: opts}
	w.buf.WriteString("digraph G {\n")
	w.buf.WriteString("  rankdir=TB;\n")
	w.buf.WriteString("  bgcolor=\"transparent\";\n")
	w.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Go Mono\", fontsize=12, margin=\"0.2,0.1\"];\n")
	w.buf.WriteString("  edge [fontname=\"Go Mono\", fontsize=10];\n")
	w.buf.WriteString("  ranksep=0.4;\n")
	w.buf.WriteString("  nodesep=0.3;\n")
	w.buf.WriteString("\n")

	root := w.box(m.Declaration(), "shape=box, style=\"filled\", fillcolor=\"#eef4fb\"")
	if m.HasBody() {
		w.edge(root, w.node(m.Body), "")
	}

	w.buf.WriteString("}\n")
	return w.buf.String()
}

func (w *dotWriter) box(text, attrs string) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++
	fmt.Fprintf(&w.buf, "  %s [label=%q", id, truncate(text))
	if attrs != "" {
		w.buf.WriteString(", " + attrs)
	}
	w.buf.WriteString("];\n")
	return id
}

func (w *dotWriter) edge(from, to, lbl string) {
	if lbl == "" {
		fmt.Fprintf(&w.buf, "  %s -> %s;\n", from, to)
		return
	}
	fmt.Fprintf(&w.buf, "  %s -> %s [label=%q];\n", from, to, lbl)
}

func (w *dotWriter) children(parent string, ns []flow.Node, lbl string) {
	for _, n := range ns {
		if flow.Deref(n) == nil {
			continue
		}
		w.edge(parent, w.node(n), lbl)
	}
}

func (w *dotWriter) node(n flow.Node) string {
	switch v := flow.Deref(n).(type) {
	case flow.Statement:
		text := label.Clean(v.Text)
		if w.opts.Normalize {
			if norm, ok := label.Normalize(v.Text); ok {
				text = norm
			} else {
				return w.box("(empty)", "style=\"rounded,dashed\"")
			}
		}
		return w.box(text, "")
	case flow.Sequence:
		id := w.box("sequence", "shape=point, width=0.12")
		w.children(id, v.Children, "")
		return id
	case flow.If:
		id := w.box("if "+label.Clean(v.Condition), "shape=diamond, style=filled")
		w.children(id, v.Then, "then")
		w.children(id, v.Else, "else")
		return id
	case flow.Loop:
		id := w.box(string(v.Loop)+" "+label.Clean(v.Header), "shape=hexagon, style=filled")
		w.children(id, v.Body, "body")
		return id
	case flow.Switch:
		id := w.box("switch "+label.Clean(v.Expr), "shape=trapezium, style=filled")
		for _, c := range v.Cases {
			lbl := "default"
			if !c.IsDefault() {
				lbl = "case " + label.Clean(c.Label)
			}
			w.children(id, c.Body, lbl)
		}
		return id
	case flow.Try:
		head := "try"
		if res := label.Clean(v.Resources); res != "" {
			head += " (" + res + ")"
		}
		id := w.box(head, "shape=box3d, style=filled")
		w.children(id, v.Body, "body")
		for _, c := range v.Catches {
			w.children(id, c.Body, "catch "+label.Clean(c.Param))
		}
		if v.Finally != nil {
			w.children(id, v.Finally.Children, "finally")
		}
		return id
	case flow.Unknown:
		return w.box(v.Type+": "+label.Clean(v.Text), "style=\"rounded,dashed\", fillcolor=lightgrey")
	}
	return w.box("?", "style=dashed")
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxLabel {
		return s
	}
	return strings.TrimSpace(string(r[:maxLabel-1])) + "…"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
