package layout

import (
	"github.com/matzehuels/structogram/pkg/flow"
	"github.com/matzehuels/structogram/pkg/render/structogram/label"
)

// Builder runs the measure pass. A Builder holds no state between calls
// and may be shared.
type Builder struct {
	cfg     Config
	measure Measurer
}

// NewBuilder returns a Builder using cfg and m. A nil m falls back to a
// [MonoMeasurer] with an advance of 60% of the font size.
func NewBuilder(cfg Config, m Measurer) *Builder {
	if m == nil {
		m = MonoMeasurer{Advance: int(cfg.FontSize*0.6 + 0.5)}
	}
	return &Builder{cfg: cfg, measure: m}
}

// Config returns the sizing constants the builder was created with.
func (b *Builder) Config() Config { return b.cfg }

// Build measures n. It returns nil only for a nil tree; statements that
// normalize to nothing at the top level become a placeholder row.
func (b *Builder) Build(n flow.Node) Node {
	n = flow.Deref(n)
	if n == nil {
		return nil
	}
	if ln, ok := b.node(n); ok {
		return ln
	}
	return b.sequence(nil)
}

// node measures n. ok is false only for a statement with no normalized
// text. A nested sequence left empty keeps one placeholder row.
func (b *Builder) node(n flow.Node) (Node, bool) {
	switch v := flow.Deref(n).(type) {
	case nil:
		return nil, false
	case flow.Statement:
		text, ok := label.Normalize(v.Text)
		if !ok {
			return nil, false
		}
		return b.row(text, false), true
	case flow.Sequence:
		return b.sequence(v.Children), true
	case flow.If:
		return b.ifNode(v), true
	case flow.Loop:
		return b.loop(v), true
	case flow.Switch:
		return b.switchNode(v), true
	case flow.Try:
		return b.try(v), true
	case flow.Unknown:
		text := label.Clean(v.Text)
		if text == "" {
			return b.row(b.cfg.EmptyLabel, true), true
		}
		return b.row(text, false), true
	}
	return nil, false
}

// textWidth is the width of a box that holds s with padding on both sides.
func (b *Builder) textWidth(s string) int {
	return max(b.measure.Measure(s)+2*b.cfg.TextPadding, b.cfg.MinWidth)
}

func (b *Builder) row(text string, placeholder bool) *Statement {
	return &Statement{
		Box:         Box{W: b.textWidth(text), H: b.cfg.RowHeight},
		Label:       text,
		Placeholder: placeholder,
	}
}

// children measures a list of nodes. ok is false when nothing survived.
func (b *Builder) children(nodes []flow.Node) (*Sequence, bool) {
	seq := &Sequence{}
	for _, c := range nodes {
		if ln, ok := b.node(c); ok {
			seq.Children = append(seq.Children, ln)
		}
	}
	if len(seq.Children) == 0 {
		return nil, false
	}
	seq.measure()
	return seq, true
}

// sequence measures a body. Empty bodies hold one placeholder row.
func (b *Builder) sequence(nodes []flow.Node) *Sequence {
	return b.body(nodes, b.cfg.EmptyLabel)
}

func (b *Builder) body(nodes []flow.Node, empty string) *Sequence {
	if seq, ok := b.children(nodes); ok {
		return seq
	}
	seq := &Sequence{Children: []Node{b.row(empty, true)}}
	seq.measure()
	return seq
}

func (s *Sequence) measure() {
	s.W, s.H = 0, 0
	for _, c := range s.Children {
		s.W = max(s.W, c.Width())
		s.H += c.Height()
	}
}

func (b *Builder) ifNode(v flow.If) *If {
	cond := label.Clean(v.Condition)
	n := &If{
		Condition: cond,
		Then:      b.sequence(v.Then),
		Else:      b.body(v.Else, b.cfg.NoElseLabel),
	}
	n.HeaderWidth = b.measure.Measure(cond) +
		b.measure.Measure(b.cfg.TrueLabel) +
		b.measure.Measure(b.cfg.FalseLabel) +
		4*b.cfg.TextPadding
	n.W = max(n.HeaderWidth, n.Then.W+n.Else.W)
	n.H = b.cfg.IfHeaderHeight + max(n.Then.H, n.Else.H)
	return n
}

func (b *Builder) loop(v flow.Loop) *Loop {
	header := label.Clean(v.Header)
	n := &Loop{Loop: v.Loop, Body: b.sequence(v.Body)}
	switch v.Loop {
	case flow.LoopDo:
		n.Header = "do"
		n.Footer = "while (" + header + ")"
		n.W = max(b.textWidth(n.Header), b.textWidth(n.Footer), n.Body.W)
		n.H = 2*b.cfg.HeaderHeight + n.Body.H
		return n
	case flow.LoopFor, flow.LoopForEach:
		n.Header = "for (" + header + ")"
	default:
		n.Header = "while (" + header + ")"
	}
	n.W = max(b.textWidth(n.Header), n.Body.W+b.cfg.InsetWidth)
	n.H = b.cfg.HeaderHeight + n.Body.H
	return n
}

func (b *Builder) switchNode(v flow.Switch) *Switch {
	n := &Switch{
		Header:      "switch (" + label.Clean(v.Expr) + ")",
		LabelHeight: b.cfg.LabelBandHeight,
	}
	n.HeaderWidth = b.textWidth(n.Header)

	cases := v.Cases
	if len(cases) == 0 {
		cases = []flow.Case{{Label: "default"}}
	}
	base := make([]int, len(cases))
	tallest := 0
	for i, c := range cases {
		text := "default"
		if !c.IsDefault() {
			text = "case " + label.Clean(c.Label)
		}
		body := b.sequence(c.Body)
		n.Cases = append(n.Cases, Case{Label: text, Body: body})
		base[i] = max(body.W, b.textWidth(text))
		tallest = max(tallest, body.H)
	}
	for i, w := range Fit(base, n.HeaderWidth) {
		n.Cases[i].Width = w
		n.W += w
	}
	n.H = b.cfg.HeaderHeight + b.cfg.LabelBandHeight + tallest
	return n
}

func (b *Builder) try(v flow.Try) *Try {
	header := "try"
	if res := label.Clean(v.Resources); res != "" {
		header = "try (" + res + ")"
	}
	n := &Try{
		Main: Clause{Label: header, Band: b.cfg.HeaderHeight, Body: b.sequence(v.Body)},
	}
	for _, c := range v.Catches {
		n.Catches = append(n.Catches, Clause{
			Label: "catch (" + label.Clean(c.Param) + ")",
			Band:  b.cfg.LabelBandHeight,
			Body:  b.sequence(c.Body),
		})
	}
	if v.Finally != nil {
		n.Finally = &Clause{
			Label: "finally",
			Band:  b.cfg.LabelBandHeight,
			Body:  b.sequence(v.Finally.Children),
		}
	}
	for _, s := range n.Sections() {
		n.W = max(n.W, b.textWidth(s.Label), s.Body.W)
		n.H += s.Height()
	}
	return n
}
