package layout

import "github.com/matzehuels/structogram/pkg/flow"

// Node is a measured element of a structogram. The concrete types are
// [*Statement], [*Sequence], [*If], [*Loop], [*Switch] and [*Try].
type Node interface {
	Kind() flow.Kind
	Width() int
	Height() int
	isNode()
}

// Box carries the measured size shared by every node.
type Box struct {
	W, H int
}

// Width returns the minimum width of the node.
func (b Box) Width() int { return b.W }

// Height returns the exact height of the node.
func (b Box) Height() int { return b.H }

// Statement is a single row.
type Statement struct {
	Box
	Label string
	// Placeholder marks rows synthesized for empty bodies or a missing
	// else branch. Styles may draw them muted.
	Placeholder bool
}

// Sequence stacks its children vertically.
type Sequence struct {
	Box
	Children []Node
}

// If is a two-way branch. Else holds the "(no else)" row when the source
// had no else branch.
type If struct {
	Box
	Condition   string
	HeaderWidth int
	Then, Else  *Sequence
}

// Loop is a pre- or post-condition loop.
type Loop struct {
	Box
	Loop flow.LoopKind
	// Header is the top band label: "while (c)", "for (h)" or "do".
	Header string
	// Footer is the bottom band label of post-condition loops.
	Footer string
	Body   *Sequence
}

// PostCondition reports whether the loop tests its condition after the body.
func (l *Loop) PostCondition() bool { return l.Loop.IsPostCondition() }

// Switch is a multi-way branch. Case widths are already fitted so that they
// sum to the node width.
type Switch struct {
	Box
	Header      string
	HeaderWidth int
	Cases       []Case
	LabelHeight int
}

// Case is one switch column.
type Case struct {
	Label string
	Width int
	Body  *Sequence
}

// Try is a try statement. Sections returns the stacking order.
type Try struct {
	Box
	Main    Clause
	Catches []Clause
	Finally *Clause
}

// Clause is a labeled band followed by a body.
type Clause struct {
	Label string
	Band  int
	Body  *Sequence
}

// Height returns the band plus the body.
func (c Clause) Height() int { return c.Band + c.Body.H }

// Sections returns try, catches and finally in painting order.
func (t *Try) Sections() []Clause {
	out := make([]Clause, 0, len(t.Catches)+2)
	out = append(out, t.Main)
	out = append(out, t.Catches...)
	if t.Finally != nil {
		out = append(out, *t.Finally)
	}
	return out
}

func (*Statement) Kind() flow.Kind { return flow.KindStatement }
func (*Sequence) Kind() flow.Kind  { return flow.KindSequence }
func (*If) Kind() flow.Kind        { return flow.KindIf }
func (*Loop) Kind() flow.Kind      { return flow.KindLoop }
func (*Switch) Kind() flow.Kind    { return flow.KindSwitch }
func (*Try) Kind() flow.Kind       { return flow.KindTry }

func (*Statement) isNode() {}
func (*Sequence) isNode()  {}
func (*If) isNode()        {}
func (*Loop) isNode()      {}
func (*Switch) isNode()    {}
func (*Try) isNode()       {}

// Walk visits n and its descendants in painting order. depth is 0 for n.
// Branch sequences are visited as nodes in their own right.
func Walk(n Node, fn func(n Node, depth int)) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int)) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, c := range Children(n) {
		walk(c, depth+1, fn)
	}
}

// Children returns the direct children of n in painting order.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Sequence:
		return v.Children
	case *If:
		return []Node{v.Then, v.Else}
	case *Loop:
		return []Node{v.Body}
	case *Switch:
		out := make([]Node, len(v.Cases))
		for i, c := range v.Cases {
			out[i] = c.Body
		}
		return out
	case *Try:
		var out []Node
		for _, s := range v.Sections() {
			out = append(out, s.Body)
		}
		return out
	}
	return nil
}

// Label returns the principal text of n: the row text, the condition, or
// the header band label. Sequences have none.
func Label(n Node) string {
	switch v := n.(type) {
	case *Statement:
		return v.Label
	case *If:
		return v.Condition
	case *Loop:
		if v.PostCondition() {
			return v.Footer
		}
		return v.Header
	case *Switch:
		return v.Header
	case *Try:
		return v.Main.Label
	}
	return ""
}
