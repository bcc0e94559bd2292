package scene

import (
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
)

// NoDataMessage is shown when there is no method body to draw.
const NoDataMessage = "No structogram available"

// Paint positions n with its top-left corner at (x, y) and returns the
// primitives that draw it. width is the width forced by the parent; values
// below the node's own width are raised to it.
func Paint(n layout.Node, x, y, width int, cfg layout.Config) []Primitive {
	p := painter{cfg: cfg}
	p.paint(n, x, y, width)
	return p.out
}

// Render paints root at the canvas padding and sizes the canvas around it.
// A nil root yields the [NoDataMessage] placeholder.
func Render(root layout.Node, cfg layout.Config) Scene {
	if root == nil {
		return Placeholder(NoDataMessage, cfg)
	}
	return Scene{
		Primitives: Paint(root, cfg.Padding, cfg.Padding, root.Width(), cfg),
		Width:      root.Width() + 2*cfg.Padding,
		Height:     root.Height() + 2*cfg.Padding,
	}
}

// Placeholder returns a canvas holding a single centered message.
func Placeholder(msg string, cfg layout.Config) Scene {
	m := layout.MonoMeasurer{Advance: int(cfg.FontSize*0.6 + 0.5)}
	w := max(m.Measure(msg)+2*cfg.TextPadding, cfg.MinWidth) + 2*cfg.Padding
	h := cfg.RowHeight + 2*cfg.Padding
	return Scene{
		Primitives: []Primitive{
			Text{X: w / 2, Y: h / 2, S: msg, Align: AlignCenter, Role: RolePlaceholder},
		},
		Width:  w,
		Height: h,
	}
}

type painter struct {
	cfg layout.Config
	out []Primitive
}

func (p *painter) add(prims ...Primitive) { p.out = append(p.out, prims...) }

func (p *painter) paint(n layout.Node, x, y, width int) {
	if n == nil {
		return
	}
	width = max(width, n.Width())
	switch v := n.(type) {
	case *layout.Statement:
		p.statement(v, x, y, width)
	case *layout.Sequence:
		p.sequence(v, x, y, width)
	case *layout.If:
		p.ifNode(v, x, y, width)
	case *layout.Loop:
		p.loop(v, x, y, width)
	case *layout.Switch:
		p.switchNode(v, x, y, width)
	case *layout.Try:
		p.try(v, x, y, width)
	}
}

func (p *painter) statement(n *layout.Statement, x, y, width int) {
	role := RoleStatement
	if n.Placeholder {
		role = RolePlaceholder
	}
	p.add(
		Rect{X: x, Y: y, W: width, H: n.H, Role: role},
		Text{X: x + p.cfg.TextPadding, Y: y + n.H/2, S: n.Label, Align: AlignLeft, Role: role},
	)
}

func (p *painter) sequence(n *layout.Sequence, x, y, width int) {
	cy := y
	for _, c := range n.Children {
		p.paint(c, x, cy, width)
		cy += c.Height()
	}
}

// band draws a full-width labeled strip.
func (p *painter) band(x, y, width, height int, text string, role Role) {
	p.add(
		Rect{X: x, Y: y, W: width, H: height, Role: role},
		Text{X: x + p.cfg.TextPadding, Y: y + height/2, S: text, Align: AlignLeft, Role: role},
	)
}

// remainder pads a column whose content ends above the allotted bottom.
func (p *painter) remainder(x, y, width, used, allotted int) {
	if used < allotted {
		p.add(Rect{X: x, Y: y + used, W: width, H: allotted - used, Role: RoleRemainder, Filled: true})
	}
}

func (p *painter) ifNode(n *layout.If, x, y, width int) {
	hh := p.cfg.IfHeaderHeight
	cols := layout.Fit([]int{n.Then.W, n.Else.W}, width)
	split := x + cols[0]
	bottom := y + hh

	p.add(
		Rect{X: x, Y: y, W: width, H: hh, Role: RoleCondition},
		Line{X1: x, Y1: y, X2: split, Y2: bottom, Role: RoleCondition},
		Line{X1: x + width, Y1: y, X2: split, Y2: bottom, Role: RoleCondition},
		Text{X: x + width/2, Y: y + hh/3, S: n.Condition, Align: AlignCenter, Role: RoleCondition},
		Text{X: x + p.cfg.TextPadding, Y: y + hh*3/4, S: p.cfg.TrueLabel, Align: AlignLeft, Role: RoleBranch},
		Text{X: x + width - p.cfg.TextPadding, Y: y + hh*3/4, S: p.cfg.FalseLabel, Align: AlignRight, Role: RoleBranch},
	)

	tallest := max(n.Then.H, n.Else.H)
	p.paint(n.Then, x, bottom, cols[0])
	p.remainder(x, bottom, cols[0], n.Then.H, tallest)
	p.paint(n.Else, split, bottom, cols[1])
	p.remainder(split, bottom, cols[1], n.Else.H, tallest)
}

func (p *painter) loop(n *layout.Loop, x, y, width int) {
	hh := p.cfg.HeaderHeight
	p.band(x, y, width, hh, n.Header, RoleHeader)
	top := y + hh

	if n.PostCondition() {
		p.paint(n.Body, x, top, width)
		p.band(x, top+n.Body.H, width, hh, n.Footer, RoleFooter)
		return
	}

	// The body fills the loop below the header, so no remainder is needed.
	inset := p.cfg.InsetWidth
	p.add(
		Rect{X: x, Y: top, W: inset, H: n.Body.H, Role: RoleInset, Filled: true},
		Line{X1: x + inset, Y1: top, X2: x + width, Y2: top, Role: RoleInset},
		Line{X1: x + inset, Y1: top, X2: x + inset, Y2: top + n.Body.H, Role: RoleInset},
	)
	p.paint(n.Body, x+inset, top, width-inset)
}

func (p *painter) switchNode(n *layout.Switch, x, y, width int) {
	hh, lh := p.cfg.HeaderHeight, n.LabelHeight
	base := make([]int, len(n.Cases))
	tallest := 0
	for i, c := range n.Cases {
		base[i] = c.Width
		tallest = max(tallest, c.Body.H)
	}
	cols := layout.Fit(base, width)

	p.add(
		Rect{X: x, Y: y, W: width, H: hh, Role: RoleHeader},
		Text{X: x + width/2, Y: y + hh/2, S: n.Header, Align: AlignCenter, Role: RoleHeader},
	)

	apex := x + width/2
	top := y + hh
	cx := x
	for i, c := range n.Cases {
		p.add(Line{X1: apex, Y1: y, X2: cx, Y2: top, Role: RoleHeader})
		if i > 0 {
			p.add(Line{X1: cx, Y1: top, X2: cx, Y2: y + n.H, Role: RoleDivider})
		}
		p.add(
			Rect{X: cx, Y: top, W: cols[i], H: lh, Role: RoleLabel},
			Text{X: cx + cols[i]/2, Y: top + lh/2, S: c.Label, Align: AlignCenter, Role: RoleLabel},
		)
		p.paint(c.Body, cx, top+lh, cols[i])
		p.remainder(cx, top+lh, cols[i], c.Body.H, tallest)
		cx += cols[i]
	}
	p.add(Line{X1: apex, Y1: y, X2: cx, Y2: top, Role: RoleHeader})
}

func (p *painter) try(n *layout.Try, x, y, width int) {
	cy := y
	for i, s := range n.Sections() {
		role := RoleLabel
		if i == 0 {
			role = RoleHeader
		}
		p.band(x, cy, width, s.Band, s.Label, role)
		p.paint(s.Body, x, cy+s.Band, width)
		cy += s.Height()
	}
}
