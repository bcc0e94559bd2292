package scene

import (
	"reflect"
	"testing"

	"github.com/matzehuels/structogram/pkg/flow"
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
)

func build(t *testing.T, n flow.Node) layout.Node {
	t.Helper()
	ln := layout.NewBuilder(layout.DefaultConfig(), layout.MonoMeasurer{Advance: 8}).Build(n)
	if ln == nil {
		t.Fatal("Build() = nil")
	}
	return ln
}

func stmts(texts ...string) []flow.Node {
	out := make([]flow.Node, len(texts))
	for i, s := range texts {
		out[i] = flow.Statement{Text: s}
	}
	return out
}

func rectsWithRole(ps []Primitive, role Role) []Rect {
	var out []Rect
	for _, r := range collect[Rect](ps) {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out
}

func TestPaintStatement(t *testing.T) {
	cfg := layout.DefaultConfig()
	n := build(t, flow.Statement{Text: "x = 5;"})

	tests := []struct {
		name   string
		width  int
		wantRW int
	}{
		{"own width", n.Width(), 56},
		{"forced wider", 200, 200},
		{"forced narrower is raised", 10, 56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := Paint(n, 5, 7, tt.width, cfg)
			want := []Primitive{
				Rect{X: 5, Y: 7, W: tt.wantRW, H: 28, Role: RoleStatement},
				Text{X: 5 + cfg.TextPadding, Y: 7 + 14, S: "x ← 5", Align: AlignLeft, Role: RoleStatement},
			}
			if !reflect.DeepEqual(ps, want) {
				t.Errorf("Paint() = %+v, want %+v", ps, want)
			}
		})
	}
}

func TestPaintSequenceCursor(t *testing.T) {
	n := build(t, flow.Sequence{Children: stmts("a = 1;", "bb = 22;", "c = 3;")})
	rects := collect[Rect](Paint(n, 0, 10, 300, layout.DefaultConfig()))
	if len(rects) != 3 {
		t.Fatalf("got %d rects, want 3", len(rects))
	}
	for i, r := range rects {
		if r.Y != 10+i*28 {
			t.Errorf("rect %d Y = %d, want %d", i, r.Y, 10+i*28)
		}
		if r.W != 300 {
			t.Errorf("rect %d W = %d, want forced width 300", i, r.W)
		}
	}
}

func TestPaintIfRemainder(t *testing.T) {
	cfg := layout.DefaultConfig()
	n := build(t, flow.If{
		Condition: "x",
		Then:      stmts("a = 1;", "b = 2;", "c = 3;"),
		Else:      stmts("d = 4;"),
	})
	ps := Paint(n, 0, 0, n.Width(), cfg)

	rem := rectsWithRole(ps, RoleRemainder)
	if len(rem) != 1 {
		t.Fatalf("got %d remainder rects, want 1", len(rem))
	}
	want := Rect{X: 56, Y: cfg.IfHeaderHeight + 28, W: 56, H: 84 - 28, Role: RoleRemainder, Filled: true}
	if rem[0] != want {
		t.Errorf("remainder = %+v, want %+v", rem[0], want)
	}

	// then and else columns reach the same bottom edge.
	bottom := 0
	for _, r := range collect[Rect](ps) {
		bottom = max(bottom, r.Y+r.H)
	}
	if bottom != n.Height() {
		t.Errorf("painted bottom = %d, want %d", bottom, n.Height())
	}
}

func TestPaintIfRemainderOnThen(t *testing.T) {
	cfg := layout.DefaultConfig()
	n := build(t, flow.If{
		Condition: "x",
		Then:      stmts("a = 1;"),
		Else:      stmts("b = 2;", "c = 3;"),
	})
	rem := rectsWithRole(Paint(n, 0, 0, n.Width(), cfg), RoleRemainder)
	if len(rem) != 1 {
		t.Fatalf("got %d remainder rects, want 1", len(rem))
	}
	if rem[0].X != 0 || rem[0].Y != cfg.IfHeaderHeight+28 || rem[0].H != 28 {
		t.Errorf("remainder = %+v", rem[0])
	}
}

func TestPaintIfNoElse(t *testing.T) {
	n := build(t, flow.If{Condition: "x>0", Then: stmts("y = 1;")})
	var labels []string
	for _, tx := range collect[Text](Paint(n, 0, 0, n.Width(), layout.DefaultConfig())) {
		labels = append(labels, tx.S)
	}
	want := []string{"x>0", "true", "false", "y ← 1", "(no else)"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("texts = %q, want %q", labels, want)
	}
}

func TestPaintIfForcedWidth(t *testing.T) {
	n := build(t, flow.If{Condition: "x", Then: stmts("a = 1;"), Else: stmts("b = 2;")})
	ps := Paint(n, 0, 0, 212, layout.DefaultConfig())
	rows := rectsWithRole(ps, RoleStatement)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].W+rows[1].W != 212 {
		t.Errorf("branch widths %d + %d, want 212", rows[0].W, rows[1].W)
	}
	if rows[1].X != rows[0].W {
		t.Errorf("else column starts at %d, want %d", rows[1].X, rows[0].W)
	}
}

func TestPaintLoopInset(t *testing.T) {
	cfg := layout.DefaultConfig()
	n := build(t, flow.Loop{Loop: flow.LoopWhile, Header: "i < n", Body: stmts("i++;")})
	ps := Paint(n, 0, 0, n.Width(), cfg)

	insets := rectsWithRole(ps, RoleInset)
	if len(insets) != 1 {
		t.Fatalf("got %d inset rects, want 1", len(insets))
	}
	if want := (Rect{X: 0, Y: 28, W: cfg.InsetWidth, H: 28, Role: RoleInset, Filled: true}); insets[0] != want {
		t.Errorf("inset = %+v, want %+v", insets[0], want)
	}
	body := rectsWithRole(ps, RoleStatement)
	if len(body) != 1 || body[0].X != cfg.InsetWidth || body[0].W != n.Width()-cfg.InsetWidth {
		t.Errorf("body = %+v", body)
	}
	if len(rectsWithRole(ps, RoleFooter)) != 0 {
		t.Error("pre-condition loop painted a footer")
	}
}

func TestPaintLoopBodyFillsColumn(t *testing.T) {
	cfg := layout.DefaultConfig()
	n := build(t, flow.Loop{Loop: flow.LoopFor, Header: "int i = 0; i < n; i++", Body: stmts("a = 1;", "b = 2;", "c = 3;")})
	ps := Paint(n, 0, 0, n.Width()+40, cfg)

	if r := rectsWithRole(ps, RoleRemainder); len(r) != 0 {
		t.Errorf("loop painted remainder %+v", r)
	}
	insets := rectsWithRole(ps, RoleInset)
	if len(insets) != 1 || insets[0].Y+insets[0].H != n.Height() {
		t.Errorf("inset = %+v, want it to reach the loop bottom %d", insets, n.Height())
	}
}

func TestPaintDoWhile(t *testing.T) {
	n := build(t, flow.Loop{Loop: flow.LoopDo, Header: "i < n", Body: stmts("i++;")})
	ps := Paint(n, 0, 0, n.Width(), layout.DefaultConfig())

	footer := rectsWithRole(ps, RoleFooter)
	if len(footer) != 1 || footer[0].Y != 56 {
		t.Fatalf("footer = %+v, want one band at y=56", footer)
	}
	if len(rectsWithRole(ps, RoleInset)) != 0 {
		t.Error("post-condition loop painted an inset")
	}
	texts := collect[Text](ps)
	if texts[0].S != "do" || texts[len(texts)-1].S != "while (i < n)" {
		t.Errorf("texts = %+v", texts)
	}
}

func TestPaintSwitch(t *testing.T) {
	n := build(t, flow.Switch{Expr: "k", Cases: []flow.Case{
		{Label: "1", Body: stmts("a = 1;", "b = 2;")},
		{Label: "2", Body: stmts("a = 2;")},
		{Label: "default"},
	}})
	ps := Paint(n, 0, 0, n.Width(), layout.DefaultConfig())

	var fans, dividers int
	for _, l := range collect[Line](ps) {
		switch l.Role {
		case RoleHeader:
			fans++
			if l.X1 != n.Width()/2 || l.Y1 != 0 || l.Y2 != 28 {
				t.Errorf("fan line %+v does not start at header top midpoint", l)
			}
		case RoleDivider:
			dividers++
		}
	}
	if fans != 4 {
		t.Errorf("got %d fan lines, want 4", fans)
	}
	if dividers != 2 {
		t.Errorf("got %d dividers, want 2", dividers)
	}

	labels := rectsWithRole(ps, RoleLabel)
	if len(labels) != 3 {
		t.Fatalf("got %d label bands, want 3", len(labels))
	}
	sum := 0
	for _, r := range labels {
		sum += r.W
	}
	if sum != n.Width() {
		t.Errorf("case widths sum to %d, want %d", sum, n.Width())
	}

	// Cases 2 and default are one row shorter than case 1.
	if rem := rectsWithRole(ps, RoleRemainder); len(rem) != 2 {
		t.Errorf("got %d remainder rects, want 2", len(rem))
	}
}

func TestPaintSwitchZeroCases(t *testing.T) {
	n := build(t, flow.Switch{Expr: "x"})
	ps := Paint(n, 0, 0, n.Width(), layout.DefaultConfig())
	labels := rectsWithRole(ps, RoleLabel)
	if len(labels) != 1 || labels[0].W != n.Width() {
		t.Fatalf("label bands = %+v, want one full-width column", labels)
	}
	if ph := rectsWithRole(ps, RolePlaceholder); len(ph) != 1 {
		t.Errorf("got %d placeholder rows, want 1", len(ph))
	}
}

func TestPaintTryOrder(t *testing.T) {
	n := build(t, flow.Try{
		Body:    stmts("a();"),
		Catches: []flow.Catch{{Param: "E e", Body: stmts("log(e);")}},
		Finally: &flow.Sequence{Children: stmts("close();")},
	})
	ps := Paint(n, 0, 0, n.Width(), layout.DefaultConfig())

	type band struct {
		y    int
		text string
	}
	var got []band
	for _, tx := range collect[Text](ps) {
		if tx.Role == RoleHeader || tx.Role == RoleLabel {
			got = append(got, band{tx.Y, tx.S})
		}
	}
	want := []band{{14, "try"}, {70, "catch (E e)"}, {126, "finally"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bands = %+v, want %+v", got, want)
	}

	bottom := 0
	for _, r := range collect[Rect](ps) {
		bottom = max(bottom, r.Y+r.H)
	}
	if bottom != n.Height() {
		t.Errorf("painted bottom = %d, want %d", bottom, n.Height())
	}
}

func TestRender(t *testing.T) {
	cfg := layout.DefaultConfig()
	root := build(t, flow.Sequence{Children: []flow.Node{
		flow.Statement{Text: "int n = 0;"},
		flow.Loop{Loop: flow.LoopFor, Header: "int i = 0; i < 3; i++", Body: []flow.Node{
			flow.If{Condition: "i % 2 == 0", Then: stmts("n++;")},
		}},
	}})
	s := Render(root, cfg)

	if s.Width != root.Width()+2*cfg.Padding || s.Height != root.Height()+2*cfg.Padding {
		t.Errorf("canvas = %dx%d", s.Width, s.Height)
	}
	for _, r := range s.Rects() {
		if r.X < cfg.Padding || r.Y < cfg.Padding || r.X+r.W > s.Width-cfg.Padding || r.Y+r.H > s.Height-cfg.Padding {
			t.Errorf("rect %+v leaves the drawing area", r)
		}
	}
	if !reflect.DeepEqual(s, Render(root, cfg)) {
		t.Error("Render() is not deterministic")
	}
}

func TestRenderNil(t *testing.T) {
	s := Render(nil, layout.DefaultConfig())
	texts := s.Texts()
	if len(texts) != 1 || texts[0].S != NoDataMessage {
		t.Fatalf("Render(nil) texts = %+v", texts)
	}
	if len(s.Rects()) != 0 || len(s.Lines()) != 0 {
		t.Error("placeholder scene has shapes")
	}
	if texts[0].X != s.Width/2 || texts[0].Y != s.Height/2 {
		t.Errorf("message at (%d,%d), want canvas center", texts[0].X, texts[0].Y)
	}
}
