package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/structogram/pkg/flow"
)

func sampleMethod() flow.Method {
	return flow.Method{
		Name:       "abs",
		ReturnType: "int",
		Visibility: "public",
		Params:     []flow.Param{{Type: "int", Name: "x"}},
		Body: flow.Sequence{Children: []flow.Node{
			flow.If{
				Condition: "x < 0",
				Then:      []flow.Node{flow.Statement{Text: "x = -x; // flip"}},
			},
			flow.Statement{Text: "return x;"},
		}},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleMethod(), Options{})

	for _, want := range []string{
		"digraph G",
		`n0 [label="public int abs(int x)"`,
		`label="if x < 0", shape=diamond`,
		`label="x = -x;"`,
		`label="return x;"`,
		`[label="then"]`,
		"n0 -> n1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "flip") {
		t.Error("ToDOT() kept a comment")
	}
}

func TestToDOT_Normalize(t *testing.T) {
	dot := ToDOT(sampleMethod(), Options{Normalize: true})
	if !strings.Contains(dot, `label="x ← -x"`) {
		t.Errorf("ToDOT() normalized output missing arrow label\n%s", dot)
	}
}

func TestToDOT_NoBody(t *testing.T) {
	dot := ToDOT(flow.Method{Name: "run", ReturnType: "void"}, Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("ToDOT() without body has edges\n%s", dot)
	}
	if !strings.Contains(dot, `label="void run()"`) {
		t.Errorf("ToDOT() missing declaration\n%s", dot)
	}
}

func TestToDOT_AllKinds(t *testing.T) {
	m := flow.Method{Name: "m", Body: flow.Sequence{Children: []flow.Node{
		flow.Loop{Loop: flow.LoopDo, Header: "more()", Body: []flow.Node{flow.Statement{Text: "step();"}}},
		flow.Switch{Expr: "k", Cases: []flow.Case{
			{Label: "1", Body: []flow.Node{flow.Statement{Text: "a();"}}},
			{Label: "default", Body: []flow.Node{flow.Statement{Text: "b();"}}},
		}},
		flow.Try{
			Resources: "var in = open()",
			Body:      []flow.Node{flow.Statement{Text: "read(in);"}},
			Catches:   []flow.Catch{{Param: "IOException e", Body: []flow.Node{flow.Statement{Text: "log(e);"}}}},
			Finally:   &flow.Sequence{Children: []flow.Node{flow.Statement{Text: "done();"}}},
		},
		flow.Unknown{Type: "labeled", Text: "outer:"},
	}}}
	dot := ToDOT(m, Options{})

	for _, want := range []string{
		`label="do more()"`,
		`[label="body"]`,
		`[label="case 1"]`,
		`[label="default"]`,
		`label="try (var in = open())"`,
		`[label="catch IOException e"]`,
		`[label="finally"]`,
		`label="labeled: outer:"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := truncate(long)
	if len([]rune(got)) != maxLabel {
		t.Errorf("truncate() length = %d, want %d", len([]rune(got)), maxLabel)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate() = %q, want ellipsis", got)
	}
	if truncate("short") != "short" {
		t.Error("truncate() changed a short label")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleMethod(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() did not normalize the svg tag:\n%.200s", svg)
	}
}

func TestRenderSVG_BadDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() with malformed DOT succeeded")
	}
}
