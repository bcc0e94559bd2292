package sink

import (
	"bytes"
	"fmt"
	"image/png"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/flow"
	"github.com/matzehuels/structogram/pkg/render"
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
	"github.com/matzehuels/structogram/pkg/render/structogram/styles"
)

func testScene(t *testing.T, n flow.Node) scene.Scene {
	t.Helper()
	cfg := layout.DefaultConfig()
	root := layout.NewBuilder(cfg, layout.MonoMeasurer{Advance: 8}).Build(n)
	return scene.Render(root, cfg)
}

func ifScene(t *testing.T) scene.Scene {
	return testScene(t, flow.If{
		Condition: "a < b",
		Then:      []flow.Node{flow.Statement{Text: "min = a;"}},
		Else:      []flow.Node{flow.Statement{Text: "min = b;"}, flow.Statement{Text: "swap(a, b);"}},
	})
}

func TestRenderSVG(t *testing.T) {
	sc := ifScene(t)
	svg := string(RenderSVG(sc))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`class="condition"`,
		`class="remainder"`,
		`a &lt; b`,
		`min ← a`,
		"</svg>\n",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	if strings.Contains(svg, "<title>") {
		t.Error("RenderSVG() without title wrote a <title>")
	}
}

func TestRenderSVGTitle(t *testing.T) {
	sc := ifScene(t)
	svg := string(RenderSVG(sc, WithTitle("int min(int a, int b)"), WithStyle(styles.Print{})))

	for _, want := range []string{
		"<title>int min(int a, int b)</title>",
		`<g transform="translate(0,28)">`,
		`<pattern id="hatch"`,
		`fill="url(#hatch)"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	wantBox := fmt.Sprintf(`viewBox="0 0 %d %d"`, sc.Width, sc.Height+TitleHeight)
	if !strings.Contains(svg, wantBox) {
		t.Errorf("RenderSVG() missing %s", wantBox)
	}
}

func TestRenderSVGEmbeddedFont(t *testing.T) {
	sc := ifScene(t)
	if svg := string(RenderSVG(sc)); strings.Contains(svg, "@font-face") {
		t.Error("RenderSVG() embedded a font without WithEmbeddedFont")
	}
	svg := string(RenderSVG(sc, WithEmbeddedFont(true)))
	if !strings.Contains(svg, "<defs><style>@font-face") {
		t.Error("RenderSVG(WithEmbeddedFont) missing @font-face rule")
	}
	if !strings.Contains(svg, "font-family=\"Go Mono,") {
		t.Error("simple style should name the embedded family first")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	sc := ifScene(t)
	data, err := RenderJSON(sc, WithJSONTitle("int min(int a, int b)"), WithJSONStyle("print"))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	doc, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if !reflect.DeepEqual(doc.Scene, sc) {
		t.Error("scene changed across JSON round trip")
	}
	if doc.Title != "int min(int a, int b)" || doc.Style != "print" {
		t.Errorf("Title = %q, Style = %q", doc.Title, doc.Style)
	}
	if !strings.Contains(string(data), `"type": "rect"`) {
		t.Errorf("RenderJSON() missing type tags:\n%s", data)
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"width": `},
		{"unknown primitive", `{"width": 10, "height": 10, "primitives": [{"type": "circle"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ParseJSON() error = %v, want %v", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestRenderPNG(t *testing.T) {
	sc := ifScene(t)

	tests := []struct {
		name  string
		opts  []PNGOption
		wantW int
		wantH int
	}{
		{"default scale", nil, 2 * sc.Width, 2 * sc.Height},
		{"unit scale", []PNGOption{WithScale(1)}, sc.Width, sc.Height},
		{"title", []PNGOption{WithScale(1), WithPNGSVGOptions(WithTitle("m()"))}, sc.Width, sc.Height + TitleHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(sc, tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error = %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderPNGBadScale(t *testing.T) {
	_, err := RenderPNG(ifScene(t), WithScale(0))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderPNG(scale 0) error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPDF(ifScene(t))
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("RenderPDF() output does not start with %%PDF")
	}
}

func TestRenderText(t *testing.T) {
	got := RenderText(testScene(t, flow.Statement{Text: "x = 5;"}))
	want := strings.Join([]string{
		"",
		"  +------+",
		"  |x ← 5 |",
		"  +------+",
		"",
		"",
	}, "\n")
	if got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTextIf(t *testing.T) {
	got := RenderText(ifScene(t))
	for _, want := range []string{"a < b", "true", "false", "min ← a", "min ← b", "swap(a, b)", "\\", "/"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderText() missing %q:\n%s", want, got)
		}
	}
}

func TestRenderTextPlaceholder(t *testing.T) {
	got := RenderText(scene.Render(nil, layout.DefaultConfig()))
	if !strings.Contains(got, scene.NoDataMessage) {
		t.Errorf("RenderText() = %q, want no-data message", got)
	}
}
