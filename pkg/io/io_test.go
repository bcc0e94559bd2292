package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/flow"
)

func wantCalculator() *flow.Class {
	return &flow.Class{
		Name: "Calculator",
		Methods: []flow.Method{
			{
				Name:       "max",
				ReturnType: "int",
				Visibility: "public",
				Modifiers:  []string{"static"},
				Params:     []flow.Param{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}},
				StartLine:  3,
				EndLine:    9,
				Body: flow.If{
					Condition: "a > b",
					Then:      []flow.Node{flow.Statement{Text: "return a;"}},
					Else:      []flow.Node{flow.Statement{Text: "return b;"}},
				},
			},
			{
				Name:       "sum",
				ReturnType: "int",
				Visibility: "public",
				Params:     []flow.Param{{Type: "int[]", Name: "values"}},
				StartLine:  11,
				EndLine:    30,
				Body: flow.Sequence{Children: []flow.Node{
					flow.Statement{Text: "int total = 0; // running sum"},
					flow.Loop{Loop: flow.LoopForEach, Header: "int v : values", Body: []flow.Node{
						flow.Switch{Expr: "v % 3", Cases: []flow.Case{
							{Label: "0", Body: []flow.Node{flow.Statement{Text: "total += v;"}, flow.Statement{Text: "break;"}}},
							{Label: "default", Body: []flow.Node{flow.Statement{Text: "total -= 1;"}}},
						}},
					}},
					flow.Try{
						Body:    []flow.Node{flow.Statement{Text: "log(total);"}},
						Catches: []flow.Catch{{Param: "IOException e", Body: []flow.Node{flow.Statement{Text: "e.printStackTrace();"}}}},
						Finally: &flow.Sequence{Children: []flow.Node{flow.Statement{Text: "flush();"}}},
					},
					flow.Unknown{Type: "synchronized", Text: "synchronized (this) { notifyAll(); }"},
					flow.Statement{Text: "return total;"},
				}},
			},
			{
				Name:       "reset",
				ReturnType: "void",
				Visibility: "public",
				StartLine:  32,
				EndLine:    32,
			},
		},
	}
}

func TestImportClass(t *testing.T) {
	for _, name := range []string{"calculator.json", "calculator.toml"} {
		t.Run(name, func(t *testing.T) {
			got, err := ImportClass(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("ImportClass() error = %v", err)
			}
			if want := wantCalculator(); !reflect.DeepEqual(got, want) {
				t.Errorf("ImportClass() =\n%#v\nwant\n%#v", got, want)
			}
		})
	}
}

func TestImportClassErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", filepath.Join("testdata", "nope.json"), errors.ErrCodeFileNotFound},
		{"bad extension", filepath.Join("testdata", "calculator.yaml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportClass(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("ImportClass(%q) error = %v, want %v", tt.path, err, tt.code)
			}
		})
	}
}

func TestParseClassErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"malformed json", `{"name": `, "decode json"},
		{"not an object", `[]`, "decode json"},
		{"method not object", `{"methods": [1]}`, "methods[0]"},
		{"missing method name", `{"methods": [{}]}`, "method name is required"},
		{"missing kind", `{"methods": [{"name": "m", "body": {"text": "x"}}]}`, "methods[0].body: node kind is required"},
		{"bad loop kind", `{"methods": [{"name": "m", "body": {"kind": "loop", "loop": "until"}}]}`, `unknown loop kind "until"`},
		{"bad node type", `{"methods": [{"name": "m", "body": {"kind": "if", "then": [3]}}]}`, "methods[0].body.then[0]"},
		{"bad text type", `{"methods": [{"name": "m", "body": {"kind": "statement", "text": 3}}]}`, "text must be a string"},
		{"fractional line", `{"methods": [{"name": "m", "start_line": 1.5}]}`, "start_line must be an integer"},
		{"inverted lines", `{"methods": [{"name": "m", "start_line": 9, "end_line": 3}]}`, "end_line 3 before start_line 9"},
		{"bad case", `{"methods": [{"name": "m", "body": {"kind": "switch", "cases": ["x"]}}]}`, "case must be an object"},
		{"null document", `null`, "class file is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClass([]byte(tt.data), FormatJSON)
			if err == nil {
				t.Fatal("ParseClass() error = nil")
			}
			if !errors.Is(err, errors.ErrCodeInvalidModel) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidModel)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseClassShorthand(t *testing.T) {
	c, err := ParseClass([]byte(`{"name": "A", "methods": [
		{"name": "one", "body": "x = 1;"},
		{"name": "loop", "body": {"kind": "loop", "header": "true", "body": {"kind": "sequence", "children": ["a();", "b();"]}}}
	]}`), FormatJSON)
	if err != nil {
		t.Fatalf("ParseClass() error = %v", err)
	}
	if got := c.Methods[0].Body; !reflect.DeepEqual(got, flow.Statement{Text: "x = 1;"}) {
		t.Errorf("string body = %#v", got)
	}
	loop, ok := c.Methods[1].Body.(flow.Loop)
	if !ok {
		t.Fatalf("loop body = %T", c.Methods[1].Body)
	}
	if loop.Loop != flow.LoopWhile || len(loop.Body) != 2 {
		t.Errorf("loop = %#v, want while loop with two statements", loop)
	}
}

func TestParseClassUnsupportedFormat(t *testing.T) {
	_, err := ParseClass([]byte(`{}`), Format("yaml"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseClass(yaml) error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestWriteClassJSONRoundTrip(t *testing.T) {
	want := wantCalculator()
	var buf bytes.Buffer
	if err := WriteClassJSON(want, &buf); err != nil {
		t.Fatalf("WriteClassJSON() error = %v", err)
	}
	if strings.Contains(buf.String(), `\u003e`) {
		t.Error("WriteClassJSON() escaped HTML characters")
	}
	got, err := ReadClass(&buf, FormatJSON)
	if err != nil {
		t.Fatalf("ReadClass() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip =\n%#v\nwant\n%#v", got, want)
	}
}

func TestExportClassJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportClassJSON(wantCalculator(), path); err != nil {
		t.Fatalf("ExportClassJSON() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	got, err := ImportClass(path)
	if err != nil {
		t.Fatalf("ImportClass() error = %v", err)
	}
	if got.Name != "Calculator" || len(got.Methods) != 3 {
		t.Errorf("ImportClass() = %+v", got)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/A.TOML", FormatTOML, false},
		{"a.yaml", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestImportExampleClasses(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "classes", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example classes")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			c, err := ImportClass(path)
			if err != nil {
				t.Fatalf("ImportClass() error = %v", err)
			}
			if len(c.Methods) == 0 {
				t.Error("example class should declare methods")
			}
		})
	}
}
