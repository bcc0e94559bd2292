package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/structogram/pkg/flow"
)

type wireClass struct {
	Name    string       `json:"name"`
	Methods []wireMethod `json:"methods"`
}

type wireMethod struct {
	Name       string      `json:"name"`
	ReturnType string      `json:"return_type,omitempty"`
	Visibility string      `json:"visibility,omitempty"`
	Modifiers  []string    `json:"modifiers,omitempty"`
	Params     []wireParam `json:"params,omitempty"`
	StartLine  int         `json:"start_line,omitempty"`
	EndLine    int         `json:"end_line,omitempty"`
	Body       *wireNode   `json:"body,omitempty"`
}

type wireParam struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type wireNode struct {
	Kind      string      `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Children  []wireNode  `json:"children,omitempty"`
	Condition string      `json:"condition,omitempty"`
	Then      []wireNode  `json:"then,omitempty"`
	Else      []wireNode  `json:"else,omitempty"`
	Loop      string      `json:"loop,omitempty"`
	Header    string      `json:"header,omitempty"`
	Expr      string      `json:"expr,omitempty"`
	Cases     []wireCase  `json:"cases,omitempty"`
	Resources string      `json:"resources,omitempty"`
	Body      []wireNode  `json:"body,omitempty"`
	Catches   []wireCatch `json:"catches,omitempty"`
	Finally   *[]wireNode `json:"finally,omitempty"`
}

type wireCase struct {
	Label string     `json:"label,omitempty"`
	Body  []wireNode `json:"body,omitempty"`
}

type wireCatch struct {
	Param string     `json:"param"`
	Body  []wireNode `json:"body,omitempty"`
}

// WriteClassJSON encodes c in the canonical JSON form. The output can be
// read back with [ReadClass] and yields an equal class.
func WriteClassJSON(c *flow.Class, w io.Writer) error {
	out := wireClass{Name: c.Name, Methods: make([]wireMethod, len(c.Methods))}
	for i, m := range c.Methods {
		wm := wireMethod{
			Name:       m.Name,
			ReturnType: m.ReturnType,
			Visibility: m.Visibility,
			Modifiers:  m.Modifiers,
			StartLine:  m.StartLine,
			EndLine:    m.EndLine,
		}
		for _, p := range m.Params {
			wm.Params = append(wm.Params, wireParam{Type: p.Type, Name: p.Name})
		}
		if m.HasBody() {
			n := encodeNode(m.Body)
			wm.Body = &n
		}
		out.Methods[i] = wm
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportClassJSON writes c to a JSON file at path.
func ExportClassJSON(c *flow.Class, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteClassJSON(c, f)
}

func encodeNodes(ns []flow.Node) []wireNode {
	if len(ns) == 0 {
		return nil
	}
	out := make([]wireNode, 0, len(ns))
	for _, n := range ns {
		if flow.Deref(n) == nil {
			continue
		}
		out = append(out, encodeNode(n))
	}
	return out
}

func encodeNode(n flow.Node) wireNode {
	switch v := flow.Deref(n).(type) {
	case flow.Statement:
		return wireNode{Kind: string(flow.KindStatement), Text: v.Text}
	case flow.Sequence:
		return wireNode{Kind: string(flow.KindSequence), Children: encodeNodes(v.Children)}
	case flow.If:
		return wireNode{Kind: string(flow.KindIf), Condition: v.Condition, Then: encodeNodes(v.Then), Else: encodeNodes(v.Else)}
	case flow.Loop:
		return wireNode{Kind: string(flow.KindLoop), Loop: string(v.Loop), Header: v.Header, Body: encodeNodes(v.Body)}
	case flow.Switch:
		w := wireNode{Kind: string(flow.KindSwitch), Expr: v.Expr}
		for _, c := range v.Cases {
			w.Cases = append(w.Cases, wireCase{Label: c.Label, Body: encodeNodes(c.Body)})
		}
		return w
	case flow.Try:
		w := wireNode{Kind: string(flow.KindTry), Resources: v.Resources, Body: encodeNodes(v.Body)}
		for _, c := range v.Catches {
			w.Catches = append(w.Catches, wireCatch{Param: c.Param, Body: encodeNodes(c.Body)})
		}
		if v.Finally != nil {
			fin := encodeNodes(v.Finally.Children)
			if fin == nil {
				fin = []wireNode{}
			}
			w.Finally = &fin
		}
		return w
	case flow.Unknown:
		return wireNode{Kind: v.Type, Text: v.Text}
	}
	return wireNode{}
}
