package io

import (
	"fmt"
	"math"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/flow"
)

var loopKinds = map[string]flow.LoopKind{
	"":        flow.LoopWhile,
	"while":   flow.LoopWhile,
	"for":     flow.LoopFor,
	"foreach": flow.LoopForEach,
	"do":      flow.LoopDo,
}

// decoder converts generic JSON or TOML values into the class model.
// JSON yields float64 numbers and []any arrays; TOML yields int64 numbers
// and []map[string]any for arrays of tables. Both are accepted everywhere.
type decoder struct{}

func invalid(path, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidModel, "%s: %s", path, fmt.Sprintf(format, args...))
}

func (d decoder) class(v map[string]any) (*flow.Class, error) {
	c := &flow.Class{}
	var err error
	if c.Name, err = d.str(v, "name", "$"); err != nil {
		return nil, err
	}
	items, err := d.list(v["methods"], "methods")
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		path := fmt.Sprintf("methods[%d]", i)
		m, ok := item.(map[string]any)
		if !ok {
			return nil, invalid(path, "method must be an object")
		}
		method, err := d.method(m, path)
		if err != nil {
			return nil, err
		}
		c.Methods = append(c.Methods, method)
	}
	return c, nil
}

func (d decoder) method(v map[string]any, path string) (flow.Method, error) {
	var m flow.Method
	var err error
	if m.Name, err = d.str(v, "name", path); err != nil {
		return m, err
	}
	if m.Name == "" {
		return m, invalid(path, "method name is required")
	}
	if m.ReturnType, err = d.str(v, "return_type", path); err != nil {
		return m, err
	}
	if m.Visibility, err = d.str(v, "visibility", path); err != nil {
		return m, err
	}
	if m.StartLine, err = d.integer(v, "start_line", path); err != nil {
		return m, err
	}
	if m.EndLine, err = d.integer(v, "end_line", path); err != nil {
		return m, err
	}
	if m.EndLine != 0 && m.EndLine < m.StartLine {
		return m, invalid(path, "end_line %d before start_line %d", m.EndLine, m.StartLine)
	}

	mods, err := d.list(v["modifiers"], path+".modifiers")
	if err != nil {
		return m, err
	}
	for i, mod := range mods {
		s, ok := mod.(string)
		if !ok {
			return m, invalid(fmt.Sprintf("%s.modifiers[%d]", path, i), "modifier must be a string")
		}
		m.Modifiers = append(m.Modifiers, s)
	}

	params, err := d.list(v["params"], path+".params")
	if err != nil {
		return m, err
	}
	for i, p := range params {
		ppath := fmt.Sprintf("%s.params[%d]", path, i)
		pm, ok := p.(map[string]any)
		if !ok {
			return m, invalid(ppath, "param must be an object")
		}
		var param flow.Param
		if param.Type, err = d.str(pm, "type", ppath); err != nil {
			return m, err
		}
		if param.Name, err = d.str(pm, "name", ppath); err != nil {
			return m, err
		}
		m.Params = append(m.Params, param)
	}

	if body, ok := v["body"]; ok && body != nil {
		if m.Body, err = d.root(body, path+".body"); err != nil {
			return m, err
		}
	}
	return m, nil
}

// root decodes a method body. A list becomes a sequence.
func (d decoder) root(v any, path string) (flow.Node, error) {
	if _, ok := v.(map[string]any); ok {
		return d.node(v, path)
	}
	if s, ok := v.(string); ok {
		return flow.Statement{Text: s}, nil
	}
	children, err := d.nodes(v, path)
	if err != nil {
		return nil, err
	}
	return flow.Sequence{Children: children}, nil
}

func (d decoder) node(v any, path string) (flow.Node, error) {
	if s, ok := v.(string); ok {
		return flow.Statement{Text: s}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(path, "node must be an object or string, got %T", v)
	}
	kind, err := d.str(m, "kind", path)
	if err != nil {
		return nil, err
	}

	switch flow.Kind(kind) {
	case "":
		return nil, invalid(path, "node kind is required")
	case flow.KindStatement:
		text, err := d.str(m, "text", path)
		return flow.Statement{Text: text}, err
	case flow.KindSequence:
		children, err := d.nodes(m["children"], path+".children")
		return flow.Sequence{Children: children}, err
	case flow.KindIf:
		return d.ifNode(m, path)
	case flow.KindLoop:
		return d.loop(m, path)
	case flow.KindSwitch:
		return d.switchNode(m, path)
	case flow.KindTry:
		return d.try(m, path)
	}
	text, err := d.str(m, "text", path)
	return flow.Unknown{Type: kind, Text: text}, err
}

func (d decoder) ifNode(m map[string]any, path string) (flow.Node, error) {
	var n flow.If
	var err error
	if n.Condition, err = d.str(m, "condition", path); err != nil {
		return nil, err
	}
	if n.Then, err = d.nodes(m["then"], path+".then"); err != nil {
		return nil, err
	}
	if n.Else, err = d.nodes(m["else"], path+".else"); err != nil {
		return nil, err
	}
	return n, nil
}

func (d decoder) loop(m map[string]any, path string) (flow.Node, error) {
	var n flow.Loop
	raw, err := d.str(m, "loop", path)
	if err != nil {
		return nil, err
	}
	kind, ok := loopKinds[raw]
	if !ok {
		return nil, invalid(path, "unknown loop kind %q", raw)
	}
	n.Loop = kind
	if n.Header, err = d.str(m, "header", path); err != nil {
		return nil, err
	}
	if n.Body, err = d.nodes(m["body"], path+".body"); err != nil {
		return nil, err
	}
	return n, nil
}

func (d decoder) switchNode(m map[string]any, path string) (flow.Node, error) {
	var n flow.Switch
	var err error
	if n.Expr, err = d.str(m, "expr", path); err != nil {
		return nil, err
	}
	cases, err := d.list(m["cases"], path+".cases")
	if err != nil {
		return nil, err
	}
	for i, c := range cases {
		cpath := fmt.Sprintf("%s.cases[%d]", path, i)
		cm, ok := c.(map[string]any)
		if !ok {
			return nil, invalid(cpath, "case must be an object")
		}
		var sc flow.Case
		if sc.Label, err = d.str(cm, "label", cpath); err != nil {
			return nil, err
		}
		if sc.Body, err = d.nodes(cm["body"], cpath+".body"); err != nil {
			return nil, err
		}
		n.Cases = append(n.Cases, sc)
	}
	return n, nil
}

func (d decoder) try(m map[string]any, path string) (flow.Node, error) {
	var n flow.Try
	var err error
	if n.Resources, err = d.str(m, "resources", path); err != nil {
		return nil, err
	}
	if n.Body, err = d.nodes(m["body"], path+".body"); err != nil {
		return nil, err
	}
	catches, err := d.list(m["catches"], path+".catches")
	if err != nil {
		return nil, err
	}
	for i, c := range catches {
		cpath := fmt.Sprintf("%s.catches[%d]", path, i)
		cm, ok := c.(map[string]any)
		if !ok {
			return nil, invalid(cpath, "catch must be an object")
		}
		var cc flow.Catch
		if cc.Param, err = d.str(cm, "param", cpath); err != nil {
			return nil, err
		}
		if cc.Body, err = d.nodes(cm["body"], cpath+".body"); err != nil {
			return nil, err
		}
		n.Catches = append(n.Catches, cc)
	}
	if fin, ok := m["finally"]; ok && fin != nil {
		children, err := d.nodes(fin, path+".finally")
		if err != nil {
			return nil, err
		}
		n.Finally = &flow.Sequence{Children: children}
	}
	return n, nil
}

// nodes decodes a node list. A single sequence object contributes its
// children and any other single node becomes a one-element list.
func (d decoder) nodes(v any, path string) ([]flow.Node, error) {
	if v == nil {
		return nil, nil
	}
	if m, ok := v.(map[string]any); ok {
		n, err := d.node(m, path)
		if err != nil {
			return nil, err
		}
		if seq, ok := n.(flow.Sequence); ok {
			return seq.Children, nil
		}
		return []flow.Node{n}, nil
	}
	if s, ok := v.(string); ok {
		return []flow.Node{flow.Statement{Text: s}}, nil
	}
	items, err := d.list(v, path)
	if err != nil {
		return nil, err
	}
	out := make([]flow.Node, 0, len(items))
	for i, item := range items {
		n, err := d.node(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (d decoder) list(v any, path string) ([]any, error) {
	switch l := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return l, nil
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, nil
	}
	return nil, invalid(path, "expected a list, got %T", v)
}

func (d decoder) str(m map[string]any, key, path string) (string, error) {
	switch v := m[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", invalid(path, "%s must be a string, got %T", key, v)
	}
}

func (d decoder) integer(m map[string]any, key, path string) (int, error) {
	switch v := m[key].(type) {
	case nil:
		return 0, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, invalid(path, "%s must be an integer, got %g", key, v)
		}
		return int(v), nil
	default:
		return 0, invalid(path, "%s must be an integer, got %T", key, v)
	}
}
