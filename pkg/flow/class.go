package flow

import (
	"strconv"
	"strings"
)

// Class is the slice of a per-class model the structogram engine consumes.
type Class struct {
	Name    string
	Methods []Method
}

// Param is one formal parameter of a method.
type Param struct {
	Type string
	Name string
}

// Method is a declared method or constructor.
//
// StartLine and EndLine are 1-based and inclusive. Body is nil when the
// analyzer recorded no structured body (abstract and native methods, or
// bodies it failed to analyze).
type Method struct {
	Name       string
	ReturnType string // empty for constructors
	Visibility string // public, protected, private or empty for package-private
	Modifiers  []string
	Params     []Param
	StartLine  int
	EndLine    int
	Body       Node
}

// HasBody reports whether a structured body is available.
func (m Method) HasBody() bool { return Deref(m.Body) != nil }

// Arity returns the number of declared parameters.
func (m Method) Arity() int { return len(m.Params) }

// Declaration renders the method header, for example
// "public static int max(int a, int b)". It depends only on the declared
// signature, never on layout geometry.
func (m Method) Declaration() string {
	var parts []string
	if v := strings.TrimSpace(m.Visibility); v != "" {
		parts = append(parts, v)
	}
	for _, mod := range m.Modifiers {
		if mod = strings.TrimSpace(mod); mod != "" {
			parts = append(parts, mod)
		}
	}
	if rt := strings.TrimSpace(m.ReturnType); rt != "" {
		parts = append(parts, rt)
	}

	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, strings.TrimSpace(strings.TrimSpace(p.Type)+" "+strings.TrimSpace(p.Name)))
	}
	parts = append(parts, m.Name+"("+strings.Join(params, ", ")+")")
	return strings.Join(parts, " ")
}

// Contains reports whether the 1-based line falls inside the method.
func (m Method) Contains(line int) bool {
	return m.StartLine > 0 && line >= m.StartLine && line <= m.EndLine
}

// MethodAt returns the method whose line range contains line. When ranges
// nest (local and anonymous classes flattened into one model) the narrowest
// range wins; ties go to the method declared first.
func (c Class) MethodAt(line int) (Method, bool) {
	best := -1
	for i, m := range c.Methods {
		if !m.Contains(line) {
			continue
		}
		if best < 0 || span(m) < span(c.Methods[best]) {
			best = i
		}
	}
	if best < 0 {
		return Method{}, false
	}
	return c.Methods[best], true
}

func span(m Method) int { return m.EndLine - m.StartLine }

// Lookup finds a method by name. A reference of the form "name/arity"
// selects the overload with that many parameters; a bare name returns the
// first declared method with that name.
func (c Class) Lookup(ref string) (Method, bool) {
	name, arity := ParseMethodRef(ref)
	for _, m := range c.Methods {
		if m.Name != name {
			continue
		}
		if arity >= 0 && m.Arity() != arity {
			continue
		}
		return m, true
	}
	return Method{}, false
}

// ParseMethodRef splits "name/arity" into its parts. The arity is -1 when
// the reference carries none or it is not a number.
func ParseMethodRef(ref string) (string, int) {
	ref = strings.TrimSpace(ref)
	name, arity, ok := strings.Cut(ref, "/")
	if !ok {
		return ref, -1
	}
	n, err := strconv.Atoi(arity)
	if err != nil || n < 0 {
		return name, -1
	}
	return name, n
}
