// Package label turns raw statement fragments into single-line structogram
// labels.
//
// [Clean] strips comments and collapses whitespace. [Normalize] additionally
// drops statement terminators and rewrites assignments into the arrow
// notation used by Nassi–Shneiderman diagrams:
//
//	label.Normalize("int x = 5; // init")  // "x ← 5", true
//	label.Normalize("total += price;")     // "total ← total + price", true
//	label.Normalize("int x;")              // "", false
//
// A statement that normalizes to nothing (pure declarations, stray
// terminators, comment-only fragments) reports false and must not produce a
// diagram row.
package label

import (
	"regexp"
	"strings"
)

// Arrow separates an assignment target from its value.
const Arrow = "←"

// Clean removes block and line comments, collapses runs of whitespace into
// single spaces and trims the result. String and character literals are
// copied verbatim, so comment markers inside them survive.
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '"' || c == '\'':
			end := literalEnd(raw, i)
			b.WriteString(raw[i:end])
			i = end - 1
		case c == '/' && i+1 < len(raw) && raw[i+1] == '/':
			nl := strings.IndexByte(raw[i:], '\n')
			if nl < 0 {
				i = len(raw)
			} else {
				i += nl - 1
			}
			b.WriteByte(' ')
		case c == '/' && i+1 < len(raw) && raw[i+1] == '*':
			end := strings.Index(raw[i+2:], "*/")
			if end < 0 {
				i = len(raw)
			} else {
				i += end + 3
			}
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// literalEnd returns the index just past the string or char literal that
// opens at raw[start]. Unterminated literals run to the end of raw.
func literalEnd(raw string, start int) int {
	quote := raw[start]
	for i := start + 1; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(raw)
}

// Normalize cleans raw and converts it to a diagram label. The boolean is
// false when the statement should not be drawn at all.
//
// Declarations with initializers render every initialized declarator as
// "name ← value", joined by ", "; declarators without an initializer are
// dropped. Plain assignments render as "target ← value" and compound
// assignments expand to "target ← target op value". Chained plain
// assignments are rewritten right to left. Anything else is
// returned as cleaned text.
func Normalize(raw string) (string, bool) {
	s := trimTerminators(Clean(raw))
	if s == "" {
		return "", false
	}

	if decls, ok := splitDeclaration(s); ok {
		parts := make([]string, 0, len(decls))
		for _, d := range decls {
			if d.init != "" {
				parts = append(parts, d.name+" "+Arrow+" "+chain(d.init))
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	}

	if a, ok := splitAssignment(s); ok {
		if a.op != "" {
			return a.target + " " + Arrow + " " + a.target + " " + a.op + " " + a.value, true
		}
		return a.target + " " + Arrow + " " + chain(a.value), true
	}
	return s, true
}

var lvalueRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*(?:\[[^\]]*\])*$`)

// chain rewrites the right-hand side of a chained assignment, so that
// "a = b = 0" reads "a ← b ← 0". Values that are not themselves plain
// assignments to a variable, field or element are returned unchanged.
func chain(value string) string {
	a, ok := splitAssignment(value)
	if !ok || a.op != "" || !lvalueRe.MatchString(a.target) {
		return value
	}
	return a.target + " " + Arrow + " " + chain(a.value)
}

func trimTerminators(s string) string {
	for {
		t := strings.TrimRight(strings.TrimSpace(s), ";")
		if t == s {
			return strings.TrimSpace(t)
		}
		s = t
	}
}

// statementKeywords start statements that look like "Type name" but are not
// declarations.
var statementKeywords = map[string]bool{
	"return": true, "throw": true, "new": true, "yield": true, "assert": true,
	"break": true, "continue": true, "case": true, "else": true, "do": true,
	"goto": true, "import": true, "package": true,
}

var (
	declHeadRe   = regexp.MustCompile(`^((?:final\s+)*[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*(?:<.*?>)?(?:\[\])*)\s+([A-Za-z_$].*)$`)
	declaratorRe = regexp.MustCompile(`^([A-Za-z_$][\w$]*)((?:\s*\[\])*)(?:\s*=\s*(.+))?$`)
)

type declarator struct {
	name string
	init string
}

// splitDeclaration recognizes "Type a = 1, b, c = 2" and returns its
// declarators. It reports false for anything that is not a local variable
// declaration.
func splitDeclaration(s string) ([]declarator, bool) {
	m := declHeadRe.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	typeName := strings.Fields(m[1])
	if statementKeywords[strings.TrimSuffix(typeName[0], "[]")] {
		return nil, false
	}

	var decls []declarator
	for _, part := range splitTopLevel(m[2], ',') {
		dm := declaratorRe.FindStringSubmatch(strings.TrimSpace(part))
		if dm == nil {
			return nil, false
		}
		if isEqualityTail(dm[3]) {
			return nil, false
		}
		decls = append(decls, declarator{name: dm[1], init: strings.TrimSpace(dm[3])})
	}
	return decls, len(decls) > 0
}

// isEqualityTail catches "name == x" false positives where the declarator
// pattern consumed the first '=' of a comparison.
func isEqualityTail(init string) bool {
	return strings.HasPrefix(init, "=")
}

type assignment struct {
	target string
	op     string
	value  string
}

var compoundOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true, ">>>": true,
}

// splitAssignment finds the first top-level assignment operator in s.
func splitAssignment(s string) (assignment, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\'':
			i = literalEnd(s, i) - 1
			continue
		case '(', '[', '{':
			depth++
			continue
		case ')', ']', '}':
			depth--
			continue
		case '=':
		default:
			continue
		}
		if depth != 0 {
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			i++ // equality
			continue
		}

		j := i
		for j > 0 && strings.IndexByte("+-*/%&|^<>!=", s[j-1]) >= 0 {
			j--
		}
		op := s[j:i]
		if op != "" && !compoundOps[op] {
			continue // <=, >=, != and friends
		}

		target := strings.TrimSpace(s[:j])
		value := strings.TrimSpace(s[i+1:])
		if target == "" || value == "" {
			return assignment{}, false
		}
		return assignment{target: target, op: op, value: value}, true
	}
	return assignment{}, false
}

// splitTopLevel splits s at sep characters that are not nested inside
// brackets, string literals or generic type arguments. A '<' directly after
// an identifier character is treated as opening type arguments.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, angle, start := 0, 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\'':
			i = literalEnd(s, i) - 1
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == '<' && i > 0 && isIdentByte(s[i-1]):
			angle++
		case c == '>' && angle > 0:
			angle--
		case c == sep && depth == 0 && angle == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
