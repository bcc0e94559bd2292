package flow

// Kind names a control-flow construct. The string values double as the
// "kind" discriminator of the wire format.
type Kind string

const (
	KindStatement Kind = "statement"
	KindSequence  Kind = "sequence"
	KindIf        Kind = "if"
	KindLoop      Kind = "loop"
	KindSwitch    Kind = "switch"
	KindTry       Kind = "try"
)

// Node is a control-flow tree node. The set of implementations is closed.
type Node interface {
	Kind() Kind
	isNode()
}

// LoopKind distinguishes the loop shapes that render differently.
type LoopKind string

const (
	LoopWhile   LoopKind = "while"
	LoopFor     LoopKind = "for"
	LoopForEach LoopKind = "foreach"
	LoopDo      LoopKind = "do"
)

// IsPostCondition reports whether the loop tests its condition after the body.
func (k LoopKind) IsPostCondition() bool { return k == LoopDo }

// Statement is a single statement fragment such as "int x = 5; // init".
type Statement struct {
	Text string
}

// Sequence is an ordered block of statements and nested constructs.
type Sequence struct {
	Children []Node
}

// If is a two-way branch. A nil or empty Else means the source had no else.
type If struct {
	Condition string
	Then      []Node
	Else      []Node
}

// Loop covers every loop form. Header holds the text between the loop
// parentheses: the condition for while/do, "init; cond; update" for for
// loops and "T x : xs" for for-each loops.
type Loop struct {
	Loop   LoopKind
	Header string
	Body   []Node
}

// Switch is a multi-way branch over Expr.
type Switch struct {
	Expr  string
	Cases []Case
}

// Case is one switch arm. An empty Label or "default" marks the default arm.
type Case struct {
	Label string
	Body  []Node
}

// IsDefault reports whether the case is the default arm.
func (c Case) IsDefault() bool { return c.Label == "" || c.Label == "default" }

// Try is a guarded block. Finally is nil when the source has no finally clause.
type Try struct {
	Resources string
	Body      []Node
	Catches   []Catch
	Finally   *Sequence
}

// Catch is one catch clause; Param is the raw "Type name" declaration.
type Catch struct {
	Param string
	Body  []Node
}

// Unknown carries a construct the decoder could not classify. It renders as a
// plain statement row built from Text.
type Unknown struct {
	Type string
	Text string
}

func (Statement) Kind() Kind { return KindStatement }
func (Sequence) Kind() Kind  { return KindSequence }
func (If) Kind() Kind        { return KindIf }
func (Loop) Kind() Kind      { return KindLoop }
func (Switch) Kind() Kind    { return KindSwitch }
func (Try) Kind() Kind       { return KindTry }
func (u Unknown) Kind() Kind { return Kind(u.Type) }

func (Statement) isNode() {}
func (Sequence) isNode()  {}
func (If) isNode()        {}
func (Loop) isNode()      {}
func (Switch) isNode()    {}
func (Try) isNode()       {}
func (Unknown) isNode()   {}

// Deref returns the value form of n when n is a pointer to one of the
// concrete kinds, so consumers only need to switch over value types.
func Deref(n Node) Node {
	switch v := n.(type) {
	case *Statement:
		if v != nil {
			return *v
		}
	case *Sequence:
		if v != nil {
			return *v
		}
	case *If:
		if v != nil {
			return *v
		}
	case *Loop:
		if v != nil {
			return *v
		}
	case *Switch:
		if v != nil {
			return *v
		}
	case *Try:
		if v != nil {
			return *v
		}
	case *Unknown:
		if v != nil {
			return *v
		}
	default:
		return n
	}
	return nil
}

// Count returns the number of nodes in the tree rooted at n, n included.
// A nil tree has zero nodes.
func Count(n Node) int {
	total := 0
	Walk(n, func(Node) { total++ })
	return total
}

// Walk calls fn for n and every descendant in depth-first pre-order.
func Walk(n Node, fn func(Node)) {
	if n = Deref(n); n == nil {
		return
	}
	fn(n)
	walkAll := func(nodes []Node) {
		for _, c := range nodes {
			Walk(c, fn)
		}
	}
	switch v := n.(type) {
	case Sequence:
		walkAll(v.Children)
	case If:
		walkAll(v.Then)
		walkAll(v.Else)
	case Loop:
		walkAll(v.Body)
	case Switch:
		for _, c := range v.Cases {
			walkAll(c.Body)
		}
	case Try:
		walkAll(v.Body)
		for _, c := range v.Catches {
			walkAll(c.Body)
		}
		if v.Finally != nil {
			walkAll(v.Finally.Children)
		}
	}
}

// Depth returns the nesting depth of n: 1 for a leaf, 0 for nil.
func Depth(n Node) int {
	if n = Deref(n); n == nil {
		return 0
	}
	deepest := func(nodes []Node) int {
		d := 0
		for _, c := range nodes {
			d = max(d, Depth(c))
		}
		return d
	}
	var inner int
	switch v := n.(type) {
	case Sequence:
		inner = deepest(v.Children)
	case If:
		inner = max(deepest(v.Then), deepest(v.Else))
	case Loop:
		inner = deepest(v.Body)
	case Switch:
		for _, c := range v.Cases {
			inner = max(inner, deepest(c.Body))
		}
	case Try:
		inner = deepest(v.Body)
		for _, c := range v.Catches {
			inner = max(inner, deepest(c.Body))
		}
		if v.Finally != nil {
			inner = max(inner, deepest(v.Finally.Children))
		}
	}
	return 1 + inner
}
