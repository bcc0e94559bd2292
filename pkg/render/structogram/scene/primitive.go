package scene

// Role tells a style what a primitive represents.
type Role string

const (
	RoleStatement   Role = "statement"
	RolePlaceholder Role = "placeholder"
	RoleCondition   Role = "condition" // if header
	RoleHeader      Role = "header"    // loop, switch and try bands
	RoleFooter      Role = "footer"    // post-condition loop band
	RoleLabel       Role = "label"     // case, catch and finally bands
	RoleBranch      Role = "branch"    // true and false markers
	RoleInset       Role = "inset"
	RoleRemainder   Role = "remainder"
	RoleDivider     Role = "divider"
)

// Align is the horizontal anchor of a text run.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Primitive is a [Rect], [Line] or [Text].
type Primitive interface {
	isPrimitive()
}

// Rect is an axis-aligned rectangle. Filled marks padding areas that carry
// no content, such as loop insets and the remainder under a short branch.
type Rect struct {
	X, Y, W, H int
	Role       Role
	Filled     bool
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 int
	Role           Role
}

// Text is a single-line run. X is the anchor given by Align and Y is the
// vertical center of the line.
type Text struct {
	X, Y  int
	S     string
	Align Align
	Role  Role
}

func (Rect) isPrimitive() {}
func (Line) isPrimitive() {}
func (Text) isPrimitive() {}

// Scene is a painted structogram on a canvas of Width by Height.
type Scene struct {
	Primitives []Primitive
	Width      int
	Height     int
}

// Rects returns the rectangles in painting order.
func (s Scene) Rects() []Rect { return collect[Rect](s.Primitives) }

// Lines returns the lines in painting order.
func (s Scene) Lines() []Line { return collect[Line](s.Primitives) }

// Texts returns the text runs in painting order.
func (s Scene) Texts() []Text { return collect[Text](s.Primitives) }

func collect[T Primitive](ps []Primitive) []T {
	var out []T
	for _, p := range ps {
		if v, ok := p.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
