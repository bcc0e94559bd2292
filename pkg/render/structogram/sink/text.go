package sink

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
)

// Terminal cell size in scene units.
const (
	CellWidth  = 8
	CellHeight = 14
)

type grid struct {
	cells [][]rune
}

func newGrid(cols, rows int) *grid {
	g := &grid{cells: make([][]rune, rows)}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

func (g *grid) set(col, row int, r rune) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	cur := g.cells[row][col]
	switch {
	case cur == ' ' || cur == r:
		g.cells[row][col] = r
	case isEdge(cur) && isEdge(r):
		g.cells[row][col] = '+'
	default:
		g.cells[row][col] = r
	}
}

func isEdge(r rune) bool { return r == '-' || r == '|' || r == '+' }

func (g *grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func col(x int) int { return (x + CellWidth/2) / CellWidth }
func row(y int) int { return (y + CellHeight/2) / CellHeight }

// RenderText draws the scene as ASCII art: rect edges with '-', '|' and '+',
// diagonals with '/' and '\', fills left blank. Text is drawn last so labels
// are never cut by lines.
func RenderText(sc scene.Scene) string {
	g := newGrid(col(sc.Width)+1, row(sc.Height)+1)

	for _, p := range sc.Primitives {
		switch v := p.(type) {
		case scene.Rect:
			x1, y1, x2, y2 := col(v.X), row(v.Y), col(v.X+v.W), row(v.Y+v.H)
			g.hline(x1, x2, y1)
			g.hline(x1, x2, y2)
			g.vline(x1, y1, y2)
			g.vline(x2, y1, y2)
		case scene.Line:
			g.line(v)
		}
	}
	for _, p := range sc.Primitives {
		if v, ok := p.(scene.Text); ok {
			g.text(v)
		}
	}
	return g.String()
}

func (g *grid) hline(x1, x2, y int) {
	for x := x1; x <= x2; x++ {
		g.set(x, y, '-')
	}
	g.set(x1, y, '+')
	g.set(x2, y, '+')
}

func (g *grid) vline(x, y1, y2 int) {
	for y := y1; y <= y2; y++ {
		g.set(x, y, '|')
	}
	g.set(x, y1, '+')
	g.set(x, y2, '+')
}

func (g *grid) line(l scene.Line) {
	x1, y1, x2, y2 := col(l.X1), row(l.Y1), col(l.X2), row(l.Y2)
	switch {
	case y1 == y2:
		g.hline(min(x1, x2), max(x1, x2), y1)
	case x1 == x2:
		g.vline(x1, min(y1, y2), max(y1, y2))
	default:
		// Step in rows; grid cells are taller than wide.
		if y1 > y2 {
			x1, y1, x2, y2 = x2, y2, x1, y1
		}
		ch := '\\'
		if x2 < x1 {
			ch = '/'
		}
		for y := y1 + 1; y < y2; y++ {
			x := x1 + (x2-x1)*(y-y1)/(y2-y1)
			g.set(x, y, ch)
		}
	}
}

func (g *grid) text(t scene.Text) {
	n := utf8.RuneCountInString(t.S)
	x := col(t.X)
	switch t.Align {
	case scene.AlignCenter:
		x = col(t.X) - n/2
	case scene.AlignRight:
		x = col(t.X) - n
	}
	y := t.Y / CellHeight
	i := 0
	for _, r := range t.S {
		if yy, xx := y, x+i; yy >= 0 && yy < len(g.cells) && xx >= 0 && xx < len(g.cells[yy]) {
			g.cells[yy][xx] = r
		}
		i++
	}
}
