package sink

import (
	"encoding/json"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title string
	style string
}

// WithJSONTitle records the method declaration shown above the diagram.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

// WithJSONStyle records the style name for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// Document is the decoded form of [RenderJSON] output.
type Document struct {
	Scene scene.Scene
	Title string
	Style string
}

type jsonOutput struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Title      string          `json:"title,omitempty"`
	Style      string          `json:"style,omitempty"`
	Primitives []jsonPrimitive `json:"primitives"`
}

type jsonPrimitive struct {
	Type   string      `json:"type"`
	Role   scene.Role  `json:"role,omitempty"`
	X      int         `json:"x,omitempty"`
	Y      int         `json:"y,omitempty"`
	W      int         `json:"w,omitempty"`
	H      int         `json:"h,omitempty"`
	X2     int         `json:"x2,omitempty"`
	Y2     int         `json:"y2,omitempty"`
	Filled bool        `json:"filled,omitempty"`
	Text   string      `json:"text,omitempty"`
	Align  scene.Align `json:"align,omitempty"`
}

// RenderJSON encodes the scene with one object per primitive, tagged by
// "type" (rect, line or text).
func RenderJSON(sc scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      sc.Width,
		Height:     sc.Height,
		Title:      r.title,
		Style:      r.style,
		Primitives: make([]jsonPrimitive, 0, len(sc.Primitives)),
	}
	for _, p := range sc.Primitives {
		switch v := p.(type) {
		case scene.Rect:
			out.Primitives = append(out.Primitives, jsonPrimitive{
				Type: "rect", Role: v.Role, X: v.X, Y: v.Y, W: v.W, H: v.H, Filled: v.Filled,
			})
		case scene.Line:
			out.Primitives = append(out.Primitives, jsonPrimitive{
				Type: "line", Role: v.Role, X: v.X1, Y: v.Y1, X2: v.X2, Y2: v.Y2,
			})
		case scene.Text:
			out.Primitives = append(out.Primitives, jsonPrimitive{
				Type: "text", Role: v.Role, X: v.X, Y: v.Y, Text: v.S, Align: v.Align,
			})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ParseJSON decodes [RenderJSON] output.
func ParseJSON(data []byte) (Document, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}

	doc := Document{
		Scene: scene.Scene{Width: in.Width, Height: in.Height},
		Title: in.Title,
		Style: in.Style,
	}
	for i, p := range in.Primitives {
		switch p.Type {
		case "rect":
			doc.Scene.Primitives = append(doc.Scene.Primitives, scene.Rect{
				X: p.X, Y: p.Y, W: p.W, H: p.H, Role: p.Role, Filled: p.Filled,
			})
		case "line":
			doc.Scene.Primitives = append(doc.Scene.Primitives, scene.Line{
				X1: p.X, Y1: p.Y, X2: p.X2, Y2: p.Y2, Role: p.Role,
			})
		case "text":
			doc.Scene.Primitives = append(doc.Scene.Primitives, scene.Text{
				X: p.X, Y: p.Y, S: p.Text, Align: p.Align, Role: p.Role,
			})
		default:
			return Document{}, errors.New(errors.ErrCodeInvalidFormat, "primitive %d: unknown type %q", i, p.Type)
		}
	}
	return doc, nil
}
