// Package pipeline provides the structogram rendering pipeline.
//
// This package implements the complete load → select → layout → render
// pipeline shared by the CLI and the HTTP server, so both entry points
// produce identical artifacts for identical input.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a class model from a file, raw bytes, or a decoded value
//  2. Select: Pick the method by name ("max", "max/2") or by caret line
//  3. Layout: Build the size tree and paint it into a scene
//  4. Render: Generate output in various formats (SVG, PNG, PDF, JSON, text)
//
// A method without a structured body skips the layout engine and renders
// the "No structogram available" placeholder instead.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "Calculator.json",
//	    Method:  "max",
//	    Formats: []string{"svg", "txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/structogram/pkg/cache"
	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/flow"
	classio "github.com/matzehuels/structogram/pkg/io"
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
	"github.com/matzehuels/structogram/pkg/render/structogram/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Visualization types.
const (
	// VizStructogram draws a Nassi-Shneiderman diagram.
	VizStructogram = "structogram"
	// VizNodelink draws the control tree with Graphviz.
	VizNodelink = "nodelink"
)

// Measurer names.
const (
	// MeasurerFont measures labels with the Go Mono font at the configured size.
	MeasurerFont = "font"
	// MeasurerMono counts runes at one text-grid cell each, so text output
	// lines up with the character grid.
	MeasurerMono = "mono"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizStructogram

// DefaultStyle is the default visual style.
const DefaultStyle = "simple"

// DefaultScale is the default PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
	FormatDOT  = "dot"
)

// ValidFormats lists the formats each visualization type supports.
var ValidFormats = map[string][]string{
	VizStructogram: {FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatText},
	VizNodelink:    {FormatSVG, FormatPNG, FormatPDF, FormatDOT},
}

// ValidMeasurers is the set of supported label measurers.
var ValidMeasurers = map[string]bool{
	MeasurerFont: true,
	MeasurerMono: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one source is used, in order of precedence:
	// Class, Source, Path.
	Path         string         `json:"path,omitempty"`
	Source       []byte         `json:"-"`
	SourceFormat classio.Format `json:"source_format,omitempty"`
	Class        *flow.Class    `json:"-"`

	// Select options
	Method string `json:"method,omitempty"` // "name" or "name/arity"
	Line   int    `json:"line,omitempty"`   // 1-based caret line

	// Layout options
	VizType   string        `json:"viz_type,omitempty"`
	Layout    layout.Config `json:"layout"`
	Measurer  string        `json:"measurer,omitempty"`
	Normalize bool          `json:"normalize,omitempty"` // nodelink: show normalized labels

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	NoTitle bool     `json:"no_title,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// EmbedFont inlines the label font into SVG and PDF output.
	EmbedFont bool `json:"embed_font,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ClassName is the name of the loaded class.
	ClassName string

	// ClassHash is the content hash of the class model.
	ClassHash string

	// Method is the selected method.
	Method flow.Method

	// Declaration is the header line labelling every artifact.
	Declaration string

	// Layout is the size tree. It is nil for placeholder scenes, node-link
	// runs, and scenes served from cache.
	Layout layout.Node

	// Scene is the painted structogram (empty for node-link runs).
	Scene scene.Scene

	// DOT is the Graphviz source of a node-link run.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Formats lists the rendered formats in request order, after defaults.
	Formats []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	MethodCount int
	NodeCount   int
	Width       int
	Height      int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if _, ok := ValidFormats[vizType]; !ok {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: structogram, nodelink)", vizType)
	}
	return nil
}

// ValidateFormat checks that a format is valid for the visualization type.
func ValidateFormat(vizType, format string) error {
	valid := ValidFormats[vizType]
	if !slices.Contains(valid, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format for %s: %q (must be one of: %s)", vizType, format, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.ByName(style)
	return err
}

// ValidateMeasurer checks that a measurer name is valid.
func ValidateMeasurer(name string) error {
	if !ValidMeasurers[name] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid measurer: %q (must be one of: font, mono)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForSelect(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a class source is present.
func (o *Options) ValidateForLoad() error {
	switch {
	case o.Class != nil:
	case len(o.Source) > 0:
		if o.SourceFormat == "" {
			o.SourceFormat = classio.FormatJSON
		}
	case o.Path != "":
		if err := errors.ValidatePath(o.Path); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "class path or source is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForSelect checks the method reference and caret line.
// Neither is required: a class with a single method selects it.
func (o *Options) ValidateForSelect() error {
	if o.Method != "" {
		if err := errors.ValidateMethodRef(o.Method); err != nil {
			return err
		}
	}
	if o.Line != 0 {
		if err := errors.ValidateLine(o.Line); err != nil {
			return err
		}
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
// The text format defaults to the mono measurer when it is the only format.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Measurer == "" {
		o.Measurer = MeasurerFont
		if len(o.Formats) == 1 && o.Formats[0] == FormatText {
			o.Measurer = MeasurerMono
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateMeasurer(o.Measurer); err != nil {
		return err
	}
	return o.Layout.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizNodelink
}

// SceneKeyOpts returns cache key options for scene computation.
func (o *Options) SceneKeyOpts(m flow.Method) cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Method:   methodID(m),
		Config:   o.Layout,
		Measurer: o.Measurer,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, title string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Title:  title,
		Viz:    o.VizType,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG, FormatPDF:
		k.EmbedFont = o.EmbedFont
	}
	return k
}

// methodID identifies a method within its class for cache keys.
// Overloads share a name but not a declaration and start line.
func methodID(m flow.Method) string {
	return m.Declaration() + "@" + strconv.Itoa(m.StartLine)
}
