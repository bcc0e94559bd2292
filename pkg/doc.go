// Package pkg provides the core libraries for Structogram, a layout engine
// that draws Java methods as Nassi-Shneiderman diagrams.
//
// # Overview
//
// A structogram shows a method's control flow as nested boxes: statements
// are rows, branches split into columns under a triangular header, loops
// wrap their body in an inset band. The pkg directory is organized into:
//
//  1. [flow] - The class model and control-flow tree
//  2. [io] - Reading class models from JSON and TOML
//  3. [render] - Layout, painting and output formats
//  4. [pipeline] - Orchestration (load → select → layout → render)
//  5. [cache], [config], [server] - Infrastructure
//
// # Architecture
//
// The typical data flow through Structogram:
//
//	Class model (JSON/TOML)
//	         ↓
//	    [io] package (decode into flow.Class)
//	         ↓
//	    [pipeline] package (select method)
//	         ↓
//	    [render/structogram/layout] package (measure pass)
//	         ↓
//	    [render/structogram/scene] package (paint pass)
//	         ↓
//	    SVG/PNG/PDF/JSON/text output
//
// # Quick Start
//
// Render one method to SVG:
//
//	import (
//	    "github.com/matzehuels/structogram/pkg/cache"
//	    "github.com/matzehuels/structogram/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "Calculator.json",
//	    Method:  "max",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Infrastructure
//
// [cache] stores scenes and rendered artifacts in a directory or Redis.
// [config] reads the TOML configuration file. [server] exposes the pipeline
// over HTTP. [observability] lets callers hook into pipeline stages and
// requests. [errors] defines the error codes shared by all of them.
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/flow
// [io]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/render
// [render/structogram/layout]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/render/structogram/layout
// [render/structogram/scene]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/render/structogram/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/structogram/pkg/errors
package pkg
