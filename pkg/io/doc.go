// Package io reads and writes class models as JSON or TOML.
//
// # Overview
//
// A class file describes one class and the control trees of its methods,
// as produced by a source analyzer. The structogram engine never parses
// source code itself; it consumes these files.
//
// # JSON Format
//
//	{
//	  "name": "Calculator",
//	  "methods": [
//	    {
//	      "name": "max",
//	      "return_type": "int",
//	      "visibility": "public",
//	      "params": [{"type": "int", "name": "a"}, {"type": "int", "name": "b"}],
//	      "start_line": 3,
//	      "end_line": 9,
//	      "body": {
//	        "kind": "if",
//	        "condition": "a > b",
//	        "then": ["return a;"],
//	        "else": [{"kind": "statement", "text": "return b;"}]
//	      }
//	    }
//	  ]
//	}
//
// # Node Kinds
//
// Every node object carries a "kind":
//
//   - statement: text
//   - sequence: children
//   - if: condition, then, else
//   - loop: loop (while, for, foreach or do), header, body
//   - switch: expr, cases [{label, body}]
//   - try: resources, body, catches [{param, body}], finally
//
// A bare string wherever a node is expected is shorthand for a statement.
// Node lists (children, then, body, ...) may also be given as a single node.
// Unknown kinds decode to [flow.Unknown] with their "text" so newer
// analyzers never break older renderers.
//
// # TOML Format
//
// TOML files carry the same fields; methods are an array of tables and
// bodies are nested tables:
//
//	name = "Calculator"
//
//	[[methods]]
//	name = "max"
//	return_type = "int"
//
//	[methods.body]
//	kind = "if"
//	condition = "a > b"
//	then = ["return a;"]
//
// # Errors
//
// Structural problems (missing kind, wrong field types, unknown loop
// kinds) are reported as [errors.ErrCodeInvalidModel] with the JSON-path of
// the offending node, for example "methods[0].body.then[1]".
//
// [flow.Unknown]: github.com/matzehuels/structogram/pkg/flow.Unknown
// [errors.ErrCodeInvalidModel]: github.com/matzehuels/structogram/pkg/errors.ErrCodeInvalidModel
package io
