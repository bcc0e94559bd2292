// Package flow models the control-flow trees that feed the structogram engine.
//
// # Overview
//
// A control-flow tree describes the branching, looping and exception
// structure of a single method body without the rest of the source syntax.
// Trees are produced by an upstream source analyzer and delivered as part of
// a per-class model ([Class], [Method]). This package only holds the data;
// layout and painting live in the render packages.
//
// # Node Kinds
//
// [Node] is a sealed sum type. Every concrete kind implements the unexported
// marker method, so type switches over [Node] can be checked for coverage:
//
//   - [Statement]: a single raw statement fragment
//   - [Sequence]: an ordered block of child nodes
//   - [If]: a two-way branch with an optional else branch
//   - [Loop]: while, for, for-each and do-while loops
//   - [Switch]: a multi-way branch with ordered [Case] entries
//   - [Try]: a guarded block with ordered [Catch] clauses and optional finally
//   - [Unknown]: any kind the decoder did not recognise, kept as raw text
//
// Raw text is stored exactly as the analyzer produced it, which may include
// comments and line breaks. Cleaning is the job of the label package.
//
// # Method Selection
//
// [Class.MethodAt] maps an editor caret line to the innermost method whose
// line range contains it, and [Class.Lookup] resolves a method by name or by
// "name/arity" for overloads.
package flow
