// Package monk implements a tree-walking interpreter for Monkey, a small
// dynamically-typed, C-like expression language: integers, booleans, strings,
// arrays, hashes, first-class functions with closures, conditionals and
// let-bindings.
//
// The pipeline has three stages, each usable on its own:
//
//	Lexer     — source text → token stream (lexer.go)
//	Parser    — token stream → AST via Pratt parsing (parser.go, ast.go)
//	Evaluator — AST × environment → runtime value (evaluator.go)
//
// The Interpreter type in interpreter.go ties the stages together and owns
// the Core (builtins) and Global (user state) environments. Runtime failures
// are first-class error values that propagate through evaluation like any
// other result; only lexing/parsing produce Go-level diagnostics (errors.go).
package monk

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'monk.interp'.
func tracer() tracing.Trace {
	return tracing.Select("monk.interp")
}
