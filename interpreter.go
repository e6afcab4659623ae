// interpreter.go — PUBLIC API SURFACE for the Monkey interpreter.
//
// OVERVIEW
// ========
// This file exposes the public surface of the Monkey runtime: the value
// model, environments, and the Interpreter entry points. The tree-walking
// evaluator itself lives in evaluator.go; built-in functions in builtins.go.
//
// What you get in this file:
//   • The runtime value model (`Value`, `ValueTag`, constructors like `Int/Str/Arr`).
//   • Ordered hashes (`HashObject`) keyed by hashable primitives.
//   • Functions / closures (`Fun`) and built-ins as first-class values.
//   • Environments (`Env`) with lexical scoping.
//   • The Interpreter with the canonical entry points (Run / RunPersistent /
//     EvalProgram) and built-in registration (RegisterBuiltin).
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// Code evaluates in environments (`*Env`) that form a lexical chain via
// `parent`. The Interpreter exposes two well-known frames:
//   • `Core`: built-in functions (len, first, puts, ...).
//   • `Global`: user-visible program state (REPL/script globals).
//
// Entry points differ only in which environment they target:
//   • Ephemeral runs: `Run` evaluates in a fresh child of Global, so names
//     bound during evaluation land in a throwaway frame.
//   • Persistent (REPL-style) runs: `RunPersistent` evaluates in Global
//     itself, so `let` bindings survive across calls.
//   • Embedding: `EvalProgram(prog, env)` evaluates exactly in the provided
//     environment.
//
// ERRORS
// ------
// Two distinct failure channels, never mixed:
//   • Static problems (lexing/parsing) come back as rendered diagnostics;
//     a program with diagnostics is never evaluated.
//   • Runtime failures are ordinary Values with Tag==VTError. They propagate
//     upward through evaluation, aborting the enclosing statements, and are
//     returned like any other result. No panics cross the API boundary.
//
// VALUES & HASHES
// ---------------
// `Value` is a tagged sum covering: null, bool, int64, string, arrays,
// ordered hashes, functions, built-ins, and the two internal signal kinds
// (return, error). `HashObject` preserves insertion order (`Keys`); only
// integers, booleans and strings are usable as hash keys.
package monk

import (
	"fmt"
	"strconv"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates all runtime kinds a Value may hold.
// The tag determines which field of Value.Data is valid (see Value docs).
type ValueTag int

const (
	VTNull    ValueTag = iota // null (no payload)
	VTBool                    // bool
	VTInt                     // int64
	VTStr                     // string
	VTArray                   // []Value
	VTHash                    // *HashObject (ordered hash)
	VTFun                     // *Fun (user-defined closure)
	VTBuiltin                 // *Builtin (host function)
	VTReturn                  // Value (return signal; never user-visible)
	VTError                   // string (runtime error message)
)

// Value is the universal runtime carrier used by the interpreter.
//
// Invariants:
//   - When Tag==VTNull, Data is nil.
//   - When Tag==VTHash, Data is *HashObject preserving insertion order.
//   - VTReturn and VTError exist only to thread control flow through the
//     evaluator; builtins and hosts observe them, programs never hold them.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// TypeName returns the user-facing type name used in runtime error messages
// and by the `type` built-in.
func (v Value) TypeName() string {
	switch v.Tag {
	case VTNull:
		return "NULL"
	case VTBool:
		return "BOOLEAN"
	case VTInt:
		return "INTEGER"
	case VTStr:
		return "STRING"
	case VTArray:
		return "ARRAY"
	case VTHash:
		return "HASH"
	case VTFun:
		return "FUNCTION"
	case VTBuiltin:
		return "BUILTIN"
	case VTReturn:
		return "RETURN_VALUE"
	case VTError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// String renders a terse debug representation. The user-facing rendering
// contract lives in FormatValue (printer.go).
func (v Value) String() string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return fmt.Sprintf("%v", v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTArray:
		return fmt.Sprintf("<array len=%d>", len(v.Data.([]Value)))
	case VTHash:
		return "<hash>"
	case VTFun:
		return "<fun>"
	case VTBuiltin:
		return "<builtin " + v.Data.(*Builtin).Name + ">"
	case VTReturn:
		return "<return " + v.Data.(Value).String() + ">"
	case VTError:
		return "ERROR: " + v.Data.(string)
	default:
		return "<unknown>"
	}
}

// Null is the singleton null Value (no payload).
var Null = Value{Tag: VTNull}

// True and False are the shared boolean Values; all boolean results alias them.
var (
	True  = Value{Tag: VTBool, Data: true}
	False = Value{Tag: VTBool, Data: false}
)

// Primitive constructors for convenience.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}
func Int(n int64) Value    { return Value{Tag: VTInt, Data: n} }
func Str(s string) Value   { return Value{Tag: VTStr, Data: s} }
func Arr(xs []Value) Value { return Value{Tag: VTArray, Data: xs} }

// ErrorOf builds a runtime error Value with a formatted message.
func ErrorOf(format string, args ...interface{}) Value {
	return Value{Tag: VTError, Data: fmt.Sprintf(format, args...)}
}

// IsError reports whether v is a runtime error signal.
func IsError(v Value) bool { return v.Tag == VTError }

// HashKey is the comparable derived key for hash storage. Only integers,
// booleans and strings produce one (see HashKeyOf); two values with equal
// HashKeys are equal under the language's == operator.
type HashKey struct {
	Tag  ValueTag
	Data interface{}
}

// HashKeyOf derives the storage key for v, or ok=false when v's kind cannot
// be used as a hash key.
func HashKeyOf(v Value) (HashKey, bool) {
	switch v.Tag {
	case VTInt, VTBool, VTStr:
		return HashKey{Tag: v.Tag, Data: v.Data}, true
	}
	return HashKey{}, false
}

// HashPair stores one entry of a hash: the original key Value (for rendering)
// together with its mapped Value.
type HashPair struct {
	Key   Value
	Value Value
}

// HashObject is an ordered hash preserving insertion order.
//
// Semantics:
//   - Insert order is the iteration and rendering order.
//   - Setting a value for a new key appends that key to Keys.
//   - Re-setting an existing key updates the pair in place; its position in
//     Keys is unchanged.
//
// Values of hash type are represented as Value{Tag: VTHash, Data: *HashObject}.
type HashObject struct {
	Entries map[HashKey]HashPair
	Keys    []HashKey
}

// NewHashObject returns an empty ordered hash.
func NewHashObject() *HashObject {
	return &HashObject{Entries: map[HashKey]HashPair{}}
}

// Set inserts or updates the entry for key.
func (h *HashObject) Set(key, val Value) bool {
	hk, ok := HashKeyOf(key)
	if !ok {
		return false
	}
	if _, exists := h.Entries[hk]; !exists {
		h.Keys = append(h.Keys, hk)
	}
	h.Entries[hk] = HashPair{Key: key, Value: val}
	return true
}

// Get retrieves the entry for key; absent keys and unusable key kinds both
// report ok=false.
func (h *HashObject) Get(key Value) (Value, bool) {
	hk, ok := HashKeyOf(key)
	if !ok {
		return Null, false
	}
	pair, exists := h.Entries[hk]
	if !exists {
		return Null, false
	}
	return pair.Value, true
}

// Hash wraps a HashObject into a Value (Tag=VTHash).
func Hash(h *HashObject) Value { return Value{Tag: VTHash, Data: h} }

// Fun represents a user-defined function/closure. Functions are first-class
// Values (VTFun). Env is the environment captured at definition time; calls
// evaluate the body in a fresh child of it, which is what makes closures work.
type Fun struct {
	Parameters []*Identifier
	Body       *BlockStatement
	Env        *Env
}

// FunVal wraps *Fun into a Value (Tag=VTFun).
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// BuiltinImpl is the implementation signature for host built-in functions.
// Implementations return either an ordinary Value or a VTError Value; they
// never panic across the boundary.
type BuiltinImpl func(ip *Interpreter, args []Value) Value

// Builtin is a named host function installed in Core.
type Builtin struct {
	Name string
	Impl BuiltinImpl
}

// BuiltinVal wraps *Builtin into a Value (Tag=VTBuiltin).
func BuiltinVal(b *Builtin) Value { return Value{Tag: VTBuiltin, Data: b} }

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward. Use Define to bind in the current frame and Get to retrieve.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	if v, ok := e.table[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

////////////////////////////////////////////////////////////////////////////////
//                               PUBLIC INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter is the entry point for evaluating Monkey programs.
//
// Public fields:
//   - Core   — built-in environment; parent of Global. Populated by NewInterpreter.
//   - Global — persistent program environment (REPL/script state).
//
// Behavior summary:
//   - Run evaluates in a fresh child of Global (ephemeral).
//   - RunPersistent evaluates in Global (persistent).
//   - EvalProgram evaluates a parsed program in the environment you pass.
type Interpreter struct {
	Global *Env // program-global environment (persistent across RunPersistent)
	Core   *Env // built-ins; parent of Global

	// Stdout sink for the `puts` built-in; see builtins.go. Hosts may swap
	// it to capture output.
	Out *strings.Builder
	// EchoOut mirrors puts output to process stdout when true (CLI default).
	EchoOut bool
}

// NewInterpreter constructs an engine with core built-ins and an empty Global
// (child of Core).
func NewInterpreter() *Interpreter {
	ip := &Interpreter{}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	ip.Out = &strings.Builder{}
	ip.EchoOut = true
	ip.installCore()
	tracer().Debugf("interpreter: core environment initialized")
	return ip
}

// RegisterBuiltin installs a host function into Core and exposes it as a
// first-class function Value available by `name` to programs.
func (ip *Interpreter) RegisterBuiltin(name string, impl BuiltinImpl) {
	ip.Core.Define(name, BuiltinVal(&Builtin{Name: name, Impl: impl}))
}

// Run parses and evaluates source in a fresh child of Global. Bindings made
// by the program land in that ephemeral child; Global is unchanged.
//
// On lex/parse failure it returns Null together with the rendered
// diagnostics; the program is not evaluated. On success the diagnostics
// slice is nil and the result may still be a VTError Value if the program
// failed at runtime.
func (ip *Interpreter) Run(src string) (Value, []string) {
	return ip.RunIn(src, NewEnv(ip.Global))
}

// RunPersistent parses and evaluates source in Global (REPL-style), so `let`
// bindings survive across calls. Error semantics match Run.
func (ip *Interpreter) RunPersistent(src string) (Value, []string) {
	return ip.RunIn(src, ip.Global)
}

// RunIn parses and evaluates source against an explicit environment,
// mutating it for top-level `let`. Run and RunPersistent are conveniences
// over this.
func (ip *Interpreter) RunIn(src string, env *Env) (Value, []string) {
	prog, diags := ParseProgram(src)
	if len(diags) > 0 {
		return Null, RenderDiags(diags, src)
	}
	return ip.EvalProgram(prog, env), nil
}

// EvalProgram evaluates a parsed program in the provided environment exactly
// as given. Hosts use this to control scoping explicitly. The VTReturn
// signal is unwrapped; a VTError result is returned as-is.
func (ip *Interpreter) EvalProgram(prog *Program, env *Env) Value {
	return ip.evalProgram(prog, env)
}
