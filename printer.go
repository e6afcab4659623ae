// printer.go — user-facing rendering of runtime Values.
//
// FormatValue is the single rendering contract shared by the REPL, the
// `run` subcommand and the `puts` built-in. Strings render raw (no quotes)
// at every level; hashes render their entries in insertion order.
package monk

import (
	"strconv"
	"strings"
)

/* ---------- globals & tiny helpers ---------- */

var EnableColor = false // REPL-only; tests can leave this false

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorBlue  = "\033[34m"
)

func colorize(s, c string) string {
	if !EnableColor {
		return s
	}
	return c + s + colorReset
}
func blue(s string) string { return colorize(s, colorBlue) }
func red(s string) string  { return colorize(s, colorRed) }

/* ---------- rendering ---------- */

// FormatValue renders v for display.
//
//	null            null
//	booleans        true / false
//	integers        decimal
//	strings         raw contents, unquoted
//	arrays          [elem, elem, ...]
//	hashes          {key: value, ...}   (insertion order)
//	functions       source-shaped fn literal
//	builtins        builtin function
//	errors          ERROR: message
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTStr:
		return v.Data.(string)
	case VTArray:
		elems := v.Data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTHash:
		h := v.Data.(*HashObject)
		parts := make([]string, 0, len(h.Keys))
		for _, hk := range h.Keys {
			pair := h.Entries[hk]
			parts = append(parts, FormatValue(pair.Key)+": "+FormatValue(pair.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case VTFun:
		f := v.Data.(*Fun)
		params := make([]string, len(f.Parameters))
		for i, p := range f.Parameters {
			params[i] = p.Name
		}
		return "fn(" + strings.Join(params, ", ") + ") {\n" + f.Body.String() + "\n}"
	case VTBuiltin:
		return "builtin function"
	case VTReturn:
		return FormatValue(v.Data.(Value))
	case VTError:
		return "ERROR: " + v.Data.(string)
	}
	return "<unknown>"
}

// FormatResult renders a top-level result for the REPL, applying ANSI color
// when EnableColor is set: errors in red, everything else in blue.
func FormatResult(v Value) string {
	if v.Tag == VTError {
		return red(FormatValue(v))
	}
	return blue(FormatValue(v))
}
