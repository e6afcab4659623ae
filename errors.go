// errors.go — syntax diagnostics and caret-snippet rendering.
//
// Lexing and parsing problems are reported as *Diag values with a kind, a
// message and a 1-based line / 0-based column. A non-empty diagnostic list
// suppresses evaluation for that input; runtime failures never appear here
// (they are first-class error Values, see evaluator.go).
//
// RenderDiag turns a diagnostic into a readable snippet with a caret under
// the offending column:
//
//	PARSE ERROR at 3:14: expected next token to be ), got ; instead
//
//	   2 | let x = (1 + 2
//	   3 | let y = add(x;
//	     |              ^
//	   4 | y
//
// Output is plain text, no ANSI escapes; the CLI adds color on top.
package monk

import (
	"fmt"
	"strings"
)

// DiagKind distinguishes the diagnostic taxonomies.
type DiagKind int

const (
	DiagLex        DiagKind = iota // malformed token
	DiagParse                      // syntax error
	DiagIncomplete                 // interactive mode only: input ended mid-construct
)

// Diag is a lexer/parser diagnostic with a source position.
type Diag struct {
	Kind DiagKind
	Msg  string
	Line int // 1-based
	Col  int // 0-based
}

func (d *Diag) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", d.header(), d.Line, d.Col+1, d.Msg)
}

func (d *Diag) header() string {
	switch d.Kind {
	case DiagLex:
		return "LEXICAL ERROR"
	case DiagIncomplete:
		return "INCOMPLETE INPUT"
	default:
		return "PARSE ERROR"
	}
}

// IsIncomplete reports whether err is a Diag of kind DiagIncomplete. REPLs
// use it to prompt for continuation lines instead of reporting an error.
func IsIncomplete(err error) bool {
	d, ok := err.(*Diag)
	return ok && d.Kind == DiagIncomplete
}

// HasIncomplete reports whether any diagnostic in the list is DiagIncomplete.
func HasIncomplete(diags []*Diag) bool {
	for _, d := range diags {
		if d.Kind == DiagIncomplete {
			return true
		}
	}
	return false
}

// RenderDiag formats d as a caret-annotated snippet of src, with up to one
// line of context before and after. Coordinates are clamped so malformed
// positions cannot break rendering.
func RenderDiag(d *Diag, src string) string {
	lines := strings.Split(src, "\n")
	line := d.Line
	col := d.Col + 1 // render 1-based
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", d.header(), line, col, d.Msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// RenderDiags renders every diagnostic in order (see RenderDiag).
func RenderDiags(diags []*Diag, src string) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, RenderDiag(d, src))
	}
	return out
}
