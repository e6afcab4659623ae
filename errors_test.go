package monk

import (
	"strings"
	"testing"
)

func Test_Diag_ErrorString(t *testing.T) {
	d := &Diag{Kind: DiagParse, Msg: "expected next token to be ), got ; instead", Line: 3, Col: 13}
	want := "PARSE ERROR at 3:14: expected next token to be ), got ; instead"
	if d.Error() != want {
		t.Fatalf("want %q, got %q", want, d.Error())
	}

	lex := &Diag{Kind: DiagLex, Msg: "illegal token \"@\"", Line: 1, Col: 0}
	if !strings.HasPrefix(lex.Error(), "LEXICAL ERROR at 1:1") {
		t.Fatalf("got %q", lex.Error())
	}
}

func Test_Diag_IncompleteDetection(t *testing.T) {
	inc := &Diag{Kind: DiagIncomplete, Msg: "unexpected end of input"}
	if !IsIncomplete(inc) {
		t.Fatalf("IsIncomplete must detect DiagIncomplete")
	}
	if IsIncomplete(&Diag{Kind: DiagParse}) {
		t.Fatalf("DiagParse misdetected as incomplete")
	}
	if !HasIncomplete([]*Diag{{Kind: DiagParse}, inc}) {
		t.Fatalf("HasIncomplete must scan the whole list")
	}
	if HasIncomplete(nil) {
		t.Fatalf("empty list has no incomplete diagnostics")
	}
}

func Test_RenderDiag_CaretSnippet(t *testing.T) {
	src := "let x = 1;\nlet y 2;\nx"
	_, diags := ParseProgram(src)
	if len(diags) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", diags)
	}
	out := RenderDiag(diags[0], src)

	for _, want := range []string{
		"PARSE ERROR at 2:7",
		"   1 | let x = 1;",
		"   2 | let y 2;",
		"   3 | x",
		"^",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("snippet missing %q:\n%s", want, out)
		}
	}
	// The caret must sit under the offending token.
	caretLine := ""
	for _, ln := range strings.Split(out, "\n") {
		if strings.Contains(ln, "^") {
			caretLine = ln
		}
	}
	if !strings.HasSuffix(caretLine, strings.Repeat(" ", 6)+"^") {
		t.Fatalf("caret position: %q", caretLine)
	}
}

func Test_RenderDiag_ClampsPositions(t *testing.T) {
	d := &Diag{Kind: DiagParse, Msg: "boom", Line: 99, Col: 99}
	out := RenderDiag(d, "one line")
	if !strings.Contains(out, "boom") {
		t.Fatalf("rendered: %q", out)
	}
}
