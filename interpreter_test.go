package monk

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// --- helpers ---------------------------------------------------------------

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	ip := NewInterpreter()
	ip.EchoOut = false
	v, diags := ip.Run(src)
	if diags != nil {
		t.Fatalf("diagnostics for %q: %v", src, diags)
	}
	return v
}

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTInt || v.Data.(int64) != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantStr(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Tag != VTStr || v.Data.(string) != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func wantNull(t *testing.T, v Value) {
	t.Helper()
	if v.Tag != VTNull {
		t.Fatalf("want null, got %#v", v)
	}
}

func wantErrValue(t *testing.T, v Value, msg string) {
	t.Helper()
	if v.Tag != VTError {
		t.Fatalf("want error %q, got %#v", msg, v)
	}
	if got := v.Data.(string); got != msg {
		t.Fatalf("want error %q, got %q", msg, got)
	}
}

// --- tests -----------------------------------------------------------------

func Test_Eval_IntegerArithmetic(t *testing.T) {
	cases := map[string]int64{
		"5":                               5,
		"-5":                              -5,
		"--5":                             5,
		"5 + 5 + 5 + 5 - 10":              10,
		"2 * 2 * 2 * 2 * 2":               32,
		"5 * 2 + 10":                      20,
		"5 + 2 * 10":                      25,
		"(5 + 10 * 2 + 15 / 3) * 2 + -10": 50,
		"7 / 2":                           3,
		"-7 / 2":                          -3,
		"7 / -2":                          -3,
	}
	for src, want := range cases {
		wantInt(t, evalSrc(t, src), want)
	}
}

func Test_Eval_Booleans(t *testing.T) {
	cases := map[string]bool{
		"true":             true,
		"false":            false,
		"1 < 2":            true,
		"1 > 2":            false,
		"1 == 1":           true,
		"1 != 1":           false,
		"true == true":     true,
		"true != false":    true,
		"(1 < 2) == true":  true,
		"(1 > 2) == true":  false,
		"!true":            false,
		"!false":           true,
		"!5":               false,
		"!!5":              true,
		"!0":               false,
		`"a" == "a"`:       true,
		`"a" != "b"`:       true,
	}
	for src, want := range cases {
		wantBool(t, evalSrc(t, src), want)
	}
}

func Test_Eval_Strings(t *testing.T) {
	wantStr(t, evalSrc(t, `"Hello" + " " + "World!"`), "Hello World!")
	wantStr(t, evalSrc(t, `"with \"escapes\""`), `with "escapes"`)
}

func Test_Eval_IfExpressions(t *testing.T) {
	wantInt(t, evalSrc(t, "if (true) { 10 }"), 10)
	wantNull(t, evalSrc(t, "if (false) { 10 }"))
	wantInt(t, evalSrc(t, "if (1 < 2) { 10 } else { 20 }"), 10)
	wantInt(t, evalSrc(t, "if (1 > 2) { 10 } else { 20 }"), 20)
	// 0 is truthy; only false and null are falsy.
	wantInt(t, evalSrc(t, "if (0) { 1 } else { 2 }"), 1)
	wantInt(t, evalSrc(t, `if ("") { 1 } else { 2 }`), 1)
}

func Test_Eval_ReturnStatements(t *testing.T) {
	wantInt(t, evalSrc(t, "return 10; 9;"), 10)
	wantInt(t, evalSrc(t, "9; return 2 * 5; 9;"), 10)
	// return unwinds nested blocks up to the function boundary.
	wantInt(t, evalSrc(t, `
		if (10 > 1) {
			if (10 > 1) {
				return 10;
			}
			return 1;
		}`), 10)
	// ...but not past it.
	wantInt(t, evalSrc(t, `
		let f = fn() {
			if (true) { return 7; }
			return 1;
		};
		f() + 1;`), 8)
}

func Test_Eval_LetAndIdentifiers(t *testing.T) {
	wantInt(t, evalSrc(t, "let a = 5; a;"), 5)
	wantInt(t, evalSrc(t, "let a = 5 * 5; a;"), 25)
	wantInt(t, evalSrc(t, "let a = 5; let b = a; b;"), 5)
	wantInt(t, evalSrc(t, "let a = 5; let b = a; let c = a + b + 5; c;"), 15)
	wantErrValue(t, evalSrc(t, "foobar"), "identifier not found: foobar")
}

func Test_Eval_Functions(t *testing.T) {
	wantInt(t, evalSrc(t, "let identity = fn(x) { x; }; identity(5);"), 5)
	wantInt(t, evalSrc(t, "let identity = fn(x) { return x; }; identity(5);"), 5)
	wantInt(t, evalSrc(t, "let double = fn(x) { x * 2; }; double(5);"), 10)
	wantInt(t, evalSrc(t, "let add = fn(x, y) { x + y; }; add(5, 5);"), 10)
	wantInt(t, evalSrc(t, "let add = fn(x, y) { x + y; }; add(5 + 5, add(5, 5));"), 20)
	wantInt(t, evalSrc(t, "fn(x) { x; }(5)"), 5)
	wantErrValue(t, evalSrc(t, "let f = fn(x) { x }; f(1, 2);"),
		"wrong number of arguments: want=1, got=2")
	wantErrValue(t, evalSrc(t, "5(1)"), "not a function: INTEGER")
}

func Test_Eval_Closures(t *testing.T) {
	wantInt(t, evalSrc(t, `
		let newAdder = fn(x) { fn(y) { x + y }; };
		let addTwo = newAdder(2);
		addTwo(2);`), 4)

	// Captured state is stable across repeated calls of the same closure.
	wantInt(t, evalSrc(t, `
		let newAdder = fn(x) { fn(y) { x + y }; };
		let addTwo = newAdder(2);
		addTwo(3);
		addTwo(10);`), 12)

	// A closure's captured environment is stable across unrelated calls.
	wantInt(t, evalSrc(t, `
		let newAdder = fn(x) { fn(y) { x + y }; };
		let addTwo = newAdder(2);
		let addTen = newAdder(10);
		addTen(1);
		addTwo(3);`), 5)

	// Parameters shadow outer bindings without mutating them.
	wantInt(t, evalSrc(t, `
		let x = 100;
		let f = fn(x) { x + 1 };
		f(1) + x;`), 102)
}

func Test_Eval_Recursion(t *testing.T) {
	wantInt(t, evalSrc(t, `
		let fibonacci = fn(n) {
			if (n < 2) { n } else { fibonacci(n - 1) + fibonacci(n - 2) }
		};
		fibonacci(10);`), 55)

	wantInt(t, evalSrc(t, `
		let fact = fn(n) { if (n < 2) { 1 } else { n * fact(n - 1) } };
		fact(6);`), 720)
}

func Test_Eval_Arrays(t *testing.T) {
	v := evalSrc(t, "[1, 2 * 2, 3 + 3]")
	if v.Tag != VTArray {
		t.Fatalf("want array, got %#v", v)
	}
	elems := v.Data.([]Value)
	wantInt(t, elems[0], 1)
	wantInt(t, elems[1], 4)
	wantInt(t, elems[2], 6)

	wantInt(t, evalSrc(t, "[1, 2, 3][0]"), 1)
	wantInt(t, evalSrc(t, "[1, 2, 3][2]"), 3)
	wantInt(t, evalSrc(t, "let i = 0; [1][i];"), 1)
	wantInt(t, evalSrc(t, "let a = [1, 2, 3]; a[1] + a[2];"), 5)
	wantNull(t, evalSrc(t, "[1, 2, 3][3]"))
	wantNull(t, evalSrc(t, "[1, 2, 3][-1]"))
	wantErrValue(t, evalSrc(t, `[1][true]`), "index operator not supported: ARRAY")
}

func Test_Eval_Hashes(t *testing.T) {
	v := evalSrc(t, `
		let two = "two";
		{"one": 10 - 9, two: 1 + 1, "thr" + "ee": 6 / 2, 4: 4, true: 5, false: 6}`)
	if v.Tag != VTHash {
		t.Fatalf("want hash, got %#v", v)
	}
	h := v.Data.(*HashObject)
	if len(h.Keys) != 6 {
		t.Fatalf("want 6 entries, got %d", len(h.Keys))
	}

	wantInt(t, evalSrc(t, `{"foo": 5}["foo"]`), 5)
	wantInt(t, evalSrc(t, `let k = "foo"; {"foo": 5}[k]`), 5)
	wantInt(t, evalSrc(t, `{5: 5}[5]`), 5)
	wantInt(t, evalSrc(t, `{true: 5}[true]`), 5)
	wantNull(t, evalSrc(t, `{"foo": 5}["bar"]`))
	wantNull(t, evalSrc(t, `{}["foo"]`))
	wantErrValue(t, evalSrc(t, `{fn(x) { x }: 1}`), "unusable as hash key: FUNCTION")
	wantErrValue(t, evalSrc(t, `{"a": 1}[fn(x) { x }]`), "unusable as hash key: FUNCTION")
}

func Test_Eval_ErrorHandling(t *testing.T) {
	cases := map[string]string{
		"5 + true;":                  "type mismatch: INTEGER + BOOLEAN",
		"5 + true; 5;":               "type mismatch: INTEGER + BOOLEAN",
		"-true":                      "unknown operator: -BOOLEAN",
		"true + false;":              "unknown operator: BOOLEAN + BOOLEAN",
		"5; true + false; 5":         "unknown operator: BOOLEAN + BOOLEAN",
		"if (10 > 1) { true + false; }": "unknown operator: BOOLEAN + BOOLEAN",
		`"Hello" - "World"`:          "unknown operator: STRING - STRING",
		"1 / 0":                      "division by zero",
		`5 + "5"`:                    "type mismatch: INTEGER + STRING",
	}
	for src, want := range cases {
		wantErrValue(t, evalSrc(t, src), want)
	}

	// An error aborts the remaining statements of its block.
	ip := NewInterpreter()
	ip.EchoOut = false
	v, diags := ip.Run(`5 + "5"; puts("never reached");`)
	if diags != nil {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if !IsError(v) {
		t.Fatalf("want error result, got %#v", v)
	}
	if ip.Out.Len() != 0 {
		t.Fatalf("statement after error executed: %q", ip.Out.String())
	}
}

func Test_Eval_ParseErrorsSuppressEval(t *testing.T) {
	ip := NewInterpreter()
	ip.EchoOut = false
	v, diags := ip.Run("let x 5; puts(\"side effect\");")
	if len(diags) == 0 {
		t.Fatalf("want diagnostics")
	}
	wantNull(t, v)
	if ip.Out.Len() != 0 {
		t.Fatalf("program with diagnostics was evaluated: %q", ip.Out.String())
	}
	if !strings.Contains(diags[0], "expected next token") {
		t.Fatalf("rendered diagnostic: got %q", diags[0])
	}
}

func Test_Eval_Builtins(t *testing.T) {
	wantInt(t, evalSrc(t, `len("")`), 0)
	wantInt(t, evalSrc(t, `len("four")`), 4)
	wantInt(t, evalSrc(t, `len("hello world")`), 11)
	wantInt(t, evalSrc(t, `len([1, 2, 3])`), 3)
	wantInt(t, evalSrc(t, `len({"a": 1, "b": 2})`), 2)
	wantErrValue(t, evalSrc(t, `len(1)`), "argument to `len` not supported, got INTEGER")
	wantErrValue(t, evalSrc(t, `len("one", "two")`), "wrong number of arguments. got=2, want=1")

	wantInt(t, evalSrc(t, `first([1, 2, 3])`), 1)
	wantNull(t, evalSrc(t, `first([])`))
	wantInt(t, evalSrc(t, `last([1, 2, 3])`), 3)
	wantNull(t, evalSrc(t, `last([])`))

	v := evalSrc(t, `rest([1, 2, 3])`)
	if v.Tag != VTArray || len(v.Data.([]Value)) != 2 {
		t.Fatalf("rest: got %#v", v)
	}
	wantNull(t, evalSrc(t, `rest([])`))

	// push leaves the original array untouched.
	v = evalSrc(t, `let a = [1]; let b = push(a, 2); [len(a), len(b), b[1]]`)
	elems := v.Data.([]Value)
	wantInt(t, elems[0], 1)
	wantInt(t, elems[1], 2)
	wantInt(t, elems[2], 2)

	wantStr(t, evalSrc(t, `type(1)`), "INTEGER")
	wantStr(t, evalSrc(t, `type("x")`), "STRING")
	wantStr(t, evalSrc(t, `type([])`), "ARRAY")
	wantStr(t, evalSrc(t, `type(fn(x) { x })`), "FUNCTION")
	wantStr(t, evalSrc(t, `type(len)`), "BUILTIN")
}

func Test_Eval_Puts(t *testing.T) {
	ip := NewInterpreter()
	ip.EchoOut = false
	_, diags := ip.Run(`puts("hello"); puts(1 + 2, [1, 2]);`)
	if diags != nil {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := "hello\n3\n[1, 2]\n"
	if got := ip.Out.String(); got != want {
		t.Fatalf("puts output: want %q, got %q", want, got)
	}
}

func Test_Eval_HigherOrderPrograms(t *testing.T) {
	wantInt(t, evalSrc(t, `
		let map = fn(arr, f) {
			let iter = fn(arr, acc) {
				if (len(arr) == 0) { acc } else { iter(rest(arr), push(acc, f(first(arr)))) }
			};
			iter(arr, []);
		};
		let doubled = map([1, 2, 3, 4], fn(x) { x * 2 });
		doubled[3];`), 8)

	wantInt(t, evalSrc(t, `
		let reduce = fn(arr, init, f) {
			let iter = fn(arr, acc) {
				if (len(arr) == 0) { acc } else { iter(rest(arr), f(acc, first(arr))) }
			};
			iter(arr, init);
		};
		reduce([1, 2, 3, 4, 5], 0, fn(a, b) { a + b });`), 15)
}

func Test_Interpreter_RunIsEphemeral(t *testing.T) {
	ip := NewInterpreter()
	ip.EchoOut = false
	if v, diags := ip.Run("let a = 1; a"); diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	} else {
		wantInt(t, v, 1)
	}
	v, diags := ip.Run("a")
	if diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	}
	wantErrValue(t, v, "identifier not found: a")
}

func Test_Interpreter_PersistentState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "monk.interp")
	defer teardown()

	ip := NewInterpreter()
	ip.EchoOut = false
	if _, diags := ip.RunPersistent("let add = fn(x, y) { x + y };"); diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	}
	if _, diags := ip.RunPersistent("let five = 5;"); diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	}
	v, diags := ip.RunPersistent("add(five, 10)")
	if diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	}
	wantInt(t, v, 15)
}

func Test_Interpreter_RunInExplicitEnv(t *testing.T) {
	ip := NewInterpreter()
	ip.EchoOut = false
	session := NewEnv(ip.Global)
	if _, diags := ip.RunIn("let result = 5 + 10;", session); diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	}
	v, diags := ip.RunIn("result", session)
	if diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	}
	wantInt(t, v, 15)

	// The sibling Global frame never saw the binding.
	if _, ok := ip.Global.Get("result"); ok {
		t.Fatalf("binding leaked into Global")
	}
}

func Test_Interpreter_BuiltinShadowing(t *testing.T) {
	// A Global binding shadows a Core builtin without destroying it.
	ip := NewInterpreter()
	ip.EchoOut = false
	if _, diags := ip.RunPersistent("let len = 3;"); diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	}
	v, _ := ip.RunPersistent("len")
	wantInt(t, v, 3)

	other := NewInterpreter()
	other.EchoOut = false
	v, _ = other.Run(`len("ok")`)
	wantInt(t, v, 2)
}

func Test_Interpreter_RegisterBuiltin(t *testing.T) {
	ip := NewInterpreter()
	ip.EchoOut = false
	ip.RegisterBuiltin("answer", func(_ *Interpreter, args []Value) Value {
		if e := wantArgs(args, 0); IsError(e) {
			return e
		}
		return Int(42)
	})
	v, diags := ip.Run("answer()")
	if diags != nil {
		t.Fatalf("diagnostics: %v", diags)
	}
	wantInt(t, v, 42)
}
