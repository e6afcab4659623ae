// builtins.go — core built-in functions (private registration).
//
// Every built-in validates its own arguments and reports failures as VTError
// Values, so a bad call aborts the surrounding statement exactly like any
// other runtime error. Built-ins that produce arrays always allocate fresh
// backing slices; arrays are immutable from the program's point of view.
package monk

import (
	"fmt"
	"os"
)

func (ip *Interpreter) installCore() {
	ip.RegisterBuiltin("len", builtinLen)
	ip.RegisterBuiltin("first", builtinFirst)
	ip.RegisterBuiltin("last", builtinLast)
	ip.RegisterBuiltin("rest", builtinRest)
	ip.RegisterBuiltin("push", builtinPush)
	ip.RegisterBuiltin("puts", builtinPuts)
	ip.RegisterBuiltin("type", builtinType)
}

func wantArgs(args []Value, n int) Value {
	if len(args) != n {
		return ErrorOf("wrong number of arguments. got=%d, want=%d", len(args), n)
	}
	return Null
}

func builtinLen(_ *Interpreter, args []Value) Value {
	if e := wantArgs(args, 1); IsError(e) {
		return e
	}
	switch args[0].Tag {
	case VTStr:
		return Int(int64(len(args[0].Data.(string))))
	case VTArray:
		return Int(int64(len(args[0].Data.([]Value))))
	case VTHash:
		return Int(int64(len(args[0].Data.(*HashObject).Keys)))
	}
	return ErrorOf("argument to `len` not supported, got %s", args[0].TypeName())
}

func builtinFirst(_ *Interpreter, args []Value) Value {
	if e := wantArgs(args, 1); IsError(e) {
		return e
	}
	if args[0].Tag != VTArray {
		return ErrorOf("argument to `first` must be ARRAY, got %s", args[0].TypeName())
	}
	elems := args[0].Data.([]Value)
	if len(elems) == 0 {
		return Null
	}
	return elems[0]
}

func builtinLast(_ *Interpreter, args []Value) Value {
	if e := wantArgs(args, 1); IsError(e) {
		return e
	}
	if args[0].Tag != VTArray {
		return ErrorOf("argument to `last` must be ARRAY, got %s", args[0].TypeName())
	}
	elems := args[0].Data.([]Value)
	if len(elems) == 0 {
		return Null
	}
	return elems[len(elems)-1]
}

// rest returns a new array holding everything but the first element.
func builtinRest(_ *Interpreter, args []Value) Value {
	if e := wantArgs(args, 1); IsError(e) {
		return e
	}
	if args[0].Tag != VTArray {
		return ErrorOf("argument to `rest` must be ARRAY, got %s", args[0].TypeName())
	}
	elems := args[0].Data.([]Value)
	if len(elems) == 0 {
		return Null
	}
	out := make([]Value, len(elems)-1)
	copy(out, elems[1:])
	return Arr(out)
}

// push returns a new array with v appended; the input array is unchanged.
func builtinPush(_ *Interpreter, args []Value) Value {
	if e := wantArgs(args, 2); IsError(e) {
		return e
	}
	if args[0].Tag != VTArray {
		return ErrorOf("argument to `push` must be ARRAY, got %s", args[0].TypeName())
	}
	elems := args[0].Data.([]Value)
	out := make([]Value, len(elems), len(elems)+1)
	copy(out, elems)
	out = append(out, args[1])
	return Arr(out)
}

func builtinPuts(ip *Interpreter, args []Value) Value {
	for _, a := range args {
		line := FormatValue(a)
		ip.Out.WriteString(line)
		ip.Out.WriteByte('\n')
		if ip.EchoOut {
			fmt.Fprintln(os.Stdout, line)
		}
	}
	return Null
}

func builtinType(_ *Interpreter, args []Value) Value {
	if e := wantArgs(args, 1); IsError(e) {
		return e
	}
	return Str(args[0].TypeName())
}
