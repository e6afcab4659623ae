// evaluator.go — tree-walking evaluation (private).
//
// eval dispatches on the concrete AST node type and returns a Value. Two
// Value tags act as in-band control signals:
//
//   VTReturn — produced by `return`; unwinds enclosing blocks until the
//              nearest function boundary (or top level), where it is unwrapped.
//   VTError  — produced by any runtime failure; unwinds all the way out and
//              is handed back to the caller as the final result.
//
// Every recursive call site checks for these signals before using the
// sub-result, which is what makes `5 + true; puts("never")` abort without
// reaching the second statement.
package monk

//////////////////////////////////////////////////////////////////////////////
//                             program / statements
//////////////////////////////////////////////////////////////////////////////

func (ip *Interpreter) evalProgram(prog *Program, env *Env) Value {
	result := Null
	for _, st := range prog.Statements {
		result = ip.eval(st, env)
		switch result.Tag {
		case VTReturn:
			return result.Data.(Value)
		case VTError:
			return result
		}
	}
	return result
}

// evalBlock is like evalProgram but leaves VTReturn wrapped, so that a
// `return` inside nested blocks still unwinds to the function boundary.
func (ip *Interpreter) evalBlock(blk *BlockStatement, env *Env) Value {
	result := Null
	for _, st := range blk.Statements {
		result = ip.eval(st, env)
		if result.Tag == VTReturn || result.Tag == VTError {
			return result
		}
	}
	return result
}

func (ip *Interpreter) eval(node Node, env *Env) Value {
	switch n := node.(type) {

	// Statements.
	case *LetStatement:
		v := ip.eval(n.Value, env)
		if IsError(v) {
			return v
		}
		env.Define(n.Name.Name, v)
		return Null
	case *ReturnStatement:
		v := ip.eval(n.Value, env)
		if IsError(v) {
			return v
		}
		return Value{Tag: VTReturn, Data: v}
	case *ExpressionStatement:
		return ip.eval(n.Value, env)
	case *BlockStatement:
		return ip.evalBlock(n, env)

	// Expressions.
	case *IntegerLiteral:
		return Int(n.Value)
	case *BooleanLiteral:
		return Bool(n.Value)
	case *StringLiteral:
		return Str(n.Value)
	case *Identifier:
		if v, ok := env.Get(n.Name); ok {
			return v
		}
		return ErrorOf("identifier not found: %s", n.Name)
	case *PrefixExpression:
		right := ip.eval(n.Right, env)
		if IsError(right) {
			return right
		}
		return evalPrefix(n.Operator, right)
	case *InfixExpression:
		left := ip.eval(n.Left, env)
		if IsError(left) {
			return left
		}
		right := ip.eval(n.Right, env)
		if IsError(right) {
			return right
		}
		return evalInfix(n.Operator, left, right)
	case *IfExpression:
		return ip.evalIf(n, env)
	case *FunctionLiteral:
		return FunVal(&Fun{Parameters: n.Parameters, Body: n.Body, Env: env})
	case *CallExpression:
		fn := ip.eval(n.Function, env)
		if IsError(fn) {
			return fn
		}
		args, errv := ip.evalExpressions(n.Arguments, env)
		if IsError(errv) {
			return errv
		}
		return ip.applyFunction(fn, args)
	case *ArrayLiteral:
		elems, errv := ip.evalExpressions(n.Elements, env)
		if IsError(errv) {
			return errv
		}
		return Arr(elems)
	case *HashLiteral:
		return ip.evalHashLiteral(n, env)
	case *IndexExpression:
		left := ip.eval(n.Left, env)
		if IsError(left) {
			return left
		}
		index := ip.eval(n.Index, env)
		if IsError(index) {
			return index
		}
		return evalIndex(left, index)
	}
	return ErrorOf("unknown node: %s", node.String())
}

//////////////////////////////////////////////////////////////////////////////
//                                 operators
//////////////////////////////////////////////////////////////////////////////

func evalPrefix(op string, right Value) Value {
	switch op {
	case "!":
		return Bool(!isTruthy(right))
	case "-":
		if right.Tag != VTInt {
			return ErrorOf("unknown operator: -%s", right.TypeName())
		}
		return Int(-right.Data.(int64))
	}
	return ErrorOf("unknown operator: %s%s", op, right.TypeName())
}

func evalInfix(op string, left, right Value) Value {
	switch {
	case left.Tag == VTInt && right.Tag == VTInt:
		return evalIntegerInfix(op, left.Data.(int64), right.Data.(int64))
	case left.Tag == VTStr && right.Tag == VTStr:
		return evalStringInfix(op, left.Data.(string), right.Data.(string))
	case left.Tag == VTBool && right.Tag == VTBool:
		switch op {
		case "==":
			return Bool(left.Data.(bool) == right.Data.(bool))
		case "!=":
			return Bool(left.Data.(bool) != right.Data.(bool))
		}
		return ErrorOf("unknown operator: %s %s %s", left.TypeName(), op, right.TypeName())
	case left.Tag == VTNull && right.Tag == VTNull:
		switch op {
		case "==":
			return True
		case "!=":
			return False
		}
		return ErrorOf("unknown operator: %s %s %s", left.TypeName(), op, right.TypeName())
	case left.Tag != right.Tag:
		return ErrorOf("type mismatch: %s %s %s", left.TypeName(), op, right.TypeName())
	}
	return ErrorOf("unknown operator: %s %s %s", left.TypeName(), op, right.TypeName())
}

func evalIntegerInfix(op string, l, r int64) Value {
	switch op {
	case "+":
		return Int(l + r)
	case "-":
		return Int(l - r)
	case "*":
		return Int(l * r)
	case "/":
		if r == 0 {
			return ErrorOf("division by zero")
		}
		// Go's integer division already truncates toward zero.
		return Int(l / r)
	case "<":
		return Bool(l < r)
	case ">":
		return Bool(l > r)
	case "==":
		return Bool(l == r)
	case "!=":
		return Bool(l != r)
	}
	return ErrorOf("unknown operator: INTEGER %s INTEGER", op)
}

func evalStringInfix(op string, l, r string) Value {
	switch op {
	case "+":
		return Str(l + r)
	case "==":
		return Bool(l == r)
	case "!=":
		return Bool(l != r)
	}
	return ErrorOf("unknown operator: STRING %s STRING", op)
}

// isTruthy implements the language's truthiness rule: only false and null
// are falsy. In particular the integer 0 is truthy.
func isTruthy(v Value) bool {
	switch v.Tag {
	case VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	}
	return true
}

//////////////////////////////////////////////////////////////////////////////
//                           conditionals / calls
//////////////////////////////////////////////////////////////////////////////

func (ip *Interpreter) evalIf(n *IfExpression, env *Env) Value {
	cond := ip.eval(n.Condition, env)
	if IsError(cond) {
		return cond
	}
	if isTruthy(cond) {
		return ip.evalBlock(n.Consequence, env)
	}
	if n.Alternative != nil {
		return ip.evalBlock(n.Alternative, env)
	}
	return Null
}

// evalExpressions evaluates a list left-to-right, stopping at the first
// error. The second return is the error signal (or Null).
func (ip *Interpreter) evalExpressions(exprs []Expression, env *Env) ([]Value, Value) {
	out := make([]Value, 0, len(exprs))
	for _, e := range exprs {
		v := ip.eval(e, env)
		if IsError(v) {
			return nil, v
		}
		out = append(out, v)
	}
	return out, Null
}

func (ip *Interpreter) applyFunction(fn Value, args []Value) Value {
	switch fn.Tag {
	case VTFun:
		f := fn.Data.(*Fun)
		if len(args) != len(f.Parameters) {
			return ErrorOf("wrong number of arguments: want=%d, got=%d", len(f.Parameters), len(args))
		}
		// The call frame is a child of the closure env, not the call site.
		frame := NewEnv(f.Env)
		for i, p := range f.Parameters {
			frame.Define(p.Name, args[i])
		}
		result := ip.evalBlock(f.Body, frame)
		if result.Tag == VTReturn {
			return result.Data.(Value)
		}
		return result
	case VTBuiltin:
		return fn.Data.(*Builtin).Impl(ip, args)
	}
	return ErrorOf("not a function: %s", fn.TypeName())
}

//////////////////////////////////////////////////////////////////////////////
//                              indexing / hashes
//////////////////////////////////////////////////////////////////////////////

func evalIndex(left, index Value) Value {
	switch {
	case left.Tag == VTArray && index.Tag == VTInt:
		elems := left.Data.([]Value)
		i := index.Data.(int64)
		if i < 0 || i >= int64(len(elems)) {
			return Null
		}
		return elems[i]
	case left.Tag == VTHash:
		h := left.Data.(*HashObject)
		if _, ok := HashKeyOf(index); !ok {
			return ErrorOf("unusable as hash key: %s", index.TypeName())
		}
		v, ok := h.Get(index)
		if !ok {
			return Null
		}
		return v
	}
	return ErrorOf("index operator not supported: %s", left.TypeName())
}

func (ip *Interpreter) evalHashLiteral(n *HashLiteral, env *Env) Value {
	h := NewHashObject()
	for _, entry := range n.Pairs {
		key := ip.eval(entry.Key, env)
		if IsError(key) {
			return key
		}
		val := ip.eval(entry.Value, env)
		if IsError(val) {
			return val
		}
		if !h.Set(key, val) {
			return ErrorOf("unusable as hash key: %s", key.TypeName())
		}
	}
	return Hash(h)
}
