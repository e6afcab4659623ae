// ast.go — node variants produced by the parser and consumed by the evaluator.
//
// The AST is a closed set of statement and expression structs behind the
// Node/Statement/Expression interfaces. Nodes are pure data: immutable once
// built, tree-shaped ownership, no behavior beyond String(), which renders a
// fully parenthesized source-like form used by the parser tests to compare
// tree shapes.
//
// Every node keeps its leading Token so diagnostics and tracing can point at
// source positions.
package monk

import (
	"strings"
)

// Node is implemented by every AST node.
type Node interface {
	Tok() Token
	String() string
}

// Statement nodes appear at program/block level.
type Statement interface {
	Node
	statementNode()
}

// Expression nodes produce values.
type Expression interface {
	Node
	expressionNode()
}

// Program is an ordered sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Tok() Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].Tok()
	}
	return Token{Type: EOF}
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
	}
	return b.String()
}

// ─────────────────────────────── statements ────────────────────────────────

// LetStatement binds the value of an expression to a name: let x = 5;
type LetStatement struct {
	Token Token // the LET token
	Name  *Identifier
	Value Expression
}

func (s *LetStatement) statementNode() {}
func (s *LetStatement) Tok() Token     { return s.Token }
func (s *LetStatement) String() string {
	var b strings.Builder
	b.WriteString("let ")
	b.WriteString(s.Name.String())
	b.WriteString(" = ")
	if s.Value != nil {
		b.WriteString(s.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

// ReturnStatement returns a value from the enclosing function: return x;
type ReturnStatement struct {
	Token Token // the RETURN token
	Value Expression
}

func (s *ReturnStatement) statementNode() {}
func (s *ReturnStatement) Tok() Token     { return s.Token }
func (s *ReturnStatement) String() string {
	var b strings.Builder
	b.WriteString("return ")
	if s.Value != nil {
		b.WriteString(s.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

// ExpressionStatement is an expression at statement position.
type ExpressionStatement struct {
	Token Token // first token of the expression
	Value Expression
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) Tok() Token     { return s.Token }
func (s *ExpressionStatement) String() string {
	if s.Value != nil {
		return s.Value.String()
	}
	return ""
}

// BlockStatement is a brace-delimited statement sequence.
type BlockStatement struct {
	Token      Token // the LBRACE token
	Statements []Statement
}

func (s *BlockStatement) statementNode() {}
func (s *BlockStatement) Tok() Token     { return s.Token }
func (s *BlockStatement) String() string {
	var b strings.Builder
	for _, st := range s.Statements {
		b.WriteString(st.String())
	}
	return b.String()
}

// ─────────────────────────────── expressions ───────────────────────────────

type Identifier struct {
	Token Token // the IDENT token
	Name  string
}

func (e *Identifier) expressionNode() {}
func (e *Identifier) Tok() Token      { return e.Token }
func (e *Identifier) String() string  { return e.Name }

type IntegerLiteral struct {
	Token Token
	Value int64
}

func (e *IntegerLiteral) expressionNode() {}
func (e *IntegerLiteral) Tok() Token      { return e.Token }
func (e *IntegerLiteral) String() string  { return e.Token.Lexeme }

type BooleanLiteral struct {
	Token Token
	Value bool
}

func (e *BooleanLiteral) expressionNode() {}
func (e *BooleanLiteral) Tok() Token      { return e.Token }
func (e *BooleanLiteral) String() string  { return e.Token.Lexeme }

type StringLiteral struct {
	Token Token
	Value string
}

func (e *StringLiteral) expressionNode() {}
func (e *StringLiteral) Tok() Token      { return e.Token }
func (e *StringLiteral) String() string  { return e.Token.Lexeme }

// PrefixExpression is a unary operator application: !x, -x.
type PrefixExpression struct {
	Token    Token // the operator token
	Operator string
	Right    Expression
}

func (e *PrefixExpression) expressionNode() {}
func (e *PrefixExpression) Tok() Token      { return e.Token }
func (e *PrefixExpression) String() string {
	return "(" + e.Operator + e.Right.String() + ")"
}

// InfixExpression is a binary operator application: x + y.
type InfixExpression struct {
	Token    Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *InfixExpression) expressionNode() {}
func (e *InfixExpression) Tok() Token      { return e.Token }
func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// IfExpression covers if/else; Alternative may be nil.
type IfExpression struct {
	Token       Token // the IF token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (e *IfExpression) expressionNode() {}
func (e *IfExpression) Tok() Token      { return e.Token }
func (e *IfExpression) String() string {
	var b strings.Builder
	b.WriteString("if")
	b.WriteString(e.Condition.String())
	b.WriteString(" ")
	b.WriteString(e.Consequence.String())
	if e.Alternative != nil {
		b.WriteString("else ")
		b.WriteString(e.Alternative.String())
	}
	return b.String()
}

// FunctionLiteral evaluates to a closure over the defining environment.
type FunctionLiteral struct {
	Token      Token // the FN token
	Parameters []*Identifier
	Body       *BlockStatement
}

func (e *FunctionLiteral) expressionNode() {}
func (e *FunctionLiteral) Tok() Token      { return e.Token }
func (e *FunctionLiteral) String() string {
	params := make([]string, 0, len(e.Parameters))
	for _, p := range e.Parameters {
		params = append(params, p.String())
	}
	return "fn(" + strings.Join(params, ", ") + ") " + e.Body.String()
}

// CallExpression applies a callee to arguments: add(1, 2).
type CallExpression struct {
	Token     Token // the LPAREN token
	Function  Expression
	Arguments []Expression
}

func (e *CallExpression) expressionNode() {}
func (e *CallExpression) Tok() Token      { return e.Token }
func (e *CallExpression) String() string {
	args := make([]string, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		args = append(args, a.String())
	}
	return e.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

type ArrayLiteral struct {
	Token    Token // the LBRACKET token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode() {}
func (e *ArrayLiteral) Tok() Token      { return e.Token }
func (e *ArrayLiteral) String() string {
	elems := make([]string, 0, len(e.Elements))
	for _, el := range e.Elements {
		elems = append(elems, el.String())
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// IndexExpression reads one element of an array or hash: xs[i].
type IndexExpression struct {
	Token Token // the LBRACKET token
	Left  Expression
	Index Expression
}

func (e *IndexExpression) expressionNode() {}
func (e *IndexExpression) Tok() Token      { return e.Token }
func (e *IndexExpression) String() string {
	return "(" + e.Left.String() + "[" + e.Index.String() + "])"
}

// HashEntry is one key/value pair of a hash literal, in source order.
type HashEntry struct {
	Key   Expression
	Value Expression
}

// HashLiteral keeps its pairs as an ordered sequence; evaluation preserves
// the source order of keys.
type HashLiteral struct {
	Token Token // the LBRACE token
	Pairs []HashEntry
}

func (e *HashLiteral) expressionNode() {}
func (e *HashLiteral) Tok() Token      { return e.Token }
func (e *HashLiteral) String() string {
	pairs := make([]string, 0, len(e.Pairs))
	for _, p := range e.Pairs {
		pairs = append(pairs, p.Key.String()+":"+p.Value.String())
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
