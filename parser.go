// parser.go — Pratt parser for Monkey.
//
// The parser consumes the token slice produced by the lexer (see lexer.go)
// and builds the typed AST of ast.go. Statements are parsed by recursive
// descent; every expression goes through a single parseExpression entry
// point that climbs precedence levels:
//
//   - each token type that may start an expression has a prefix rule
//     (parsePrefix switch);
//   - each infix-capable token has a binding power (lbp) and an infix rule;
//   - parsing proceeds left-to-right, folding operators while the next
//     token binds tighter than the current threshold.
//
// Precedence, low to high: == !=  <  >  + -  * /  prefix  call/index.
// Grouping parentheses reset the threshold to lowest inside.
//
// Errors are collected as *Diag values rather than aborting the whole parse:
// after a failed statement the parser resynchronizes at the next statement
// boundary and keeps going, so one pass reports as many problems as feasible.
// The evaluator is never invoked while diagnostics are present.
//
// Interactive mode (ParseProgramInteractive) turns "input ended in the middle
// of a construct" into a DiagIncomplete diagnostic instead of a plain parse
// error, which lets the REPL prompt for continuation lines.
package monk

import (
	"fmt"
)

// ParseProgram lexes and parses a complete source string. It returns the
// program together with all diagnostics collected along the way; a non-empty
// list means the program must not be evaluated.
func ParseProgram(src string) (*Program, []*Diag) {
	p := &parser{toks: NewLexer(src).Scan()}
	return p.program(), p.diags
}

// ParseProgramInteractive parses in REPL-friendly mode: unterminated
// constructs at end of input produce a DiagIncomplete diagnostic.
func ParseProgramInteractive(src string) (*Program, []*Diag) {
	p := &parser{toks: NewLexer(src).Scan(), interactive: true}
	return p.program(), p.diags
}

//// END_OF_PUBLIC

type parser struct {
	toks        []Token
	i           int
	interactive bool
	diags       []*Diag
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

// need consumes a token of the wanted type or fails with a positioned
// diagnostic. At end of input the interactive flag decides between a hard
// parse error and DiagIncomplete.
func (p *parser) need(tt TokenType) (Token, error) {
	if p.match(tt) {
		return p.prev(), nil
	}
	g := p.peek()
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", tt, g.Type)
	if g.Type == EOF && p.interactive {
		return Token{}, &Diag{Kind: DiagIncomplete, Msg: msg, Line: g.Line, Col: g.Col}
	}
	return Token{}, &Diag{Kind: DiagParse, Msg: msg, Line: g.Line, Col: g.Col}
}

func (p *parser) errAt(tok Token, format string, args ...interface{}) error {
	return &Diag{Kind: DiagParse, Msg: fmt.Sprintf(format, args...), Line: tok.Line, Col: tok.Col}
}

// ───────────────────────── precedence / binding power ───────────────────────

const (
	precLowest int = iota + 1
	precEquals
	precLessGreater
	precSum
	precProduct
	precPrefix
	precCall // call and index bind tightest
)

func lbp(tt TokenType) int {
	switch tt {
	case EQ, NOT_EQ:
		return precEquals
	case LT, GT:
		return precLessGreater
	case PLUS, MINUS:
		return precSum
	case ASTERISK, SLASH:
		return precProduct
	case LPAREN, LBRACKET:
		return precCall
	}
	return precLowest
}

// ───────────────────────────── program / statements ─────────────────────────

func (p *parser) program() *Program {
	prog := &Program{}
	for !p.atEnd() {
		st, err := p.parseStatement()
		if err != nil {
			d := err.(*Diag)
			p.diags = append(p.diags, d)
			if d.Kind == DiagIncomplete {
				break
			}
			p.sync()
			continue
		}
		prog.Statements = append(prog.Statements, st)
	}
	tracer().Debugf("parser: %d statement(s), %d diagnostic(s)", len(prog.Statements), len(p.diags))
	return prog
}

// sync skips ahead to the next statement boundary after a failed statement,
// so subsequent statements still get a chance to report their own errors.
func (p *parser) sync() {
	for !p.atEnd() {
		if p.peek().Type == SEMICOLON {
			p.i++
			return
		}
		switch p.peek().Type {
		case LET, RETURN:
			return
		}
		p.i++
	}
}

func (p *parser) parseStatement() (Statement, error) {
	switch p.peek().Type {
	case LET:
		return p.parseLetStatement()
	case RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseLetStatement() (Statement, error) {
	letTok := p.peek()
	p.i++

	nameTok, err := p.need(IDENT)
	if err != nil {
		return nil, err
	}
	name := &Identifier{Token: nameTok, Name: nameTok.Literal.(string)}

	if _, err := p.need(ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.match(SEMICOLON)
	return &LetStatement{Token: letTok, Name: name, Value: value}, nil
}

func (p *parser) parseReturnStatement() (Statement, error) {
	retTok := p.peek()
	p.i++

	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.match(SEMICOLON)
	return &ReturnStatement{Token: retTok, Value: value}, nil
}

func (p *parser) parseExpressionStatement() (Statement, error) {
	first := p.peek()
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.match(SEMICOLON)
	return &ExpressionStatement{Token: first, Value: value}, nil
}

func (p *parser) parseBlockStatement() (*BlockStatement, error) {
	braceTok, err := p.need(LBRACE)
	if err != nil {
		return nil, err
	}
	blk := &BlockStatement{Token: braceTok}
	for !p.atEnd() && p.peek().Type != RBRACE {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, st)
	}
	if _, err := p.need(RBRACE); err != nil {
		return nil, err
	}
	return blk, nil
}

// ───────────────────────────── prefix / infix core ──────────────────────────

func (p *parser) parseExpression(minPrec int) (Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for p.peek().Type != SEMICOLON && minPrec < lbp(p.peek().Type) {
		switch p.peek().Type {
		case LPAREN:
			left, err = p.parseCallExpression(left)
		case LBRACKET:
			left, err = p.parseIndexExpression(left)
		default:
			left, err = p.parseInfixExpression(left)
		}
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parsePrefix() (Expression, error) {
	t := p.peek()
	switch t.Type {
	case IDENT:
		p.i++
		return &Identifier{Token: t, Name: t.Literal.(string)}, nil
	case INT:
		p.i++
		return &IntegerLiteral{Token: t, Value: t.Literal.(int64)}, nil
	case STRING:
		p.i++
		return &StringLiteral{Token: t, Value: t.Literal.(string)}, nil
	case TRUE, FALSE:
		p.i++
		return &BooleanLiteral{Token: t, Value: t.Type == TRUE}, nil
	case BANG, MINUS:
		p.i++
		right, err := p.parseExpression(precPrefix)
		if err != nil {
			return nil, err
		}
		return &PrefixExpression{Token: t, Operator: t.Lexeme, Right: right}, nil
	case LPAREN:
		p.i++
		inner, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case IF:
		return p.parseIfExpression()
	case FUNCTION:
		return p.parseFunctionLiteral()
	case LBRACKET:
		return p.parseArrayLiteral()
	case LBRACE:
		return p.parseHashLiteral()
	case ILLEGAL:
		p.i++
		return nil, &Diag{Kind: DiagLex, Msg: fmt.Sprintf("illegal token %q", t.Lexeme), Line: t.Line, Col: t.Col}
	case EOF:
		if p.interactive {
			return nil, &Diag{Kind: DiagIncomplete, Msg: "unexpected end of input", Line: t.Line, Col: t.Col}
		}
		return nil, p.errAt(t, "no prefix parse function for %s found", t.Type)
	default:
		p.i++
		return nil, p.errAt(t, "no prefix parse function for %s found", t.Type)
	}
}

func (p *parser) parseInfixExpression(left Expression) (Expression, error) {
	op := p.peek()
	prec := lbp(op.Type)
	p.i++
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &InfixExpression{Token: op, Operator: op.Lexeme, Left: left, Right: right}, nil
}

// ─────────────────────── dedicated prefix parse routines ────────────────────

func (p *parser) parseIfExpression() (Expression, error) {
	ifTok := p.peek()
	p.i++

	if _, err := p.need(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN); err != nil {
		return nil, err
	}

	consequence, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	var alternative *BlockStatement
	if p.match(ELSE) {
		alternative, err = p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
	}
	return &IfExpression{Token: ifTok, Condition: cond, Consequence: consequence, Alternative: alternative}, nil
}

func (p *parser) parseFunctionLiteral() (Expression, error) {
	fnTok := p.peek()
	p.i++

	if _, err := p.need(LPAREN); err != nil {
		return nil, err
	}

	var params []*Identifier
	if !p.match(RPAREN) {
		for {
			idTok, err := p.need(IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, &Identifier{Token: idTok, Name: idTok.Literal.(string)})
			if !p.match(COMMA) {
				break
			}
		}
		if _, err := p.need(RPAREN); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &FunctionLiteral{Token: fnTok, Parameters: params, Body: body}, nil
}

func (p *parser) parseArrayLiteral() (Expression, error) {
	bracketTok := p.peek()
	p.i++
	elems, err := p.parseExpressionList(RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ArrayLiteral{Token: bracketTok, Elements: elems}, nil
}

func (p *parser) parseHashLiteral() (Expression, error) {
	braceTok := p.peek()
	p.i++

	hash := &HashLiteral{Token: braceTok}
	for !p.match(RBRACE) {
		key, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		hash.Pairs = append(hash.Pairs, HashEntry{Key: key, Value: value})

		if !p.match(COMMA) {
			if _, err := p.need(RBRACE); err != nil {
				return nil, err
			}
			break
		}
	}
	return hash, nil
}

// ───────────────────────────── infix parse routines ─────────────────────────

func (p *parser) parseCallExpression(fn Expression) (Expression, error) {
	parenTok := p.peek()
	p.i++
	args, err := p.parseExpressionList(RPAREN)
	if err != nil {
		return nil, err
	}
	return &CallExpression{Token: parenTok, Function: fn, Arguments: args}, nil
}

func (p *parser) parseIndexExpression(left Expression) (Expression, error) {
	bracketTok := p.peek()
	p.i++
	idx, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RBRACKET); err != nil {
		return nil, err
	}
	return &IndexExpression{Token: bracketTok, Left: left, Index: idx}, nil
}

// parseExpressionList parses a comma-separated expression list whose opener
// has already been consumed, up to and including the closing token.
func (p *parser) parseExpressionList(close TokenType) ([]Expression, error) {
	if p.match(close) {
		return nil, nil
	}
	var out []Expression
	for {
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(close); err != nil {
		return nil, err
	}
	return out, nil
}
