// lexer.go — tokenizer for Monkey source text.
//
// The lexer walks the raw byte buffer exactly once and hands out immutable
// Tokens. It needs one byte of lookahead, and only to disambiguate the
// two-character operators "==" and "!=". Whitespace and '//' line comments
// are skipped silently. Characters that fit no rule become ILLEGAL tokens
// carrying the offending text; they are non-fatal here and surface later as
// parse errors.
//
// Calling NextToken past end-of-input keeps returning EOF tokens, so the
// parser never has to special-case a drained stream.
package monk

import (
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Delimiters
	LPAREN   // "("
	RPAREN   // ")"
	LBRACE   // "{"
	RBRACE   // "}"
	LBRACKET // "["
	RBRACKET // "]"
	COMMA    // ","
	SEMICOLON
	COLON

	// Operators
	ASSIGN   // "="
	PLUS     // "+"
	MINUS    // "-"
	BANG     // "!"
	ASTERISK // "*"
	SLASH    // "/"
	LT       // "<"
	GT       // ">"
	EQ       // "=="
	NOT_EQ   // "!="

	// Literals & identifiers
	IDENT
	INT
	STRING

	// Keywords
	FUNCTION
	LET
	TRUE
	FALSE
	IF
	ELSE
	RETURN
)

var tokenNames = map[TokenType]string{
	EOF:       "EOF",
	ILLEGAL:   "ILLEGAL",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	BANG:      "!",
	ASTERISK:  "*",
	SLASH:     "/",
	LT:        "<",
	GT:        ">",
	EQ:        "==",
	NOT_EQ:    "!=",
	IDENT:     "IDENT",
	INT:       "INT",
	STRING:    "STRING",
	FUNCTION:  "fn",
	LET:       "let",
	TRUE:      "true",
	FALSE:     "false",
	IF:        "if",
	ELSE:      "else",
	RETURN:    "return",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is a lexical token with optional literal value.
type Token struct {
	Type      TokenType
	Lexeme    string      // raw text slice
	Literal   interface{} // parsed value for INT (int64) and STRING (decoded string)
	Line      int         // 1-based
	Col       int         // 0-based column within line
	StartByte int
	EndByte   int
}

// keywords map; identifiers are checked against it by exact match.
var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// Lexer scans a Monkey source string into tokens.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekNext() (byte, bool) {
	if l.cur+1 >= len(l.src) {
		return 0, false
	}
	return l.src[l.cur+1], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) makeToken(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:      tt,
		Lexeme:    l.src[l.start:l.cur],
		Literal:   lit,
		Line:      l.tokStartLine,
		Col:       l.tokStartCol,
		StartByte: l.start,
		EndByte:   l.cur,
	}
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		case '/':
			if next, ok := l.peekNext(); ok && next == '/' {
				for {
					b, ok := l.peek()
					if !ok || b == '\n' {
						break
					}
					l.advance()
				}
				l.start = l.cur
				continue
			}
			return
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// scanIdentifier consumes [A-Za-z_][A-Za-z0-9_]* (first byte already known good).
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanString decodes a double-quoted literal. The opening quote is already
// consumed. An unterminated string or bad escape yields (_, false); the
// caller emits an ILLEGAL token covering the fragment.
func (l *Lexer) scanString() (string, bool) {
	var out []byte
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			return string(out), true
		}
		if ch == '\\' {
			esc, ok := l.advance()
			if !ok {
				return "", false
			}
			switch esc {
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			default:
				return "", false
			}
			continue
		}
		out = append(out, ch)
	}
	return "", false
}

// NextToken returns the next token, advancing through the input exactly once.
// After end-of-input it keeps returning EOF tokens.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.makeToken(EOF, nil)
	}

	ch, _ := l.advance()

	switch ch {
	case '(':
		return l.makeToken(LPAREN, nil)
	case ')':
		return l.makeToken(RPAREN, nil)
	case '{':
		return l.makeToken(LBRACE, nil)
	case '}':
		return l.makeToken(RBRACE, nil)
	case '[':
		return l.makeToken(LBRACKET, nil)
	case ']':
		return l.makeToken(RBRACKET, nil)
	case ',':
		return l.makeToken(COMMA, nil)
	case ';':
		return l.makeToken(SEMICOLON, nil)
	case ':':
		return l.makeToken(COLON, nil)
	case '+':
		return l.makeToken(PLUS, nil)
	case '-':
		return l.makeToken(MINUS, nil)
	case '*':
		return l.makeToken(ASTERISK, nil)
	case '/':
		return l.makeToken(SLASH, nil)
	case '<':
		return l.makeToken(LT, nil)
	case '>':
		return l.makeToken(GT, nil)
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.makeToken(EQ, nil)
		}
		return l.makeToken(ASSIGN, nil)
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.makeToken(NOT_EQ, nil)
		}
		return l.makeToken(BANG, nil)
	case '"':
		text, ok := l.scanString()
		if !ok {
			return l.makeToken(ILLEGAL, nil)
		}
		return l.makeToken(STRING, text)
	}

	if isDigit(ch) {
		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
		v, err := strconv.ParseInt(l.src[l.start:l.cur], 10, 64)
		if err != nil {
			return l.makeToken(ILLEGAL, nil)
		}
		return l.makeToken(INT, v)
	}

	if isAlpha(ch) {
		lex := l.scanIdentifier()
		if tt, ok := keywords[lex]; ok {
			return l.makeToken(tt, nil)
		}
		return l.makeToken(IDENT, lex)
	}

	return l.makeToken(ILLEGAL, nil)
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			tracer().Debugf("lexer: scanned %d token(s)", len(toks))
			return toks
		}
	}
}
