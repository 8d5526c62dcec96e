package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits a query into tokens.
//
// It walks byte offsets into the input and decodes UTF-8 only where a token
// may hold non-ASCII text, so token values are slices of the input except for
// quoted literals, which have their escapes resolved.
type Lexer struct {
	input string
	start int // first byte of the token being scanned
	pos   int // next unread byte
}

// NewLexer returns a lexer positioned at the start of input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// symbols is matched in order, so two-character operators come first
var symbols = []struct {
	text string
	typ  TokenType
}{
	{"==", TokenEqual},
	{"!=", TokenNotEqual},
	{"<>", TokenNotEqual},
	{"<=", TokenLessEqual},
	{">=", TokenGreaterEqual},
	{"=", TokenEqual},
	{"<", TokenLess},
	{">", TokenGreater},
	{"(", TokenLParen},
	{")", TokenRParen},
	{",", TokenComma},
	{"*", TokenIdent},
}

var keywords = map[string]TokenType{
	"select": TokenSelect,
	"from":   TokenFrom,
	"where":  TokenWhere,
	"and":    TokenAnd,
	"or":     TokenOr,
	"not":    TokenNot,
	"in":     TokenIn,
	"is":     TokenIs,
	"null":   TokenNull,
	"group":  TokenGroup,
	"order":  TokenOrder,
	"by":     TokenBy,
	"asc":    TokenAsc,
	"desc":   TokenDesc,
	"limit":  TokenLimit,
	"offset": TokenOffset,
	"as":     TokenAs,
	"true":   TokenBool,
	"false":  TokenBool,
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// peek decodes the rune at pos without consuming it
func (l *Lexer) peek() (rune, int) {
	if l.atEnd() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

// acceptWhile consumes runes as long as ok holds
func (l *Lexer) acceptWhile(ok func(rune) bool) {
	for !l.atEnd() {
		r, size := l.peek()
		if !ok(r) {
			return
		}
		l.pos += size
	}
}

// text returns the bytes consumed since start
func (l *Lexer) text() string {
	return l.input[l.start:l.pos]
}

// NextToken scans one token. Unknown characters produce a TokenError.
func (l *Lexer) NextToken() Token {
	l.acceptWhile(unicode.IsSpace)
	l.start = l.pos
	if l.atEnd() {
		return Token{Type: TokenEOF, Value: ""}
	}

	rest := l.input[l.pos:]
	for _, sym := range symbols {
		if strings.HasPrefix(rest, sym.text) {
			l.pos += len(sym.text)
			return Token{Type: sym.typ, Value: sym.text}
		}
	}

	r, size := l.peek()
	switch {
	case r == '\'' || r == '"':
		return Token{Type: TokenString, Value: l.scanQuoted(r)}
	case r == '`':
		// backquoted names may hold spaces and punctuation
		return Token{Type: TokenIdent, Value: l.scanQuoted(r)}
	case isDigit(r), r == '-' && len(rest) > 1 && isDigit(rune(rest[1])):
		l.scanNumber()
		return Token{Type: TokenNumber, Value: l.text()}
	case identStart(r):
		l.acceptWhile(identPart)
		value := l.text()
		return Token{Type: identifierType(value), Value: value}
	default:
		l.pos += size
		return Token{Type: TokenError, Value: l.text()}
	}
}

// scanQuoted consumes a literal enclosed in quote and returns its content.
// A backslash escapes the next character; \n and \t are newline and tab.
// An unterminated literal runs to the end of the input.
func (l *Lexer) scanQuoted(quote rune) string {
	l.pos++ // opening quote

	var sb strings.Builder
	for !l.atEnd() {
		r, size := l.peek()
		l.pos += size
		if r == quote {
			break
		}
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		if l.atEnd() {
			break
		}
		esc, size := l.peek()
		l.pos += size
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			sb.WriteRune(esc)
		}
	}
	return sb.String()
}

// scanNumber consumes an optional minus, digits, an optional fraction and an
// optional exponent
func (l *Lexer) scanNumber() {
	if l.input[l.pos] == '-' {
		l.pos++
	}
	l.acceptWhile(isDigit)
	if !l.atEnd() && l.input[l.pos] == '.' {
		l.pos++
		l.acceptWhile(isDigit)
	}
	if l.pos+1 < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		next := l.pos + 1
		if c := l.input[next]; (c == '+' || c == '-') && next+1 < len(l.input) {
			next++
		}
		if isDigit(rune(l.input[next])) {
			l.pos = next
			l.acceptWhile(isDigit)
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// identStart also admits '/' and '.' so relative paths lex as one identifier
func identStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '/' || r == '.'
}

func identPart(r rune) bool {
	return identStart(r) || unicode.IsDigit(r) || r == '-' || r == '*'
}

// identifierType maps keywords, case-insensitively, to their token type
func identifierType(ident string) TokenType {
	if typ, ok := keywords[strings.ToLower(ident)]; ok {
		return typ
	}
	return TokenIdent
}

// Tokenize scans input up to and including the EOF or first error token
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			return tokens
		}
	}
}
