package cond

import (
	"strconv"
	"unicode/utf8"
)

// Lexer splits a condition into tokens on demand.
//
// The zero value is not usable; construct with [NewLexer].
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a [Lexer] positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token of the input.
//
// Once the input is exhausted, Next returns a [TokenEOF] token positioned at
// len(input), and keeps returning it on every subsequent call.
func (l *Lexer) Next() (Token, error) {
	l.skipBlank()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: len(l.input)}, nil
	}

	start := l.pos
	c := l.input[start]

	switch {
	case isDigit(c):
		return l.lexInt()

	case isLetter(c):
		return l.lexWord()
	}

	switch c {
	case '&':
		return l.pair('&', TokenAnd, TokenEOF)
	case '|':
		return l.pair('|', TokenOr, TokenEOF)
	case '=':
		return l.pair('=', TokenEqual, TokenEOF)
	case '<':
		return l.pair('=', TokenLessEqual, TokenLess)
	case '>':
		return l.pair('=', TokenGreatEqual, TokenGreater)
	case '+':
		return l.single(TokenPlus), nil
	case '(':
		return l.single(TokenLParen), nil
	case ')':
		return l.single(TokenRParen), nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[start:])

	return Token{}, &LexError{Pos: start, Char: r}
}

func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) single(kind Kind) Token {
	tok := Token{Kind: kind, Lexeme: l.input[l.pos : l.pos+1], Pos: l.pos}
	l.pos++

	return tok
}

// pair lexes a character that may be followed by second.
// If it is, the two-character token has kind long. Otherwise the token is
// the single character with kind short, or a LexError when short is
// TokenEOF (the character has no meaning alone).
func (l *Lexer) pair(second byte, long, short Kind) (Token, error) {
	start := l.pos

	if start+1 < len(l.input) && l.input[start+1] == second {
		l.pos += 2

		return Token{Kind: long, Lexeme: l.input[start:l.pos], Pos: start}, nil
	}

	if short == TokenEOF {
		return Token{}, &LexError{
			Pos:    start,
			Char:   rune(l.input[start]),
			Reason: "incomplete operator " + strconv.Quote(l.input[start:start+1]),
		}
	}

	return l.single(short), nil
}

func (l *Lexer) lexInt() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}

	lexeme := l.input[start:l.pos]

	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return Token{}, &LexError{
			Pos:    start,
			Char:   rune(lexeme[0]),
			Reason: "integer " + lexeme + " out of range",
		}
	}

	return Token{Kind: TokenInt, Lexeme: lexeme, Pos: start, Int: n}, nil
}

// lexWord consumes a maximal run of ASCII letters. The run must spell one
// of the keywords exactly.
func (l *Lexer) lexWord() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
		l.pos++
	}

	lexeme := l.input[start:l.pos]

	kind, ok := keywords[lexeme]
	if !ok {
		return Token{}, &LexError{
			Pos:    start,
			Char:   rune(lexeme[0]),
			Reason: "unknown word " + strconv.Quote(lexeme),
		}
	}

	return Token{Kind: kind, Lexeme: lexeme, Pos: start}, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Tokenize splits input into tokens. The returned slice always ends with a
// single [TokenEOF] token.
func Tokenize(input string) ([]Token, error) {
	lex := NewLexer(input)

	var tokens []Token

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)

		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}
