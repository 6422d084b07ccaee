package cond

//go:generate go tool stringer --linecomment --type Kind,Unit,KeywordKind,Op,Type --output kind_string.go

import "strconv"

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	TokenEOF Kind = iota // EOF
	TokenAnd             // AND
	TokenOr              // OR
	TokenEqual           // EQUAL
	TokenLess            // LESS
	TokenLessEqual       // LESS_EQUAL
	TokenGreater         // GREATER
	TokenGreatEqual      // GREAT_EQUAL
	TokenPlus            // PLUS
	TokenLParen          // LPAREN
	TokenRParen          // RPAREN
	TokenInt             // INT
	TokenTrue            // TRUE
	TokenFalse           // FALSE
	TokenMonth           // MONTH
	TokenDay             // DAY
	TokenHour            // HOUR
	TokenMinute          // MINUTE
	TokenLastBackup      // LAST_BACKUP
	TokenModified        // MODIFIED
)

// isUnit reports whether k is one of the time-unit kinds.
func (k Kind) isUnit() bool {
	return k == TokenMonth || k == TokenDay || k == TokenHour || k == TokenMinute
}

// Token is a single lexeme produced by the [Lexer].
// Pos is the byte offset of the first character of Lexeme in the input.
type Token struct {
	Lexeme string
	Pos    int
	Kind   Kind
	Int    int64 // decoded value of TokenInt tokens
}

// String returns a short description used in diagnostics.
func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}

	return t.Kind.String() + " " + strconv.Quote(t.Lexeme)
}

// keywords maps every accepted word to its kind. Words are matched
// case-sensitively and only as whole runs of letters.
var keywords = map[string]Kind{
	"True":     TokenTrue,
	"False":    TokenFalse,
	"LastBU":   TokenLastBackup,
	"Modified": TokenModified,

	"month":  TokenMonth,
	"months": TokenMonth,
	"mon":    TokenMonth,

	"day":  TokenDay,
	"days": TokenDay,
	"d":    TokenDay,

	"hour":  TokenHour,
	"hours": TokenHour,
	"h":     TokenHour,

	"minute":  TokenMinute,
	"minutes": TokenMinute,
	"min":     TokenMinute,
}
