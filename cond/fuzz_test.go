package cond

import (
	"errors"
	"testing"
)

func addSeeds(f *testing.F) {
	f.Helper()

	f.Add("3 days")
	f.Add("LastBU > 2 hours && Modified")
	f.Add("True || False && False")
	f.Add("(1 month + 1 d) >= LastBU == Modified")
	f.Add("((((True))))")
	f.Add("3 dayz")
	f.Add("&& &")
	f.Add("99999999999999999999 min")
	f.Add("")
}

// FuzzTokenize checks that the lexer never panics and that successful
// results are well-formed.
func FuzzTokenize(f *testing.F) {
	addSeeds(f)

	f.Fuzz(func(t *testing.T, input string) {
		tokens, err := Tokenize(input)
		if err != nil {
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("error %T is not *LexError", err)
			}

			if lexErr.Pos < 0 || lexErr.Pos >= len(input) {
				t.Fatalf("error offset %d outside input of length %d",
					lexErr.Pos, len(input))
			}

			return
		}

		last := tokens[len(tokens)-1]
		if last.Kind != TokenEOF || last.Pos != len(input) {
			t.Fatalf("last token %v at %d, want EOF at %d", last, last.Pos, len(input))
		}

		prev := -1

		for _, tok := range tokens[:len(tokens)-1] {
			if tok.Pos <= prev {
				t.Fatalf("token %v at %d does not advance past %d", tok, tok.Pos, prev)
			}

			if input[tok.Pos:tok.Pos+len(tok.Lexeme)] != tok.Lexeme {
				t.Fatalf("lexeme %q does not match input at %d", tok.Lexeme, tok.Pos)
			}

			prev = tok.Pos
		}
	})
}

// FuzzParse checks that parsing never panics, that every failure is a parse
// error, and that rendering a parsed condition round-trips.
func FuzzParse(f *testing.F) {
	addSeeds(f)

	f.Fuzz(func(t *testing.T, input string) {
		ast, err := Parse(input, WithoutCache())
		if err != nil {
			if !IsParseError(err) {
				t.Fatalf("Parse error %v is not a parse error", err)
			}

			if Validate(input) {
				t.Fatal("Validate accepted input that Parse rejected")
			}

			return
		}

		again, err := Parse(ast.String(), WithoutCache(), WithMaxLength(0))
		if err != nil {
			t.Fatalf("re-parse of %q: %v", ast.String(), err)
		}

		if !ast.Equal(again) {
			t.Fatalf("round trip changed %q into %q", input, again.String())
		}

		// Evaluation must terminate with a value or a typed error.
		_, err = ast.Eval(StaticContext{Age: 1})
		if err != nil && !errors.Is(err, ErrType) && !errors.Is(err, ErrOverflow) {
			t.Fatalf("Eval error %v has no evaluation class", err)
		}
	})
}
