package cond

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
)

// operandKinds are the token kinds that may begin an operand.
var operandKinds = []Kind{
	TokenLParen, TokenInt, TokenTrue, TokenFalse, TokenLastBackup, TokenModified,
}

// unitKinds are the token kinds accepted after an integer.
var unitKinds = []Kind{TokenMonth, TokenDay, TokenHour, TokenMinute}

// ParseTokens builds an [AST] from a token sequence such as the one returned
// by [Tokenize]. A sequence missing its trailing EOF token is treated as if
// it had one.
//
// ParseTokens never consults the parse cache, and the returned AST has an
// empty Source.
func ParseTokens(tokens []Token, opts ...Option) (*AST, error) {
	ast := new(AST)

	applyDefaults(ast)
	applyOptions(ast, opts...)

	root, err := parseTokens(tokens, ast.opts.maxDepth)
	if err != nil {
		return nil, err
	}

	ast.Root = root

	return ast, nil
}

// parseTokens is the parser proper; it is shared by the cached and uncached
// entry points.
func parseTokens(tokens []Token, maxDepth int) (Node, error) {
	p := &parser{tokens: tokens, maxDepth: maxDepth}

	root, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, &SyntaxError{
			Pos:      tok.Pos,
			Found:    tok,
			Expected: []Kind{TokenEOF},
		}
	}

	return root, nil
}

// parser holds the parser state.
type parser struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
}

// peek returns the current token without consuming it.
func (p *parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}

	end := 0
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		end = last.Pos + len(last.Lexeme)
	}

	return Token{Kind: TokenEOF, Pos: end}
}

// advance consumes and returns the current token.
func (p *parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.pos++
	}

	return tok
}

// parseExpr parses a sequence of operands joined by operators that bind at
// least as tightly as minPrec.
//
// The right operand of each operator is parsed with a minimum one above the
// operator's own precedence, which makes every level left-associative.
func (p *parser) parseExpr(minPrec int) (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOps[p.peek().Kind]
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}

		p.advance()

		right, err := p.parseExpr(op.Precedence() + 1)
		if err != nil {
			return nil, err
		}

		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

// parsePrimary parses a parenthesized expression or a single operand.
func (p *parser) parsePrimary() (Node, error) {
	tok := p.advance()

	switch tok.Kind {
	case TokenLParen:
		return p.parseGroup(tok)

	case TokenInt:
		unit := p.peek()
		if !unit.Kind.isUnit() {
			return nil, &SyntaxError{
				Pos:      unit.Pos,
				Found:    unit,
				Expected: slices.Clone(unitKinds),
			}
		}

		p.advance()

		return TimeSpan{Count: tok.Int, Unit: unitOf(unit.Kind)}, nil

	case TokenTrue:
		return Literal{Value: Boolean(true)}, nil

	case TokenFalse:
		return Literal{Value: Boolean(false)}, nil

	case TokenLastBackup:
		return Keyword{Name: LastBackupAge}, nil

	case TokenModified:
		return Keyword{Name: ModifiedSinceLastBackup}, nil

	default:
		return nil, &SyntaxError{
			Pos:      tok.Pos,
			Found:    tok,
			Expected: slices.Clone(operandKinds),
		}
	}
}

// parseGroup parses the remainder of a parenthesized expression whose
// opening parenthesis is open. Groups produce no node of their own.
func (p *parser) parseGroup(open Token) (Node, error) {
	if p.depth >= p.maxDepth {
		return nil, &SyntaxError{
			Pos:    open.Pos,
			Found:  open,
			Reason: "maximum nesting depth exceeded",
		}
	}

	p.depth++
	defer func() { p.depth-- }()

	inner, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}

	if tok := p.advance(); tok.Kind != TokenRParen {
		return nil, &SyntaxError{
			Pos:      tok.Pos,
			Found:    tok,
			Expected: []Kind{TokenRParen},
		}
	}

	return inner, nil
}

// parseString lexes and parses source without consulting the cache.
func parseString(ctx context.Context, source string, opts ...Option) (*AST, error) {
	ast := new(AST)

	applyDefaults(ast)
	applyOptions(ast, opts...)

	ast.Source = source

	if n := ast.opts.maxLength; n > 0 && len(source) > n {
		return nil, &SyntaxError{
			Pos:    n,
			Found:  Token{Kind: TokenEOF, Pos: n},
			Reason: "condition longer than " + strconv.Itoa(n) + " bytes",
		}
	}

	tokens, err := Tokenize(source)
	if err != nil {
		ast.logger.TraceContext(ctx, "lex failed", slog.Any("error", err))

		return nil, err
	}

	root, err := parseTokens(tokens, ast.opts.maxDepth)
	if err != nil {
		ast.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	ast.Root = root

	ast.logger.TraceContext(ctx, "parse complete",
		slog.Int("token_count", len(tokens)),
		slog.Int("depth", ast.Depth()))

	return ast, nil
}
