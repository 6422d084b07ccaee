package cond

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/bahostetterlewis/PyBakUP/log"
)

// DefaultMaxDepth is the default limit on nested parentheses.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 64

// DefaultMaxLength is the default limit on the length of a condition in
// bytes. Users may modify this before parsing to change the default.
var DefaultMaxLength = 4096

// options holds the settings that affect the parse result.
// This type is gob-encodable for cache key hashing.
type options struct {
	maxDepth  int
	maxLength int
	noCache   bool
}

// Option configures parsing behavior.
type Option func(*AST)

// WithMaxDepth sets the maximum nesting depth of parentheses.
// Opening one parenthesis more than this is a [SyntaxError].
func WithMaxDepth(depth int) Option {
	return func(ast *AST) {
		ast.opts.maxDepth = depth
	}
}

// WithMaxLength sets the maximum length of a condition in bytes.
// A value of zero or less disables the limit.
func WithMaxLength(n int) Option {
	return func(ast *AST) {
		ast.opts.maxLength = n
	}
}

// WithoutCache parses every condition afresh instead of reusing the result
// of an earlier parse of the same text.
func WithoutCache() Option {
	return func(ast *AST) {
		ast.opts.noCache = true
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(ast *AST) {
		ast.logger = logger
	}
}

// applyDefaults sets default option values on an AST.
func applyDefaults(ast *AST) {
	ast.opts.maxDepth = DefaultMaxDepth
	ast.opts.maxLength = DefaultMaxLength
}

// applyOptions applies functional options to an AST.
func applyOptions(ast *AST, opts ...Option) {
	for _, opt := range opts {
		opt(ast)
	}
}

// Validate reports whether text is a well-formed condition.
// It never evaluates the condition, so a condition that is well-formed but
// ill-typed, such as "3 days && True", is valid.
func Validate(text string, opts ...Option) bool {
	_, err := Parse(text, opts...)

	return err == nil
}

// Parse parses text into an [AST] that may be evaluated any number of times.
// The error, if any, is a [*LexError] or a [*SyntaxError].
//
// Results are cached by text and options unless [WithoutCache] is given.
func Parse(text string, opts ...Option) (*AST, error) {
	return ParseContext(context.Background(), text, opts...)
}

// ParseContext is like [Parse] with a context for cancellation and logging.
// If ctx is already done, its error is returned and text is not parsed.
func ParseContext(ctx context.Context, text string, opts ...Option) (*AST, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tempAST AST

	applyDefaults(&tempAST)
	applyOptions(&tempAST, opts...)

	tempAST.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_bytes", len(text)),
		slog.Int("max_depth", tempAST.opts.maxDepth),
		slog.Bool("cache", !tempAST.opts.noCache),
	)

	if tempAST.opts.noCache {
		return parseString(ctx, text, opts...)
	}

	return parseStringCached(ctx, text, opts...)
}

// ParseReader reads a condition from r and parses it like [ParseContext].
// Leading and trailing white space, line breaks included, is ignored.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*AST, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseContext(ctx, string(bytes.TrimSpace(data)), opts...)
}

// Evaluate parses text and evaluates it against env, which must yield a
// Boolean decision. Parse errors and evaluation errors are both returned.
func Evaluate(text string, env Context, opts ...Option) (bool, error) {
	ast, err := Parse(text, opts...)
	if err != nil {
		return false, err
	}

	return ast.Decide(env)
}
