package cond

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Each typed error below unwraps to exactly one of these, so callers may
// classify a failure with errors.Is without a type switch.
var (
	ErrLex       = NewError("lexical error")
	ErrSyntax    = NewError("syntax error")
	ErrType      = NewError("type error")
	ErrContext   = NewError("context unavailable")
	ErrOverflow  = NewError("duration overflow")
	ErrReadInput = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error. An err that is itself an
// *Error is returned as is; any other error, including the typed errors of
// this package, becomes the cause of a new Error.
func WrapError(err error) *Error {
	if ee, ok := err.(*Error); ok {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>", "<msg>", "<err>" or "" depending on which fields are set.
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a sentinel with the same message.
// Errors derived from a sentinel with [Error.Wrap] or [Error.With] keep
// matching it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// LexError reports a character the tokenizer cannot start a token with, or
// an integer literal that does not fit in 64 bits.
type LexError struct {
	Reason string
	Pos    int  // byte offset into the input
	Char   rune // offending character
}

func (e *LexError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s at offset %d", e.Reason, e.Pos)
	}

	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.Pos)
}

func (e *LexError) Unwrap() error { return ErrLex }

func (e *LexError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrLex.msg),
		slog.String("reason", e.Error()),
		slog.Int("offset", e.Pos),
		slog.String("char", string(e.Char)),
	)
}

// SyntaxError reports a token sequence the grammar does not accept.
//
// Expected lists the token kinds that would have been accepted at Pos. It
// is empty when the failure is not about a specific token, such as an
// exceeded nesting depth, in which case Reason says what went wrong.
type SyntaxError struct {
	Reason   string
	Expected []Kind
	Found    Token
	Pos      int
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder

	sb.WriteString("at offset ")
	sb.WriteString(strconv.Itoa(e.Pos))
	sb.WriteString(": ")

	if e.Reason != "" {
		sb.WriteString(e.Reason)
	} else {
		sb.WriteString("unexpected ")
		sb.WriteString(e.Found.String())
	}

	if len(e.Expected) > 0 {
		sb.WriteString(", expected ")
		sb.WriteString(kindList(e.Expected))
	}

	return sb.String()
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

func (e *SyntaxError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrSyntax.msg),
		slog.Int("offset", e.Pos),
		slog.String("found", e.Found.String()),
	}

	if e.Reason != "" {
		attrs = append(attrs, slog.String("reason", e.Reason))
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.String("expected", kindList(e.Expected)))
	}

	return slog.GroupValue(attrs...)
}

// kindList renders kinds as "A, B or C".
func kindList(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}

	if len(names) == 1 {
		return names[0]
	}

	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// TypeError reports operands whose types an operator is not defined for.
//
// Operator is empty when the complaint is about the type of a whole
// condition, which must be Boolean; Right is then [TypeInvalid].
type TypeError struct {
	Operator string
	Left     Type
	Right    Type
}

func (e *TypeError) Error() string {
	if e.Operator == "" {
		return "condition yields " + e.Left.String() + ", want Boolean"
	}

	return fmt.Sprintf("operator %s not defined for %s and %s",
		e.Operator, e.Left, e.Right)
}

func (e *TypeError) Unwrap() error { return ErrType }

func (e *TypeError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrType.msg),
		slog.String("operator", e.Operator),
		slog.String("left", e.Left.String()),
		slog.String("right", e.Right.String()),
	)
}

// ContextError reports that the evaluation [Context] could not supply the
// signal a keyword refers to. Err is the cause returned by the Context.
type ContextError struct {
	Err     error
	Keyword KeywordKind
}

func (e *ContextError) Error() string {
	if e.Err == nil {
		return "no value for " + e.Keyword.String()
	}

	return "no value for " + e.Keyword.String() + ": " + e.Err.Error()
}

// Unwrap returns both the sentinel and the cause.
func (e *ContextError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrContext}
	}

	return []error{ErrContext, e.Err}
}

func (e *ContextError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrContext.msg),
		slog.String("keyword", e.Keyword.String()),
	}

	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}

// OverflowError reports duration arithmetic that does not fit in int64
// seconds.
type OverflowError struct {
	Operator string
	Left     int64
	Right    int64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%d %s %d overflows int64 seconds",
		e.Left, e.Operator, e.Right)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

func (e *OverflowError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrOverflow.msg),
		slog.String("operator", e.Operator),
		slog.Int64("left", e.Left),
		slog.Int64("right", e.Right),
	)
}

// IsParseError reports whether err came from lexing or parsing, as opposed
// to evaluation.
func IsParseError(err error) bool {
	return errors.Is(err, ErrLex) || errors.Is(err, ErrSyntax)
}
