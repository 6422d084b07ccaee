// Package cond implements the backup condition language: a short expression
// stating when a file or folder is due for backup, such as
//
//	3 days
//	LastBU > 2 hours && Modified
//
// # Grammar
//
// Informal EBNF, operators listed from loosest to tightest binding:
//
//	Expr     → Expr '||' Expr
//	         | Expr '&&' Expr
//	         | Expr '==' Expr
//	         | Expr ('<' | '<=' | '>' | '>=') Expr
//	         | Expr '+' Expr
//	         | Primary
//	Primary  → '(' Expr ')' | Operand
//	Operand  → Integer Unit | 'LastBU' | 'Modified' | 'True' | 'False'
//	Unit     → 'month' | 'months' | 'mon'
//	         | 'day' | 'days' | 'd'
//	         | 'hour' | 'hours' | 'h'
//	         | 'minute' | 'minutes' | 'min'
//
// Every operator is left-associative. Blanks (space and tab) separate tokens
// and are otherwise ignored. Words are case-sensitive.
//
// # Types
//
// Every expression is either a Duration, counted in seconds, or a Boolean.
// There are no conversions between them:
//
//   - '+' adds two Durations.
//   - '<', '<=', '>' and '>=' compare two Durations.
//   - '==' compares two values of the same type.
//   - '&&' and '||' combine two Booleans, evaluating the right operand only
//     when the left does not decide the result.
//
// A month is 2629743 seconds, a day 86400, an hour 3600 and a minute 60.
//
// LastBU is the Duration since the last backup and Modified reports whether
// the item changed since then; both are supplied by a [Context] at
// evaluation time.
//
// # Errors
//
// Parsing fails with a [*LexError] or a [*SyntaxError]. Evaluation fails with
// a [*TypeError], a [*ContextError] or an [*OverflowError]. Each unwraps to
// one of the sentinel errors, so
//
//	errors.Is(err, cond.ErrSyntax)
//
// classifies a failure without a type switch.
package cond
