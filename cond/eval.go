package cond

import (
	"log/slog"
	"math"
)

// Context supplies the signals that keywords refer to.
//
// A Context is consulted only when evaluation reaches a keyword, and at most
// once per keyword occurrence. A method returning a non-nil error makes the
// evaluation fail with a [*ContextError] wrapping that error.
type Context interface {
	// LastBackupAge returns the time since the last backup in seconds.
	LastBackupAge() (int64, error)
	// WasModifiedSinceLastBackup reports whether the item changed since its
	// last backup.
	WasModifiedSinceLastBackup() (bool, error)
}

// StaticContext is a [Context] with fixed answers.
type StaticContext struct {
	Age      int64
	Modified bool
}

func (c StaticContext) LastBackupAge() (int64, error) { return c.Age, nil }

func (c StaticContext) WasModifiedSinceLastBackup() (bool, error) {
	return c.Modified, nil
}

// Eval evaluates the tree rooted at node against env.
//
// The tree is type-checked before anything is evaluated, so an ill-typed
// tree fails with a [*TypeError] even where short-circuiting would have
// skipped the offending operand, and env is not consulted at all.
func Eval(node Node, env Context) (Value, error) {
	if _, err := typeOf(node); err != nil {
		return Value{}, err
	}

	return eval(node, env)
}

// Eval evaluates the condition against env and returns its value, which may
// be a Duration or a Boolean.
func (a *AST) Eval(env Context) (Value, error) {
	v, err := Eval(a.Root, env)
	if err != nil {
		a.logger.Trace("eval failed",
			slog.String("source", a.Source),
			slog.Any("error", err))

		return Value{}, err
	}

	a.logger.Trace("eval complete",
		slog.String("source", a.Source),
		slog.String("value", v.String()))

	return v, nil
}

// Decide evaluates the condition against env and returns its Boolean result.
// A condition whose value is a Duration fails with a [*TypeError] that has
// an empty Operator.
func (a *AST) Decide(env Context) (bool, error) {
	if err := a.Check(); err != nil {
		return false, err
	}

	v, err := a.Eval(env)
	if err != nil {
		return false, err
	}

	b, _ := v.Bool()

	return b, nil
}

// Type returns the static type of the condition, or the first [*TypeError]
// found in it.
func (a *AST) Type() (Type, error) { return typeOf(a.Root) }

// Check reports the first [*TypeError] in the condition without evaluating
// it. A condition that is well-typed but yields a Duration is also an error.
func (a *AST) Check() error {
	t, err := a.Type()
	if err != nil {
		return err
	}

	if t != TypeBoolean {
		return &TypeError{Left: t}
	}

	return nil
}

// resultType returns the type op produces for operands of type l and r.
func resultType(op Op, l, r Type) (Type, error) {
	switch op {
	case OpAnd, OpOr:
		if l == TypeBoolean && r == TypeBoolean {
			return TypeBoolean, nil
		}

	case OpAdd:
		if l == TypeDuration && r == TypeDuration {
			return TypeDuration, nil
		}

	case OpLt, OpLe, OpGt, OpGe:
		if l == TypeDuration && r == TypeDuration {
			return TypeBoolean, nil
		}

	case OpEq:
		if l == r && l != TypeInvalid {
			return TypeBoolean, nil
		}
	}

	return TypeInvalid, &TypeError{Operator: op.String(), Left: l, Right: r}
}

// typeOf computes the static type of n, checking operands bottom-up and
// left to right.
func typeOf(n Node) (Type, error) {
	switch n := n.(type) {
	case Literal:
		return n.Value.Type(), nil

	case TimeSpan:
		return TypeDuration, nil

	case Keyword:
		return n.Name.Type(), nil

	case BinaryOp:
		l, err := typeOf(n.Left)
		if err != nil {
			return TypeInvalid, err
		}

		r, err := typeOf(n.Right)
		if err != nil {
			return TypeInvalid, err
		}

		return resultType(n.Op, l, r)

	default:
		return TypeInvalid, &TypeError{Operator: "", Left: TypeInvalid}
	}
}

func eval(n Node, env Context) (Value, error) {
	switch n := n.(type) {
	case Literal:
		return n.Value, nil

	case TimeSpan:
		return reduce(n)

	case Keyword:
		return lookup(n.Name, env)

	case BinaryOp:
		return evalBinary(n, env)

	default:
		return Value{}, &TypeError{Left: TypeInvalid}
	}
}

// reduce converts a time span to a Duration.
func reduce(n TimeSpan) (Value, error) {
	secs, ok := mul(n.Count, n.Unit.Seconds())
	if !ok {
		return Value{}, &OverflowError{
			Operator: "*",
			Left:     n.Count,
			Right:    n.Unit.Seconds(),
		}
	}

	return Duration(secs), nil
}

func lookup(k KeywordKind, env Context) (Value, error) {
	if env == nil {
		return Value{}, &ContextError{Keyword: k}
	}

	switch k {
	case LastBackupAge:
		age, err := env.LastBackupAge()
		if err != nil {
			return Value{}, &ContextError{Keyword: k, Err: err}
		}

		return Duration(age), nil

	default:
		mod, err := env.WasModifiedSinceLastBackup()
		if err != nil {
			return Value{}, &ContextError{Keyword: k, Err: err}
		}

		return Boolean(mod), nil
	}
}

func evalBinary(n BinaryOp, env Context) (Value, error) {
	left, err := eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}

	// The right operand of && and || is skipped when the left decides.
	if lb, ok := left.Bool(); ok {
		if (n.Op == OpAnd && !lb) || (n.Op == OpOr && lb) {
			return left, nil
		}
	}

	right, err := eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}

	if _, err := resultType(n.Op, left.Type(), right.Type()); err != nil {
		return Value{}, err
	}

	switch n.Op {
	case OpAnd, OpOr:
		// Left did not decide, so right does.
		return right, nil

	case OpEq:
		return Boolean(left == right), nil

	case OpAdd:
		sum, ok := add(left.secs, right.secs)
		if !ok {
			return Value{}, &OverflowError{
				Operator: "+",
				Left:     left.secs,
				Right:    right.secs,
			}
		}

		return Duration(sum), nil

	case OpLt:
		return Boolean(left.secs < right.secs), nil
	case OpLe:
		return Boolean(left.secs <= right.secs), nil
	case OpGt:
		return Boolean(left.secs > right.secs), nil
	default:
		return Boolean(left.secs >= right.secs), nil
	}
}

// add returns a+b and whether it fits in an int64.
func add(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}

	return a + b, true
}

// mul returns a*b for non-negative a and positive b, and whether it fits in
// an int64.
func mul(a, b int64) (int64, bool) {
	if a < 0 || b <= 0 || a > math.MaxInt64/b {
		return 0, false
	}

	return a * b, true
}
