package cond

import (
	"strconv"

	"github.com/bahostetterlewis/PyBakUP/log"
)

// Node is a node of a condition's syntax tree.
//
// Every implementation is a comparable value type, so two trees are
// structurally equal exactly when their roots compare equal with ==.
type Node interface {
	String() string
	node()
}

// Literal is a constant True or False.
type Literal struct {
	Value Value
}

// TimeSpan is a count of time units, such as "3 days". It is reduced to a
// Duration in seconds during evaluation.
type TimeSpan struct {
	Count int64
	Unit  Unit
}

// Keyword is a value supplied by the evaluation [Context].
type Keyword struct {
	Name KeywordKind
}

// BinaryOp applies Op to the values of Left and Right.
type BinaryOp struct {
	Left  Node
	Right Node
	Op    Op
}

func (Literal) node()  {}
func (TimeSpan) node() {}
func (Keyword) node()  {}
func (BinaryOp) node() {}

// Unit is a time unit of a [TimeSpan].
type Unit int

const (
	UnitMonth  Unit = iota // month
	UnitDay                // day
	UnitHour               // hour
	UnitMinute             // minute
)

// Seconds per unit. A month is 30.436875 days, truncated to whole seconds.
const (
	SecondsPerMonth  = 2629743
	SecondsPerDay    = 86400
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

var unitInfo = [...]struct {
	secs int64
	kind Kind
}{
	UnitMonth:  {SecondsPerMonth, TokenMonth},
	UnitDay:    {SecondsPerDay, TokenDay},
	UnitHour:   {SecondsPerHour, TokenHour},
	UnitMinute: {SecondsPerMinute, TokenMinute},
}

// Seconds returns the length of one unit in seconds.
func (u Unit) Seconds() int64 { return unitInfo[u].secs }

// unitOf maps a unit token kind to its Unit.
func unitOf(k Kind) Unit {
	for u, info := range unitInfo {
		if info.kind == k {
			return Unit(u)
		}
	}

	panic("cond: not a unit kind: " + k.String())
}

// KeywordKind names a signal supplied by the evaluation [Context].
type KeywordKind int

// The String form of a KeywordKind is the keyword as written in a
// condition.
const (
	// LastBackupAge is the Duration since the last backup.
	LastBackupAge KeywordKind = iota // LastBU
	// ModifiedSinceLastBackup is the Boolean change signal.
	ModifiedSinceLastBackup // Modified
)

// Type returns the type of the value the keyword evaluates to.
func (k KeywordKind) Type() Type {
	if k == LastBackupAge {
		return TypeDuration
	}

	return TypeBoolean
}

// Op is a binary operator.
type Op int

// The String form of an Op is its symbol, e.g. "&&".
const (
	OpOr  Op = iota // ||
	OpAnd           // &&
	OpEq            // ==
	OpLt            // <
	OpLe            // <=
	OpGt            // >
	OpGe            // >=
	OpAdd           // +
)

var opPrec = [...]int{
	OpOr:  1,
	OpAnd: 2,
	OpEq:  3,
	OpLt:  4,
	OpLe:  4,
	OpGt:  4,
	OpGe:  4,
	OpAdd: 5,
}

// Precedence returns the binding strength of o. Higher binds tighter.
func (o Op) Precedence() int { return opPrec[o] }

// binaryOps maps operator token kinds to operators.
var binaryOps = map[Kind]Op{
	TokenOr:         OpOr,
	TokenAnd:        OpAnd,
	TokenEqual:      OpEq,
	TokenLess:       OpLt,
	TokenLessEqual:  OpLe,
	TokenGreater:    OpGt,
	TokenGreatEqual: OpGe,
	TokenPlus:       OpAdd,
}

// AST is a parsed condition. It is immutable and safe for concurrent use.
type AST struct {
	Root   Node
	Source string

	logger log.Logger
	opts   options
}

// Equal reports whether a and b have structurally equal trees.
// The source text is not compared.
func (a *AST) Equal(b *AST) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Root == b.Root
}

// Depth returns the height of the tree; a single operand has depth 1.
func (a *AST) Depth() int { return depth(a.Root) }

func depth(n Node) int {
	b, ok := n.(BinaryOp)
	if !ok {
		return 1
	}

	return 1 + max(depth(b.Left), depth(b.Right))
}

func (n Literal) String() string { return n.Value.String() }

func (n TimeSpan) String() string {
	name := n.Unit.String()
	if n.Count != 1 {
		name += "s"
	}

	return strconv.FormatInt(n.Count, 10) + " " + name
}

func (n Keyword) String() string { return n.Name.String() }
