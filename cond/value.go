package cond

import "strconv"

// Type is the static or dynamic type of a [Value].
type Type int

const (
	TypeInvalid  Type = iota // Invalid
	TypeDuration             // Duration
	TypeBoolean              // Boolean
)

// Value is the result of evaluating a condition or any of its
// sub-expressions. It is either a Duration in whole seconds or a Boolean.
// There is no conversion between the two.
//
// The zero Value has type [TypeInvalid].
type Value struct {
	typ  Type
	secs int64
	bit  bool
}

// Duration returns a Duration value of secs seconds.
func Duration(secs int64) Value { return Value{typ: TypeDuration, secs: secs} }

// Boolean returns a Boolean value.
func Boolean(b bool) Value { return Value{typ: TypeBoolean, bit: b} }

// Type returns the variant held by v.
func (v Value) Type() Type { return v.typ }

// Seconds returns the duration held by v and whether v is a Duration.
func (v Value) Seconds() (int64, bool) { return v.secs, v.typ == TypeDuration }

// Bool returns the boolean held by v and whether v is a Boolean.
func (v Value) Bool() (bool, bool) { return v.bit, v.typ == TypeBoolean }

// String renders v the way it would be written in a condition, except that
// durations are shown in seconds with an "s" suffix.
func (v Value) String() string {
	switch v.typ {
	case TypeDuration:
		return strconv.FormatInt(v.secs, 10) + "s"
	case TypeBoolean:
		if v.bit {
			return "True"
		}

		return "False"
	default:
		return "<invalid>"
	}
}
