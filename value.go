// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shell

import (
	"strconv"
	"strings"
)

// Type is the tag of a Value.
type Type int

const (
	Never Type = iota
	Void
	Bool
	Integer
	String
)

func (t Type) String() string {
	switch t {
	case Never:
		return "never"
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// stringBuf is the ref-counted, copy-on-write backing of an owned String
// value. A no-copy (borrowed) string never has one of these: it stores
// its bytes directly and is never mutated in place, matching spec.md
// 4.B's NoCopy variant.
type stringBuf struct {
	data []byte
	refs int
}

func newStringBuf(s string) *stringBuf {
	return &stringBuf{data: []byte(s), refs: 1}
}

func (b *stringBuf) retain() *stringBuf {
	b.refs++
	return b
}

func (b *stringBuf) release() {
	b.refs--
}

// Value is the single tagged-union currency of the evaluator: Never,
// Void, Bool, Integer, or String. It is a value type (not a pointer) so
// that copying a Value is cheap and explicit; String values additionally
// carry a reference to shared, copy-on-write backing storage.
//
// Grounded on the teacher's Value/Var split in expr.go/var.go (one Go
// type per variant there; here collapsed into a single sum type per
// spec.md's DESIGN NOTES "collapse into a single sum type" guidance) and
// on Commands/shell/Value.c's tagged union.
type Value struct {
	typ    Type
	b      bool
	i      int32
	buf    *stringBuf // non-nil when typ == String and !noCopy
	borrow []byte     // non-nil when typ == String and noCopy
	noCopy bool
}

// NewNever returns the bottom value: "no value produced".
func NewNever() Value { return Value{typ: Never} }

// NewVoid returns the unit value.
func NewVoid() Value { return Value{typ: Void} }

// NewBool returns a boolean Value.
func NewBool(b bool) Value { return Value{typ: Bool, b: b} }

// NewInteger returns an integer Value.
func NewInteger(i int32) Value { return Value{typ: Integer, i: i} }

// NewString returns an owned, ref-counted String value backed by a copy
// of s.
func NewString(s string) Value {
	return Value{typ: String, buf: newStringBuf(s)}
}

// NewNoCopyString returns a borrowed String value. The caller guarantees
// buf outlives the Value (e.g. string-pool or environment-array
// backing); it is never mutated in place and never ref-counted.
func NewNoCopyString(buf []byte) Value {
	return Value{typ: String, borrow: buf, noCopy: true}
}

// Copy returns a Value sharing this Value's backing (incrementing the
// ref count for owned strings; no-copy strings are shared by slice
// aliasing, which is safe because they are never mutated).
func (v Value) Copy() Value {
	if v.typ == String && !v.noCopy && v.buf != nil {
		v.buf.retain()
	}
	return v
}

// Release decrements the ref count of an owned String's backing. The
// zero value and no-copy strings are no-ops.
func (v Value) Release() {
	if v.typ == String && !v.noCopy && v.buf != nil {
		v.buf.release()
	}
}

// Type reports the Value's tag.
func (v Value) Type() Type { return v.typ }

// BoolVal returns the boolean payload; only meaningful when Type() == Bool.
func (v Value) BoolVal() bool { return v.b }

// IntVal returns the integer payload; only meaningful when Type() == Integer.
func (v Value) IntVal() int32 { return v.i }

// bytes returns the raw bytes of a String value regardless of
// ownership. Never mutate the returned slice.
func (v Value) bytes() []byte {
	if v.noCopy {
		return v.borrow
	}
	if v.buf != nil {
		return v.buf.data
	}
	return nil
}

// RawString returns the String payload's bytes as a Go string (a copy).
// Only meaningful when Type() == String.
func (v Value) RawString() string { return string(v.bytes()) }

// unique ensures the receiver's String backing is uniquely owned,
// copying on write if the ref count is shared or the value is a no-copy
// borrow. Called before any in-place mutation (Addition's concatenation
// materializes a new buffer anyway, but future in-place ops must call
// this first). Mirrors spec.md 4.B's copy-on-write invariant.
func (v Value) unique() Value {
	if v.typ != String {
		return v
	}
	if v.noCopy {
		return NewString(string(v.borrow))
	}
	if v.buf != nil && v.buf.refs > 1 {
		v.buf.release()
		return NewString(string(v.buf.data))
	}
	return v
}

// ToString converts any Value to its canonical string form: Bool ->
// "true"/"false", Integer -> base-10 with sign, Void/Never -> "",
// String -> itself.
func (v Value) ToString() string {
	switch v.typ {
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Integer:
		return strconv.FormatInt(int64(v.i), 10)
	case String:
		return v.RawString()
	default:
		return ""
	}
}

// MaxStringLen is an upper bound on len(v.ToString()), used by callers
// that want to size a buffer without formatting twice.
func (v Value) MaxStringLen() int {
	switch v.typ {
	case Bool:
		return 5 // "false"
	case Integer:
		return 11 // "-2147483648"
	case String:
		return len(v.bytes())
	default:
		return 0
	}
}

// ArrayToString concatenates the string forms of vs into one owned
// String Value, releasing each input Value as it is consumed. Used to
// reduce compound-string segments to one Value.
func ArrayToString(vs []Value) Value {
	var sb strings.Builder
	for i := range vs {
		sb.WriteString(vs[i].ToString())
		vs[i].Release()
	}
	return NewString(sb.String())
}

// UnaryOp applies a unary operator, returning a *Error(KindTypeMismatch)
// for unsupported (type, op) pairs.
func (v Value) UnaryOp(op UnaryOp) (Value, error) {
	switch {
	case v.typ == Integer && op == OpNegative:
		return NewInteger(-v.i), nil
	case v.typ == Bool && op == OpNot:
		return NewBool(!v.b), nil
	case op == OpPositive:
		return v, nil
	default:
		return Value{}, newError(KindTypeMismatch, Pos{}, "unary operator %v not defined for %v", op, v.typ)
	}
}

// UnaryOp is the kind of a unary operator.
type UnaryOp int

const (
	OpPositive UnaryOp = iota
	OpNegative
	OpNot
)

func (o UnaryOp) String() string {
	switch o {
	case OpPositive:
		return "+"
	case OpNegative:
		return "-"
	case OpNot:
		return "!"
	default:
		return "?"
	}
}

// BinaryOp is the kind of a binary operator.
type BinaryOp int

const (
	OpEquals BinaryOp = iota
	OpNotEquals
	OpLess
	OpLessEquals
	OpGreater
	OpGreaterEquals
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (o BinaryOp) String() string {
	switch o {
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpLess:
		return "<"
	case OpLessEquals:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEquals:
		return ">="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "?"
	}
}

// BinaryOpFn applies a binary operator to lhs and rhs, returning a new
// Value. lhs and rhs are both released by BinaryOpFn (the evaluator owns
// neither afterward; it keeps only the returned result). Ported from
// Commands/shell/Value.c's TUPLE_3 switch.
func BinaryOpFn(lhs, rhs Value, op BinaryOp) (Value, error) {
	defer lhs.Release()
	defer rhs.Release()

	switch op {
	case OpEquals, OpNotEquals:
		eq, ok := valuesEqual(lhs, rhs)
		if !ok {
			return Value{}, newError(KindTypeMismatch, Pos{}, "%v not comparable with %v", lhs.typ, rhs.typ)
		}
		if op == OpNotEquals {
			eq = !eq
		}
		return NewBool(eq), nil

	case OpLess, OpLessEquals, OpGreater, OpGreaterEquals:
		cmp, ok := compareValues(lhs, rhs)
		if !ok {
			return Value{}, newError(KindTypeMismatch, Pos{}, "%v not ordered with %v", lhs.typ, rhs.typ)
		}
		var b bool
		switch op {
		case OpLess:
			b = cmp < 0
		case OpLessEquals:
			b = cmp <= 0
		case OpGreater:
			b = cmp > 0
		case OpGreaterEquals:
			b = cmp >= 0
		}
		return NewBool(b), nil

	case OpAdd:
		if lhs.typ == Integer && rhs.typ == Integer {
			return NewInteger(lhs.i + rhs.i), nil
		}
		if lhs.typ == String && rhs.typ == String {
			return NewString(string(lhs.bytes()) + string(rhs.bytes())), nil
		}
		return Value{}, newError(KindTypeMismatch, Pos{}, "+ not defined for %v and %v", lhs.typ, rhs.typ)

	case OpSub:
		if lhs.typ == Integer && rhs.typ == Integer {
			return NewInteger(lhs.i - rhs.i), nil
		}
		return Value{}, newError(KindTypeMismatch, Pos{}, "- not defined for %v and %v", lhs.typ, rhs.typ)

	case OpMul:
		if lhs.typ == Integer && rhs.typ == Integer {
			return NewInteger(lhs.i * rhs.i), nil
		}
		return Value{}, newError(KindTypeMismatch, Pos{}, "* not defined for %v and %v", lhs.typ, rhs.typ)

	case OpDiv:
		if lhs.typ == Integer && rhs.typ == Integer {
			if rhs.i == 0 {
				return Value{}, newError(KindDivByZero, Pos{}, "division by zero")
			}
			return NewInteger(lhs.i / rhs.i), nil
		}
		return Value{}, newError(KindTypeMismatch, Pos{}, "/ not defined for %v and %v", lhs.typ, rhs.typ)

	case OpMod:
		if lhs.typ == Integer && rhs.typ == Integer {
			if rhs.i == 0 {
				return Value{}, newError(KindDivByZero, Pos{}, "modulo by zero")
			}
			return NewInteger(lhs.i % rhs.i), nil
		}
		return Value{}, newError(KindTypeMismatch, Pos{}, "%% not defined for %v and %v", lhs.typ, rhs.typ)

	default:
		return Value{}, newError(KindTypeMismatch, Pos{}, "unknown binary operator")
	}
}

func valuesEqual(lhs, rhs Value) (eq bool, ok bool) {
	switch {
	case lhs.typ == Bool && rhs.typ == Bool:
		return lhs.b == rhs.b, true
	case lhs.typ == Integer && rhs.typ == Integer:
		return lhs.i == rhs.i, true
	case lhs.typ == String && rhs.typ == String:
		return string(lhs.bytes()) == string(rhs.bytes()), true
	default:
		return false, false
	}
}

func compareValues(lhs, rhs Value) (cmp int, ok bool) {
	switch {
	case lhs.typ == Integer && rhs.typ == Integer:
		switch {
		case lhs.i < rhs.i:
			return -1, true
		case lhs.i > rhs.i:
			return 1, true
		default:
			return 0, true
		}
	case lhs.typ == String && rhs.typ == String:
		return strings.Compare(string(lhs.bytes()), string(rhs.bytes())), true
	default:
		return 0, false
	}
}
