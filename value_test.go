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

import "testing"

func TestValueToString(t *testing.T) {
	for _, tc := range []struct {
		v    Value
		want string
	}{
		{NewVoid(), ""},
		{NewNever(), ""},
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewInteger(-7), "-7"},
		{NewString("hi"), "hi"},
	} {
		if got := tc.v.ToString(); got != tc.want {
			t.Errorf("ToString() = %q, want %q", got, tc.want)
		}
	}
}

func TestValueCopyRetainsSharedBacking(t *testing.T) {
	v := NewString("shared")
	cp := v.Copy()
	if cp.RawString() != "shared" {
		t.Fatalf("Copy().RawString() = %q, want shared", cp.RawString())
	}
	// Releasing one copy must not invalidate the other.
	cp.Release()
	if v.RawString() != "shared" {
		t.Errorf("original value corrupted after releasing its copy: got %q", v.RawString())
	}
	v.Release()
}

func TestValueUniqueCopiesBorrowedString(t *testing.T) {
	backing := []byte("borrowed")
	v := NewNoCopyString(backing)
	u := v.unique()
	if u.Type() != String || u.RawString() != "borrowed" {
		t.Fatalf("unique() = %v, want an owned String(borrowed)", u)
	}
	backing[0] = 'X'
	if u.RawString() != "borrowed" {
		t.Errorf("unique() result aliases the borrowed backing: got %q after mutation", u.RawString())
	}
}

func TestUnaryOp(t *testing.T) {
	v, err := NewInteger(5).UnaryOp(OpNegative)
	if err != nil || v.IntVal() != -5 {
		t.Errorf("UnaryOp(5, negative) = %v, %v; want -5, nil", v, err)
	}
	v, err = NewBool(true).UnaryOp(OpNot)
	if err != nil || v.BoolVal() != false {
		t.Errorf("UnaryOp(true, not) = %v, %v; want false, nil", v, err)
	}
	if _, err := NewString("x").UnaryOp(OpNegative); err == nil {
		t.Errorf("UnaryOp(string, negative) = nil error, want TypeMismatch")
	}
}

func TestBinaryOpFnArithmetic(t *testing.T) {
	for _, tc := range []struct {
		lhs, rhs Value
		op       BinaryOp
		want     int32
	}{
		{NewInteger(2), NewInteger(3), OpAdd, 5},
		{NewInteger(5), NewInteger(3), OpSub, 2},
		{NewInteger(4), NewInteger(3), OpMul, 12},
		{NewInteger(10), NewInteger(3), OpDiv, 3},
		{NewInteger(10), NewInteger(3), OpMod, 1},
	} {
		v, err := BinaryOpFn(tc.lhs, tc.rhs, tc.op)
		if err != nil {
			t.Fatalf("BinaryOpFn(%v, %v, %v): %v", tc.lhs, tc.rhs, tc.op, err)
		}
		if got := v.IntVal(); got != tc.want {
			t.Errorf("BinaryOpFn(%v): got %d, want %d", tc.op, got, tc.want)
		}
	}
}

func TestBinaryOpFnDivByZero(t *testing.T) {
	if _, err := BinaryOpFn(NewInteger(1), NewInteger(0), OpDiv); err == nil {
		t.Errorf("BinaryOpFn(1/0) = nil error, want DivByZero")
	}
	if _, err := BinaryOpFn(NewInteger(1), NewInteger(0), OpMod); err == nil {
		t.Errorf("BinaryOpFn(1%%0) = nil error, want DivByZero")
	}
}

func TestBinaryOpFnStringConcatenation(t *testing.T) {
	v, err := BinaryOpFn(NewString("foo"), NewString("bar"), OpAdd)
	if err != nil || v.RawString() != "foobar" {
		t.Errorf(`BinaryOpFn("foo"+"bar") = %v, %v; want "foobar", nil`, v, err)
	}
}

func TestBinaryOpFnComparison(t *testing.T) {
	v, err := BinaryOpFn(NewInteger(1), NewInteger(2), OpLess)
	if err != nil || !v.BoolVal() {
		t.Errorf("BinaryOpFn(1 < 2) = %v, %v; want true, nil", v, err)
	}
	v, err = BinaryOpFn(NewString("a"), NewString("b"), OpLess)
	if err != nil || !v.BoolVal() {
		t.Errorf(`BinaryOpFn("a" < "b") = %v, %v; want true, nil`, v, err)
	}
}

func TestBinaryOpFnTypeMismatch(t *testing.T) {
	if _, err := BinaryOpFn(NewInteger(1), NewString("x"), OpAdd); err == nil {
		t.Errorf("BinaryOpFn(int + string) = nil error, want TypeMismatch")
	}
	if _, err := BinaryOpFn(NewBool(true), NewBool(false), OpLess); err == nil {
		t.Errorf("BinaryOpFn(bool < bool) = nil error, want TypeMismatch (bools are not ordered)")
	}
}

func TestArrayToString(t *testing.T) {
	v := ArrayToString([]Value{NewString("a"), NewInteger(1), NewBool(true)})
	if got := v.RawString(); got != "a1true" {
		t.Errorf("ArrayToString(...) = %q, want %q", got, "a1true")
	}
}
