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

func TestOperandStackPushPop(t *testing.T) {
	s := NewOperandStack()
	s.PushInteger(1)
	s.PushInteger(2)
	s.PushInteger(3)
	if got := s.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	for _, want := range []int32{3, 2, 1} {
		v, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop() error: %v", err)
		}
		if got := v.IntVal(); got != want {
			t.Errorf("Pop() = %d, want %d", got, want)
		}
	}
	if _, err := s.Pop(); err == nil {
		t.Errorf("Pop() on empty stack = nil error, want Underflow")
	}
}

func TestOperandStackTosAndNth(t *testing.T) {
	s := NewOperandStack()
	s.PushInteger(10)
	s.PushInteger(20)
	s.PushInteger(30)

	tos, err := s.Tos()
	if err != nil || tos.IntVal() != 30 {
		t.Fatalf("Tos() = %v, %v; want 30, nil", tos, err)
	}
	if got := s.Len(); got != 3 {
		t.Errorf("Tos() must not pop; Len() = %d, want 3", got)
	}

	nth, err := s.Nth(2)
	if err != nil || nth.IntVal() != 10 {
		t.Fatalf("Nth(2) = %v, %v; want 10, nil", nth, err)
	}

	if _, err := s.Nth(3); err == nil {
		t.Errorf("Nth(3) = nil error, want Underflow")
	}
}

func TestOperandStackPopSome(t *testing.T) {
	s := NewOperandStack()
	s.PushInteger(1)
	s.PushInteger(2)
	s.PushInteger(3)

	vs, err := s.PopSome(2)
	if err != nil {
		t.Fatalf("PopSome(2) error: %v", err)
	}
	if len(vs) != 2 || vs[0].IntVal() != 2 || vs[1].IntVal() != 3 {
		t.Errorf("PopSome(2) = %v, want [2 3]", vs)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("Len() after PopSome(2) = %d, want 1", got)
	}

	if _, err := s.PopSome(5); err == nil {
		t.Errorf("PopSome(5) on a 1-element stack = nil error, want Underflow")
	}
}

func TestOperandStackPopAll(t *testing.T) {
	s := NewOperandStack()
	s.PushString("a")
	s.PushString("b")
	s.PopAll()
	if got := s.Len(); got != 0 {
		t.Errorf("Len() after PopAll() = %d, want 0", got)
	}
}
