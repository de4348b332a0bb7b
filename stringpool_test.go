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

func TestStringPoolInternDeduplicates(t *testing.T) {
	p := NewStringPool()
	p.Intern("hello")
	p.Intern("world")
	p.Intern("hello")
	if got := p.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 (hello interned once, world once)", got)
	}
}

func TestStringPoolInternReturnsEqualValue(t *testing.T) {
	p := NewStringPool()
	v1 := p.Intern("hello")
	v2 := p.Intern("hello")
	if v1.RawString() != "hello" || v2.RawString() != "hello" {
		t.Errorf("Intern(hello) = %q, %q; want both hello", v1.RawString(), v2.RawString())
	}
}

func TestStringPoolInternBytesMatchesIntern(t *testing.T) {
	p := NewStringPool()
	p.Intern("shared")
	v := p.InternBytes([]byte("shared"))
	if got := p.Len(); got != 1 {
		t.Errorf("InternBytes of an already-interned string created a new entry; Len() = %d, want 1", got)
	}
	if v.RawString() != "shared" {
		t.Errorf("InternBytes(shared) = %q, want shared", v.RawString())
	}
}

func TestStringPoolReleaseClearsEntries(t *testing.T) {
	p := NewStringPool()
	p.Intern("a")
	p.Intern("b")
	p.Release()
	if got := p.Len(); got != 0 {
		t.Errorf("Len() after Release() = %d, want 0", got)
	}
}
