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

import "hash/fnv"

// poolEntry is one interned string: its hash, for fast chain lookup, and
// the owned Value backing shared by every Copy() of it.
type poolEntry struct {
	hash  uint64
	value Value
	next  *poolEntry
}

// StringPool interns string literals produced by the Lexer so that
// repeated literals in one Script share one backing buffer, instead of
// allocating a new buffer per occurrence.
//
// Grounded on the teacher's symtab.go (package-level `intern`, a
// mutex-guarded map of string->string), generalized to hash-chained
// buckets so entries are enumerable and each carries a ready-to-copy
// Value instead of a bare string.
type StringPool struct {
	buckets []*poolEntry
}

const stringPoolInitialBuckets = 64

// NewStringPool creates an empty pool. One pool belongs to one Script
// (per spec.md 4.C); the caller is expected to allocate a fresh pool per
// parse, or to reuse one across scripts when literal reuse is expected.
func NewStringPool() *StringPool {
	return &StringPool{buckets: make([]*poolEntry, stringPoolInitialBuckets)}
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

// Intern returns a Value wrapping s, reusing a previously interned
// entry's backing when s has been seen before in this pool.
func (p *StringPool) Intern(s string) Value {
	return p.InternBytes([]byte(s))
}

// InternBytes is like Intern but takes the lexer's raw byte slice
// directly, avoiding a string conversion on the lookup path.
func (p *StringPool) InternBytes(b []byte) Value {
	h := hashBytes(b)
	idx := h % uint64(len(p.buckets))
	for e := p.buckets[idx]; e != nil; e = e.next {
		if e.hash == h && string(e.value.bytes()) == string(b) {
			return e.value.Copy()
		}
	}
	v := NewString(string(b))
	p.buckets[idx] = &poolEntry{hash: h, value: v, next: p.buckets[idx]}
	return v.Copy()
}

// Release drops the pool's reference to every interned entry. Called
// when the owning Script's arena is reset.
func (p *StringPool) Release() {
	for i, e := range p.buckets {
		for e != nil {
			e.value.Release()
			e = e.next
		}
		p.buckets[i] = nil
	}
}

// Len reports how many distinct strings are interned, for tests.
func (p *StringPool) Len() int {
	n := 0
	for _, e := range p.buckets {
		for ; e != nil; e = e.next {
			n++
		}
	}
	return n
}
