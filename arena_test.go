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

func TestArenaAllocIsZeroed(t *testing.T) {
	a := NewArena(0)
	b := a.Alloc(16)
	if len(b) != 16 {
		t.Fatalf("Alloc(16) returned %d bytes, want 16", len(b))
	}
	for i, c := range b {
		if c != 0 {
			t.Fatalf("Alloc(16)[%d] = %d, want 0", i, c)
		}
	}
}

func TestArenaAllocSpansDoNotOverlap(t *testing.T) {
	a := NewArena(0)
	first := a.Alloc(8)
	for i := range first {
		first[i] = 0xff
	}
	second := a.Alloc(8)
	for _, c := range second {
		if c != 0 {
			t.Fatalf("second allocation overlaps the first: got %x", second)
		}
	}
	for _, c := range first {
		if c != 0xff {
			t.Fatalf("second allocation clobbered the first: got %x", first)
		}
	}
}

func TestArenaAllocGrowsPastOnePage(t *testing.T) {
	a := NewArena(0)
	// Force at least one page-growth boundary.
	for i := 0; i < 10; i++ {
		b := a.Alloc(defaultPageSize)
		if len(b) != defaultPageSize {
			t.Fatalf("Alloc(%d) = %d bytes", defaultPageSize, len(b))
		}
	}
}

type allocTTestNode struct {
	X int
	Y string
}

func TestAllocTReturnsZeroedTypedNode(t *testing.T) {
	a := NewArena(0)
	n := allocT[allocTTestNode](a)
	if n.X != 0 || n.Y != "" {
		t.Errorf("allocT returned a non-zero node: %+v", n)
	}
	n.X = 42
	if n.X != 42 {
		t.Errorf("mutating the returned node did not stick")
	}
}

func TestArenaResetReclaimsPages(t *testing.T) {
	a := NewArena(0)
	a.Alloc(64)
	a.Reset()
	// Post-reset, a fresh allocation must succeed and be independent of
	// pre-reset contents.
	b := a.Alloc(64)
	for _, c := range b {
		if c != 0 {
			t.Errorf("allocation after Reset was not zeroed: got %x", b)
			break
		}
	}
}

func TestArenaDestroyDropsPageCache(t *testing.T) {
	a := NewArena(1024)
	a.Alloc(64)
	a.Destroy()
	if a.cacheBytes != 0 || len(a.cache) != 0 {
		t.Errorf("Destroy left the page cache non-empty: cacheBytes=%d cache=%v", a.cacheBytes, a.cache)
	}
}
