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

// EnvironCache lazily materializes the "KEY=VALUE" environment a child
// process should see, revalidating against the Run Stack's public-
// generation counter instead of rebuilding on every spawn.
//
// Grounded on the teacher's exports map[string]bool handling in
// eval.go/main.go (deciding which variables a $(shell ...) subprocess
// should see) and os.Environ()'s flattening, generalized to
// EnvironCache.c's hash-dedup-then-flatten algorithm: the teacher
// rebuilds its exported-variable list on every invocation because Make
// execs one shell per recipe line; this cache exists because Serena
// Shell's Interpreter is long-lived and spawns many children across one
// session.
type EnvironCache struct {
	gen     uint64
	cached  []string
	primed  bool
}

// NewEnvironCache creates an empty, unprimed EnvironCache.
func NewEnvironCache() *EnvironCache { return &EnvironCache{} }

// GetEnvironment returns the "KEY=VALUE" slice suitable for
// os/exec.Cmd.Env, rebuilding it only if the Run Stack's
// public-generation has advanced since the last call (spec.md 4.J).
//
// The hash-table/EnvironEntry/flat-pointer-array machinery of the
// spec's C host is replaced here by a single sorted-by-first-seen
// []string and a map used only during the rebuild for shadowing
// dedup — Go's garbage-collected slice of strings already gives every
// invariant the spec's hand-rolled hash chain exists for (stable
// contents until the next rebuild, O(1) membership test during
// construction); the returned slice must still be treated as
// read-only by the caller, mirroring the spec's "valid only until the
// next call that mutates public variables" contract.
func (c *EnvironCache) GetEnvironment(rs *RunStack) []string {
	if c.primed && c.gen == rs.Generation() {
		return c.cached
	}
	seen := make(map[string]bool)
	var out []string
	rs.Iterate(func(scopeName, varName string, modifiers VarModifier, value Value) bool {
		if modifiers&ModPublic == 0 {
			return false
		}
		if seen[varName] {
			return false // inner scope already won: shadow the outer definition
		}
		seen[varName] = true
		out = append(out, varName+"="+value.ToString())
		return false
	})
	c.cached = out
	c.gen = rs.Generation()
	c.primed = true
	return c.cached
}
