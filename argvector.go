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

// ArgumentVector assembles a command's argv incrementally: a growing
// text buffer plus a list of offsets into it, one per completed
// argument. Offsets (not pointers) are stored while assembly is in
// progress, resolved into strings only at Close — this is the fix
// spec.md 4.K calls for explicitly: "a realloc of the text buffer...
// invalidates previously stored pointers... implementers must pick (a)
// [offsets] to avoid a latent bug." Go's append-triggered slice growth
// is exactly that realloc, so storing []byte pointers captured mid-
// assembly would be just as unsafe here as in the C original; offsets
// survive any number of reallocations untouched.
//
// Grounded on buf.go's doubling-capacity growable buffer, applied to
// ArgumentVector.c's open/append/end_of_arg/close state machine.
type ArgumentVector struct {
	text    []byte
	starts  []int // text offset where each completed argument begins
	ends    []int // text offset one past each completed argument's content (excludes the implicit terminator)
	curOpen bool
	curFrom int
}

// NewArgumentVector creates an empty ArgumentVector.
func NewArgumentVector() *ArgumentVector {
	return &ArgumentVector{text: make([]byte, 0, 256)}
}

// Open resets the vector to empty and begins assembling a fresh argv.
func (a *ArgumentVector) Open() {
	a.text = a.text[:0]
	a.starts = a.starts[:0]
	a.ends = a.ends[:0]
	a.curOpen = false
	a.curFrom = 0
}

// ensureArg starts a new current-argument slot if one isn't already
// open (spec.md's append_* calls "append to the current argument",
// implicitly starting one if whitespace closed the previous slot).
func (a *ArgumentVector) ensureArg() {
	if !a.curOpen {
		a.curFrom = len(a.text)
		a.curOpen = true
	}
}

// AppendCharacter appends one byte to the current argument.
func (a *ArgumentVector) AppendCharacter(b byte) {
	a.ensureArg()
	a.text = append(a.text, b)
}

// AppendString appends s to the current argument.
func (a *ArgumentVector) AppendString(s string) {
	a.ensureArg()
	a.text = append(a.text, s...)
}

// AppendBytes appends b to the current argument.
func (a *ArgumentVector) AppendBytes(b []byte) {
	a.ensureArg()
	a.text = append(a.text, b...)
}

// EndOfArg closes the current argument, recording its [start, end) span.
// A no-op if no argument is open and nothing was appended (an empty
// word never happens in practice since ensureArg is called lazily by
// the first Append*; this guards a stray EndOfArg call).
func (a *ArgumentVector) EndOfArg() {
	if !a.curOpen {
		return
	}
	a.starts = append(a.starts, a.curFrom)
	a.ends = append(a.ends, len(a.text))
	a.curOpen = false
}

// Close finishes assembly, ending any still-open argument, and returns
// the resolved argv as a []string — resolving offsets to strings only
// now, after every possible text-buffer growth has already happened.
func (a *ArgumentVector) Close() []string {
	if a.curOpen {
		a.EndOfArg()
	}
	out := make([]string, len(a.starts))
	for i := range a.starts {
		out[i] = string(a.text[a.starts[i]:a.ends[i]])
	}
	return out
}
