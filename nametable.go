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

// Builtin is the signature every builtin command callback implements.
// It receives the Interpreter (for operand-stack access, cwd, the
// cd-stack, ...) and the serialized argv; it must push exactly one
// Value (typically Void) and returns the process-style exit code.
type Builtin func(interp *Interpreter, argv []string) (exitCode int32, err error)

// nameNamespace is one Name Table namespace: a flat map, since builtin
// names are looked up by exact string match and namespaces are small
// and static once populated.
type nameNamespace struct {
	names map[string]Builtin
}

// NameTable is the Run-Stack-shaped callback registry spec.md 4.I
// describes: a stack of namespaces, leaf entries map name -> Builtin
// instead of name -> Value. One namespace is pushed at construction.
//
// Grounded on the teacher's funcMap in func.go (flat
// map[string]func() Func), generalized from Make's single global
// function table to NameTable.c's stack-of-namespaces shape (Serena
// Shell reserves namespace pushes for a future module/import feature;
// the core only ever uses the bottom namespace, but the stack shape is
// preserved because declare_name/get_name's duplicate-rejection and
// parent-walk semantics depend on it).
type NameTable struct {
	namespaces []nameNamespace
}

// NewNameTable creates a NameTable with one namespace already pushed.
func NewNameTable() *NameTable {
	nt := &NameTable{}
	nt.PushNamespace()
	return nt
}

// PushNamespace pushes a new, empty namespace.
func (nt *NameTable) PushNamespace() {
	nt.namespaces = append(nt.namespaces, nameNamespace{names: make(map[string]Builtin)})
}

// PopNamespace pops the current namespace. Fails with Underflow when
// only the root namespace remains.
func (nt *NameTable) PopNamespace() error {
	if len(nt.namespaces) <= 1 {
		return newError(KindUnderflow, Pos{}, "cannot pop the root namespace")
	}
	nt.namespaces = nt.namespaces[:len(nt.namespaces)-1]
	return nil
}

// DeclareName registers name in the current namespace. Fails with
// RedefVar if name is already declared there.
func (nt *NameTable) DeclareName(name string, cb Builtin) error {
	top := nt.namespaces[len(nt.namespaces)-1]
	if _, ok := top.names[name]; ok {
		return newError(KindRedefVar, Pos{}, "%s already declared", name)
	}
	top.names[name] = cb
	return nil
}

// GetName walks the namespace stack from the top down to the root,
// returning the first matching callback. ok is false when name is
// declared nowhere.
func (nt *NameTable) GetName(name string) (cb Builtin, ok bool) {
	for i := len(nt.namespaces) - 1; i >= 0; i-- {
		if cb, ok := nt.namespaces[i].names[name]; ok {
			return cb, true
		}
	}
	return nil, false
}
