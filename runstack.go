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

// runVar is one declared variable: its scope/name pair (spec.md 4.H
// calls these "heap strings" — Go strings already own their bytes, so
// no separate allocation is needed), its modifiers, and its Value.
type runVar struct {
	scopeName string
	varName   string
	modifiers VarModifier
	value     Value
}

func (v *runVar) public() bool  { return v.modifiers&ModPublic != 0 }
func (v *runVar) mutable() bool { return v.modifiers&ModMutable != 0 }

// runScope is one stack frame: a flat slice of runVars declared in it.
// Lookup order within a scope is unspecified by spec.md, so a slice
// scanned linearly is sufficient (scopes are small: function/block
// locals, not module-wide symbol tables).
type runScope struct {
	vars []runVar
}

// RunStack is the scoped variable stack every Interpreter owns: a
// singly-linked stack of scopes (represented as a slice used as a
// stack, since scopes never need to be referenced after popping) plus a
// public-generation counter bumped whenever a Public variable is
// declared, mutated, or its scope is popped — the Environment Cache
// revalidates against this counter instead of re-scanning on every
// lookup.
//
// Grounded on the teacher's `Vars` map and `Evaluator.currentScope`
// push/pop in eval.go (Make's recipe-local variable scoping),
// generalized with RunStack.c's public-generation invalidation scheme,
// which the teacher has no equivalent of: Make re-execs a fresh shell
// per recipe line, so it never needs to cache a materialized
// environment across calls.
type RunStack struct {
	scopes []runScope
	gen    uint64
}

// NewRunStack creates a RunStack with one root scope already pushed;
// the root can never be popped (spec.md 4.H: "fails with Underflow if
// popping the root").
func NewRunStack() *RunStack {
	return &RunStack{scopes: []runScope{{}}}
}

// Generation reports the current public-generation counter. The
// Environment Cache compares this against its own cached value to
// decide whether to rematerialize envp.
func (r *RunStack) Generation() uint64 { return r.gen }

// PushScope pushes a new, empty scope.
func (r *RunStack) PushScope() { r.scopes = append(r.scopes, runScope{}) }

// PopScope pops the current scope, releasing every variable's Value and
// bumping the generation counter if any popped variable was Public.
// Fails with Underflow when only the root scope remains.
func (r *RunStack) PopScope() error {
	if len(r.scopes) <= 1 {
		return newError(KindUnderflow, Pos{}, "cannot pop the root scope")
	}
	top := r.scopes[len(r.scopes)-1]
	bumped := false
	for i := range top.vars {
		if top.vars[i].public() {
			bumped = true
		}
		top.vars[i].value.Release()
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
	if bumped {
		r.gen++
	}
	return nil
}

// DeclareVariable inserts (scopeName, varName) into the current (top)
// scope with value (the RunStack takes ownership of value via its
// existing reference — callers pass a Value they already own, e.g. the
// result of Value.unique()). Fails with RedefVar if the pair is already
// declared in this scope.
func (r *RunStack) DeclareVariable(modifiers VarModifier, scopeName, varName string, value Value) error {
	top := &r.scopes[len(r.scopes)-1]
	for i := range top.vars {
		if top.vars[i].scopeName == scopeName && top.vars[i].varName == varName {
			return newError(KindRedefVar, Pos{}, "%s already declared in this scope", varName)
		}
	}
	top.vars = append(top.vars, runVar{scopeName: scopeName, varName: varName, modifiers: modifiers, value: value})
	if modifiers&ModPublic != 0 {
		r.gen++
	}
	return nil
}

// findVar performs the dynamic-scope search: from the current scope
// upward to the root, matching varName (and scopeName too, when
// scopeName is non-empty). Returns nil when not found.
func (r *RunStack) findVar(scopeName, varName string) *runVar {
	for s := len(r.scopes) - 1; s >= 0; s-- {
		vars := r.scopes[s].vars
		for i := len(vars) - 1; i >= 0; i-- {
			v := &vars[i]
			if v.varName != varName {
				continue
			}
			if scopeName != "" && v.scopeName != scopeName {
				continue
			}
			return v
		}
	}
	return nil
}

// GetVariable looks up (scopeName, varName) via dynamic scope search and
// returns a copy of its Value. Fails with UndefVar if absent.
func (r *RunStack) GetVariable(scopeName, varName string) (Value, error) {
	v := r.findVar(scopeName, varName)
	if v == nil {
		return Value{}, newError(KindUndefVar, Pos{}, "undefined variable %s", varName)
	}
	return v.value.Copy(), nil
}

// SetVariable replaces the Value of an already-declared variable (used
// by Assignment evaluation). Fails with UndefVar if absent, Immutable if
// the variable was declared without ModMutable. The old Value is
// released; the RunStack takes ownership of newValue.
func (r *RunStack) SetVariable(scopeName, varName string, newValue Value) error {
	v := r.findVar(scopeName, varName)
	if v == nil {
		return newError(KindUndefVar, Pos{}, "undefined variable %s", varName)
	}
	if !v.mutable() {
		return newError(KindImmutable, Pos{}, "%s is not mutable", varName)
	}
	wasPublic := v.public()
	v.value.Release()
	v.value = newValue.unique()
	if wasPublic {
		r.gen++
	}
	return nil
}

// SetVariablePublic toggles a variable's Public modifier, bumping the
// generation counter either way (spec.md 4.H: "toggles the flag,
// updating counters").
func (r *RunStack) SetVariablePublic(scopeName, varName string, public bool) error {
	v := r.findVar(scopeName, varName)
	if v == nil {
		return newError(KindUndefVar, Pos{}, "undefined variable %s", varName)
	}
	if public {
		v.modifiers |= ModPublic
	} else {
		v.modifiers &^= ModPublic
	}
	r.gen++
	return nil
}

// IterateFunc is called once per variable during Iterate. Returning
// done == true stops the walk early.
type IterateFunc func(scopeName, varName string, modifiers VarModifier, value Value) (done bool)

// Iterate visits every variable from the top scope down to the root;
// order within one scope is unspecified (spec.md 4.H).
func (r *RunStack) Iterate(cb IterateFunc) {
	for s := len(r.scopes) - 1; s >= 0; s-- {
		for i := range r.scopes[s].vars {
			v := &r.scopes[s].vars[i]
			if cb(v.scopeName, v.varName, v.modifiers, v.value) {
				return
			}
		}
	}
}
