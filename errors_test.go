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
	"errors"
	"testing"
)

func TestErrorMessageIncludesCommand(t *testing.T) {
	e := &Error{Kind: KindNoCmd, Command: "frobnicate", msg: "unknown command"}
	if got := e.Error(); got != "frobnicate: unknown command" {
		t.Errorf("Error() = %q, want %q", got, "frobnicate: unknown command")
	}
}

func TestErrorMessageWithoutCommand(t *testing.T) {
	e := newError(KindSyntax, Pos{Line: 1, Column: 2}, "unexpected token")
	if got := e.Error(); got != "Error: unexpected token" {
		t.Errorf("Error() = %q, want %q", got, "Error: unexpected token")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	e := wrapError(KindHost, Pos{}, cause)
	if !errors.Is(e, cause) {
		t.Errorf("errors.Is(wrapped, cause) = false, want true")
	}
}

func TestNewHostErrorKind(t *testing.T) {
	e := NewHostError(errors.New("boom"))
	if e.Kind != KindHost {
		t.Errorf("NewHostError(...).Kind = %v, want KindHost", e.Kind)
	}
}

func TestNewNotImplementedError(t *testing.T) {
	e := NewNotImplementedError("shutdown")
	if e.Kind != KindNotImplemented || e.Command != "shutdown" {
		t.Errorf("NewNotImplementedError(shutdown) = %+v, want Kind=KindNotImplemented Command=shutdown", e)
	}
}

func TestBreakContinueSignalsSatisfyError(t *testing.T) {
	var err error = breakSignal{value: NewInteger(1)}
	if err.Error() == "" {
		t.Errorf("breakSignal.Error() returned an empty string")
	}
	err = continueSignal{}
	if err.Error() == "" {
		t.Errorf("continueSignal.Error() returned an empty string")
	}
}

func TestPosString(t *testing.T) {
	p := Pos{Line: 3, Column: 7}
	if got := p.String(); got != "3:7" {
		t.Errorf("Pos.String() = %q, want %q", got, "3:7")
	}
}
