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

package builtins

import (
	"os"

	"github.com/serena-os/serenash"
)

// loadBuiltin parses and executes argv[1] as a script in its own scope,
// using a freshly allocated Arena and StringPool (never the caller's)
// so that a `load` issued mid-script can never reset the arena backing
// statements the outer script's Execute call has not finished walking
// yet. On success it pushes the loaded script's last-statement value
// (spec.md §6: "load pushes String" is the historical contract for the
// no-argument form; this core always evaluates the file and forwards
// whatever value its last statement produced).
func loadBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	if len(argv) < 2 {
		interp.Ops.PushVoid()
		return 1, shell.NewHostError(os.ErrInvalid)
	}
	data, err := os.ReadFile(argv[1])
	if err != nil {
		interp.Ops.PushVoid()
		return 1, shell.NewHostError(err)
	}

	arena := shell.NewArena(0)
	pool := shell.NewStringPool()
	p := shell.NewParser(arena, pool)
	script, err := p.Parse(string(data))
	if err != nil {
		interp.Ops.PushVoid()
		return 1, err
	}

	// Execute drains the operand stack on return (spec.md 4.L step 4).
	// A load invoked mid-expression must not drain values the enclosing
	// expression is still holding, so the nested execution runs against
	// its own stack, swapped back out afterward.
	outer := interp.Ops
	interp.Ops = shell.NewOperandStack()
	result, err := interp.Execute(script, shell.Options{PushScope: true})
	interp.Ops = outer

	if err != nil {
		interp.Ops.PushVoid()
		return 1, err
	}
	interp.Ops.Push(result)
	return 0, nil
}
