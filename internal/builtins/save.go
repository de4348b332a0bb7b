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
	"strings"

	"github.com/serena-os/serenash"
)

// saveBuiltin writes every Public variable as a "KEY=VALUE" line to
// argv[1], the same shape the Environment Cache materializes for child
// processes — the counterpart of `load`ing a script of `var` statements
// back in.
func saveBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	if len(argv) < 2 {
		interp.Ops.PushVoid()
		return 1, shell.NewHostError(errMissingOperand)
	}
	env := interp.Env.GetEnvironment(interp.Vars)
	if err := os.WriteFile(argv[1], []byte(strings.Join(env, "\n")+"\n"), 0644); err != nil {
		interp.Ops.PushVoid()
		return 1, shell.NewHostError(err)
	}
	interp.Ops.PushVoid()
	return 0, nil
}
