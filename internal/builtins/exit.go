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
	"strconv"

	"github.com/serena-os/serenash"
)

// exitBuiltin terminates the process immediately with the given exit
// code (default 0). It never returns: os.Exit bypasses the operand
// stack contract, matching the host process's own exit() semantics.
func exitBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	code := 0
	if len(argv) > 1 {
		if n, err := strconv.Atoi(argv[1]); err == nil {
			code = n
		}
	}
	os.Exit(code)
	return 0, nil // unreachable
}
