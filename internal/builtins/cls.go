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

import "github.com/serena-os/serenash"

// clsBuiltin clears the screen via the ANSI "clear + home cursor"
// sequence, the same escape the line reader's Ctrl-L handling issues
// (spec.md §6 "Ctrl-L for clear-screen-preserving-line").
func clsBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	interp.Stdout.Write([]byte("\x1b[2J\x1b[H"))
	interp.Ops.PushVoid()
	return 0, nil
}
