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

// existsBuiltin pushes Bool(true) if argv[1] names an existing path,
// Bool(false) otherwise (spec.md §6: "exists pushes Bool").
func existsBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	if len(argv) < 2 {
		interp.Ops.PushBool(false)
		return 1, nil
	}
	_, err := os.Stat(argv[1])
	interp.Ops.PushBool(err == nil)
	return 0, nil
}
