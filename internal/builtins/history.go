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
	"fmt"

	"github.com/serena-os/serenash"
)

// historyBuiltin prints every line the interactive line reader has
// recorded, one per line, numbered from 1.
func historyBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	for i, line := range interp.History {
		fmt.Fprintf(interp.Stdout, "%5d  %s\n", i+1, line)
	}
	interp.Ops.PushVoid()
	return 0, nil
}
