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
	"bufio"
	"os"
	"strings"

	"github.com/serena-os/serenash"
)

// inputBuiltin reads one line from stdin (without the trailing
// newline) and pushes it as an owned String.
func inputBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		interp.Ops.PushString("")
		return 1, nil
	}
	interp.Ops.PushString(line)
	return 0, nil
}
