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
	"strings"

	"github.com/serena-os/serenash"
)

// echoBuiltin writes its arguments to stdout, space-separated, followed
// by a newline.
func echoBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	fmt.Fprintln(interp.Stdout, strings.Join(argv[1:], " "))
	interp.Ops.PushVoid()
	return 0, nil
}
