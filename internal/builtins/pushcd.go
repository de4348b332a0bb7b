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

// pushcdBuiltin pushes the current directory onto the cd stack and
// changes into argv[1].
func pushcdBuiltin(interp *shell.Interpreter, argv []string) (int32, error) {
	if len(argv) < 2 {
		interp.Ops.PushVoid()
		return 1, shell.NewHostError(errMissingOperand)
	}
	if err := interp.PushCD(argv[1]); err != nil {
		interp.Ops.PushVoid()
		return 1, err
	}
	interp.Ops.PushVoid()
	return 0, nil
}
