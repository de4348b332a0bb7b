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
	"errors"

	"github.com/serena-os/serenash"
)

var errMissingOperand = errors.New("missing operand")

// hostError wraps a host OS error (os.Chdir, os.Stat, ...) with the
// Host error kind, letting callers distinguish interpreter-level
// failures from their underlying cause without re-parsing err.Error().
func hostError(err error) error {
	return shell.NewHostError(err)
}
