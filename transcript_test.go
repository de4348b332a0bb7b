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

package shell

import (
	"bytes"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// TestTranscripts runs whole scripts through an Interpreter in
// interactive mode and compares the captured stdout against a golden
// transcript, diffing with go-diff on mismatch for a readable failure
// message — the same tool and style run_test.go uses to compare a
// build's logged output against a golden baseline, applied here to
// Serena Shell scripts instead of Make logs.
func TestTranscripts(t *testing.T) {
	for _, tc := range []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "arithmetic",
			script: "1 + 2\n3 * 4\n",
			want:   "3\n12\n",
		},
		{
			name:   "var decl and use",
			script: "var x = 5\nx + 1\n",
			want:   "6\n",
		},
		{
			name: "if/else",
			script: "if (1 < 2) { \"yes\" } else { \"no\" }\n" +
				"if (1 > 2) { \"yes\" } else { \"no\" }\n",
			want: "yes\nno\n",
		},
		{
			name: "while loop accumulation",
			script: "var n = 0\nvar total = 0\n" +
				"while (n < 3) { n = n + 1; total = total + n }\n" +
				"total\n",
			want: "6\n",
		},
		{
			name:   "compound string interpolation",
			script: `var name = "Serena"` + "\n" + `"hi, $name!"` + "\n",
			want:   "hi, Serena!\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			interp := NewInterpreter()
			var stdout bytes.Buffer
			interp.Stdout = &stdout
			interp.Stderr = &stdout

			p := NewParser(NewArena(0), NewStringPool())
			script, err := p.Parse(tc.script)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := interp.Execute(script, Options{Interactive: true}); err != nil {
				t.Fatalf("Execute: %v", err)
			}

			got := stdout.String()
			if got != tc.want {
				dmp := diffmatchpatch.New()
				diffs := dmp.DiffMain(tc.want, got, false)
				t.Errorf("transcript mismatch for %q:\n%s", tc.script, dmp.DiffPrettyText(diffs))
			}
		})
	}
}
