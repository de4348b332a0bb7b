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

// Package builtins implements the core's builtin command surface
// (spec.md §6 "Builtin CLI surface"): one file per builtin, each
// registered against a shell.NameTable by Register.
//
// Grounded on Commands/shell/builtins/*.c (one source file per
// builtin) and the registration pattern in Commands/shell/NameTable.c,
// expressed in the teacher's style of a flat per-concern file set
// (func.go's funcMap population, one built-in Make function per
// source-level case in the same file) generalized to one file per
// builtin here since each builtin is substantial enough to own a file,
// unlike Make's one-liner functions.
package builtins

import "github.com/serena-os/serenash"

// Register declares every builtin this package implements into nt.
func Register(nt *shell.NameTable) error {
	builtins := map[string]shell.Builtin{
		"cd":      cdBuiltin,
		"cls":     clsBuiltin,
		"echo":    echoBuiltin,
		"exists":  existsBuiltin,
		"exit":    exitBuiltin,
		"history": historyBuiltin,
		"input":   inputBuiltin,
		"load":    loadBuiltin,
		"popcd":   popcdBuiltin,
		"pushcd":  pushcdBuiltin,
		"pwd":     pwdBuiltin,
		"save":    saveBuiltin,
		"vars":    varsBuiltin,

		"delay":    notImplementedBuiltin("delay"),
		"delete":   notImplementedBuiltin("delete"),
		"id":       notImplementedBuiltin("id"),
		"list":     notImplementedBuiltin("list"),
		"makedir":  notImplementedBuiltin("makedir"),
		"rename":   notImplementedBuiltin("rename"),
		"shutdown": notImplementedBuiltin("shutdown"),
		"type":     notImplementedBuiltin("type"),
		"uptime":   uptimeBuiltin,
	}
	for name, cb := range builtins {
		if err := nt.DeclareName(name, cb); err != nil {
			return err
		}
	}
	return nil
}
