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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	shell "github.com/serena-os/serenash"
	"github.com/serena-os/serenash/internal/builtins"
	"github.com/serena-os/serenash/internal/lineedit"
	"github.com/serena-os/serenash/internal/shlog"
)

var (
	inlineScript string
	historyFile  string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		shlog.Flush()
		os.Exit(1)
	}
	shlog.Flush()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serenash [path ...]",
		Short: "Serena Shell: an interactive and script-executing command shell",
		Args:  cobra.ArbitraryArgs,
		RunE:  run,
	}
	cmd.Flags().StringVarP(&inlineScript, "command", "c", "", "execute the given script text instead of reading a file")
	cmd.Flags().StringVar(&historyFile, "history-file", "", "path to persist interactive line history across invocations")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	interp := shell.NewInterpreter()
	if err := builtins.Register(interp.Names); err != nil {
		return fmt.Errorf("registering builtins: %w", err)
	}

	switch {
	case inlineScript != "":
		return runSource(interp, "-c", inlineScript)
	case len(args) > 0:
		return runPaths(interp, args)
	default:
		return runInteractive(interp)
	}
}

// runPaths executes each path in order, aborting on the first error
// (spec.md §6: "each is executed as a script in order, aborting on the
// first error and exiting with failure").
func runPaths(interp *shell.Interpreter, paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := runSource(interp, path, string(data)); err != nil {
			return err
		}
	}
	return nil
}

func runSource(interp *shell.Interpreter, name, src string) error {
	parser := shell.NewParser(shell.NewArena(0), shell.NewStringPool())
	script, err := parser.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	_, err = interp.Execute(script, shell.Options{})
	if err != nil {
		shlog.V(1).Infof("%s: execution error: %v", name, err)
		return err
	}
	return nil
}

// runInteractive drives a read-eval-print loop using the
// bubbletea-backed line editor, persisting history to historyFile
// between invocations when set (spec.md §6).
func runInteractive(interp *shell.Interpreter) error {
	interp.Interactive = true
	initial := loadHistory(historyFile)
	reader := lineedit.NewReader("serenash> ")
	for _, line := range initial {
		reader.AppendHistory(line)
	}

	for {
		line, ok, err := reader.ReadLine()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		interp.History = append(interp.History, line)
		if line == "" {
			continue
		}

		parser := shell.NewParser(shell.NewArena(0), shell.NewStringPool())
		script, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if _, err := interp.Execute(script, shell.Options{Interactive: true}); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	if historyFile != "" {
		if err := saveHistory(historyFile, reader.History()); err != nil {
			shlog.Warningf("saving history to %s: %v", historyFile, err)
		}
	}
	return nil
}

func loadHistory(path string) []string {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return splitLines(string(data))
}

func saveHistory(path string, lines []string) error {
	var buf []byte
	for _, l := range lines {
		buf = append(buf, l...)
		buf = append(buf, '\n')
	}
	return os.WriteFile(path, buf, 0o644)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
