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

package lineedit

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRecallHistoryNavigatesAndStashesScratch(t *testing.T) {
	m := newModel("> ", []string{"first", "second"})
	m.input.SetValue("in progress")

	m.recallHistory(-1)
	if got := m.input.Value(); got != "second" {
		t.Fatalf("after recalling once, input = %q, want %q", got, "second")
	}
	if m.scratch != "in progress" {
		t.Errorf("scratch = %q, want the line in progress to be stashed", m.scratch)
	}

	m.recallHistory(-1)
	if got := m.input.Value(); got != "first" {
		t.Errorf("after recalling twice, input = %q, want %q", got, "first")
	}

	// Recalling past the oldest entry is a no-op.
	m.recallHistory(-1)
	if got := m.input.Value(); got != "first" {
		t.Errorf("recalling past the oldest entry changed input to %q, want %q", got, "first")
	}

	m.recallHistory(1)
	m.recallHistory(1)
	if got := m.input.Value(); got != "in progress" {
		t.Errorf("after returning to the present, input = %q, want the stashed scratch %q", got, "in progress")
	}
}

func TestUpdateEnterSetsDoneAndQuits(t *testing.T) {
	m := newModel("> ", nil)
	m.input.SetValue("echo hi")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	nm := next.(model)
	if !nm.done {
		t.Errorf("Update(Enter) did not set done")
	}
	if cmd == nil {
		t.Errorf("Update(Enter) returned a nil command, want tea.Quit")
	}
}

func TestUpdateCtrlCSetsInterrupted(t *testing.T) {
	m := newModel("> ", nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	nm := next.(model)
	if !nm.interrupted || !nm.done {
		t.Errorf("Update(Ctrl-C): interrupted=%v done=%v, want both true", nm.interrupted, nm.done)
	}
}

func TestUpdateCtrlACtrlEMoveCursor(t *testing.T) {
	m := newModel("> ", nil)
	m.input.SetValue("hello")
	m.input.CursorEnd()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	nm := next.(model)
	if pos := nm.input.Position(); pos != 0 {
		t.Errorf("Update(Ctrl-A): cursor position = %d, want 0", pos)
	}

	next, _ = nm.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	nm = next.(model)
	if pos := nm.input.Position(); pos != len("hello") {
		t.Errorf("Update(Ctrl-E): cursor position = %d, want %d", pos, len("hello"))
	}
}

func TestReaderAppendHistorySeedsRecall(t *testing.T) {
	r := NewReader("> ")
	r.AppendHistory("previous command")
	if got := r.History(); len(got) != 1 || got[0] != "previous command" {
		t.Errorf("History() = %v, want [\"previous command\"]", got)
	}
}
