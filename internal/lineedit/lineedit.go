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

// Package lineedit implements the interactive line reader spec.md §6
// requires: cursor motion, history recall, Ctrl-A/Ctrl-E, Ctrl-L,
// backspace, and Enter-to-submit.
//
// Grounded on other_examples/manifests/ardnew-aenv's TUI stack choice
// (bubbletea/bubbles/lipgloss) for the library, and
// Commands/shell/LineReader.c for the ANSI-editing contract it must
// satisfy — that source hand-rolls a raw-terminal read loop translating
// escape sequences itself; bubbletea's Program/tea.Model already
// performs that translation into typed key messages, so this package
// is a textinput-flavored bubbles component rather than a byte-level
// port of LineReader.c.
package lineedit

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var promptStyle = lipgloss.NewStyle().Bold(true)

// model is the bubbletea program driving one ReadLine call.
type model struct {
	input   textinput.Model
	history []string
	histPos int
	scratch string // the in-progress line, preserved while browsing history
	done    bool
	interrupted bool
}

func newModel(prompt string, history []string) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	return model{input: ti, history: history, histPos: len(history)}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.interrupted = true
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlA:
			m.input.CursorStart()
			return m, nil
		case tea.KeyCtrlE:
			m.input.CursorEnd()
			return m, nil
		case tea.KeyCtrlL:
			return m, tea.ClearScreen
		case tea.KeyUp:
			m.recallHistory(-1)
			return m, nil
		case tea.KeyDown:
			m.recallHistory(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recallHistory moves histPos by delta and loads the resulting entry
// into the input, stashing the not-yet-submitted line in scratch the
// first time the user moves off it (spec.md §6 "cursor up/down for
// history").
func (m *model) recallHistory(delta int) {
	if m.histPos == len(m.history) {
		m.scratch = m.input.Value()
	}
	next := m.histPos + delta
	if next < 0 || next > len(m.history) {
		return
	}
	m.histPos = next
	if m.histPos == len(m.history) {
		m.input.SetValue(m.scratch)
	} else {
		m.input.SetValue(m.history[m.histPos])
	}
	m.input.CursorEnd()
}

func (m model) View() string {
	return fmt.Sprintf("%s\n", m.input.View())
}

// Reader drives successive ReadLine calls against one growing history.
type Reader struct {
	history []string
	prompt  string
}

// NewReader creates a Reader with an empty history.
func NewReader(prompt string) *Reader {
	return &Reader{prompt: prompt}
}

// ReadLine runs one bubbletea program to collect a single line. ok is
// false on Ctrl-C or EOF; the accepted line (when ok) is appended to
// the Reader's history.
func (r *Reader) ReadLine() (line string, ok bool, err error) {
	p := tea.NewProgram(newModel(r.prompt, r.history))
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m := final.(model)
	if m.interrupted {
		return "", false, nil
	}
	line = m.input.Value()
	r.history = append(r.history, line)
	return line, true, nil
}

// History returns every line accepted so far, oldest first.
func (r *Reader) History() []string { return r.history }

// AppendHistory seeds the Reader with a line recalled from a previous
// invocation (e.g. loaded from --history-file), without going through
// ReadLine.
func (r *Reader) AppendHistory(line string) { r.history = append(r.history, line) }
