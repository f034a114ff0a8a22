// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/relaunch/lib/bootstrap"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
	greetingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// promptModel asks for a name and greets.
type promptModel struct {
	input    textinput.Model
	status   string
	greeting string
	quitting bool
}

func newPromptModel(status string) promptModel {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "your name"
	input.CharLimit = 64
	input.Focus()
	return promptModel{input: input, status: status}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				name = "stranger"
			}
			m.greeting = greetingStyle.Render(fmt.Sprintf("Hello, %s!", name))
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n\nWhat is your name?\n%s\n\n%s\n",
		titleStyle.Render("Relaunch Terminal"),
		statusStyle.Render(m.status),
		m.input.View(),
		statusStyle.Render("enter to submit, esc to quit"),
	)
}

// describeOutcome summarizes how the process was started.
func describeOutcome(outcome *bootstrap.Outcome) string {
	switch {
	case outcome.IsBundled():
		return "running from " + outcome.BundleRoot
	case outcome.Unsupported:
		return "running bare: bundles have no effect on this platform"
	case outcome.RelaunchAttempted:
		return "running bare: the bundle was started but not recognized"
	case outcome.Degraded:
		return fmt.Sprintf("running bare: %v", outcome.Warning)
	default:
		return "running bare"
	}
}
