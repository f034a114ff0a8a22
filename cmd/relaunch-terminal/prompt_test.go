// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/relaunch/lib/bootstrap"
	"github.com/bureau-foundation/relaunch/lib/launchcontext"
	"github.com/bureau-foundation/relaunch/lib/relaunch"
)

func typeText(model tea.Model, text string) tea.Model {
	for _, r := range text {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return model
}

func TestPromptGreets(t *testing.T) {
	var model tea.Model = newPromptModel("running bare")
	model = typeText(model, "  Ada ")

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter returned a command other than tea.Quit")
	}

	final := model.(promptModel)
	if !strings.Contains(final.greeting, "Hello, Ada!") {
		t.Errorf("greeting = %q", final.greeting)
	}
	if final.View() != "" {
		t.Errorf("View() after quitting = %q, want empty", final.View())
	}
}

func TestPromptDefaultsName(t *testing.T) {
	var model tea.Model = newPromptModel("")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if greeting := model.(promptModel).greeting; !strings.Contains(greeting, "Hello, stranger!") {
		t.Errorf("greeting = %q", greeting)
	}
}

func TestPromptEscapeQuitsWithoutGreeting(t *testing.T) {
	var model tea.Model = newPromptModel("")
	model = typeText(model, "Ada")
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("escape did not quit")
	}
	if greeting := model.(promptModel).greeting; greeting != "" {
		t.Errorf("greeting = %q, want none", greeting)
	}
}

func TestPromptViewShowsStatus(t *testing.T) {
	view := newPromptModel("running from /Applications/Relaunch Terminal.app").View()
	for _, want := range []string{"Relaunch Terminal", "running from /Applications/Relaunch Terminal.app", "What is your name?"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDescribeOutcome(t *testing.T) {
	tests := []struct {
		outcome bootstrap.Outcome
		want    string
	}{
		{bootstrap.Outcome{Context: launchcontext.Bundled, BundleRoot: "/Applications/T.app"}, "running from /Applications/T.app"},
		{bootstrap.Outcome{Unsupported: true}, "no effect"},
		{bootstrap.Outcome{Context: launchcontext.BareRelaunched, RelaunchAttempted: true}, "not recognized"},
		{bootstrap.Outcome{Degraded: true, Warning: relaunch.ErrLaunchFailed}, relaunch.ErrLaunchFailed.Error()},
		{bootstrap.Outcome{}, "running bare"},
	}
	for _, test := range tests {
		if got := describeOutcome(&test.outcome); !strings.Contains(got, test.want) {
			t.Errorf("describeOutcome(%+v) = %q, want it to contain %q", test.outcome, got, test.want)
		}
	}
}

func TestBootstrapOptions(t *testing.T) {
	options, err := bootstrapOptions("", "", false)
	if err != nil {
		t.Fatalf("bootstrapOptions: %v", err)
	}
	if options.Metadata.Name != "Relaunch Terminal" || options.Force {
		t.Errorf("default options = %+v", options)
	}
	if launcher, ok := options.Launcher.(relaunch.SpawnLauncher); !ok || !launcher.Wait {
		t.Errorf("Launcher = %#v, want a waiting SpawnLauncher", options.Launcher)
	}

	directory := t.TempDir()
	options, err = bootstrapOptions("", directory, true)
	if err != nil {
		t.Fatalf("bootstrapOptions: %v", err)
	}
	if resolved, err := options.InstallDir.Resolve(); err != nil || resolved != directory {
		t.Errorf("InstallDir = %q, %v", resolved, err)
	}
	if !options.Force {
		t.Error("Force not applied")
	}

	if _, err := bootstrapOptions("", "somewhere", false); err == nil {
		t.Error("bare relative install directory should be rejected")
	}
	if _, err := bootstrapOptions(filepath.Join(directory, "missing.yaml"), "", false); err == nil {
		t.Error("missing config should fail")
	}
}
