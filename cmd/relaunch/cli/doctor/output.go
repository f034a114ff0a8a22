// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
)

var statusStyles = map[Status]lipgloss.Style{
	StatusPass:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	StatusFixed: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	StatusWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	StatusFail:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	StatusSkip:  lipgloss.NewStyle().Faint(true),
}

// PrintChecklist writes the results as a checklist followed by a
// summary, coloring status labels when styled is set. It returns an
// [cli.ExitError] with code 1 when any check still fails.
func PrintChecklist(w io.Writer, results []Result, fixMode, dryRun, styled bool, outcome Outcome) error {
	fixable := 0
	fixed := 0
	var elevatedHints []string

	for _, result := range results {
		label := fmt.Sprintf("[%-5s]", strings.ToUpper(string(result.Status)))
		if styled {
			label = statusStyles[result.Status].Render(label)
		}
		fmt.Fprintf(w, "%s  %-28s  %s\n", label, result.Name, result.Message)

		switch result.Status {
		case StatusFail:
			if result.FixHint == "" {
				continue
			}
			fixable++
			if dryRun {
				note := ""
				if result.Elevated {
					note = " (requires sudo)"
				}
				fmt.Fprintf(w, "         %-28s  would fix: %s%s\n", "", result.FixHint, note)
			}
			if result.Elevated {
				elevatedHints = append(elevatedHints, result.FixHint)
			}
		case StatusFixed:
			fixed++
		}
	}

	fmt.Fprintln(w)

	if Failed(results) {
		switch {
		case dryRun && fixable > 0:
			fmt.Fprintf(w, "%d issue(s) would be repaired. Run without --dry-run to apply.\n", fixable)
		case !fixMode && fixable > 0:
			fmt.Fprintf(w, "Run with --fix to repair %d issue(s).\n", fixable)
		default:
			fmt.Fprintln(w, "Some checks failed.")
		}
		if outcome.PermissionDenied {
			fmt.Fprintln(w, "\nSome fixes failed due to insufficient permissions.")
		}
		if outcome.ElevatedSkipped > 0 {
			fmt.Fprintf(w, "\n%d fix(es) require root privileges:\n", outcome.ElevatedSkipped)
			for _, hint := range elevatedHints {
				fmt.Fprintf(w, "  - %s\n", hint)
			}
			fmt.Fprintln(w, "\nRe-run with sudo to apply these fixes:")
			fmt.Fprintln(w, "  sudo relaunch doctor --fix")
		}
		return &cli.ExitError{Code: 1}
	}

	if fixed > 0 {
		fmt.Fprintf(w, "%d issue(s) repaired.\n", fixed)
		return nil
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}
