// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// field is one label/value row of a key-value listing.
type field struct {
	label string
	value string
	style *lipgloss.Style
}

// printFields writes rows with aligned values. Styles apply only when
// styled is set so piped output stays plain.
func printFields(w io.Writer, fields []field, styled bool) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.label))
	}
	for _, f := range fields {
		label := fmt.Sprintf("%-*s", width+1, f.label+":")
		value := f.value
		if styled {
			label = labelStyle.Render(label)
			if f.style != nil {
				value = f.style.Render(value)
			}
		}
		fmt.Fprintf(w, "%s  %s\n", label, value)
	}
}
