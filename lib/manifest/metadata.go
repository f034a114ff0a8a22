// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidIdentifier reports an empty identifier or one containing
	// characters outside [A-Za-z0-9.-].
	ErrInvalidIdentifier = errors.New("invalid bundle identifier")

	// ErrInvalidName reports a display name that cannot be used as the
	// bundle directory name.
	ErrInvalidName = errors.New("invalid bundle name")

	// ErrInvalidIcon reports an icon that is not a plain file name
	// inside Contents/Resources.
	ErrInvalidIcon = errors.New("invalid icon file name")

	// ErrInvalidExecutable reports an executable name that is not a
	// single path element.
	ErrInvalidExecutable = errors.New("invalid executable name")
)

// Metadata is the application description a bundle is built from.
// Identifier and Executable together form the bundle's identity.
type Metadata struct {
	// Identifier is the reverse-DNS bundle identifier, e.g.
	// "com.example.tool".
	Identifier string

	// Name is the display name. The bundle directory is "<Name>.app".
	Name string

	// Executable is the file name of the program inside Contents/MacOS.
	Executable string

	// Category is the optional application category type, e.g.
	// "public.app-category.developer-tools".
	Category string

	// MinimumOS is the optional minimum system version, e.g. "10.13".
	MinimumOS string

	// Icon is the optional icon file name inside Contents/Resources.
	Icon string

	// Background marks an agent application with no dock icon.
	Background bool
}

// Validate checks the identity fields. Each failure wraps one of the
// package's sentinel errors.
func (m Metadata) Validate() error {
	if err := ValidateIdentifier(m.Identifier); err != nil {
		return err
	}
	if err := ValidateName(m.Name); err != nil {
		return err
	}
	if err := ValidateExecutable(m.Executable); err != nil {
		return err
	}
	if m.Icon != "" && (strings.ContainsRune(m.Icon, '/') || m.Icon == "." || m.Icon == "..") {
		return fmt.Errorf("icon %q must be a file name in Resources: %w", m.Icon, ErrInvalidIcon)
	}
	return nil
}

// ValidateIdentifier checks a reverse-DNS bundle identifier.
func ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("identifier is empty: %w", ErrInvalidIdentifier)
	}
	for i := 0; i < len(identifier); i++ {
		c := identifier[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '-':
		default:
			return fmt.Errorf("identifier %q contains %q at offset %d: %w", identifier, c, i, ErrInvalidIdentifier)
		}
	}
	return nil
}

// ValidateName checks a display name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name is empty: %w", ErrInvalidName)
	case strings.ContainsAny(name, "/:"):
		return fmt.Errorf("name %q contains a path separator: %w", name, ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("name %q starts with '.': %w", name, ErrInvalidName)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("name %q contains a NUL byte: %w", name, ErrInvalidName)
	}
	return nil
}

// ValidateExecutable checks an executable file name.
func ValidateExecutable(executable string) error {
	switch {
	case executable == "":
		return fmt.Errorf("executable name is empty: %w", ErrInvalidExecutable)
	case executable == "." || executable == "..":
		return fmt.Errorf("executable name %q is not a file name: %w", executable, ErrInvalidExecutable)
	case strings.ContainsAny(executable, "/\x00"):
		return fmt.Errorf("executable name %q is not a single path element: %w", executable, ErrInvalidExecutable)
	}
	return nil
}
