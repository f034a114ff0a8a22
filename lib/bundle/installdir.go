// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"os"
	"path/filepath"
)

type installKind uint8

const (
	installTemp installKind = iota
	installUser
	installSystem
	installCustom
)

// InstallDir selects the directory a bundle is installed into. The zero
// value is [Temp].
type InstallDir struct {
	kind installKind
	path string
}

var (
	// Temp installs into the per-user temporary directory.
	Temp = InstallDir{kind: installTemp}

	// UserApplications installs into ~/Applications.
	UserApplications = InstallDir{kind: installUser}

	// SystemApplications installs into /Applications.
	SystemApplications = InstallDir{kind: installSystem}
)

// Custom installs into path. Relative paths are resolved against the
// working directory at [InstallDir.Resolve] time.
func Custom(path string) InstallDir {
	return InstallDir{kind: installCustom, path: path}
}

// ParseInstallDir parses the configuration spelling: "temp", "user",
// "system", or a filesystem path. The empty string is Temp.
func ParseInstallDir(value string) (InstallDir, error) {
	switch value {
	case "", "temp":
		return Temp, nil
	case "user":
		return UserApplications, nil
	case "system":
		return SystemApplications, nil
	}
	if !filepath.IsAbs(value) && !hasDirPrefix(value) {
		return InstallDir{}, fmt.Errorf("install directory %q: want temp, user, system, or a path", value)
	}
	return Custom(value), nil
}

func hasDirPrefix(value string) bool {
	return value == "." || value == ".." ||
		len(value) > 1 && (value[:2] == "./" || value[:2] == "~/") ||
		len(value) > 2 && value[:3] == "../"
}

// Resolve returns the absolute directory path.
func (d InstallDir) Resolve() (string, error) {
	switch d.kind {
	case installTemp:
		return filepath.Abs(os.TempDir())
	case installUser:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving user applications directory: %w", err)
		}
		return filepath.Join(home, "Applications"), nil
	case installSystem:
		return "/Applications", nil
	default:
		path := d.path
		if len(path) > 1 && path[:2] == "~/" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("expanding %s: %w", path, err)
			}
			path = filepath.Join(home, path[2:])
		}
		absolute, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolving install directory %s: %w", d.path, err)
		}
		return absolute, nil
	}
}

func (d InstallDir) String() string {
	switch d.kind {
	case installTemp:
		return "temp"
	case installUser:
		return "user"
	case installSystem:
		return "system"
	default:
		return d.path
	}
}
