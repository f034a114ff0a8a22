// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"path/filepath"
	"strings"
)

// Extension is the directory suffix of an application bundle.
const Extension = ".app"

// StampName is the file name of the build stamp inside Resources.
const StampName = "relaunch.stamp"

// Layout names the paths of one bundle.
type Layout struct {
	// Root is the bundle directory, ending in ".app".
	Root string

	// Executable is the file name inside Contents/MacOS.
	Executable string
}

// Root returns the bundle directory for name inside installDir.
func Root(installDir, name string) string {
	return filepath.Join(installDir, name+Extension)
}

// FromExecutable recognizes an executable path of the form
// <root>.app/Contents/MacOS/<exe>. The path is taken as given; callers
// resolve symlinks first.
func FromExecutable(path string) (Layout, bool) {
	path = filepath.Clean(path)
	macOS := filepath.Dir(path)
	contents := filepath.Dir(macOS)
	root := filepath.Dir(contents)

	if filepath.Base(macOS) != "MacOS" || filepath.Base(contents) != "Contents" {
		return Layout{}, false
	}
	if base := filepath.Base(root); !strings.HasSuffix(base, Extension) || base == Extension {
		return Layout{}, false
	}
	return Layout{Root: root, Executable: filepath.Base(path)}, true
}

// Name returns the bundle name without the extension.
func (l Layout) Name() string {
	return strings.TrimSuffix(filepath.Base(l.Root), Extension)
}

func (l Layout) ContentsPath() string {
	return filepath.Join(l.Root, "Contents")
}

func (l Layout) ManifestPath() string {
	return filepath.Join(l.Root, "Contents", "Info.plist")
}

func (l Layout) MacOSPath() string {
	return filepath.Join(l.Root, "Contents", "MacOS")
}

func (l Layout) ExecutablePath() string {
	return filepath.Join(l.Root, "Contents", "MacOS", l.Executable)
}

func (l Layout) ResourcesPath() string {
	return filepath.Join(l.Root, "Contents", "Resources")
}

func (l Layout) StampPath() string {
	return filepath.Join(l.Root, "Contents", "Resources", StampName)
}

// rebase returns the same layout rooted at a different directory. Used
// to address the staging tree with the final layout's shape.
func (l Layout) rebase(root string) Layout {
	return Layout{Root: root, Executable: l.Executable}
}
