// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package relaunch

// DefaultLauncher replaces the current process image.
func DefaultLauncher() Launcher {
	return ExecLauncher{}
}
