// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package relaunch

// DefaultLauncher starts the bundled executable as a child, waits for
// it, and passes its exit code on.
func DefaultLauncher() Launcher {
	return SpawnLauncher{Wait: true}
}
