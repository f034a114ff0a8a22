// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix && !darwin

package relaunch

func platformLauncher(name string) (Launcher, bool) {
	if name == "exec" {
		return ExecLauncher{}, true
	}
	return nil, false
}
