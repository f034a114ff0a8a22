// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin

package relaunch

func platformLauncher(name string) (Launcher, bool) {
	switch name {
	case "exec":
		return ExecLauncher{}, true
	case "open":
		return OpenLauncher{}, true
	}
	return nil, false
}
