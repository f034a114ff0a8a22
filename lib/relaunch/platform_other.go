// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package relaunch

func platformLauncher(name string) (Launcher, bool) {
	return nil, false
}
