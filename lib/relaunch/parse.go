// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package relaunch

import "fmt"

// ParseLauncher returns the launcher for a configuration name:
// "" (the platform default), "exec", "spawn", "wait", or "open".
func ParseLauncher(name string) (Launcher, error) {
	switch name {
	case "":
		return DefaultLauncher(), nil
	case "spawn":
		return SpawnLauncher{}, nil
	case "wait":
		return SpawnLauncher{Wait: true}, nil
	}
	if launcher, ok := platformLauncher(name); ok {
		return launcher, nil
	}
	return nil, fmt.Errorf("launcher %q is not available on this platform", name)
}
