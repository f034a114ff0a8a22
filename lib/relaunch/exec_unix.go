// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package relaunch

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ExecLauncher replaces the current process image with the bundled
// executable. The process keeps its PID, open descriptors, and
// controlling terminal. Launch returns only when exec fails.
type ExecLauncher struct {
	// execFunc replaces unix.Exec in tests.
	execFunc func(argv0 string, argv []string, envv []string) error
}

func (l ExecLauncher) Launch(request Request) (Handoff, error) {
	execFunction := l.execFunc
	if execFunction == nil {
		execFunction = unix.Exec
	}

	argv := append([]string{request.Executable}, request.Args...)
	err := execFunction(request.Executable, argv, request.Environ)
	if err == nil {
		// Only an injected exec can return nil. The new image is
		// running in this PID; nothing remains for this one to do.
		return Handoff{}, nil
	}
	return Handoff{}, fmt.Errorf("exec %s: %w", request.Executable, err)
}
