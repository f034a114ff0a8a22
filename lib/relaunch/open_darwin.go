// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin

package relaunch

import (
	"fmt"
	"os/exec"
)

// openCommand is the LaunchServices command-line front end.
const openCommand = "/usr/bin/open"

// OpenLauncher asks LaunchServices to start a new instance of the
// bundle. The new process is a child of launchd, not of this process,
// and receives only the loop guard from this environment.
type OpenLauncher struct {
	// run executes the open command; tests replace it.
	run func(name string, args ...string) error
}

func (l OpenLauncher) Launch(request Request) (Handoff, error) {
	if request.BundleRoot == "" {
		return Handoff{}, fmt.Errorf("open launcher needs a bundle root")
	}
	run := l.run
	if run == nil {
		run = func(name string, args ...string) error {
			output, err := exec.Command(name, args...).CombinedOutput()
			if err != nil && len(output) > 0 {
				return fmt.Errorf("%w: %s", err, output)
			}
			return err
		}
	}

	if err := run(openCommand, openArguments(request)...); err != nil {
		return Handoff{}, fmt.Errorf("%s %s: %w", openCommand, request.BundleRoot, err)
	}
	return Handoff{ExitCode: 0}, nil
}

func openArguments(request Request) []string {
	args := []string{"-n", request.BundleRoot, "--env", guardPrefix + "1"}
	if len(request.Args) > 0 {
		args = append(args, "--args")
		args = append(args, request.Args...)
	}
	return args
}
