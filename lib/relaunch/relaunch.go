// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package relaunch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// ErrLaunchFailed wraps every failure to start the bundled process.
// The current process is still running and may continue degraded.
var ErrLaunchFailed = errors.New("relaunch failed")

// Request describes one handoff.
type Request struct {
	// BundleRoot is the bundle directory, for launchers that start the
	// bundle rather than the executable.
	BundleRoot string

	// Executable is the path of the bundled executable.
	Executable string

	// Args are the arguments after argv[0], passed through unchanged.
	Args []string

	// Environ is the environment for the new process in os.Environ
	// form. Relauncher adds the loop guard before calling the Launcher.
	Environ []string
}

// Handoff tells the caller how the current process ends after a
// successful launch.
type Handoff struct {
	ExitCode int
}

// Launcher starts the bundled process. Implementations either never
// return on success (exec) or return once the new process is running
// or, when they wait for it, has exited.
type Launcher interface {
	Launch(request Request) (Handoff, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(request Request) (Handoff, error)

func (f LauncherFunc) Launch(request Request) (Handoff, error) {
	return f(request)
}

// Relauncher performs the handoff through a Launcher.
type Relauncher struct {
	// Launcher defaults to DefaultLauncher().
	Launcher Launcher

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Relaunch verifies the bundled executable, sets the loop guard in the
// child's environment, and launches it. request.Environ is not
// modified. Errors wrap ErrLaunchFailed.
func (r Relauncher) Relaunch(request Request) (Handoff, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	launcher := r.Launcher
	if launcher == nil {
		launcher = DefaultLauncher()
	}

	info, err := os.Stat(request.Executable)
	if err != nil {
		return Handoff{}, fmt.Errorf("%w: bundled executable: %w", ErrLaunchFailed, err)
	}
	if !info.Mode().IsRegular() || info.Mode()&0o111 == 0 {
		return Handoff{}, fmt.Errorf("%w: bundled executable %s is not executable", ErrLaunchFailed, request.Executable)
	}

	child := request
	child.Environ = WithGuard(request.Environ)
	child.Args = append([]string(nil), request.Args...)

	logger.Info("relaunching from bundle",
		"bundle", request.BundleRoot,
		"executable", request.Executable,
		"launcher", fmt.Sprintf("%T", launcher),
	)

	handoff, err := launcher.Launch(child)
	if err != nil {
		if errors.Is(err, ErrLaunchFailed) {
			return Handoff{}, err
		}
		return Handoff{}, fmt.Errorf("%w: %s: %w", ErrLaunchFailed, request.Executable, err)
	}
	return handoff, nil
}
