// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package relaunch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// SignaledExitCode is reported when a waited-for child dies from a
// signal instead of exiting.
const SignaledExitCode = 125

// SpawnLauncher starts the bundled executable as a child process with
// the parent's standard streams.
type SpawnLauncher struct {
	// Wait blocks until the child exits and reports its exit code in
	// the Handoff. Without Wait the child is detached once started and
	// the Handoff exit code is 0.
	Wait bool

	// Stdin, Stdout and Stderr default to the parent's streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (l SpawnLauncher) Launch(request Request) (Handoff, error) {
	command := exec.Command(request.Executable, request.Args...)
	command.Env = request.Environ
	command.Stdin, command.Stdout, command.Stderr = os.Stdin, os.Stdout, os.Stderr
	if l.Stdin != nil {
		command.Stdin = l.Stdin
	}
	if l.Stdout != nil {
		command.Stdout = l.Stdout
	}
	if l.Stderr != nil {
		command.Stderr = l.Stderr
	}

	if !l.Wait {
		if err := command.Start(); err != nil {
			return Handoff{}, fmt.Errorf("starting %s: %w", request.Executable, err)
		}
		if err := command.Process.Release(); err != nil {
			return Handoff{}, fmt.Errorf("releasing %s: %w", request.Executable, err)
		}
		return Handoff{ExitCode: 0}, nil
	}

	// Registered before Start so an interrupt arriving during startup
	// is delivered to the child rather than killing the parent.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	if err := command.Start(); err != nil {
		return Handoff{}, fmt.Errorf("starting %s: %w", request.Executable, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case received := <-signals:
				command.Process.Signal(received)
			case <-done:
				return
			}
		}
	}()

	return Handoff{ExitCode: exitCode(command.Wait())}, nil
}

// exitCode maps the result of exec.Cmd.Wait to a process exit code.
func exitCode(waitErr error) int {
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
	}
	return SignaledExitCode
}
