// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package relaunch

import (
	"errors"
	"slices"
	"testing"
)

func TestExecLauncherArguments(t *testing.T) {
	var gotPath string
	var gotArgv, gotEnv []string
	launcher := ExecLauncher{execFunc: func(argv0 string, argv []string, envv []string) error {
		gotPath, gotArgv, gotEnv = argv0, argv, envv
		return errors.New("exec format error")
	}}

	request := Request{
		Executable: "/Applications/Tool.app/Contents/MacOS/tool",
		Args:       []string{"serve", "--port", "8080"},
		Environ:    []string{"RELAUNCH_GUARD=1"},
	}
	_, err := launcher.Launch(request)
	if err == nil {
		t.Fatal("Launch returned nil after a failed exec")
	}

	if gotPath != request.Executable {
		t.Errorf("exec path = %q", gotPath)
	}
	wantArgv := []string{request.Executable, "serve", "--port", "8080"}
	if !slices.Equal(gotArgv, wantArgv) {
		t.Errorf("argv = %v, want %v", gotArgv, wantArgv)
	}
	if !slices.Equal(gotEnv, request.Environ) {
		t.Errorf("env = %v, want %v", gotEnv, request.Environ)
	}
}

func TestExecLauncherThroughRelauncher(t *testing.T) {
	executable := writeTool(t)
	var gotEnv []string
	relauncher := Relauncher{Launcher: ExecLauncher{execFunc: func(argv0 string, argv []string, envv []string) error {
		gotEnv = envv
		return errors.New("permission denied")
	}}}

	_, err := relauncher.Relaunch(Request{Executable: executable, Environ: []string{"A=1"}})
	if !errors.Is(err, ErrLaunchFailed) {
		t.Fatalf("Relaunch error = %v, want ErrLaunchFailed", err)
	}
	if !GuardPresent(gotEnv) {
		t.Errorf("exec environment %v is missing the guard", gotEnv)
	}
}
