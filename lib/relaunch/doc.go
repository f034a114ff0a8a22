// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package relaunch hands execution off from a bare executable to its
// bundled copy.
//
// A [Relauncher] checks that the bundled executable can run, adds the
// loop guard to a copy of the environment, and asks its [Launcher] to
// start the bundled process. The guard ([GuardVariable]) is what lets
// the child tell that a handoff already happened: if the child turns
// out not to be recognized as bundled, it sees the guard and continues
// without trying again. The parent's own environment is never changed.
//
// Launchers are a capability interface with one implementation per
// mechanism:
//
//   - [ExecLauncher] replaces the current process image (unix). On
//     success it never returns.
//   - [SpawnLauncher] starts a child process. With Wait it blocks until
//     the child exits, forwards SIGINT and SIGTERM to it, and reports
//     the child's exit status (125 when the child died from a signal).
//   - [OpenLauncher] asks LaunchServices to start the bundle (darwin).
//
// [DefaultLauncher] picks one at build time. A successful launch
// returns a [Handoff] naming the exit code the current process should
// terminate with; the caller performs that termination exactly once.
// Every failure wraps [ErrLaunchFailed] and leaves the current process
// running.
package relaunch
