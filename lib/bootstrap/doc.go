// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap makes a plain executable run from an application
// bundle.
//
// Call [Ensure] first thing in main, before any UI toolkit starts:
//
//	outcome, err := bootstrap.Ensure(bootstrap.Options{
//		Metadata: manifest.Metadata{Identifier: "com.example.tool", Name: "Tool"},
//		Version:  "1.4.0",
//	})
//	if err != nil {
//		process.Fatal(err)
//	}
//	if outcome.Degraded {
//		logger.Warn("running unbundled", "error", outcome.Warning)
//	}
//
// Ensure detects how the process was started and walks a small state
// machine:
//
//	Start -> Detecting
//	Detecting -> Ready          (running from a conformant bundle)
//	Detecting -> Ready          (loop guard present: a handoff already happened)
//	Detecting -> NeedsBuild     (bare, bundle missing or stale)
//	Detecting -> NeedsRelaunch  (bare, bundle conformant)
//	NeedsBuild -> NeedsRelaunch (bundle materialized)
//	NeedsBuild -> Ready         (materialize failed: degraded)
//	NeedsRelaunch -> Relaunching -> Terminated (handoff succeeded)
//	Relaunching -> Ready        (launch failed: degraded)
//
// When the handoff succeeds the current process exits with the
// handoff's exit code; Ensure returns only in Ready. At most one
// handoff happens per chain of processes: the loop guard set in the
// child's environment stops a child that is not recognized as bundled
// from trying again.
//
// Errors returned from Ensure are construction errors (an invalid
// version or metadata) and are the caller's bug. Filesystem and launch
// failures at run time never fail the call; they produce a Ready
// outcome with Degraded set, and the application runs unbundled.
//
// Bundles only change behavior on darwin. Elsewhere Ensure returns
// Ready with Unsupported set unless Options.Force is true.
package bootstrap
