// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package launchcontext determines how the current process was
// started: from inside a conformant bundle, as a bare executable, or
// as a bare executable that a previous instance already tried to
// relaunch.
//
// [Detect] is pure inspection. It reads the filesystem but never
// writes, and the loop guard is an explicit input rather than an
// environment lookup, so callers and tests control it directly.
package launchcontext

import (
	"path/filepath"

	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/manifest"
)

// Context is the execution context of the current process.
type Context uint8

const (
	// Bare is a plain executable outside any bundle.
	Bare Context = iota

	// Bundled is an executable running from inside a conformant bundle.
	Bundled

	// BareRelaunched is a plain executable that carries the loop guard:
	// an earlier instance already handed off to it, so it must not
	// hand off again.
	BareRelaunched
)

func (c Context) String() string {
	switch c {
	case Bare:
		return "bare"
	case Bundled:
		return "bundled"
	case BareRelaunched:
		return "bare-relaunched"
	default:
		return "unknown"
	}
}

// Input is everything Detect looks at.
type Input struct {
	// Executable is the path of the running image, usually from
	// os.Executable. Symlinks are resolved before matching.
	Executable string

	// Manifest is the manifest a conformant bundle must carry.
	Manifest manifest.Manifest

	// Fingerprint is the fingerprint of the running image, taken in
	// Mode.
	Fingerprint binhash.Fingerprint
	Mode        binhash.Mode

	// GuardPresent reports whether the loop guard is in the
	// environment.
	GuardPresent bool
}

// Result is the detected context. BundleRoot is set only for Bundled.
type Result struct {
	Context    Context
	BundleRoot string

	// Reason explains why an executable inside a bundle directory was
	// not considered bundled. Empty otherwise.
	Reason string
}

// Detect classifies the running process.
func Detect(input Input) Result {
	executable := input.Executable
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}

	var reason string
	if layout, ok := bundle.FromExecutable(executable); ok {
		if layout.Executable != input.Manifest.Executable {
			reason = "running executable is not the bundle's main executable"
		} else {
			conformance := bundle.Inspect(layout.Root, input.Manifest, input.Fingerprint, input.Mode)
			if conformance.Conformant {
				return Result{Context: Bundled, BundleRoot: layout.Root}
			}
			reason = conformance.Reason
		}
	}

	if input.GuardPresent {
		return Result{Context: BareRelaunched, Reason: reason}
	}
	return Result{Context: Bare, Reason: reason}
}
