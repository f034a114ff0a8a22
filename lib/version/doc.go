// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the relaunch
// binaries and identifies the running executable image.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// For example:
//
//	go build -ldflags "-X github.com/bureau-foundation/relaunch/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// [Version] doubles as the default application version of the
// relaunch-terminal example, so a development build bundles as "0.1.0-alpha".
//
// [Self] fingerprints the running executable the same way a bootstrap
// does, for diagnostics that compare it with an installed bundle.
package version
