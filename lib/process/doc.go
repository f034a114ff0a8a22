// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for the relaunch
// binaries: reporting an error from main() to stderr before or after
// the structured logger exists, then exiting with the right status.
package process
