// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor provides the check-and-repair workflow behind
// "relaunch doctor".
//
// A check produces a [Result]; fixable failures carry a fix closure
// that [ExecuteFixes] runs in --fix mode. Fixes that need root (writing
// into /Applications) are marked elevated and skipped for ordinary
// users. [PrintChecklist] renders results for a terminal and
// [BuildJSON] for --json.
//
// The checks themselves live in cmd/relaunch.
package doctor
