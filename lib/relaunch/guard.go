// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package relaunch

import "strings"

// GuardVariable is the environment variable that marks a process as
// the target of a handoff. Only its presence matters.
const GuardVariable = "RELAUNCH_GUARD"

const guardPrefix = GuardVariable + "="

// GuardPresent reports whether environ, in os.Environ form, carries the
// loop guard.
func GuardPresent(environ []string) bool {
	for _, entry := range environ {
		if strings.HasPrefix(entry, guardPrefix) {
			return true
		}
	}
	return false
}

// WithGuard returns a copy of environ with the loop guard set exactly
// once. environ itself is not modified.
func WithGuard(environ []string) []string {
	result := WithoutGuard(environ)
	return append(result, guardPrefix+"1")
}

// WithoutGuard returns a copy of environ with every loop guard entry
// removed.
func WithoutGuard(environ []string) []string {
	result := make([]string, 0, len(environ)+1)
	for _, entry := range environ {
		if !strings.HasPrefix(entry, guardPrefix) {
			result = append(result, entry)
		}
	}
	return result
}
