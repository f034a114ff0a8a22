// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
)

// IsRoot returns true if the current process has effective UID 0.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// ExecuteFixes runs the fix of every fixable failure and updates the
// results in place. Dry runs change nothing and return an empty
// Outcome. Elevated fixes are skipped unless the process is root.
func ExecuteFixes(ctx context.Context, results []Result, dryRun bool) Outcome {
	if dryRun {
		return Outcome{}
	}

	var outcome Outcome
	root := IsRoot()

	for i := range results {
		if results[i].Status != StatusFail || results[i].fix == nil {
			continue
		}
		if results[i].Elevated && !root {
			outcome.ElevatedSkipped++
			continue
		}
		if err := results[i].fix(ctx); err != nil {
			if isPermissionDenied(err) {
				outcome.PermissionDenied = true
				results[i].Message = fmt.Sprintf("%s (insufficient permissions)", results[i].Message)
			} else {
				results[i].Message = fmt.Sprintf("%s (fix failed: %v)", results[i].Message, err)
			}
			continue
		}
		results[i].Status = StatusFixed
		outcome.FixedCount++
	}

	return outcome
}

func isPermissionDenied(err error) bool {
	return errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

// BuildJSON builds the --json document.
func BuildJSON(results []Result, dryRun bool, outcome Outcome) JSONOutput {
	return JSONOutput{
		Checks:           results,
		OK:               !Failed(results),
		DryRun:           dryRun,
		PermissionDenied: outcome.PermissionDenied,
		ElevatedSkipped:  outcome.ElevatedSkipped,
	}
}

// MarkRepaired marks as fixed the passing results named in repaired:
// checks that failed in an earlier pass and were repaired by another
// check's fix.
func MarkRepaired(results []Result, repaired map[string]bool) {
	for i := range results {
		if results[i].Status == StatusPass && repaired[results[i].Name] {
			results[i].Status = StatusFixed
		}
	}
}
