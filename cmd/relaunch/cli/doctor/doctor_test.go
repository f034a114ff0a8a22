// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
	"testing"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
)

func noop(context.Context) error { return nil }

func TestConstructors(t *testing.T) {
	tests := []struct {
		result   Result
		status   Status
		hasFix   bool
		elevated bool
	}{
		{Pass("a", "ok"), StatusPass, false, false},
		{Fail("b", "broken"), StatusFail, false, false},
		{FailWithFix("c", "broken", "rebuild", noop), StatusFail, true, false},
		{FailElevated("d", "needs root", "create /Applications", noop), StatusFail, true, true},
		{Warn("e", "heads up"), StatusWarn, false, false},
		{Skip("f", "prerequisite failed"), StatusSkip, false, false},
	}
	for _, test := range tests {
		t.Run(test.result.Name, func(t *testing.T) {
			if test.result.Status != test.status {
				t.Errorf("Status = %q, want %q", test.result.Status, test.status)
			}
			if test.result.HasFix() != test.hasFix {
				t.Errorf("HasFix() = %v, want %v", test.result.HasFix(), test.hasFix)
			}
			if test.result.Elevated != test.elevated {
				t.Errorf("Elevated = %v, want %v", test.result.Elevated, test.elevated)
			}
		})
	}
}

func TestExecuteFixesDryRun(t *testing.T) {
	called := false
	results := []Result{
		FailWithFix("bundle", "stale", "rebuild", func(context.Context) error {
			called = true
			return nil
		}),
	}

	outcome := ExecuteFixes(context.Background(), results, true)
	if called || outcome.FixedCount != 0 || results[0].Status != StatusFail {
		t.Errorf("dry run changed state: called=%v outcome=%+v status=%q", called, outcome, results[0].Status)
	}
}

func TestExecuteFixes(t *testing.T) {
	results := []Result{
		Pass("platform", "darwin"),
		FailWithFix("bundle", "stale", "rebuild", noop),
		FailWithFix("staging", "leftovers", "remove", func(context.Context) error {
			return errors.New("disk on fire")
		}),
		FailWithFix("install directory", "not writable", "chmod", func(context.Context) error {
			return &fs.PathError{Op: "mkdir", Path: "/Applications", Err: syscall.EACCES}
		}),
		Fail("executable", "unreadable"),
	}

	outcome := ExecuteFixes(context.Background(), results, false)

	if outcome.FixedCount != 1 {
		t.Errorf("FixedCount = %d, want 1", outcome.FixedCount)
	}
	if !outcome.PermissionDenied {
		t.Error("PermissionDenied not set for an EACCES fix failure")
	}
	want := []Status{StatusPass, StatusFixed, StatusFail, StatusFail, StatusFail}
	for i, status := range want {
		if results[i].Status != status {
			t.Errorf("results[%d].Status = %q, want %q", i, results[i].Status, status)
		}
	}
	if results[2].Message != "leftovers (fix failed: disk on fire)" {
		t.Errorf("Message = %q", results[2].Message)
	}
	if results[3].Message != "not writable (insufficient permissions)" {
		t.Errorf("Message = %q", results[3].Message)
	}
}

func TestExecuteFixesSkipsElevated(t *testing.T) {
	if IsRoot() {
		t.Skip("test requires a non-root process")
	}
	called := false
	results := []Result{
		FailElevated("install directory", "missing", "create /Applications", func(context.Context) error {
			called = true
			return nil
		}),
	}

	outcome := ExecuteFixes(context.Background(), results, false)
	if called {
		t.Error("elevated fix ran without root")
	}
	if outcome.ElevatedSkipped != 1 {
		t.Errorf("ElevatedSkipped = %d, want 1", outcome.ElevatedSkipped)
	}
}

func TestBuildJSON(t *testing.T) {
	output := BuildJSON([]Result{Pass("a", "ok"), Fail("b", "broken")}, true, Outcome{ElevatedSkipped: 2})
	if output.OK || !output.DryRun || output.ElevatedSkipped != 2 || len(output.Checks) != 2 {
		t.Errorf("BuildJSON() = %+v", output)
	}
	if !BuildJSON([]Result{Pass("a", "ok"), Warn("b", "meh")}, false, Outcome{}).OK {
		t.Error("warnings should not make the report fail")
	}
}

func TestMarkRepaired(t *testing.T) {
	results := []Result{
		Pass("staging", "none"),
		Pass("platform", "darwin"),
		Fail("bundle", "stale"),
	}
	MarkRepaired(results, map[string]bool{"staging": true, "bundle": true})

	want := []Status{StatusFixed, StatusPass, StatusFail}
	for i, status := range want {
		if results[i].Status != status {
			t.Errorf("results[%d].Status = %q, want %q", i, results[i].Status, status)
		}
	}
}

func TestPrintChecklist(t *testing.T) {
	tests := []struct {
		name     string
		results  []Result
		fixMode  bool
		dryRun   bool
		outcome  Outcome
		wantExit bool
		want     []string
	}{
		{
			name:    "all pass",
			results: []Result{Pass("platform", "darwin")},
			want:    []string{"[PASS ]  platform", "All checks passed."},
		},
		{
			name:     "fixable",
			results:  []Result{FailWithFix("bundle", "stale", "rebuild", noop)},
			wantExit: true,
			want:     []string{"[FAIL ]  bundle", "Run with --fix to repair 1 issue(s)."},
		},
		{
			name:     "dry run",
			results:  []Result{FailElevated("install directory", "missing", "create /Applications", noop)},
			fixMode:  true,
			dryRun:   true,
			wantExit: true,
			want:     []string{"would fix: create /Applications (requires sudo)", "1 issue(s) would be repaired"},
		},
		{
			name:     "elevated skipped",
			results:  []Result{FailElevated("install directory", "missing", "create /Applications", noop)},
			fixMode:  true,
			outcome:  Outcome{ElevatedSkipped: 1},
			wantExit: true,
			want:     []string{"1 fix(es) require root privileges", "sudo relaunch doctor --fix"},
		},
		{
			name:    "repaired",
			results: []Result{{Name: "bundle", Status: StatusFixed, Message: "rebuilt"}},
			fixMode: true,
			want:    []string{"[FIXED]  bundle", "1 issue(s) repaired."},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			err := PrintChecklist(&output, test.results, test.fixMode, test.dryRun, false, test.outcome)

			var exitError *cli.ExitError
			if got := errors.As(err, &exitError); got != test.wantExit {
				t.Errorf("PrintChecklist() error = %v, want exit error %v", err, test.wantExit)
			}
			for _, want := range test.want {
				if !strings.Contains(output.String(), want) {
					t.Errorf("output missing %q:\n%s", want, output.String())
				}
			}
		})
	}
}

func ExamplePrintChecklist() {
	results := []Result{
		Pass("platform", "darwin"),
		Warn("launcher", "open is unavailable, using exec"),
	}
	var output bytes.Buffer
	_ = PrintChecklist(&output, results, false, false, false, Outcome{})
	fmt.Print(output.String())
	// Output:
	// [PASS ]  platform                      darwin
	// [WARN ]  launcher                      open is unavailable, using exec
	//
	// All checks passed.
}
