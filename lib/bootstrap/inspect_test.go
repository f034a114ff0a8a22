// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/launchcontext"
)

func TestInspectDoesNotWrite(t *testing.T) {
	h := newHarness(t)
	controller, err := New(h.options(h.image, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := controller.Inspect()
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if report.Context != launchcontext.Bare {
		t.Errorf("Context = %v, want bare", report.Context)
	}
	if report.Conformance.Conformant || report.Conformance.Reason == "" {
		t.Errorf("Conformance = %+v, want a reason for a missing bundle", report.Conformance)
	}
	if report.Versions.Build != "1.2.3.0" {
		t.Errorf("Build = %q, want 1.2.3.0", report.Versions.Build)
	}
	if _, err := os.Stat(h.installDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Inspect created the install directory: %v", err)
	}
}

func TestBuildThenInspect(t *testing.T) {
	h := newHarness(t)
	controller, err := New(h.options(h.image, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	root, err := controller.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if filepath.Base(root) != "Tool"+bundle.Extension {
		t.Errorf("root = %q", root)
	}

	report, err := controller.Inspect()
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !report.Conformance.Conformant {
		t.Errorf("bundle not conformant after Build: %s", report.Conformance.Reason)
	}
	if report.Root != root {
		t.Errorf("Root = %q, want %q", report.Root, root)
	}

	bundled, err := New(h.options(bundle.Layout{Root: root, Executable: "tool"}.ExecutablePath(), nil))
	if err != nil {
		t.Fatalf("New(bundled): %v", err)
	}
	report, err = bundled.Inspect()
	if err != nil {
		t.Fatalf("Inspect(bundled): %v", err)
	}
	if report.Context != launchcontext.Bundled || !report.Conformance.Conformant {
		t.Errorf("bundled report = %+v", report)
	}
}

func TestBuildFailure(t *testing.T) {
	h := newHarness(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	h.installDir = filepath.Join(blocker, "Applications")

	controller, err := New(h.options(h.image, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := controller.Build(); !errors.Is(err, bundle.ErrWriteFailed) {
		t.Errorf("Build error = %v, want ErrWriteFailed", err)
	}
}
