// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteExecutable writes content to dir/name with mode 0755 and returns
// the path. The content does not need to be a real program; bundle
// tests only fingerprint and copy it.
func WriteExecutable(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("writing executable %s: %v", path, err)
	}
	return path
}

// WriteScript writes a /bin/sh script with the given body and returns
// its path. Tests that start real child processes use it.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	return WriteExecutable(t, dir, name, []byte("#!/bin/sh\n"+body+"\n"))
}
