// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	stagingInfix = ".staging-"
	trashInfix   = ".trash-"
)

// stagingPattern is the os.MkdirTemp pattern for a staging directory
// next to root: ".<Name>.app.staging-*".
func stagingPattern(root string) string {
	return "." + filepath.Base(root) + stagingInfix + "*"
}

func trashPattern(root string) string {
	return "." + filepath.Base(root) + trashInfix + "*"
}

// StaleStaging lists leftover staging and displaced-bundle directories
// for root. They are left behind by writers killed between staging and
// cleanup. A writer still running owns its staging directory, so only
// call this when no other bootstrap for the same bundle is in flight.
func StaleStaging(root string) ([]string, error) {
	parent := filepath.Dir(root)
	entries, err := os.ReadDir(parent)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", parent, err)
	}

	prefix := "." + filepath.Base(root)
	var stale []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := name[len(prefix):]
		if strings.HasPrefix(rest, stagingInfix) || strings.HasPrefix(rest, trashInfix) {
			stale = append(stale, filepath.Join(parent, name))
		}
	}
	return stale, nil
}

// RemoveStaging deletes the given directories. Every path must be one
// StaleStaging could have returned; anything else is refused.
func RemoveStaging(paths []string) error {
	var errs []error
	for _, path := range paths {
		name := filepath.Base(path)
		if !strings.HasPrefix(name, ".") ||
			!(strings.Contains(name, Extension+stagingInfix) || strings.Contains(name, Extension+trashInfix)) {
			errs = append(errs, fmt.Errorf("refusing to remove %s: not a staging directory", path))
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
