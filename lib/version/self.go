// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/relaunch/lib/binhash"
)

// Self returns the symlink-resolved path of the running executable and
// its fingerprint under mode. On Linux os.Executable reads
// /proc/self/exe, which names the image the process started from even
// after the file was replaced.
func Self(mode binhash.Mode) (binhash.Fingerprint, string, error) {
	executable, err := os.Executable()
	if err != nil {
		return binhash.Fingerprint{}, "", fmt.Errorf("resolving own executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}
	fingerprint, err := binhash.Take(executable, mode)
	if err != nil {
		return binhash.Fingerprint{}, "", fmt.Errorf("fingerprinting own binary at %s: %w", executable, err)
	}
	return fingerprint, executable, nil
}
