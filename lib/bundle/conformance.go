// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/manifest"
)

// Conformance is the result of [Inspect]. Reason is empty when the
// bundle conforms and otherwise names the first check that failed.
type Conformance struct {
	Conformant bool
	Reason     string
}

// Inspect checks that the bundle at root is complete and matches the
// given manifest and running image:
//
//   - the bundle directory exists;
//   - Info.plist is byte-identical to the serialized manifest;
//   - the packaged executable is a regular file with an execute bit;
//   - the stamp decodes, names the same executable, and its recorded
//     fingerprint matches image under mode;
//   - the packaged executable itself matches image under mode.
func Inspect(root string, m manifest.Manifest, image binhash.Fingerprint, mode binhash.Mode) Conformance {
	layout := Layout{Root: root, Executable: m.Executable}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nonconformant("bundle does not exist")
		}
		return nonconformant("cannot stat bundle: %v", err)
	}
	if !info.IsDir() {
		return nonconformant("bundle path is not a directory")
	}

	want, err := m.Marshal()
	if err != nil {
		return nonconformant("cannot serialize expected manifest: %v", err)
	}
	have, err := os.ReadFile(layout.ManifestPath())
	if err != nil {
		return nonconformant("cannot read Info.plist: %v", err)
	}
	if !bytes.Equal(have, want) {
		return nonconformant("Info.plist differs from the expected manifest")
	}

	executable, err := os.Stat(layout.ExecutablePath())
	if err != nil {
		return nonconformant("cannot stat packaged executable: %v", err)
	}
	if !executable.Mode().IsRegular() {
		return nonconformant("packaged executable is not a regular file")
	}
	if executable.Mode().Perm()&0o111 == 0 {
		return nonconformant("packaged executable is not executable")
	}

	stamp, err := ReadStamp(layout)
	if err != nil {
		return nonconformant("cannot read stamp: %v", err)
	}
	if stamp.Executable != m.Executable {
		return nonconformant("stamp names executable %q, manifest names %q", stamp.Executable, m.Executable)
	}
	if !stamp.Fingerprint().Matches(image, mode) {
		return nonconformant("bundle was built from a different executable image (%s fingerprint)", mode)
	}

	packaged, err := binhash.Take(layout.ExecutablePath(), mode)
	if err != nil {
		return nonconformant("cannot fingerprint packaged executable: %v", err)
	}
	if !packaged.Matches(image, mode) {
		return nonconformant("packaged executable differs from the running image (%s fingerprint)", mode)
	}

	return Conformance{Conformant: true}
}

// IsConformant reports whether [Inspect] finds the bundle conformant.
func IsConformant(root string, m manifest.Manifest, image binhash.Fingerprint, mode binhash.Mode) bool {
	return Inspect(root, m, image, mode).Conformant
}

func nonconformant(format string, args ...any) Conformance {
	return Conformance{Reason: fmt.Sprintf(format, args...)}
}
