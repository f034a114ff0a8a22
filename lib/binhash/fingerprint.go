// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"fmt"
	"os"
)

// Mode selects how two executable images are compared.
type Mode uint8

const (
	// ModeDigest compares size and content digest. Touching a file
	// without changing it does not count as a change.
	ModeDigest Mode = iota

	// ModeStat compares size and modification time only. No file
	// contents are read.
	ModeStat
)

// String returns the configuration spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDigest:
		return "digest"
	case ModeStat:
		return "stat"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses "digest" or "stat". The empty string is ModeDigest.
func ParseMode(value string) (Mode, error) {
	switch value {
	case "", "digest":
		return ModeDigest, nil
	case "stat":
		return ModeStat, nil
	default:
		return 0, fmt.Errorf("unknown fingerprint mode %q (want digest or stat)", value)
	}
}

// Fingerprint identifies one version of an executable image.
type Fingerprint struct {
	Size int64

	// ModTime is the modification time in Unix nanoseconds.
	ModTime int64

	// Digest is zero when the fingerprint was taken in ModeStat.
	Digest Digest
}

// Take fingerprints the file at path. The digest is computed only in
// ModeDigest.
func Take(path string, mode Mode) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("fingerprinting %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Fingerprint{}, fmt.Errorf("fingerprinting %s: not a regular file", path)
	}

	fingerprint := Fingerprint{
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}
	if mode == ModeDigest {
		fingerprint.Digest, err = HashFile(path)
		if err != nil {
			return Fingerprint{}, err
		}
	}
	return fingerprint, nil
}

// Matches reports whether f and other describe the same image under
// mode. In ModeDigest both fingerprints must carry a digest.
func (f Fingerprint) Matches(other Fingerprint, mode Mode) bool {
	if f.Size != other.Size {
		return false
	}
	switch mode {
	case ModeStat:
		return f.ModTime == other.ModTime
	default:
		return !f.Digest.IsZero() && f.Digest == other.Digest
	}
}
