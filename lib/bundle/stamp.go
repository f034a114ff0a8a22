// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/codec"
)

// Stamp records the executable image a bundle was built from. It is
// encoded with deterministic CBOR, so equal stamps are equal bytes.
type Stamp struct {
	// Executable is the file name inside Contents/MacOS.
	Executable string `cbor:"executable"`

	Size int64 `cbor:"size"`

	// ModTime is the image modification time in Unix nanoseconds.
	ModTime int64 `cbor:"mod_time_unix_nano"`

	// Digest is the BLAKE3 digest of the image, absent when the bundle
	// was built in stat fingerprint mode.
	Digest []byte `cbor:"digest,omitempty"`
}

// NewStamp builds the stamp for an image fingerprint.
func NewStamp(executable string, fingerprint binhash.Fingerprint) Stamp {
	stamp := Stamp{
		Executable: executable,
		Size:       fingerprint.Size,
		ModTime:    fingerprint.ModTime,
	}
	if !fingerprint.Digest.IsZero() {
		stamp.Digest = fingerprint.Digest[:]
	}
	return stamp
}

// Fingerprint returns the recorded image fingerprint.
func (s Stamp) Fingerprint() binhash.Fingerprint {
	fingerprint := binhash.Fingerprint{Size: s.Size, ModTime: s.ModTime}
	copy(fingerprint.Digest[:], s.Digest)
	return fingerprint
}

// Marshal encodes the stamp.
func (s Stamp) Marshal() ([]byte, error) {
	return codec.Marshal(s)
}

// ReadStamp reads and decodes the stamp of the bundle at layout. A
// missing stamp wraps os.ErrNotExist.
func ReadStamp(layout Layout) (Stamp, error) {
	data, err := os.ReadFile(layout.StampPath())
	if err != nil {
		return Stamp{}, err
	}
	var stamp Stamp
	if err := codec.Unmarshal(data, &stamp); err != nil {
		return Stamp{}, fmt.Errorf("decoding stamp %s: %w", layout.StampPath(), err)
	}
	if len(stamp.Digest) != 0 && len(stamp.Digest) != len(binhash.Digest{}) {
		return Stamp{}, fmt.Errorf("stamp %s: digest is %d bytes, want %d",
			layout.StampPath(), len(stamp.Digest), len(binhash.Digest{}))
	}
	return stamp, nil
}
