// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest of a file's contents.
type Digest [32]byte

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// String returns the hex encoding of the digest. This is the format
// used in log output and status reports.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// HashFile computes the BLAKE3 digest of the file at path, streaming
// the contents so memory use is constant regardless of file size.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digest, _, err := Copy(io.Discard, file)
	if err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digest, nil
}

// Copy copies src to dst and returns the digest of the bytes copied
// along with their count. Used when an image must be duplicated rather
// than linked, so the copy and the hash take one pass.
func Copy(dst io.Writer, src io.Reader) (Digest, int64, error) {
	hasher := blake3.New()
	written, err := io.Copy(io.MultiWriter(dst, hasher), src)
	if err != nil {
		return Digest{}, written, err
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, written, nil
}

// ParseDigest parses a hex-encoded digest string. Returns an error if
// the string is not a valid 64-character hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("hash digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
