// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash fingerprints executable images.
//
// A bundle records the fingerprint of the image it was built from. On
// the next start the running image is fingerprinted again and compared
// against that record: a mismatch means the executable was rebuilt and
// the bundle must be rebuilt with it.
//
// Two comparison modes exist. [ModeDigest] (the default) hashes the
// whole file with BLAKE3, so a rebuild that produces a byte-identical
// binary does not invalidate the bundle. [ModeStat] compares size and
// modification time and never reads the file, for images too large to
// hash at every start.
//
// [Copy] hashes while copying, so materializing a bundle on a
// filesystem that refuses hard links still reads the image once.
//
// This package has no dependencies on other packages in this module.
package binhash
