// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest builds and parses the Info.plist of an application
// bundle.
//
// [Build] combines validated [Metadata] with the version strings from
// lib/bundleversion into a [Manifest]. [Manifest.Marshal] produces an
// XML property list; the output is a pure function of the manifest, so
// two processes building the same bundle write byte-identical files and
// the bundle conformance check can compare bytes directly. [Parse]
// reads a property list back into a [Manifest] and round-trips every
// field.
//
// Identity rules:
//
//   - The identifier is reverse-DNS style: ASCII letters, digits, '.'
//     and '-', non-empty ([ErrInvalidIdentifier]).
//   - The display name becomes a directory name: non-empty, no '/' or
//     ':', no leading '.' ([ErrInvalidName]).
//   - The executable name is a single path element ([ErrInvalidExecutable]).
package manifest
