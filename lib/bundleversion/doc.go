// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundleversion converts a free-form application version string
// into the two version fields an application bundle manifest carries:
//
//   - the short version, a display string of the form
//     major.minor.patch[-tag[.N]], and
//   - the build version, a four-component dotted integer that the OS
//     compares to decide update ordering.
//
// The accepted grammar is major[.minor[.patch]][-tag[.N]] with an
// optional leading "v". Missing minor and patch components are zero.
// Numeric bounds and the pre-release tag vocabulary are not hard-coded:
// they come from [Rules], and [DefaultRules] describes the common
// platform limits (components 0–65535, five digits, alpha < beta < rc).
//
// # Build version encoding
//
// The build version must order strictly with semantic-version
// precedence, including pre-releases, which sort below the release they
// precede. A release M.m.p encodes as M.m.p.0. A pre-release of M.m.p
// encodes as the triple immediately preceding M.m.p (in mixed radix
// MaxComponent+1), followed by a fourth component that ranks the tag and
// its number:
//
//	1.2.3          -> 1.2.3.0
//	2.0.0-beta.1   -> 1.65535.65535.1004
//	2.0.0          -> 2.0.0.0
//
// so every pre-release of a version lies strictly between the previous
// release triple and the release itself. A pre-release of 0.0.0 has no
// predecessor and is rejected with [ErrOutOfRange].
//
// # Errors
//
// All failures wrap one of [ErrOutOfRange], [ErrInvalidSuffix] or
// [ErrMalformed]; callers match them with errors.Is. Every function in
// this package is pure.
package bundleversion
