// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle lays out, checks, and atomically installs application
// bundles on disk.
//
// A bundle is a directory tree:
//
//	<Name>.app/
//	  Contents/
//	    Info.plist
//	    MacOS/<executable>
//	    Resources/
//	      relaunch.stamp
//	      <resources...>
//
// The stamp is a deterministic CBOR record of the executable image the
// bundle was built from (see [Stamp]). [Inspect] compares the on-disk
// tree against a freshly built manifest and the fingerprint of the
// running image; [IsConformant] is the boolean form used by the
// bootstrap.
//
// [Materialize] never modifies the target in place. It builds the whole
// tree in a hidden sibling staging directory, fsyncs it, and installs it
// with a single rename, or with an atomic directory exchange when a
// bundle is already present. Readers observe either the complete old
// bundle or the complete new one. When two processes materialize the
// same bundle concurrently the last install wins and the loser's tree
// is removed; both trees have identical content, so the race is benign.
//
// Writers killed mid-build leave ".<Name>.app.staging-*" directories
// behind. [StaleStaging] finds them and [RemoveStaging] deletes them.
package bundle
