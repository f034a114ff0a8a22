// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's CBOR encoding configuration.
//
// CBOR is used for the bundle stamp, the small record inside every
// bundle that names the executable image the bundle was built from.
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so
// the same record always produces identical bytes. Two processes that
// materialize the same bundle concurrently therefore write identical
// trees, and whichever install wins leaves the same content behind.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types encoded through this package use `cbor` struct tags. They are
// never serialized as JSON; CLI output that shows a stamp converts it
// to a separate JSON-tagged view.
package codec
