// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux && !darwin

package bundle

func exchange(a, b string) error {
	return errExchangeUnsupported
}
