// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/version"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Description: `Print the build version of relaunch and the BLAKE3 digest of the
running binary, the same fingerprint a bootstrap records in a bundle
stamp.`,
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			fmt.Printf("relaunch %s\n", version.Full())

			fingerprint, executable, err := version.Self(binhash.ModeDigest)
			if err != nil {
				// Build info is still useful without the fingerprint.
				logger.Warn("cannot fingerprint running binary", "error", err)
				return nil
			}
			fmt.Printf("  Binary: %s\n  Digest: %s\n", executable, fingerprint.Digest)
			return nil
		},
	}
}
