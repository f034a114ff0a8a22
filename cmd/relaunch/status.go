// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/bootstrap"
	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/codec"
	"github.com/bureau-foundation/relaunch/lib/launchcontext"
)

type statusParams struct {
	targetParams
	cli.JSONOutput
	Expect string `flag:"expect" desc:"expected BLAKE3 digest of the executable (hex); exit 1 when it differs"`
}

type statusResult struct {
	Executable   string `json:"executable"`
	Context      string `json:"context"`
	Root         string `json:"root"`
	Conformant   bool   `json:"conformant"`
	Reason       string `json:"reason,omitempty"`
	ShortVersion string `json:"short_version"`
	BuildVersion string `json:"build_version"`
	Size         int64  `json:"size"`
	Digest       string `json:"digest,omitempty"`
	Supported    bool   `json:"supported"`

	// Stamp is the installed bundle's stamp in CBOR diagnostic
	// notation, empty when the bundle has none.
	Stamp string `json:"stamp,omitempty"`

	// DigestMatch is set only with --expect.
	DigestMatch *bool `json:"digest_match,omitempty"`
}

func statusCommand() *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Report whether an executable's bundle is current",
		Description: `Report how an executable would start: from a bundle, or bare with
a bundle that is current, stale, or missing. Nothing is written.`,
		Usage: "relaunch status [flags] <executable>",
		Examples: []cli.Example{
			{
				Description: "Check the bundle for a build output",
				Command:     "relaunch status --config app.yaml ./bin/tool",
			},
			{
				Description: "Machine-readable output",
				Command:     "relaunch status --json --config app.yaml ./bin/tool",
			},
			{
				Description: "Verify the executable against a published digest",
				Command:     "relaunch status --config app.yaml --expect 1f0c...e9 ./bin/tool",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("status", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			executable, err := requireExecutable(args)
			if err != nil {
				return err
			}
			var expected binhash.Digest
			if params.Expect != "" {
				if params.Fingerprint != "" && params.Fingerprint != binhash.ModeDigest.String() {
					return fmt.Errorf("--expect requires digest fingerprints")
				}
				params.Fingerprint = binhash.ModeDigest.String()
				if expected, err = binhash.ParseDigest(params.Expect); err != nil {
					return fmt.Errorf("--expect: %w", err)
				}
			}
			controller, err := params.controller(executable, logger)
			if err != nil {
				return err
			}
			report, err := controller.Inspect()
			if err != nil {
				return err
			}

			result := newStatusResult(report)
			result.Stamp = diagnoseStamp(bundle.Layout{Root: report.Root, Executable: controller.Manifest().Executable}, logger)
			if params.Expect != "" {
				match := report.Fingerprint.Digest == expected
				result.DigestMatch = &match
			}

			if done, err := params.EmitJSON(result); !done {
				printStatus(result, cli.IsTerminal())
			} else if err != nil {
				return err
			}
			if result.DigestMatch != nil && !*result.DigestMatch {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func newStatusResult(report bootstrap.Report) statusResult {
	result := statusResult{
		Executable:   report.Executable,
		Context:      report.Context.String(),
		Root:         report.Root,
		Conformant:   report.Conformance.Conformant,
		Reason:       report.Conformance.Reason,
		ShortVersion: report.Versions.Short,
		BuildVersion: report.Versions.Build,
		Size:         report.Fingerprint.Size,
		Supported:    bootstrap.Supported(),
	}
	if !report.Fingerprint.Digest.IsZero() {
		result.Digest = report.Fingerprint.Digest.String()
	}
	return result
}

// diagnoseStamp renders the bundle's stamp for display. A missing or
// undecodable stamp yields "".
func diagnoseStamp(layout bundle.Layout, logger *slog.Logger) string {
	data, err := os.ReadFile(layout.StampPath())
	if err != nil {
		return ""
	}
	notation, err := codec.Diagnose(data)
	if err != nil {
		logger.Debug("stamp is not valid CBOR", "path", layout.StampPath(), "error", err)
		return ""
	}
	return notation
}

func printStatus(result statusResult, styled bool) {
	bundleState := field{label: "bundle", value: "current", style: &goodStyle}
	if !result.Conformant {
		bundleState = field{label: "bundle", value: result.Reason, style: &badStyle}
	}
	contextStyle := &mutedStyle
	if result.Context == launchcontext.Bundled.String() {
		contextStyle = &goodStyle
	}

	fields := []field{
		{label: "executable", value: result.Executable},
		{label: "context", value: result.Context, style: contextStyle},
		{label: "root", value: result.Root},
		bundleState,
		{label: "version", value: result.ShortVersion + " (" + result.BuildVersion + ")"},
		{label: "size", value: strconv.FormatInt(result.Size, 10)},
	}
	if result.Digest != "" {
		fields = append(fields, field{label: "digest", value: result.Digest, style: &mutedStyle})
	}
	if result.Stamp != "" {
		fields = append(fields, field{label: "stamp", value: result.Stamp, style: &mutedStyle})
	}
	if result.DigestMatch != nil {
		if *result.DigestMatch {
			fields = append(fields, field{label: "expected", value: "digest matches", style: &goodStyle})
		} else {
			fields = append(fields, field{label: "expected", value: "digest differs", style: &badStyle})
		}
	}
	if !result.Supported {
		fields = append(fields, field{label: "platform", value: "bundles have no effect here", style: &mutedStyle})
	}
	printFields(os.Stdout, fields, styled)
}
