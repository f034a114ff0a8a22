// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
	"github.com/bureau-foundation/relaunch/lib/bundleversion"
	"github.com/bureau-foundation/relaunch/lib/config"
)

type versionsParams struct {
	cli.JSONOutput
	Config string `flag:"config,c" desc:"app config file whose version_rules apply (default: built-in rules)"`
}

type versionsRow struct {
	Version      string `json:"version"`
	ShortVersion string `json:"short_version"`
	BuildVersion string `json:"build_version"`
}

func versionsCommand() *cli.Command {
	var params versionsParams

	return &cli.Command{
		Name:    "versions",
		Summary: "Show the bundle version fields for version strings",
		Description: `Show the short (display) and build (monotonic) version a bundle would
carry for each version string. Pre-releases map below their release:
2.0.0-beta.1 becomes build 1.65535.65535.1004, below 2.0.0.0.`,
		Usage: "relaunch versions [flags] <version>...",
		Examples: []cli.Example{
			{
				Description: "Compare a pre-release with its release",
				Command:     "relaunch versions 2.0.0-beta.1 2.0.0",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("versions", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one version required")
			}

			rules := bundleversion.DefaultRules()
			if params.Config != "" {
				cfg, err := config.LoadFile(params.Config)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				rules = cfg.Rules()
				if err := rules.Validate(); err != nil {
					return fmt.Errorf("version_rules: %w", err)
				}
			}

			rows, err := formatVersions(args, rules)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(rows); done {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "VERSION\tSHORT\tBUILD")
			for _, row := range rows {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", row.Version, row.ShortVersion, row.BuildVersion)
			}
			return writer.Flush()
		},
	}
}

func formatVersions(raw []string, rules bundleversion.Rules) ([]versionsRow, error) {
	rows := make([]versionsRow, 0, len(raw))
	for _, version := range raw {
		versions, err := bundleversion.Format(version, rules)
		if err != nil {
			return nil, err
		}
		rows = append(rows, versionsRow{
			Version:      version,
			ShortVersion: versions.Short,
			BuildVersion: versions.Build,
		})
	}
	return rows, nil
}
