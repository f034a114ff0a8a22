// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
)

type bundleParams struct {
	targetParams
	cli.JSONOutput
}

type bundleResult struct {
	Root         string `json:"root"`
	Identifier   string `json:"identifier"`
	ShortVersion string `json:"short_version"`
	BuildVersion string `json:"build_version"`
}

func bundleCommand() *cli.Command {
	var params bundleParams

	return &cli.Command{
		Name:    "bundle",
		Summary: "Build the application bundle for an executable",
		Description: `Build or rebuild the application bundle for an executable.

The bundle is assembled next to its final location and moved into place
in one step, so a concurrent reader sees either the old bundle or the new
one. An existing bundle is replaced even when it already matches.`,
		Usage: "relaunch bundle [flags] <executable>",
		Examples: []cli.Example{
			{
				Description: "Bundle into the temporary directory",
				Command:     "relaunch bundle --config app.yaml ./bin/tool",
			},
			{
				Description: "Bundle into ~/Applications",
				Command:     "relaunch bundle --config app.yaml --install user ./bin/tool",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bundle", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			executable, err := requireExecutable(args)
			if err != nil {
				return err
			}
			controller, err := params.controller(executable, logger)
			if err != nil {
				return err
			}
			root, err := controller.Build()
			if err != nil {
				return err
			}

			result := bundleResult{
				Root:         root,
				Identifier:   controller.Manifest().Identifier,
				ShortVersion: controller.Manifest().ShortVersion,
				BuildVersion: controller.Manifest().BuildVersion,
			}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Println(root)
			return nil
		},
	}
}
