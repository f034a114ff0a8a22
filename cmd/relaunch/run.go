// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
	"github.com/bureau-foundation/relaunch/lib/bootstrap"
	"github.com/bureau-foundation/relaunch/lib/relaunch"
)

type runParams struct {
	targetParams
	Launch string `flag:"launch" desc:"handoff mechanism: exec, spawn, wait, or open (overrides the config)"`
}

func runCommand() *cli.Command {
	var params runParams

	return &cli.Command{
		Name:    "run",
		Summary: "Run an executable through its bundle",
		Description: `Bootstrap an executable that does not bootstrap itself: build or
refresh its bundle, then start it from the bundle with the loop guard
set. Arguments after "--" are passed to the executable.

When the bundle cannot be used (unsupported platform, unwritable install
directory, failed launch) the executable runs bare instead. With the
"wait" launcher the executable's exit status becomes relaunch's.`,
		Usage: "relaunch run [flags] <executable> [-- args...]",
		Examples: []cli.Example{
			{
				Description: "Run through a bundle, waiting for the exit status",
				Command:     "relaunch run --config app.yaml --launch wait ./bin/tool -- --project demo",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("run", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("executable path required")
			}
			return runThroughBundle(params, args[0], args[1:], logger)
		},
	}
}

func runThroughBundle(params runParams, executable string, args []string, logger *slog.Logger) error {
	options, err := params.options(executable, logger)
	if err != nil {
		return err
	}
	if params.Launch != "" {
		options.Launcher, err = relaunch.ParseLauncher(params.Launch)
		if err != nil {
			return err
		}
	}
	options.Args = args

	exitCode := 0
	options.Exit = func(code int) { exitCode = code }

	outcome, err := bootstrap.Ensure(options)
	if err != nil {
		return err
	}
	if outcome.State == bootstrap.Terminated {
		return exitStatus(exitCode)
	}

	if outcome.Degraded {
		logger.Warn("running unbundled", "error", outcome.Warning)
	}
	handoff, err := relaunch.SpawnLauncher{Wait: true}.Launch(relaunch.Request{
		Executable: options.Executable,
		Args:       args,
		Environ:    os.Environ(),
	})
	if err != nil {
		return err
	}
	return exitStatus(handoff.ExitCode)
}

func exitStatus(code int) error {
	if code == 0 {
		return nil
	}
	return &cli.ExitError{Code: code}
}
