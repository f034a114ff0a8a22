// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
	"github.com/bureau-foundation/relaunch/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCommand().Execute(ctx, os.Args[1:])
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name: "relaunch",
		Description: `Relaunch: run plain executables from application bundles.

Builds a minimal .app bundle around an executable, checks whether an
existing bundle still matches it, and runs the executable through the
bundle so the operating system treats it as a regular application.`,
		Subcommands: []*cli.Command{
			bundleCommand(),
			statusCommand(),
			runCommand(),
			doctorCommand(),
			versionsCommand(),
			versionCommand(),
		},
	}
}
