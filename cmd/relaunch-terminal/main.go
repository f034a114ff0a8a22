// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// relaunch-terminal is a small interactive program that bootstraps
// itself into an application bundle before starting its terminal UI.
// It asks for a name, greets, and shows how it was started.
//
// Run it twice: the first run builds the bundle and hands off to it,
// the second starts from the existing bundle without rebuilding.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaunch/lib/bootstrap"
	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/config"
	"github.com/bureau-foundation/relaunch/lib/manifest"
	"github.com/bureau-foundation/relaunch/lib/process"
	"github.com/bureau-foundation/relaunch/lib/relaunch"
	"github.com/bureau-foundation/relaunch/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		install     string
		force       bool
		verbose     bool
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("relaunch-terminal", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "app config file (default: built-in metadata)")
	flagSet.StringVar(&install, "install", "", "install directory: temp, user, system, or a path")
	flagSet.BoolVar(&force, "force", false, "bundle on platforms where bundles have no effect")
	flagSet.BoolVar(&verbose, "verbose", false, "log bootstrap transitions")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Printf("relaunch-terminal %s\n", version.Info())
		return nil
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	options, err := bootstrapOptions(configPath, install, force)
	if err != nil {
		return err
	}
	options.Logger = logger

	outcome, err := bootstrap.Ensure(options)
	if err != nil {
		return err
	}
	if outcome.Degraded {
		logger.Warn("running without bundle", "error", outcome.Warning)
	}

	program := tea.NewProgram(newPromptModel(describeOutcome(outcome)))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if model, ok := final.(promptModel); ok && model.greeting != "" {
		fmt.Println(model.greeting)
	}
	return nil
}

func bootstrapOptions(configPath, install string, force bool) (bootstrap.Options, error) {
	var options bootstrap.Options
	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return options, fmt.Errorf("loading config: %w", err)
		}
		if options, err = bootstrap.OptionsFromConfig(cfg); err != nil {
			return options, err
		}
	} else {
		options = bootstrap.Options{
			Metadata: manifest.Metadata{
				Identifier: "foundation.bureau.relaunch-terminal",
				Name:       "Relaunch Terminal",
				Category:   "public.app-category.developer-tools",
			},
			Version: version.Short(),
			// The program is interactive; waiting keeps the terminal
			// attached to the bundled child and propagates its status.
			Launcher: relaunch.SpawnLauncher{Wait: true},
		}
	}

	if install != "" {
		installDir, err := bundle.ParseInstallDir(install)
		if err != nil {
			return options, err
		}
		options.InstallDir = installDir
	}
	options.Force = options.Force || force
	return options, nil
}
