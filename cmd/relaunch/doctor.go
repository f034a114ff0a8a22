// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli"
	"github.com/bureau-foundation/relaunch/cmd/relaunch/cli/doctor"
	"github.com/bureau-foundation/relaunch/lib/bootstrap"
	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/config"
	"github.com/bureau-foundation/relaunch/lib/launchcontext"
	"github.com/bureau-foundation/relaunch/lib/relaunch"
)

type doctorParams struct {
	targetParams
	cli.JSONOutput
	Fix    bool `flag:"fix" desc:"automatically repair fixable issues"`
	DryRun bool `flag:"dry-run" desc:"preview repairs without executing (requires --fix)"`
}

func doctorCommand() *cli.Command {
	var params doctorParams

	return &cli.Command{
		Name:    "doctor",
		Summary: "Check and repair an executable's bundle",
		Description: `Check everything a bootstrap of the executable depends on: platform
support, the config, the executable image, the launcher, the install
directory, the bundle itself, and staging directories left behind by
interrupted builds.

Exits with code 1 if any check fails. Use --fix to rebuild a stale
bundle, create a missing install directory and remove leftovers. Only
run --fix while no instance of the application is starting: a staging
directory of a running bootstrap looks the same as a leftover one.`,
		Usage: "relaunch doctor [flags] <executable>",
		Examples: []cli.Example{
			{
				Description: "Check an executable's bundle",
				Command:     "relaunch doctor --config app.yaml ./bin/tool",
			},
			{
				Description: "Preview repairs without executing",
				Command:     "relaunch doctor --fix --dry-run --config app.yaml ./bin/tool",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("doctor", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			executable, err := requireExecutable(args)
			if err != nil {
				return err
			}
			if params.DryRun && !params.Fix {
				return fmt.Errorf("--dry-run requires --fix")
			}

			ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
			defer cancel()

			return runDoctor(ctx, params, executable, logger)
		},
	}
}

func runDoctor(ctx context.Context, params doctorParams, executable string, logger *slog.Logger) error {
	const maxFixIterations = 3
	repaired := make(map[string]bool)
	var aggregate doctor.Outcome
	var results []doctor.Result

	for range maxFixIterations {
		results = checkBundle(params, executable, logger)
		if !params.Fix {
			break
		}

		for _, result := range results {
			if result.Status == doctor.StatusFail {
				repaired[result.Name] = true
			}
		}

		outcome := doctor.ExecuteFixes(ctx, results, params.DryRun)
		aggregate.PermissionDenied = aggregate.PermissionDenied || outcome.PermissionDenied
		aggregate.ElevatedSkipped += outcome.ElevatedSkipped
		if outcome.FixedCount == 0 || params.DryRun {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	doctor.MarkRepaired(results, repaired)

	if done, err := params.EmitJSON(doctor.BuildJSON(results, params.DryRun, aggregate)); done {
		if err != nil {
			return err
		}
		if doctor.Failed(results) {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}
	return doctor.PrintChecklist(os.Stdout, results, params.Fix, params.DryRun, cli.IsTerminal(), aggregate)
}

const (
	checkPlatform   = "platform"
	checkConfig     = "config"
	checkExecutable = "executable"
	checkLauncher   = "launcher"
	checkInstallDir = "install directory"
	checkBundle     = "bundle"
	checkStaging    = "staging leftovers"
)

// checkBundle runs every check in order. Checks that need an earlier
// one to pass are skipped when it did not.
func checkBundle(params doctorParams, executable string, logger *slog.Logger) []doctor.Result {
	var results []doctor.Result
	skipRest := func(reason string, names ...string) []doctor.Result {
		for _, name := range names {
			results = append(results, doctor.Skip(name, "skipped: "+reason))
		}
		return results
	}

	cfg, configErr := params.loadConfig()
	results = append(results, checkPlatformSupport(cfg))

	if configErr == nil {
		configErr = cfg.Validate()
	}
	if configErr != nil {
		results = append(results, doctor.Fail(checkConfig, configErr.Error()))
		return skipRest("config is invalid", checkExecutable, checkLauncher, checkInstallDir, checkBundle, checkStaging)
	}
	results = append(results, doctor.Pass(checkConfig, fmt.Sprintf("%s %s", cfg.App.Identifier, cfg.Version)))

	controller, err := params.controller(executable, logger)
	if err != nil {
		results = append(results, doctor.Fail(checkExecutable, err.Error()))
		return skipRest("executable is unusable", checkLauncher, checkInstallDir, checkBundle, checkStaging)
	}
	report, err := controller.Inspect()
	if err != nil {
		results = append(results, doctor.Fail(checkExecutable, err.Error()))
		return skipRest("executable is unreadable", checkLauncher, checkInstallDir, checkBundle, checkStaging)
	}
	results = append(results, doctor.Pass(checkExecutable, fmt.Sprintf("%s (%d bytes)", report.Executable, report.Fingerprint.Size)))

	results = append(results, checkLauncherAvailable(cfg.Launch))

	installDir, _ := bundle.ParseInstallDir(cfg.Install)
	results = append(results, checkInstallDirectory(installDir))

	results = append(results, checkBundleConformance(controller, report, installDir == bundle.SystemApplications))
	results = append(results, checkStagingLeftovers(report.Root))
	return results
}

func checkPlatformSupport(cfg *config.Config) doctor.Result {
	switch {
	case bootstrap.Supported():
		return doctor.Pass(checkPlatform, runtime.GOOS)
	case cfg != nil && cfg.Force:
		return doctor.Warn(checkPlatform, fmt.Sprintf("bundles have no effect on %s; force is set", runtime.GOOS))
	default:
		return doctor.Warn(checkPlatform, fmt.Sprintf("bundles have no effect on %s; bootstrap is a no-op", runtime.GOOS))
	}
}

func checkLauncherAvailable(name string) doctor.Result {
	if _, err := relaunch.ParseLauncher(name); err != nil {
		return doctor.Fail(checkLauncher, err.Error())
	}
	if name == "" {
		name = "platform default"
	}
	return doctor.Pass(checkLauncher, name)
}

func checkInstallDirectory(installDir bundle.InstallDir) doctor.Result {
	directory, err := installDir.Resolve()
	if err != nil {
		return doctor.Fail(checkInstallDir, err.Error())
	}

	info, err := os.Stat(directory)
	if errors.Is(err, fs.ErrNotExist) {
		message := fmt.Sprintf("%s does not exist", directory)
		hint := fmt.Sprintf("create %s", directory)
		fix := func(context.Context) error {
			return os.MkdirAll(directory, 0o755)
		}
		if installDir == bundle.SystemApplications {
			return doctor.FailElevated(checkInstallDir, message, hint, fix)
		}
		return doctor.FailWithFix(checkInstallDir, message, hint, fix)
	}
	if err != nil {
		return doctor.Fail(checkInstallDir, err.Error())
	}
	if !info.IsDir() {
		return doctor.Fail(checkInstallDir, fmt.Sprintf("%s is not a directory", directory))
	}

	probe, err := os.CreateTemp(directory, ".relaunch-doctor-*")
	if err != nil {
		return doctor.Fail(checkInstallDir, fmt.Sprintf("%s is not writable: %v", directory, err))
	}
	probe.Close()
	os.Remove(probe.Name())
	return doctor.Pass(checkInstallDir, directory)
}

func checkBundleConformance(controller *bootstrap.Controller, report bootstrap.Report, elevated bool) doctor.Result {
	if report.Context == launchcontext.Bundled {
		return doctor.Pass(checkBundle, "executable runs from "+report.Root)
	}
	if report.Conformance.Conformant {
		return doctor.Pass(checkBundle, report.Root)
	}

	hint := fmt.Sprintf("rebuild %s", report.Root)
	fix := func(context.Context) error {
		_, err := controller.Build()
		return err
	}
	if elevated {
		return doctor.FailElevated(checkBundle, report.Conformance.Reason, hint, fix)
	}
	return doctor.FailWithFix(checkBundle, report.Conformance.Reason, hint, fix)
}

func checkStagingLeftovers(root string) doctor.Result {
	stale, err := bundle.StaleStaging(root)
	if err != nil {
		return doctor.Fail(checkStaging, err.Error())
	}
	if len(stale) == 0 {
		return doctor.Pass(checkStaging, "none")
	}
	return doctor.FailWithFix(checkStaging,
		fmt.Sprintf("%d interrupted build(s) next to %s", len(stale), root),
		fmt.Sprintf("remove %d leftover directories", len(stale)),
		func(context.Context) error {
			return bundle.RemoveStaging(stale)
		},
	)
}
