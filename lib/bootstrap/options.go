// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"fmt"

	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/config"
	"github.com/bureau-foundation/relaunch/lib/relaunch"
)

// OptionsFromConfig builds options from a loaded config file. The
// process-level fields (Executable, Args, Environ, Exit, Logger) are
// left at their defaults for the caller to override.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, fmt.Errorf("invalid config: %w", err)
	}

	installDir, err := bundle.ParseInstallDir(cfg.Install)
	if err != nil {
		return Options{}, err
	}
	launcher, err := relaunch.ParseLauncher(cfg.Launch)
	if err != nil {
		return Options{}, err
	}
	mode, err := binhash.ParseMode(cfg.Fingerprint)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Metadata:    cfg.Metadata(""),
		Version:     cfg.Version,
		Rules:       cfg.Rules(),
		InstallDir:  installDir,
		Resources:   cfg.BundleResources(),
		Launcher:    launcher,
		Fingerprint: mode,
		Force:       cfg.Force,
	}, nil
}
