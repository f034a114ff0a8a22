// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/relaunch/lib/bootstrap"
	"github.com/bureau-foundation/relaunch/lib/config"
)

// targetParams are the flags shared by every command that acts on one
// executable and its config.
type targetParams struct {
	Config      string `flag:"config,c" desc:"app config file (default: $RELAUNCH_CONFIG)"`
	Install     string `flag:"install" desc:"install directory: temp, user, system, or a path (overrides the config)"`
	Fingerprint string `flag:"fingerprint" desc:"image comparison: digest or stat (overrides the config)"`
	Force       bool   `flag:"force" desc:"bundle on platforms where bundles have no effect"`
}

// loadConfig loads the config file and applies the flag overrides.
func (p *targetParams) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if p.Config != "" {
		cfg, err = config.LoadFile(p.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if p.Install != "" {
		cfg.Install = p.Install
	}
	if p.Fingerprint != "" {
		cfg.Fingerprint = p.Fingerprint
	}
	if p.Force {
		cfg.Force = true
	}
	return cfg, nil
}

// options builds bootstrap options for executable from the config.
func (p *targetParams) options(executable string, logger *slog.Logger) (bootstrap.Options, error) {
	cfg, err := p.loadConfig()
	if err != nil {
		return bootstrap.Options{}, err
	}
	options, err := bootstrap.OptionsFromConfig(cfg)
	if err != nil {
		return bootstrap.Options{}, err
	}

	absolute, err := filepath.Abs(executable)
	if err != nil {
		return bootstrap.Options{}, fmt.Errorf("resolving %s: %w", executable, err)
	}
	options.Executable = absolute
	options.Environ = os.Environ()
	options.Args = []string{}
	options.Logger = logger
	return options, nil
}

func (p *targetParams) controller(executable string, logger *slog.Logger) (*bootstrap.Controller, error) {
	options, err := p.options(executable, logger)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(options)
}

func requireExecutable(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("executable path required")
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}
}
