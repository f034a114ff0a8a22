// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/bundleversion"
	"github.com/bureau-foundation/relaunch/lib/launchcontext"
	"github.com/bureau-foundation/relaunch/lib/manifest"
	"github.com/bureau-foundation/relaunch/lib/relaunch"
)

// Options are the explicit inputs of one bootstrap. Zero fields take
// the defaults noted on each.
type Options struct {
	// Metadata describes the application. An empty Executable is the
	// base name of the running executable.
	Metadata manifest.Metadata

	// Version is the raw application version, e.g. "2.0.0-beta.1".
	Version string

	// Rules bounds the version. Default: bundleversion.DefaultRules().
	Rules bundleversion.Rules

	// InstallDir is where the bundle lives. Default: bundle.Temp.
	InstallDir bundle.InstallDir

	// Resources are copied into Contents/Resources.
	Resources []bundle.Resource

	// Launcher performs the handoff. Default: relaunch.DefaultLauncher().
	Launcher relaunch.Launcher

	// Fingerprint selects how the running image is compared with the
	// bundle's. Default: binhash.ModeDigest.
	Fingerprint binhash.Mode

	// Force bootstraps on platforms where bundles have no effect.
	Force bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Executable is the running image. Default: os.Executable().
	Executable string

	// Args are the arguments after argv[0]. Default: os.Args[1:].
	Args []string

	// Environ is the process environment. Default: os.Environ().
	Environ []string

	// Exit terminates the process after a handoff. Default: os.Exit.
	Exit func(code int)

	// Unsetenv removes the inherited loop guard from the process
	// environment. Default: os.Unsetenv.
	Unsetenv func(key string) error
}

// Outcome is the result of a bootstrap.
type Outcome struct {
	// State is Ready, or Terminated when Exit was injected and
	// returned.
	State State

	Context launchcontext.Context

	// BundleRoot is the bundle the process runs from (Context is
	// Bundled) or the bundle it built or tried to hand off to.
	BundleRoot string

	// Degraded is set when a run-time failure left the process running
	// unbundled. Warning holds the failure.
	Degraded bool
	Warning  error

	// RelaunchAttempted is set when the loop guard showed that an
	// earlier process already handed off to this one.
	RelaunchAttempted bool

	// Unsupported is set when bundling was skipped on this platform.
	Unsupported bool

	// ExitCode is the handoff exit code when State is Terminated.
	ExitCode int

	// Trace lists every state visited, in order.
	Trace []State
}

// IsBundled reports whether the process runs from a conformant bundle.
func (o *Outcome) IsBundled() bool {
	return o.Context == launchcontext.Bundled
}

// Controller runs the bootstrap state machine for one set of options.
type Controller struct {
	options    Options
	logger     *slog.Logger
	versions   bundleversion.Versions
	manifest   manifest.Manifest
	executable string
	supported  bool

	outcome Outcome
	root    string
	image   binhash.Fingerprint
}

// New validates the options and resolves their defaults. Errors are
// construction errors: an invalid version wraps a bundleversion
// sentinel, invalid metadata a manifest sentinel.
func New(options Options) (*Controller, error) {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Rules.MaxComponent == 0 {
		options.Rules = bundleversion.DefaultRules()
	}
	if err := options.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("version rules: %w", err)
	}
	if options.Launcher == nil {
		options.Launcher = relaunch.DefaultLauncher()
	}
	if options.Args == nil {
		options.Args = os.Args[1:]
	}
	if options.Environ == nil {
		options.Environ = os.Environ()
	}
	if options.Exit == nil {
		options.Exit = os.Exit
	}
	if options.Unsetenv == nil {
		options.Unsetenv = os.Unsetenv
	}

	executable := options.Executable
	if executable == "" {
		var err error
		executable, err = os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locating running executable: %w", err)
		}
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}

	metadata := options.Metadata
	if metadata.Executable == "" {
		metadata.Executable = filepath.Base(executable)
	}

	versions, err := bundleversion.Format(options.Version, options.Rules)
	if err != nil {
		return nil, err
	}
	built, err := manifest.Build(metadata, versions)
	if err != nil {
		return nil, err
	}

	return &Controller{
		options:    options,
		logger:     options.Logger,
		versions:   versions,
		manifest:   built,
		executable: executable,
		supported:  bundlesSupported || options.Force,
	}, nil
}

// Manifest returns the manifest the bundle must carry.
func (c *Controller) Manifest() manifest.Manifest {
	return c.manifest
}

// Run walks the state machine to Ready or Terminated. It does not exit
// the process; [Ensure] does that.
func (c *Controller) Run() *Outcome {
	c.outcome = Outcome{State: Start, Trace: []State{Start}}

	if !c.supported {
		c.outcome.Unsupported = true
		c.logger.Debug("bundling not supported on this platform, continuing unbundled")
		c.transition(Ready)
		return c.result()
	}

	c.transition(Detecting)
	next := c.detect()
	for next != Ready && next != Terminated {
		c.transition(next)
		switch next {
		case NeedsBuild:
			next = c.build()
		case NeedsRelaunch:
			next = Relaunching
		case Relaunching:
			next = c.relaunch()
		}
	}
	c.transition(next)
	return c.result()
}

func (c *Controller) result() *Outcome {
	outcome := c.outcome
	outcome.Trace = append([]State(nil), c.outcome.Trace...)
	return &outcome
}

func (c *Controller) transition(to State) {
	from := c.outcome.State
	if !canTransition(from, to) {
		panic(fmt.Sprintf("bootstrap: illegal transition %s -> %s", from, to))
	}
	c.outcome.State = to
	c.outcome.Trace = append(c.outcome.Trace, to)
	c.logger.Debug("bootstrap transition", "from", from, "to", to)
}

func (c *Controller) degrade(err error) State {
	c.outcome.Degraded = true
	c.outcome.Warning = err
	c.logger.Warn("continuing without bundle", "error", err)
	return Ready
}

func (c *Controller) detect() State {
	image, err := binhash.Take(c.executable, c.options.Fingerprint)
	if err != nil {
		return c.degrade(fmt.Errorf("fingerprinting running executable: %w", err))
	}
	c.image = image

	guard := relaunch.GuardPresent(c.options.Environ)
	result := launchcontext.Detect(launchcontext.Input{
		Executable:   c.executable,
		Manifest:     c.manifest,
		Fingerprint:  image,
		Mode:         c.options.Fingerprint,
		GuardPresent: guard,
	})
	c.outcome.Context = result.Context

	switch result.Context {
	case launchcontext.Bundled:
		c.outcome.BundleRoot = result.BundleRoot
		if guard {
			// The guard is meant for this process only; children
			// started from here are fresh chains.
			if err := c.options.Unsetenv(relaunch.GuardVariable); err != nil {
				c.logger.Warn("clearing loop guard failed", "error", err)
			}
		}
		c.logger.Debug("running from bundle", "root", result.BundleRoot)
		return Ready

	case launchcontext.BareRelaunched:
		c.outcome.RelaunchAttempted = true
		c.logger.Info("handoff already attempted, continuing unbundled",
			"executable", c.executable,
			"reason", result.Reason,
		)
		return Ready
	}

	root, err := c.resolveRoot()
	if err != nil {
		return c.degrade(err)
	}
	c.root = root
	c.outcome.BundleRoot = root

	conformance := bundle.Inspect(c.root, c.manifest, image, c.options.Fingerprint)
	if conformance.Conformant {
		return NeedsRelaunch
	}
	c.logger.Info("bundle needs building", "root", c.root, "reason", conformance.Reason)
	return NeedsBuild
}

func (c *Controller) build() State {
	err := bundle.Materialize(bundle.MaterializeRequest{
		Root:      c.root,
		Manifest:  c.manifest,
		Image:     c.executable,
		Resources: c.options.Resources,
		Mode:      c.options.Fingerprint,
		Logger:    c.logger,
	})
	if err != nil {
		return c.degrade(err)
	}
	return NeedsRelaunch
}

func (c *Controller) relaunch() State {
	layout := bundle.Layout{Root: c.root, Executable: c.manifest.Executable}
	relauncher := relaunch.Relauncher{Launcher: c.options.Launcher, Logger: c.logger}

	handoff, err := relauncher.Relaunch(relaunch.Request{
		BundleRoot: c.root,
		Executable: layout.ExecutablePath(),
		Args:       c.options.Args,
		Environ:    c.options.Environ,
	})
	if err != nil {
		return c.degrade(err)
	}
	c.outcome.ExitCode = handoff.ExitCode
	return Terminated
}

// Ensure runs the bootstrap. After a successful handoff it terminates
// the process through Options.Exit and does not return unless Exit
// does. Otherwise it returns a Ready outcome.
func Ensure(options Options) (*Outcome, error) {
	controller, err := New(options)
	if err != nil {
		return nil, err
	}
	outcome := controller.Run()
	if outcome.State == Terminated {
		controller.options.Exit(outcome.ExitCode)
	}
	return outcome, nil
}
