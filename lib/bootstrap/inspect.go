// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"fmt"

	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/bundleversion"
	"github.com/bureau-foundation/relaunch/lib/launchcontext"
	"github.com/bureau-foundation/relaunch/lib/relaunch"
)

// Supported reports whether bundles change process behavior on this
// platform.
func Supported() bool {
	return bundlesSupported
}

// Report describes the executable and its bundle as a bootstrap would
// see them.
type Report struct {
	Executable  string
	Versions    bundleversion.Versions
	Context     launchcontext.Context
	Root        string
	Conformance bundle.Conformance
	Fingerprint binhash.Fingerprint
}

// Inspect runs detection without writing or launching anything.
func (c *Controller) Inspect() (Report, error) {
	image, err := binhash.Take(c.executable, c.options.Fingerprint)
	if err != nil {
		return Report{}, fmt.Errorf("fingerprinting %s: %w", c.executable, err)
	}

	report := Report{
		Executable:  c.executable,
		Versions:    c.versions,
		Fingerprint: image,
	}

	result := launchcontext.Detect(launchcontext.Input{
		Executable:   c.executable,
		Manifest:     c.manifest,
		Fingerprint:  image,
		Mode:         c.options.Fingerprint,
		GuardPresent: relaunch.GuardPresent(c.options.Environ),
	})
	report.Context = result.Context

	if result.Context == launchcontext.Bundled {
		report.Root = result.BundleRoot
		report.Conformance = bundle.Conformance{Conformant: true}
		return report, nil
	}

	report.Root, err = c.resolveRoot()
	if err != nil {
		return Report{}, err
	}
	report.Conformance = bundle.Inspect(report.Root, c.manifest, image, c.options.Fingerprint)
	return report, nil
}

// Build materializes the bundle for the executable, replacing whatever
// is at the root, and returns the root. Unlike [Ensure] it runs on every
// platform and reports failures as errors.
func (c *Controller) Build() (string, error) {
	root, err := c.resolveRoot()
	if err != nil {
		return "", err
	}
	err = bundle.Materialize(bundle.MaterializeRequest{
		Root:      root,
		Manifest:  c.manifest,
		Image:     c.executable,
		Resources: c.options.Resources,
		Mode:      c.options.Fingerprint,
		Logger:    c.logger,
	})
	if err != nil {
		return "", err
	}
	return root, nil
}

func (c *Controller) resolveRoot() (string, error) {
	directory, err := c.options.InstallDir.Resolve()
	if err != nil {
		return "", fmt.Errorf("%w: %w", bundle.ErrWriteFailed, err)
	}
	return bundle.Root(directory, c.manifest.Name), nil
}
