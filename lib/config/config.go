// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/bundle"
	"github.com/bureau-foundation/relaunch/lib/bundleversion"
	"github.com/bureau-foundation/relaunch/lib/manifest"
	"github.com/bureau-foundation/relaunch/lib/relaunch"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "RELAUNCH_CONFIG"

// Config describes one application and how it is bundled.
type Config struct {
	// App is the bundle metadata.
	App AppConfig `yaml:"app" json:"app"`

	// Version is the application version, e.g. "1.4.0" or
	// "2.0.0-beta.1".
	Version string `yaml:"version" json:"version"`

	// Install is "temp", "user", "system", or a directory path.
	// Default: temp
	Install string `yaml:"install" json:"install"`

	// Launch selects the handoff mechanism: "exec", "spawn", "wait",
	// "open", or empty for the platform default.
	Launch string `yaml:"launch" json:"launch"`

	// Fingerprint is "digest" or "stat".
	// Default: digest
	Fingerprint string `yaml:"fingerprint" json:"fingerprint"`

	// Resources are copied into Contents/Resources. Relative sources
	// are resolved against the config file's directory.
	Resources []ResourceConfig `yaml:"resources" json:"resources"`

	// VersionRules overrides the version bounds and suffix vocabulary.
	VersionRules RulesConfig `yaml:"version_rules" json:"version_rules"`

	// Force bundles on platforms where bundles have no effect. Used to
	// exercise the bundle path on development machines.
	Force bool `yaml:"force" json:"force"`
}

// AppConfig is the application metadata.
type AppConfig struct {
	Identifier string `yaml:"identifier" json:"identifier"`
	Name       string `yaml:"name" json:"name"`

	// Executable defaults to the base name of the running executable
	// when empty.
	Executable string `yaml:"executable" json:"executable"`

	Category   string `yaml:"category" json:"category"`
	MinimumOS  string `yaml:"minimum_os" json:"minimum_os"`
	Icon       string `yaml:"icon" json:"icon"`
	Background bool   `yaml:"background" json:"background"`
}

// ResourceConfig is one file or directory copied into the bundle.
type ResourceConfig struct {
	Source string `yaml:"source" json:"source"`
	Name   string `yaml:"name" json:"name"`
}

// RulesConfig mirrors [bundleversion.Rules]. Zero fields keep the
// default.
type RulesConfig struct {
	MaxComponent    uint32   `yaml:"max_component" json:"max_component"`
	MaxDigits       int      `yaml:"max_digits" json:"max_digits"`
	Suffixes        []string `yaml:"suffixes" json:"suffixes"`
	MaxSuffixNumber uint32   `yaml:"max_suffix_number" json:"max_suffix_number"`
}

// Default returns the configuration every file is loaded on top of.
func Default() *Config {
	return &Config{
		Version:     "0.0.0",
		Install:     "temp",
		Fingerprint: "digest",
	}
}

// Load loads configuration from the RELAUNCH_CONFIG environment
// variable. There is no discovery: if the variable is not set, Load
// fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your app config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path. Files ending in .json or
// .jsonc are JSON with comments and trailing commas; everything else is
// YAML. Unknown fields are errors in both formats.
//
// After decoding, ${VAR} and ${VAR:-default} are expanded in path
// fields and relative resource sources are made relative to the file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.expandVariables()
	cfg.resolveResources(filepath.Dir(path))
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Install = expandVars(c.Install, vars)
	c.App.Icon = expandVars(c.App.Icon, vars)
	for index := range c.Resources {
		c.Resources[index].Source = expandVars(c.Resources[index].Source, vars)
	}
}

func (c *Config) resolveResources(base string) {
	for index, resource := range c.Resources {
		if resource.Source != "" && !filepath.IsAbs(resource.Source) {
			c.Resources[index].Source = filepath.Join(base, resource.Source)
		}
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Metadata returns the bundle metadata. An empty executable name is
// filled from fallbackExecutable.
func (c *Config) Metadata(fallbackExecutable string) manifest.Metadata {
	executable := c.App.Executable
	if executable == "" {
		executable = fallbackExecutable
	}
	return manifest.Metadata{
		Identifier: c.App.Identifier,
		Name:       c.App.Name,
		Executable: executable,
		Category:   c.App.Category,
		MinimumOS:  c.App.MinimumOS,
		Icon:       c.App.Icon,
		Background: c.App.Background,
	}
}

// Rules returns the version rules: the defaults with every non-zero
// override applied.
func (c *Config) Rules() bundleversion.Rules {
	rules := bundleversion.DefaultRules()
	if c.VersionRules.MaxComponent != 0 {
		rules.MaxComponent = c.VersionRules.MaxComponent
	}
	if c.VersionRules.MaxDigits != 0 {
		rules.MaxDigits = c.VersionRules.MaxDigits
	}
	if len(c.VersionRules.Suffixes) != 0 {
		rules.Suffixes = c.VersionRules.Suffixes
	}
	if c.VersionRules.MaxSuffixNumber != 0 {
		rules.MaxSuffixNumber = c.VersionRules.MaxSuffixNumber
	}
	return rules
}

// BundleResources returns the resources in the form bundle.Materialize
// takes.
func (c *Config) BundleResources() []bundle.Resource {
	resources := make([]bundle.Resource, 0, len(c.Resources))
	for _, resource := range c.Resources {
		resources = append(resources, bundle.Resource{Source: resource.Source, Name: resource.Name})
	}
	return resources
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if err := manifest.ValidateIdentifier(c.App.Identifier); err != nil {
		errs = append(errs, fmt.Errorf("app.identifier: %w", err))
	}
	if err := manifest.ValidateName(c.App.Name); err != nil {
		errs = append(errs, fmt.Errorf("app.name: %w", err))
	}
	if c.App.Executable != "" {
		if err := manifest.ValidateExecutable(c.App.Executable); err != nil {
			errs = append(errs, fmt.Errorf("app.executable: %w", err))
		}
	}

	rules := c.Rules()
	if err := rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("version_rules: %w", err))
	} else if _, err := bundleversion.Format(c.Version, rules); err != nil {
		errs = append(errs, fmt.Errorf("version: %w", err))
	}

	if _, err := bundle.ParseInstallDir(c.Install); err != nil {
		errs = append(errs, fmt.Errorf("install: %w", err))
	}
	if _, err := relaunch.ParseLauncher(c.Launch); err != nil {
		errs = append(errs, fmt.Errorf("launch: %w", err))
	}
	if _, err := binhash.ParseMode(c.Fingerprint); err != nil {
		errs = append(errs, fmt.Errorf("fingerprint: %w", err))
	}

	for index, resource := range c.Resources {
		if resource.Source == "" {
			errs = append(errs, fmt.Errorf("resources[%d].source is required", index))
		}
	}

	return errors.Join(errs...)
}
