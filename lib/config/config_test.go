// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/relaunch/lib/bundleversion"
	"github.com/bureau-foundation/relaunch/lib/manifest"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Install != "temp" {
		t.Errorf("expected install=temp, got %s", cfg.Install)
	}
	if cfg.Fingerprint != "digest" {
		t.Errorf("expected fingerprint=digest, got %s", cfg.Fingerprint)
	}
	if cfg.Launch != "" {
		t.Errorf("expected platform default launcher, got %s", cfg.Launch)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when RELAUNCH_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "RELAUNCH_CONFIG environment variable not set") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, "app.yaml", `
app:
  identifier: com.example.tool
  name: Tool
version: 1.2.3
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.App.Identifier != "com.example.tool" {
		t.Errorf("expected identifier=com.example.tool, got %s", cfg.App.Identifier)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("expected version=1.2.3, got %s", cfg.Version)
	}
	// Unset fields keep their defaults.
	if cfg.Install != "temp" {
		t.Errorf("expected install=temp, got %s", cfg.Install)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := writeConfig(t, "app.yml", `
app:
  identifier: com.example.viewer
  name: Viewer
  executable: viewer
  category: public.app-category.developer-tools
  minimum_os: "10.13"
  icon: viewer.icns
  background: true
version: 2.0.0-beta.1
install: user
launch: wait
fingerprint: stat
force: true
resources:
  - source: assets/viewer.icns
  - source: /opt/shared/fonts
    name: Fonts
version_rules:
  max_suffix_number: 99
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	metadata := cfg.Metadata("ignored")
	want := manifest.Metadata{
		Identifier: "com.example.viewer",
		Name:       "Viewer",
		Executable: "viewer",
		Category:   "public.app-category.developer-tools",
		MinimumOS:  "10.13",
		Icon:       "viewer.icns",
		Background: true,
	}
	if metadata != want {
		t.Errorf("Metadata = %+v, want %+v", metadata, want)
	}

	if !cfg.Force || cfg.Launch != "wait" || cfg.Fingerprint != "stat" || cfg.Install != "user" {
		t.Errorf("unexpected settings: %+v", cfg)
	}

	resources := cfg.BundleResources()
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}
	if resources[0].Source != filepath.Join(filepath.Dir(path), "assets", "viewer.icns") {
		t.Errorf("relative resource not resolved against the config file: %s", resources[0].Source)
	}
	if resources[1].Source != "/opt/shared/fonts" || resources[1].Name != "Fonts" {
		t.Errorf("absolute resource changed: %+v", resources[1])
	}

	rules := cfg.Rules()
	if rules.MaxSuffixNumber != 99 || rules.MaxComponent != bundleversion.DefaultRules().MaxComponent {
		t.Errorf("Rules = %+v", rules)
	}
}

func TestLoadFileJSONC(t *testing.T) {
	path := writeConfig(t, "app.jsonc", `{
	// The application.
	"app": {
		"identifier": "com.example.tool",
		"name": "Tool", /* display name */
	},
	"version": "3.1.0",
	"install": "/opt/apps",
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.App.Name != "Tool" || cfg.Version != "3.1.0" || cfg.Install != "/opt/apps" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Fingerprint != "digest" {
		t.Errorf("expected default fingerprint, got %s", cfg.Fingerprint)
	}
}

func TestLoadFileRejectsUnknownFields(t *testing.T) {
	yamlPath := writeConfig(t, "app.yaml", "app:\n  identifer: com.example.tool\n")
	if _, err := LoadFile(yamlPath); err == nil {
		t.Error("YAML with a misspelled key loaded without error")
	}

	jsonPath := writeConfig(t, "app.json", `{"versoin": "1.0.0"}`)
	if _, err := LoadFile(jsonPath); err == nil {
		t.Error("JSON with a misspelled key loaded without error")
	}
}

func TestLoadFileEmpty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("LoadFile(empty): %v", err)
	}
	if cfg.Install != "temp" {
		t.Errorf("expected defaults from an empty file, got %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("RELAUNCH_TEST_ASSETS", "/srv/assets")
	vars := map[string]string{"HOME": "/home/test"}

	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/Applications", "/home/test/Applications"},
		{"${RELAUNCH_TEST_ASSETS}/icon.icns", "/srv/assets/icon.icns"},
		{"${RELAUNCH_TEST_UNSET:-/fallback}/x", "/fallback/x"},
		{"${RELAUNCH_TEST_UNSET}", ""},
		{"plain/path", "plain/path"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLoadFileExpandsInstall(t *testing.T) {
	t.Setenv("HOME", "/home/test")
	cfg, err := LoadFile(writeConfig(t, "app.yaml", "install: ${HOME}/Apps\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Install != "/home/test/Apps" {
		t.Errorf("expected install=/home/test/Apps, got %s", cfg.Install)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.App = AppConfig{Identifier: "com.example.tool", Name: "Tool"}
		cfg.Version = "1.0.0"
		return cfg
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config failed validation: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"bad identifier", func(c *Config) { c.App.Identifier = "bad id!" }, manifest.ErrInvalidIdentifier},
		{"bad name", func(c *Config) { c.App.Name = "" }, manifest.ErrInvalidName},
		{"bad executable", func(c *Config) { c.App.Executable = "bin/tool" }, manifest.ErrInvalidExecutable},
		{"bad version", func(c *Config) { c.Version = "1.0.0-gamma" }, bundleversion.ErrInvalidSuffix},
		{"version out of range", func(c *Config) { c.Version = "70000" }, bundleversion.ErrOutOfRange},
		{"bad install", func(c *Config) { c.Install = "cloud" }, nil},
		{"bad launch", func(c *Config) { c.Launch = "teleport" }, nil},
		{"bad fingerprint", func(c *Config) { c.Fingerprint = "md5" }, nil},
		{"resource without source", func(c *Config) { c.Resources = []ResourceConfig{{Name: "x"}} }, nil},
		{"inconsistent rules", func(c *Config) { c.VersionRules.MaxComponent = 10 }, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid()
			test.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if test.want != nil && !errors.Is(err, test.want) {
				t.Errorf("expected %v, got %v", test.want, err)
			}
		})
	}

	// All problems are reported together.
	cfg := valid()
	cfg.App.Identifier = ""
	cfg.Install = "cloud"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "app.identifier") || !strings.Contains(err.Error(), "install") {
		t.Errorf("expected both problems in %v", err)
	}
}
