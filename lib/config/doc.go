// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the application description a bundle is built
// from.
//
// Configuration is loaded from a single file specified by either the
// RELAUNCH_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search.
//
// Two formats are accepted, chosen by extension: YAML (gopkg.in/yaml.v3)
// and JSON with comments (.json, .jsonc; comments and trailing commas
// are stripped with tidwall/jsonc). Unknown fields are rejected in
// both, so a misspelled key fails loudly instead of silently keeping a
// default.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a configured value.
//
// A minimal file:
//
//	app:
//	  identifier: com.example.tool
//	  name: Example Tool
//	version: 1.4.0
//	install: user
//
// [Config.Validate] checks every field with the same parsers the
// bootstrap uses and joins all problems into one error.
package config
