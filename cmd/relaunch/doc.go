// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Relaunch builds and inspects application bundles for plain
// executables and runs executables through their bundle.
//
// Every command that acts on an executable reads the application
// description from --config or the RELAUNCH_CONFIG environment
// variable:
//
//	relaunch bundle --config app.yaml ./bin/tool
//	relaunch status --config app.yaml ./bin/tool
//	relaunch run --config app.yaml ./bin/tool -- --project demo
//	relaunch doctor --fix --config app.yaml ./bin/tool
//	relaunch versions 2.0.0-beta.1
package main
