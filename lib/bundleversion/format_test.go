// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundleversion

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"golang.org/x/mod/semver"
)

func TestFormatRelease(t *testing.T) {
	versions, err := Format("1.2.3", DefaultRules())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if versions.Short != "1.2.3" {
		t.Errorf("Short = %q, want %q", versions.Short, "1.2.3")
	}
	if versions.Build != "1.2.3.0" {
		t.Errorf("Build = %q, want %q", versions.Build, "1.2.3.0")
	}
}

func TestFormatPreRelease(t *testing.T) {
	beta, err := Format("2.0.0-beta.1", DefaultRules())
	if err != nil {
		t.Fatalf("Format(beta): %v", err)
	}
	if beta.Short != "2.0.0-beta.1" {
		t.Errorf("Short = %q, want %q", beta.Short, "2.0.0-beta.1")
	}
	if beta.Build != "1.65535.65535.1004" {
		t.Errorf("Build = %q, want %q", beta.Build, "1.65535.65535.1004")
	}

	release, err := Format("2.0.0", DefaultRules())
	if err != nil {
		t.Fatalf("Format(release): %v", err)
	}

	order, err := CompareBuild(beta.Build, release.Build)
	if err != nil {
		t.Fatalf("CompareBuild: %v", err)
	}
	if order >= 0 {
		t.Errorf("Build(2.0.0-beta.1) = %s is not below Build(2.0.0) = %s", beta.Build, release.Build)
	}
}

func TestFormatNormalizes(t *testing.T) {
	tests := []struct {
		raw   string
		short string
		build string
	}{
		{"1", "1.0.0", "1.0.0.0"},
		{"1.2", "1.2.0", "1.2.0.0"},
		{"v3.4.5", "3.4.5", "3.4.5.0"},
		{"0.0.0", "0.0.0", "0.0.0.0"},
		{"1.0-rc", "1.0.0-rc", "0.65535.65535.2003"},
		{"1.0.1-alpha", "1.0.1-alpha", "1.0.0.1"},
		{"1.0.1-alpha.0", "1.0.1-alpha.0", "1.0.0.2"},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			versions, err := Format(test.raw, DefaultRules())
			if err != nil {
				t.Fatalf("Format(%q): %v", test.raw, err)
			}
			if versions.Short != test.short {
				t.Errorf("Short = %q, want %q", versions.Short, test.short)
			}
			if versions.Build != test.build {
				t.Errorf("Build = %q, want %q", versions.Build, test.build)
			}
		})
	}
}

func TestFormatBoundaries(t *testing.T) {
	accepted := []string{
		"65535.65535.65535",
		"0.0.0",
		"65535.0.0-rc.999",
		"0.0.1-alpha",
	}
	for _, raw := range accepted {
		if _, err := Format(raw, DefaultRules()); err != nil {
			t.Errorf("Format(%q) = %v, want success at the boundary", raw, err)
		}
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{"65536.0.0", ErrOutOfRange},
		{"1.65536.0", ErrOutOfRange},
		{"1.2.65536", ErrOutOfRange},
		{"1.2.100000", ErrOutOfRange},
		{"99999999999999999999", ErrOutOfRange},
		{"1.0.0-rc.1000", ErrOutOfRange},
		{"0.0.0-alpha", ErrOutOfRange},
		{"1.0.0-gamma", ErrInvalidSuffix},
		{"1.0.0-Beta", ErrInvalidSuffix},
		{"1.0.0-", ErrInvalidSuffix},
		{"1.0.0-beta.", ErrInvalidSuffix},
		{"1.0.0-beta.x", ErrInvalidSuffix},
		{"1.0.0-beta.01", ErrInvalidSuffix},
		{"1.0.0-beta.1.2", ErrInvalidSuffix},
		{"", ErrMalformed},
		{"v", ErrMalformed},
		{"1..2", ErrMalformed},
		{"1.2.3.4", ErrMalformed},
		{"01.2.3", ErrMalformed},
		{"1.x.3", ErrMalformed},
		{"-beta", ErrMalformed},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			_, err := Format(test.raw, DefaultRules())
			if !errors.Is(err, test.want) {
				t.Fatalf("Format(%q) error = %v, want %v", test.raw, err, test.want)
			}
		})
	}
}

func TestFormatCustomRules(t *testing.T) {
	rules := Rules{
		MaxComponent:    999,
		MaxDigits:       3,
		Suffixes:        []string{"dev", "pre"},
		MaxSuffixNumber: 9,
	}
	if err := rules.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if _, err := Format("1000.0.0", rules); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Format(1000.0.0) error = %v, want ErrOutOfRange", err)
	}
	if _, err := Format("1.0.0-beta", rules); !errors.Is(err, ErrInvalidSuffix) {
		t.Errorf("Format(1.0.0-beta) error = %v, want ErrInvalidSuffix", err)
	}

	versions, err := Format("1.0.0-pre.3", rules)
	if err != nil {
		t.Fatalf("Format(1.0.0-pre.3): %v", err)
	}
	// pred(1.0.0) = 0.999.999; code = 1 + 1*(9+2) + (3+1) = 16.
	if versions.Build != "0.999.999.16" {
		t.Errorf("Build = %q, want %q", versions.Build, "0.999.999.16")
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("DefaultRules().Validate() = %v", err)
	}

	tests := []struct {
		name  string
		rules Rules
	}{
		{"zero max", Rules{MaxComponent: 0, MaxDigits: 5}},
		{"zero digits", Rules{MaxComponent: 10, MaxDigits: 0}},
		{"bad tag", Rules{MaxComponent: 65535, MaxDigits: 5, Suffixes: []string{"RC"}}},
		{"duplicate tag", Rules{MaxComponent: 65535, MaxDigits: 5, Suffixes: []string{"rc", "rc"}}},
		{"code overflow", Rules{MaxComponent: 100, MaxDigits: 3, Suffixes: []string{"alpha", "beta"}, MaxSuffixNumber: 99}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.rules.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

// versionGrid returns every combination of a small set of numeric
// components (including both bounds) and suffixes.
func versionGrid() []string {
	values := []int{0, 1, 2, 65534, 65535}
	suffixes := []string{"", "-alpha", "-alpha.0", "-alpha.1", "-beta", "-beta.2", "-beta.10", "-rc.1", "-rc.999"}

	var grid []string
	for _, major := range values {
		for _, minor := range values {
			for _, patch := range values {
				for _, suffix := range suffixes {
					raw := fmt.Sprintf("%d.%d.%d%s", major, minor, patch, suffix)
					if major == 0 && minor == 0 && patch == 0 && suffix != "" {
						continue
					}
					grid = append(grid, raw)
				}
			}
		}
	}
	return grid
}

func TestBuildVersionMonotonic(t *testing.T) {
	grid := versionGrid()
	sort.Slice(grid, func(i, j int) bool {
		return semver.Compare("v"+grid[i], "v"+grid[j]) < 0
	})

	rules := DefaultRules()
	previous, err := Format(grid[0], rules)
	if err != nil {
		t.Fatalf("Format(%q): %v", grid[0], err)
	}

	for _, raw := range grid[1:] {
		current, err := Format(raw, rules)
		if err != nil {
			t.Fatalf("Format(%q): %v", raw, err)
		}

		order, err := CompareBuild(previous.Build, current.Build)
		if err != nil {
			t.Fatalf("CompareBuild: %v", err)
		}
		if order >= 0 {
			t.Fatalf("Build(%s) = %s is not below Build(%s) = %s",
				previous.Short, previous.Build, current.Short, current.Build)
		}
		if Compare(previous.Parsed, current.Parsed, rules) >= 0 {
			t.Fatalf("Compare(%s, %s) >= 0, want < 0", previous.Short, current.Short)
		}
		previous = current
	}
}

func TestCompareMatchesSemver(t *testing.T) {
	pairs := [][2]string{
		{"1.0.0-alpha", "1.0.0-alpha.1"},
		{"1.0.0-alpha.1", "1.0.0-beta"},
		{"1.0.0-beta", "1.0.0-beta.2"},
		{"1.0.0-beta.2", "1.0.0-beta.11"},
		{"1.0.0-beta.11", "1.0.0-rc.1"},
		{"1.0.0-rc.1", "1.0.0"},
		{"1.0.0", "1.0.1-alpha"},
	}

	rules := DefaultRules()
	for _, pair := range pairs {
		left, err := Parse(pair[0], rules)
		if err != nil {
			t.Fatalf("Parse(%q): %v", pair[0], err)
		}
		right, err := Parse(pair[1], rules)
		if err != nil {
			t.Fatalf("Parse(%q): %v", pair[1], err)
		}
		want := semver.Compare("v"+pair[0], "v"+pair[1])
		if got := Compare(left, right, rules); got != want {
			t.Errorf("Compare(%s, %s) = %d, semver says %d", pair[0], pair[1], got, want)
		}
		if got := Compare(right, left, rules); got != -want {
			t.Errorf("Compare(%s, %s) = %d, semver says %d", pair[1], pair[0], got, -want)
		}
	}
}

func TestCompareBuildRejectsMalformed(t *testing.T) {
	if _, err := CompareBuild("1.2.3", "1.2.3.0"); !errors.Is(err, ErrMalformed) {
		t.Errorf("CompareBuild(1.2.3, ...) error = %v, want ErrMalformed", err)
	}
	if _, err := CompareBuild("1.2.3.x", "1.2.3.0"); !errors.Is(err, ErrMalformed) {
		t.Errorf("CompareBuild(1.2.3.x, ...) error = %v, want ErrMalformed", err)
	}
}
