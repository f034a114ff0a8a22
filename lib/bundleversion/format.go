// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundleversion

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrOutOfRange reports a numeric component above the configured
	// bound, a component with too many digits, or a pre-release with no
	// encodable predecessor.
	ErrOutOfRange = errors.New("version component out of range")

	// ErrInvalidSuffix reports a pre-release suffix that is not one of
	// the recognized tags with an optional numeric increment.
	ErrInvalidSuffix = errors.New("invalid pre-release suffix")

	// ErrMalformed reports a version whose numeric part does not follow
	// major[.minor[.patch]].
	ErrMalformed = errors.New("malformed version")
)

// Parsed is the structured form of a version string.
type Parsed struct {
	Major uint32
	Minor uint32
	Patch uint32

	// Suffix is the pre-release tag, empty for a release.
	Suffix string

	// HasNumber is true when the tag carries a numeric increment.
	HasNumber bool
	Number    uint32
}

// IsRelease reports whether the version has no pre-release tag.
func (p Parsed) IsRelease() bool {
	return p.Suffix == ""
}

// String returns the normalized short version.
func (p Parsed) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%d.%d.%d", p.Major, p.Minor, p.Patch)
	if p.Suffix != "" {
		builder.WriteByte('-')
		builder.WriteString(p.Suffix)
		if p.HasNumber {
			fmt.Fprintf(&builder, ".%d", p.Number)
		}
	}
	return builder.String()
}

// Versions holds both manifest version fields derived from one input.
type Versions struct {
	// Short is the display version, e.g. "2.0.0-beta.1".
	Short string

	// Build is the monotonic dotted-integer version, e.g. "1.2.3.0".
	Build string

	// Parsed is the structured input the fields were derived from.
	Parsed Parsed
}

// Format parses raw under rules and derives the short and build
// versions. Errors wrap ErrOutOfRange, ErrInvalidSuffix or ErrMalformed.
func Format(raw string, rules Rules) (Versions, error) {
	parsed, err := Parse(raw, rules)
	if err != nil {
		return Versions{}, err
	}

	build, err := encodeBuild(parsed, rules)
	if err != nil {
		return Versions{}, fmt.Errorf("version %q: %w", raw, err)
	}

	return Versions{
		Short:  parsed.String(),
		Build:  fmt.Sprintf("%d.%d.%d.%d", build[0], build[1], build[2], build[3]),
		Parsed: parsed,
	}, nil
}

// Parse validates raw against the grammar and the bounds in rules.
func Parse(raw string, rules Rules) (Parsed, error) {
	text := raw
	if strings.HasPrefix(text, "v") {
		text = text[1:]
	}
	if text == "" {
		return Parsed{}, fmt.Errorf("version %q: empty: %w", raw, ErrMalformed)
	}

	numeric, suffix, hasSuffix := strings.Cut(text, "-")

	parts := strings.Split(numeric, ".")
	if len(parts) > 3 {
		return Parsed{}, fmt.Errorf("version %q: %d numeric components, at most 3 allowed: %w",
			raw, len(parts), ErrMalformed)
	}

	var components [3]uint32
	for index, part := range parts {
		value, err := parseComponent(part, rules.MaxDigits, rules.MaxComponent)
		if err != nil {
			return Parsed{}, fmt.Errorf("version %q: component %d: %w", raw, index+1, err)
		}
		components[index] = value
	}

	parsed := Parsed{
		Major: components[0],
		Minor: components[1],
		Patch: components[2],
	}

	if hasSuffix {
		if err := parseSuffix(suffix, rules, &parsed); err != nil {
			return Parsed{}, fmt.Errorf("version %q: %w", raw, err)
		}
	}

	return parsed, nil
}

// parseComponent parses one decimal component. Structural problems are
// ErrMalformed; values beyond the bounds are ErrOutOfRange.
func parseComponent(part string, maxDigits int, maxValue uint32) (uint32, error) {
	if part == "" {
		return 0, fmt.Errorf("empty component: %w", ErrMalformed)
	}
	if !isDigits(part) {
		return 0, fmt.Errorf("%q is not a decimal number: %w", part, ErrMalformed)
	}
	if len(part) > 1 && part[0] == '0' {
		return 0, fmt.Errorf("%q has a leading zero: %w", part, ErrMalformed)
	}
	if len(part) > maxDigits {
		return 0, fmt.Errorf("%q has more than %d digits: %w", part, maxDigits, ErrOutOfRange)
	}

	value, err := strconv.ParseUint(part, 10, 64)
	if err != nil || value > uint64(maxValue) {
		return 0, fmt.Errorf("%q exceeds %d: %w", part, maxValue, ErrOutOfRange)
	}
	return uint32(value), nil
}

func parseSuffix(suffix string, rules Rules, parsed *Parsed) error {
	tag, number, hasNumber := strings.Cut(suffix, ".")
	if tag == "" {
		return fmt.Errorf("empty pre-release tag: %w", ErrInvalidSuffix)
	}
	if rules.suffixRank(tag) < 0 {
		return fmt.Errorf("pre-release tag %q is not one of %v: %w", tag, rules.Suffixes, ErrInvalidSuffix)
	}

	parsed.Suffix = tag
	if !hasNumber {
		return nil
	}

	if number == "" || !isDigits(number) || (len(number) > 1 && number[0] == '0') {
		return fmt.Errorf("pre-release increment %q must be a decimal number: %w", number, ErrInvalidSuffix)
	}
	value, err := strconv.ParseUint(number, 10, 64)
	if err != nil || value > uint64(rules.MaxSuffixNumber) {
		return fmt.Errorf("pre-release increment %q exceeds %d: %w", number, rules.MaxSuffixNumber, ErrOutOfRange)
	}

	parsed.HasNumber = true
	parsed.Number = uint32(value)
	return nil
}

// encodeBuild maps a parsed version onto four integers whose
// lexicographic order matches semantic-version precedence.
func encodeBuild(parsed Parsed, rules Rules) ([4]uint64, error) {
	triple := [3]uint64{uint64(parsed.Major), uint64(parsed.Minor), uint64(parsed.Patch)}
	if parsed.IsRelease() {
		return [4]uint64{triple[0], triple[1], triple[2], 0}, nil
	}

	previous, ok := predecessor(triple, uint64(rules.MaxComponent))
	if !ok {
		return [4]uint64{}, fmt.Errorf("pre-release of %d.%d.%d has no lower build version: %w",
			triple[0], triple[1], triple[2], ErrOutOfRange)
	}

	slot := uint64(0)
	if parsed.HasNumber {
		slot = uint64(parsed.Number) + 1
	}
	code := 1 + uint64(rules.suffixRank(parsed.Suffix))*rules.suffixStride() + slot
	if code > uint64(rules.MaxComponent) {
		return [4]uint64{}, fmt.Errorf("pre-release code %d exceeds %d: %w", code, rules.MaxComponent, ErrOutOfRange)
	}

	return [4]uint64{previous[0], previous[1], previous[2], code}, nil
}

// predecessor returns the triple immediately below triple when every
// component ranges over [0, maxComponent].
func predecessor(triple [3]uint64, maxComponent uint64) ([3]uint64, bool) {
	for index := 2; index >= 0; index-- {
		if triple[index] > 0 {
			triple[index]--
			for lower := index + 1; lower < 3; lower++ {
				triple[lower] = maxComponent
			}
			return triple, true
		}
	}
	return triple, false
}

// Compare orders two parsed versions by semantic-version precedence
// under rules: numeric triple first, then release above any pre-release,
// then tag rank, then a bare tag below any numbered one.
func Compare(a, b Parsed, rules Rules) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Patch, b.Patch); c != 0 {
		return c
	}

	switch {
	case a.IsRelease() && b.IsRelease():
		return 0
	case a.IsRelease():
		return 1
	case b.IsRelease():
		return -1
	}

	if c := cmp.Compare(rules.suffixRank(a.Suffix), rules.suffixRank(b.Suffix)); c != 0 {
		return c
	}
	if a.HasNumber != b.HasNumber {
		if a.HasNumber {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.Number, b.Number)
}

// CompareBuild orders two build version strings component by component.
// It fails when either string is not four dotted integers.
func CompareBuild(a, b string) (int, error) {
	left, err := splitBuild(a)
	if err != nil {
		return 0, err
	}
	right, err := splitBuild(b)
	if err != nil {
		return 0, err
	}
	for index := range left {
		if c := cmp.Compare(left[index], right[index]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func splitBuild(build string) ([4]uint64, error) {
	var components [4]uint64
	parts := strings.Split(build, ".")
	if len(parts) != 4 {
		return components, fmt.Errorf("build version %q: want 4 components, got %d: %w", build, len(parts), ErrMalformed)
	}
	for index, part := range parts {
		value, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return components, fmt.Errorf("build version %q: %w", build, ErrMalformed)
		}
		components[index] = value
	}
	return components, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
