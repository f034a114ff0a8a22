// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundleversion

import (
	"errors"
	"fmt"
)

// Rules holds the platform-defined limits applied by [Parse] and
// [Format]. The zero value is not usable; start from [DefaultRules].
type Rules struct {
	// MaxComponent is the inclusive upper bound of every numeric
	// component, including the encoded fourth build component.
	MaxComponent uint32

	// MaxDigits bounds the number of decimal digits in one component.
	MaxDigits int

	// Suffixes lists the recognized pre-release tags, lowest precedence
	// first. A release outranks every tag.
	Suffixes []string

	// MaxSuffixNumber is the inclusive upper bound of the numeric
	// increment after a tag ("rc.3").
	MaxSuffixNumber uint32
}

// DefaultRules returns the limits used by application bundles on
// current platforms.
func DefaultRules() Rules {
	return Rules{
		MaxComponent:    65535,
		MaxDigits:       5,
		Suffixes:        []string{"alpha", "beta", "rc"},
		MaxSuffixNumber: 999,
	}
}

// Validate checks that the rules are internally consistent: every
// encodable pre-release must fit in the fourth build component.
func (r Rules) Validate() error {
	var errs []error

	if r.MaxComponent == 0 {
		errs = append(errs, fmt.Errorf("max component must be positive"))
	}
	if r.MaxDigits <= 0 {
		errs = append(errs, fmt.Errorf("max digits must be positive, got %d", r.MaxDigits))
	}

	seen := make(map[string]bool, len(r.Suffixes))
	for _, suffix := range r.Suffixes {
		if !isTag(suffix) {
			errs = append(errs, fmt.Errorf("suffix %q must be non-empty lowercase letters", suffix))
		}
		if seen[suffix] {
			errs = append(errs, fmt.Errorf("suffix %q listed twice", suffix))
		}
		seen[suffix] = true
	}

	if highest := r.highestSuffixCode(); highest > uint64(r.MaxComponent) {
		errs = append(errs, fmt.Errorf("%d suffixes with max number %d need build component %d, above max component %d",
			len(r.Suffixes), r.MaxSuffixNumber, highest, r.MaxComponent))
	}

	return errors.Join(errs...)
}

// suffixStride is the number of fourth-component slots one tag occupies:
// the bare tag plus every numbered increment.
func (r Rules) suffixStride() uint64 {
	return uint64(r.MaxSuffixNumber) + 2
}

func (r Rules) highestSuffixCode() uint64 {
	return uint64(len(r.Suffixes)) * r.suffixStride()
}

// suffixRank returns the precedence index of tag, or -1 when the tag is
// not recognized.
func (r Rules) suffixRank(tag string) int {
	for index, suffix := range r.Suffixes {
		if suffix == tag {
			return index
		}
	}
	return -1
}

func isTag(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
