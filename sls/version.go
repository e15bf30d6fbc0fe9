// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package sls

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SLS orderable version grammars.  A version is orderable iff it matches
// exactly one of:
//
//	1.0.0
//	1.0.0-rc1
//	1.0.0-5-gabcdef
//	1.0.0-rc1-5-gabcdef
//
// Matches are anchored and case-sensitive: uppercase hex digits are invalid.
var orderableVersionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`),
	regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+-rc[0-9]+$`),
	regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+-[0-9]+-g[a-f0-9]+$`),
	regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+-rc[0-9]+-[0-9]+-g[a-f0-9]+$`),
}

// Maven-style product group: lowercase letters, digits, dots, hyphens.
var productGroupPattern = regexp.MustCompile(`^[a-z0-9.-]+$`)

// Product name: starts with a lowercase letter, then lowercase letters,
// digits, dots, hyphens.
var productNamePattern = regexp.MustCompile(`^[a-z][a-z0-9.-]*$`)

var orderableVersionCapture = regexp.MustCompile(
	`^([0-9]+)\.([0-9]+)\.([0-9]+)(?:-rc([0-9]+))?(?:-([0-9]+)-g([a-f0-9]+))?$`,
)

// IsOrderableVersion reports whether version matches one of the SLS
// orderable version grammars.
func IsOrderableVersion(version string) bool {
	for _, pattern := range orderableVersionPatterns {
		if pattern.MatchString(version) {
			return true
		}
	}

	return false
}

// IsValidProductGroup reports whether group is a valid SLS product group.
func IsValidProductGroup(group string) bool {
	return productGroupPattern.MatchString(group)
}

// IsValidProductName reports whether name is a valid SLS product name.
func IsValidProductName(name string) bool {
	return productNamePattern.MatchString(name)
}

// ResolveDefaultMaxVersion derives the default maximum version as
// "<major>.x.x" from a minimum version.  The input is not validated; callers
// must check IsOrderableVersion first.
func ResolveDefaultMaxVersion(minimumVersion string) string {
	major, _, _ := strings.Cut(minimumVersion, ".")
	return fmt.Sprintf("%s.x.x", major)
}

// Version is a parsed SLS orderable version.  Release candidates order
// before their release, and snapshot builds ("-N-gHASH") order after the
// version they were cut from.
type Version struct {
	Major int
	Minor int
	Patch int

	// ReleaseCandidate is the rcN number, or -1 when absent.
	ReleaseCandidate int

	// Snapshot is the commit distance of a "-N-gHASH" suffix, or -1 when
	// absent.
	Snapshot int

	// Hash is the abbreviated commit hash of a snapshot build.
	Hash string
}

// ParseVersion parses an SLS orderable version string.
func ParseVersion(version string) (Version, error) {
	groups := orderableVersionCapture.FindStringSubmatch(version)
	if groups == nil {
		return Version{}, &VersionFormatError{Version: version}
	}

	parsed := Version{
		ReleaseCandidate: -1,
		Snapshot:         -1,
	}

	parsed.Major, _ = strconv.Atoi(groups[1])
	parsed.Minor, _ = strconv.Atoi(groups[2])
	parsed.Patch, _ = strconv.Atoi(groups[3])

	if groups[4] != "" {
		parsed.ReleaseCandidate, _ = strconv.Atoi(groups[4])
	}
	if groups[5] != "" {
		parsed.Snapshot, _ = strconv.Atoi(groups[5])
		parsed.Hash = groups[6]
	}

	return parsed, nil
}

// Compare returns -1, 0 or 1 depending on whether v orders before, equal to
// or after other.
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}

	// A release candidate precedes the release it is a candidate for.
	switch {
	case v.ReleaseCandidate >= 0 && other.ReleaseCandidate < 0:
		return -1
	case v.ReleaseCandidate < 0 && other.ReleaseCandidate >= 0:
		return 1
	}
	if c := compareInt(v.ReleaseCandidate, other.ReleaseCandidate); c != 0 {
		return c
	}

	// A snapshot build follows the version it was cut from.
	switch {
	case v.Snapshot >= 0 && other.Snapshot < 0:
		return 1
	case v.Snapshot < 0 && other.Snapshot >= 0:
		return -1
	}

	return compareInt(v.Snapshot, other.Snapshot)
}

// Compare orders two SLS orderable version strings.
func Compare(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}

	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}

	return va.Compare(vb), nil
}

// SatisfiesRange reports whether an orderable version falls within a version
// matcher range such as "1.x.x" or "2.3.x".  Matchers follow the SLS
// maximum-version wildcard grammar, which maps directly onto semantic
// version constraints.
func SatisfiesRange(version, matcher string) (bool, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("unparsable version %q: %w", version, err)
	}

	constraint, err := semver.NewConstraint(matcher)
	if err != nil {
		return false, fmt.Errorf("unparsable version matcher %q: %w", matcher, err)
	}

	return constraint.Check(v), nil
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}
