// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package lockfile generates, parses and validates the
// product-dependencies.lock file:
//
//	# product-dependencies.lock
//	# Run slskit lock to regenerate this file
//	com.example:auth-service (1.2.0, 1.x.x)
//	com.example:storage-service (3.56.0, 3.x.x)
//	com.example:email-service (1.200.3, 2.x.x) optional
//
// The file is a persisted-state contract consumed by downstream tooling and
// must remain bit-exact, including the trailing newline count.
package lockfile

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"slskit.sh/manifest"
	"slskit.sh/sls"
)

// FileName is the relative location of the lock file within a distribution.
const FileName = "deployment/product-dependencies.lock"

const header = "# product-dependencies.lock\n" +
	"# Run slskit lock to regenerate this file\n"

// Line grammar: group:name (min, max)[ optional]
var linePattern = regexp.MustCompile(
	`^(?P<group>[a-z0-9.-]+):(?P<name>[a-z][a-z0-9.-]*)` +
		`\s+\((?P<min>[^,]+),\s*(?P<max>[^)]+)\)` +
		`(?:\s+(?P<optional>optional))?\s*$`,
)

// Entry is a single resolved line of a lock file.
type Entry struct {
	ProductGroup   string
	ProductName    string
	MinimumVersion string
	MaximumVersion string
	Optional       bool
}

// ProductID derives the "<group>:<name>" identifier of the entry.
func (e Entry) ProductID() string {
	return sls.ProductID(e.ProductGroup, e.ProductName)
}

// Line serializes a single lock file line.
func (e Entry) Line() string {
	suffix := ""
	if e.Optional {
		suffix = " optional"
	}

	return fmt.Sprintf("%s (%s, %s)%s", e.ProductID(), e.MinimumVersion, e.MaximumVersion, suffix)
}

// Generate produces lock file content for the given dependencies.  Entries
// are sorted by product id, so identical dependency sets always produce
// identical output regardless of input order.  Maximum versions are derived
// from the minimum version when not set explicitly.
func Generate(dependencies []manifest.ProductDependency) string {
	entries := make([]Entry, 0, len(dependencies))
	for _, dep := range dependencies {
		entries = append(entries, Entry{
			ProductGroup:   dep.ProductGroup,
			ProductName:    dep.ProductName,
			MinimumVersion: dep.MinimumVersion,
			MaximumVersion: dep.EffectiveMaximumVersion(),
			Optional:       dep.Optional,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ProductID() < entries[j].ProductID()
	})

	var builder strings.Builder
	builder.WriteString(header)
	for _, entry := range entries {
		builder.WriteString(entry.Line())
		builder.WriteByte('\n')
	}

	return builder.String()
}

// Parse reads lock file content into entries.  Blank lines and comment
// lines are skipped; any other line must match the lock line grammar.
func Parse(content string) ([]Entry, error) {
	var entries []Entry

	for i, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		groups := linePattern.FindStringSubmatch(stripped)
		if groups == nil {
			return nil, fmt.Errorf("invalid lock file line %d: %q", i+1, line)
		}

		entries = append(entries, Entry{
			ProductGroup:   groups[linePattern.SubexpIndex("group")],
			ProductName:    groups[linePattern.SubexpIndex("name")],
			MinimumVersion: strings.TrimSpace(groups[linePattern.SubexpIndex("min")]),
			MaximumVersion: strings.TrimSpace(groups[linePattern.SubexpIndex("max")]),
			Optional:       groups[linePattern.SubexpIndex("optional")] != "",
		})
	}

	return entries, nil
}

// Validate checks lock file content and returns one message per problem.
// An unparsable file yields a single-element list.
func Validate(content string) []string {
	entries, err := Parse(content)
	if err != nil {
		return []string{err.Error()}
	}

	var errors []string

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		id := entry.ProductID()
		if seen[id] {
			errors = append(errors, fmt.Sprintf("duplicate dependency in lock file: %s", id))
		}
		seen[id] = true

		// The line grammar normally prevents empty versions; kept as a
		// guard for entries constructed programmatically.
		if entry.MinimumVersion == "" {
			errors = append(errors, fmt.Sprintf("%s: empty minimum version", id))
		}
		if entry.MaximumVersion == "" {
			errors = append(errors, fmt.Sprintf("%s: empty maximum version", id))
		}
	}

	return errors
}
