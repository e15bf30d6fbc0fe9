// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package lockfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"slskit.sh/lockfile"
	"slskit.sh/manifest"
)

func TestGenerate(t *testing.T) {
	content := lockfile.Generate([]manifest.ProductDependency{{
		ProductGroup:   "com.example",
		ProductName:    "db",
		MinimumVersion: "1.0.0",
	}})

	want := "# product-dependencies.lock\n" +
		"# Run slskit lock to regenerate this file\n" +
		"com.example:db (1.0.0, 1.x.x)\n"

	require.Equal(t, want, content)
}

func TestGenerateEmptyDependencies(t *testing.T) {
	content := lockfile.Generate(nil)

	require.Equal(t, "# product-dependencies.lock\n# Run slskit lock to regenerate this file\n", content)
}

func TestGenerateSortedByProductID(t *testing.T) {
	content := lockfile.Generate([]manifest.ProductDependency{
		{ProductGroup: "com.zeta", ProductName: "z-svc", MinimumVersion: "1.0.0"},
		{ProductGroup: "com.alpha", ProductName: "a-svc", MinimumVersion: "2.1.0", MaximumVersion: "3.x.x"},
		{ProductGroup: "com.alpha", ProductName: "b-svc", MinimumVersion: "1.2.3", Optional: true},
	})

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Equal(t, []string{
		"# product-dependencies.lock",
		"# Run slskit lock to regenerate this file",
		"com.alpha:a-svc (2.1.0, 3.x.x)",
		"com.alpha:b-svc (1.2.3, 1.x.x) optional",
		"com.zeta:z-svc (1.0.0, 1.x.x)",
	}, lines)

	// Exactly one trailing newline.
	require.True(t, strings.HasSuffix(content, ")\n"))
	require.False(t, strings.HasSuffix(content, "\n\n"))
}

func TestParseRoundTrip(t *testing.T) {
	deps := []manifest.ProductDependency{
		{ProductGroup: "com.example", ProductName: "auth", MinimumVersion: "1.2.0"},
		{ProductGroup: "com.example", ProductName: "email", MinimumVersion: "1.200.3", MaximumVersion: "2.x.x", Optional: true},
	}

	entries, err := lockfile.Parse(lockfile.Generate(deps))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "com.example:auth", entries[0].ProductID())
	require.Equal(t, "1.2.0", entries[0].MinimumVersion)
	require.Equal(t, "1.x.x", entries[0].MaximumVersion)
	require.False(t, entries[0].Optional)

	require.Equal(t, "com.example:email", entries[1].ProductID())
	require.Equal(t, "2.x.x", entries[1].MaximumVersion)
	require.True(t, entries[1].Optional)
}

func TestParseErrorCarriesLineNumber(t *testing.T) {
	content := "# product-dependencies.lock\n" +
		"# Run slskit lock to regenerate this file\n" +
		"com.example:db (1.0.0, 1.x.x)\n" +
		"this is not a lock line\n"

	_, err := lockfile.Parse(content)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 4")
	require.Contains(t, err.Error(), `"this is not a lock line"`)
}

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	content := "# a comment\n\n  \ncom.example:db (1.0.0, 1.x.x)\n"

	entries, err := lockfile.Parse(content)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestValidateDuplicates(t *testing.T) {
	content := "com.example:db (1.0.0, 1.x.x)\n" +
		"com.example:db (2.0.0, 2.x.x)\n"

	problems := lockfile.Validate(content)
	require.Len(t, problems, 1)
	require.Contains(t, problems[0], "duplicate dependency in lock file: com.example:db")
}

func TestValidateUnparsableContent(t *testing.T) {
	problems := lockfile.Validate("garbage\n")
	require.Len(t, problems, 1)
	require.Contains(t, problems[0], "invalid lock file line 1")
}
