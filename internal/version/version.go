// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package version contains the build-time version metadata of slskit.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	version   = "No version provided"
	commit    = "No commit provided"
	buildTime = "No build timestamp provided"
)

// Version returns the slskit version string.
func Version() string {
	return version
}

// Commit returns the git commit slskit was built from.
func Commit() string {
	return commit
}

// BuildTime returns the timestamp slskit was built at.
func BuildTime() string {
	return buildTime
}

// String returns all version information in a single string.
func String() string {
	return fmt.Sprintf("%s (%s) built %s", version, commit, buildTime)
}
