// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package hooks provides the embedded POSIX hook lifecycle system bundled
// into service distributions: the container entrypoint, the hook execution
// library and the generated startup shim, together with validation of
// user-supplied hook script paths.
//
// Hook phases:
//
//	pre-configure → configure → pre-startup → startup →
//	post-startup  → [READY]   → (wait)      →
//	pre-shutdown  → shutdown  → [EXIT]
package hooks

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"slskit.sh/launcher"
)

const (
	// EntrypointFileName is the layout location of the entrypoint script.
	EntrypointFileName = "service/bin/entrypoint.sh"

	// LibraryFileName is the layout location of the hook library.
	LibraryFileName = "service/lib/hooks.sh"

	// StartupShimFileName is the layout location of the generated startup
	// shim.
	StartupShimFileName = "hooks/startup.d/00-main.sh"
)

// Phases is the fixed, ordered set of hook lifecycle phases.  Hook paths
// referencing any other phase are invalid.
var Phases = []string{
	"pre-configure",
	"configure",
	"pre-startup",
	"startup",
	"post-startup",
	"pre-shutdown",
	"shutdown",
}

var hookPathPattern = regexp.MustCompile(
	`^(?P<phase>[a-z-]+)\.d/(?P<name>[a-zA-Z0-9_.-]+\.sh)$`,
)

//go:embed scripts/entrypoint.sh
var entrypointScript string

//go:embed scripts/hooks.sh
var libraryScript string

//go:embed templates/startup-shim.sh.tmpl
var startupShimTemplate string

var startupShim = template.Must(template.New("startup-shim").Parse(startupShimTemplate))

// ValidatePaths checks that every key of the hook mapping matches the
// "<phase>.d/<name>.sh" grammar with a known phase.
func ValidatePaths(hookScripts map[string]string) error {
	for key := range hookScripts {
		groups := hookPathPattern.FindStringSubmatch(key)
		if groups == nil {
			return fmt.Errorf(
				"invalid hook path %q: must match '<phase>.d/<name>.sh' (e.g. 'pre-startup.d/10-migrate.sh')",
				key,
			)
		}

		phase := groups[hookPathPattern.SubexpIndex("phase")]
		if !validPhase(phase) {
			return fmt.Errorf(
				"unknown hook phase %q in %q: valid phases: %s",
				phase, key, strings.Join(Phases, ", "),
			)
		}
	}

	return nil
}

// Entrypoint returns the embedded entrypoint.sh content.  SERVICE_ROOT
// auto-detects the distribution root from the script's service/bin/
// location unless overridden by the environment.
func Entrypoint() string {
	return entrypointScript
}

// Library returns the embedded hooks.sh execution library.
func Library() string {
	return libraryScript
}

// StartupShim generates the hooks/startup.d/00-main.sh script, which starts
// the platform launcher binary in the background and records its PID.
func StartupShim(serviceName string) (string, error) {
	var builder strings.Builder
	err := startupShim.Execute(&builder, map[string]string{
		"ServiceName": serviceName,
		"BinaryName":  launcher.BinaryName,
	})
	if err != nil {
		return "", fmt.Errorf("could not render startup shim: %w", err)
	}

	return builder.String(), nil
}

func validPhase(phase string) bool {
	for _, known := range Phases {
		if phase == known {
			return true
		}
	}

	return false
}
