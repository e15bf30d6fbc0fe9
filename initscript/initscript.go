// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package initscript generates the service/bin/init.sh control script that
// delegates to the platform launcher binary and exposes the
// start/stop/console/status/restart subcommands.
package initscript

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"slskit.sh/launcher"
)

// FileName is the relative location of the init script within a service
// distribution.
const FileName = "service/bin/init.sh"

// DefaultShutdownTimeout is the number of seconds stop waits for a graceful
// shutdown before sending SIGKILL.
const DefaultShutdownTimeout = 30

//go:embed templates/init.sh.tmpl
var initScriptTemplate string

var initScript = template.Must(template.New("init").Parse(initScriptTemplate))

// Options adjusts init script generation.
type Options struct {
	shutdownTimeout int
}

// Option is an init script generation option.
type Option func(*Options)

// WithShutdownTimeout sets the graceful shutdown timeout in seconds.
func WithShutdownTimeout(seconds int) Option {
	return func(opts *Options) {
		opts.shutdownTimeout = seconds
	}
}

// Generate produces init.sh content for a service distribution.
func Generate(serviceName string, opts ...Option) (string, error) {
	options := Options{
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	var builder strings.Builder
	err := initScript.Execute(&builder, map[string]any{
		"ServiceName":     serviceName,
		"BinaryName":      launcher.BinaryName,
		"ShutdownTimeout": options.shutdownTimeout,
	})
	if err != nil {
		return "", fmt.Errorf("could not render init script: %w", err)
	}

	return builder.String(), nil
}
