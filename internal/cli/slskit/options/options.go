// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package options carries the flags and helpers shared by all slskit
// subcommands.
package options

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/spf13/pflag"

	"slskit.sh/config"
	"slskit.sh/layout"
	"slskit.sh/manifest"
	"slskit.sh/project"
)

// Global are the persistent flags of the slskit root command.
type Global struct {
	// ProjectFile is the path of the project file to operate on.
	ProjectFile string

	// ConfigFile is the path of an optional configuration file.
	ConfigFile string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogTimestamps enables timestamps on log output.
	LogTimestamps bool
}

// Register adds the global flags to the given flag set, normally the root
// command's persistent flags.
func (g *Global) Register(flags *pflag.FlagSet) {
	flags.StringVarP(&g.ProjectFile, "file", "f", project.DefaultFileName, "Path to the project file")
	flags.StringVar(&g.ConfigFile, "config", "", "Path to the configuration file")
	flags.StringVar(&g.LogLevel, "log-level", "", "Log level verbosity. Choice of: [panic, fatal, error, warn, info, debug, trace]")
	flags.BoolVar(&g.LogTimestamps, "log-timestamps", false, "Enable log timestamps")
}

// Config loads the configuration, discovering a configuration file next to
// the project file when none was given explicitly.
func (g *Global) Config() (*config.SlsKit, error) {
	path := g.ConfigFile
	if path == "" {
		path = filepath.Join(filepath.Dir(g.ProjectFile), config.DefaultFileName)
	}

	return config.Load(path)
}

// Project loads the project file.
func (g *Global) Project() (*project.Project, error) {
	return project.Load(g.ProjectFile)
}

// Target is a resolved project target, either a service or an asset.
type Target struct {
	Name    string
	Service *project.Service
	Asset   *project.Asset
}

// Manifest resolves the target's deployment manifest.
func (t Target) Manifest(manifestVersion string) *manifest.Manifest {
	if t.Service != nil {
		return t.Service.Manifest(manifestVersion)
	}

	return t.Asset.Manifest(manifestVersion)
}

// Build resolves the target into a distribution layout.
func (t Target) Build(ctx context.Context, dir string, opts project.BuildOptions) (*layout.Layout, error) {
	if t.Service != nil {
		return t.Service.Build(ctx, dir, opts)
	}

	return t.Asset.Build(ctx, dir, opts)
}

// BuildOptions derives assembly options from the configuration.
func BuildOptions(cfg *config.SlsKit) project.BuildOptions {
	return project.BuildOptions{
		ManifestVersion:  cfg.ManifestVersion,
		ShutdownTimeout:  cfg.ShutdownTimeout,
		StrictValidation: cfg.StrictValidation,
	}
}

// SelectTargets resolves the targets named by args, or all targets matching
// the only pattern when args is empty.  An empty only pattern matches
// everything.
func SelectTargets(prj *project.Project, args []string, only string) ([]Target, error) {
	var matcher glob.Glob
	if only != "" {
		var err error
		if matcher, err = glob.Compile(only); err != nil {
			return nil, fmt.Errorf("invalid --only pattern: %w", err)
		}
	}

	names := args
	if len(names) == 0 {
		names = prj.Names()
	}

	targets := make([]Target, 0, len(names))
	for _, name := range names {
		if matcher != nil && !matcher.Match(name) {
			continue
		}

		if svc, ok := prj.Service(name); ok {
			targets = append(targets, Target{Name: name, Service: svc})
			continue
		}
		if asset, ok := prj.Asset(name); ok {
			targets = append(targets, Target{Name: name, Asset: asset})
			continue
		}

		return nil, fmt.Errorf("unknown target: %s", name)
	}

	return targets, nil
}
