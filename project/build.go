// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package project

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"slskit.sh/health"
	"slskit.sh/hooks"
	"slskit.sh/initscript"
	"slskit.sh/launcher"
	"slskit.sh/layout"
	"slskit.sh/lockfile"
	"slskit.sh/log"
	"slskit.sh/manifest"
)

// BuildOptions tune distribution assembly.
type BuildOptions struct {
	// ManifestVersion is written as the manifest-version of generated
	// manifests.
	ManifestVersion string

	// ShutdownTimeout is the number of seconds the init script waits for
	// graceful shutdown before sending SIGKILL.
	ShutdownTimeout int

	// StrictValidation additionally validates generated manifests against
	// the embedded JSON schema.
	StrictValidation bool
}

// DefaultBuildOptions returns the options used when none are supplied.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		ManifestVersion:  manifest.DefaultManifestVersion,
		ShutdownTimeout:  initscript.DefaultShutdownTimeout,
		StrictValidation: true,
	}
}

// Executable returns the launcher executable path of the service relative to
// the distribution root.
func (s *Service) Executable() string {
	if s.PexBinary != "" {
		return s.PexBinary
	}

	return "service/bin/" + s.ProductName + ".pex"
}

// lintManifest validates a resolved manifest, failing on errors and logging
// warnings.  The fail-fast entity validators run first and gate all
// generation regardless of the strict setting.
func lintManifest(ctx context.Context, m *manifest.Manifest, strict bool) error {
	if err := m.Check(); err != nil {
		return fmt.Errorf("invalid manifest for %s: %w", m.ProductID(), err)
	}

	report, err := m.Lint(strict)
	if err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		log.G(ctx).
			WithField("product", m.ProductID()).
			Warn(warning)
	}

	if !report.Valid() {
		return fmt.Errorf("invalid manifest for %s:\n  %s",
			m.ProductID(),
			strings.Join(report.Errors, "\n  "),
		)
	}

	return nil
}

// Build resolves the service declaration into a distribution layout.  It
// generates the manifest, launcher configuration, init script, health check,
// lock file and hook tree, validating each along the way.
func (s *Service) Build(ctx context.Context, dir string, opts BuildOptions) (*layout.Layout, error) {
	m := s.Manifest(opts.ManifestVersion)
	if err := lintManifest(ctx, m, opts.StrictValidation); err != nil {
		return nil, err
	}

	manifestYAML, err := m.Document()
	if err != nil {
		return nil, fmt.Errorf("could not render manifest: %w", err)
	}

	executable := s.Executable()

	staticYAML, err := launcher.NewStaticConfig(executable,
		launcher.WithEntryPoint(s.Entrypoint),
		launcher.WithArgs(s.Args...),
		launcher.WithEnv(s.Env),
	).YAML()
	if err != nil {
		return nil, fmt.Errorf("could not render launcher config: %w", err)
	}

	initScript, err := initscript.Generate(s.ProductName,
		initscript.WithShutdownTimeout(opts.ShutdownTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("could not render init script: %w", err)
	}

	checkSpec := health.Spec{
		Args:    s.Check.Args,
		Command: s.Check.Command,
	}
	if s.Check.Script != "" {
		checkSpec.ScriptPath = resolvePath(dir, s.Check.Script)
	}

	check, err := health.Generate(s.ProductName, checkSpec)
	if err != nil {
		return nil, err
	}

	var launcherCheckYAML string
	if check.Mode() == health.ModeArgs {
		launcherCheckYAML, err = launcher.NewCheckConfig(executable, s.Check.Args, s.Entrypoint).YAML()
		if err != nil {
			return nil, fmt.Errorf("could not render check launcher config: %w", err)
		}
	}

	var lockContent string
	if len(m.Dependencies) > 0 {
		lockContent = lockfile.Generate(m.Dependencies)
	}

	var hookSet *layout.HookSet
	if len(s.Hooks) > 0 {
		if err := hooks.ValidatePaths(s.Hooks); err != nil {
			return nil, err
		}

		shim, err := hooks.StartupShim(s.ProductName)
		if err != nil {
			return nil, fmt.Errorf("could not render startup shim: %w", err)
		}

		scripts := make(map[string]string, len(s.Hooks))
		for hookPath, source := range s.Hooks {
			scripts[hookPath] = resolvePath(dir, source)
		}

		hookSet = &layout.HookSet{
			Entrypoint:  hooks.Entrypoint(),
			Library:     hooks.Library(),
			StartupShim: shim,
			Scripts:     scripts,
		}
	}

	l, err := layout.BuildService(layout.ServiceParams{
		ProductName:        s.ProductName,
		ProductVersion:     s.Version,
		ManifestYAML:       manifestYAML,
		LauncherStaticYAML: staticYAML,
		InitScript:         initScript,
		Check:              check,
		LauncherCheckYAML:  launcherCheckYAML,
		LockFile:           lockContent,
		Hooks:              hookSet,
	})
	if err != nil {
		return nil, err
	}

	log.G(ctx).
		WithField("dist", l.DistName).
		Info("assembled service layout")

	return l, nil
}

// Build resolves the asset declaration into a distribution layout.
func (a *Asset) Build(ctx context.Context, dir string, opts BuildOptions) (*layout.Layout, error) {
	if len(a.Assets) == 0 {
		return nil, fmt.Errorf("asset %s declares no files", a.Name)
	}

	m := a.Manifest(opts.ManifestVersion)
	if err := lintManifest(ctx, m, opts.StrictValidation); err != nil {
		return nil, err
	}

	manifestYAML, err := m.Document()
	if err != nil {
		return nil, fmt.Errorf("could not render manifest: %w", err)
	}

	var lockContent string
	if len(m.Dependencies) > 0 {
		lockContent = lockfile.Generate(m.Dependencies)
	}

	mappings := make([]layout.AssetMapping, 0, len(a.Assets))
	for source, dest := range a.Assets {
		mappings = append(mappings, layout.AssetMapping{
			SourcePath: resolvePath(dir, source),
			DestPath:   dest,
		})
	}
	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].DestPath < mappings[j].DestPath
	})

	l, err := layout.BuildAsset(layout.AssetParams{
		ProductName:    a.ProductName,
		ProductVersion: a.Version,
		ManifestYAML:   manifestYAML,
		LockFile:       lockContent,
		Mappings:       mappings,
	})
	if err != nil {
		return nil, err
	}

	log.G(ctx).
		WithField("dist", l.DistName).
		Info("assembled asset layout")

	return l, nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
