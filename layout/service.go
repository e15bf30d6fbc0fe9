// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package layout

import (
	"fmt"
	"path"
	"sort"

	"slskit.sh/health"
	"slskit.sh/hooks"
	"slskit.sh/initscript"
	"slskit.sh/launcher"
	"slskit.sh/lockfile"
	"slskit.sh/manifest"
)

// RuntimeDirs are the runtime directories present in every service
// distribution, in fixed order.
func RuntimeDirs() []string {
	return []string{"var/data/tmp", "var/log", "var/run"}
}

// HookSet carries the hook lifecycle content of a service distribution.
// When nil is passed to BuildService, no hook artifacts or directories are
// added at all.
type HookSet struct {
	// Entrypoint is the content of service/bin/entrypoint.sh.
	Entrypoint string

	// Library is the content of service/lib/hooks.sh.
	Library string

	// StartupShim is the content of hooks/startup.d/00-main.sh.
	StartupShim string

	// Scripts maps validated "<phase>.d/<name>.sh" paths to the source
	// files to copy.
	Scripts map[string]string
}

// ServiceParams are the generated artifacts assembled into a service
// distribution.
type ServiceParams struct {
	ProductName    string
	ProductVersion string

	// ManifestYAML is the content of deployment/manifest.yml.
	ManifestYAML string

	// LauncherStaticYAML is the content of service/bin/launcher-static.yml.
	LauncherStaticYAML string

	// InitScript is the content of service/bin/init.sh.
	InitScript string

	// Check is the health check configuration; nil or health.NoCheck adds
	// no check artifacts.
	Check health.Check

	// LauncherCheckYAML is the content of service/bin/launcher-check.yml,
	// produced only in check_args mode.
	LauncherCheckYAML string

	// LockFile is the content of deployment/product-dependencies.lock;
	// empty means the product has no dependencies and no lock file is
	// emitted.
	LockFile string

	// Hooks enables the hook lifecycle system when non-nil.
	Hooks *HookSet
}

// BuildService assembles the full service distribution layout.
func BuildService(params ServiceParams) (*Layout, error) {
	l := newLayout(params.ProductName, params.ProductVersion)

	for _, dir := range RuntimeDirs() {
		if err := l.addDirectory(dir); err != nil {
			return nil, err
		}
	}

	if err := l.addFile(File{
		RelativePath: manifest.FileName,
		Content:      params.ManifestYAML,
	}); err != nil {
		return nil, err
	}

	if params.LockFile != "" {
		if err := l.addFile(File{
			RelativePath: lockfile.FileName,
			Content:      params.LockFile,
		}); err != nil {
			return nil, err
		}
	}

	if err := l.addFile(File{
		RelativePath: initscript.FileName,
		Content:      params.InitScript,
		Executable:   true,
	}); err != nil {
		return nil, err
	}

	if err := l.addFile(File{
		RelativePath: launcher.StaticConfigFileName,
		Content:      params.LauncherStaticYAML,
	}); err != nil {
		return nil, err
	}

	if params.LauncherCheckYAML != "" {
		if err := l.addFile(File{
			RelativePath: launcher.CheckConfigFileName,
			Content:      params.LauncherCheckYAML,
		}); err != nil {
			return nil, err
		}
	}

	if err := addCheck(l, params.Check); err != nil {
		return nil, err
	}

	if params.Hooks != nil {
		if err := addHooks(l, params.Hooks); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func addCheck(l *Layout, check health.Check) error {
	switch check := check.(type) {
	case nil, health.NoCheck:
		return nil

	case health.ArgsCheck:
		return l.addFile(File{
			RelativePath: health.FileName,
			Content:      check.Script,
			Executable:   true,
		})

	case health.CommandCheck:
		return l.addFile(File{
			RelativePath: health.FileName,
			Content:      check.Script,
			Executable:   true,
		})

	case health.ScriptCheck:
		return l.addFile(File{
			RelativePath: health.FileName,
			SourcePath:   check.SourcePath,
			Executable:   true,
		})
	}

	return fmt.Errorf("unknown health check variant: %T", check)
}

func addHooks(l *Layout, set *HookSet) error {
	if err := l.addFile(File{
		RelativePath: hooks.EntrypointFileName,
		Content:      set.Entrypoint,
		Executable:   true,
	}); err != nil {
		return err
	}

	if err := l.addFile(File{
		RelativePath: hooks.LibraryFileName,
		Content:      set.Library,
	}); err != nil {
		return err
	}

	for _, phase := range hooks.Phases {
		if err := l.addDirectory(fmt.Sprintf("hooks/%s.d", phase)); err != nil {
			return err
		}
	}

	// State and metrics directories used by the hook system at runtime.
	if err := l.addDirectory("var/state"); err != nil {
		return err
	}
	if err := l.addDirectory("var/metrics"); err != nil {
		return err
	}

	if err := l.addFile(File{
		RelativePath: hooks.StartupShimFileName,
		Content:      set.StartupShim,
		Executable:   true,
	}); err != nil {
		return err
	}

	// Map iteration order is not deterministic; sort for stable layouts.
	paths := make([]string, 0, len(set.Scripts))
	for hookPath := range set.Scripts {
		paths = append(paths, hookPath)
	}
	sort.Strings(paths)

	for _, hookPath := range paths {
		if err := l.addFile(File{
			RelativePath: path.Join("hooks", hookPath),
			SourcePath:   set.Scripts[hookPath],
			Executable:   true,
		}); err != nil {
			return err
		}
	}

	return nil
}
