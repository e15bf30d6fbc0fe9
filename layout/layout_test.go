// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package layout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slskit.sh/health"
	"slskit.sh/layout"
)

func serviceParams() layout.ServiceParams {
	return layout.ServiceParams{
		ProductName:        "my-service",
		ProductVersion:     "1.0.0",
		ManifestYAML:       "manifest-version: '1.0'\n",
		LauncherStaticYAML: "configType: python\n",
		InitScript:         "#!/bin/bash\n",
	}
}

func filePaths(l *layout.Layout) map[string]layout.File {
	files := make(map[string]layout.File, len(l.Files))
	for _, file := range l.Files {
		files[file.RelativePath] = file
	}
	return files
}

func dirPaths(l *layout.Layout) map[string]bool {
	dirs := make(map[string]bool, len(l.Directories))
	for _, dir := range l.Directories {
		dirs[dir.RelativePath] = true
	}
	return dirs
}

func TestBuildServiceMinimal(t *testing.T) {
	l, err := layout.BuildService(serviceParams())
	require.NoError(t, err)

	require.Equal(t, "my-service-1.0.0", l.DistName)

	dirs := dirPaths(l)
	require.Len(t, dirs, 3)
	for _, dir := range []string{"var/data/tmp", "var/log", "var/run"} {
		require.True(t, dirs[dir], dir)
	}

	files := filePaths(l)
	require.Len(t, files, 3)
	require.Contains(t, files, "deployment/manifest.yml")
	require.Contains(t, files, "service/bin/init.sh")
	require.Contains(t, files, "service/bin/launcher-static.yml")

	require.True(t, files["service/bin/init.sh"].Executable)
	require.False(t, files["deployment/manifest.yml"].Executable)
}

func TestBuildServiceWithLockFile(t *testing.T) {
	params := serviceParams()
	params.LockFile = "# product-dependencies.lock\n"

	l, err := layout.BuildService(params)
	require.NoError(t, err)

	files := filePaths(l)
	require.Contains(t, files, "deployment/product-dependencies.lock")
}

func TestBuildServiceWithArgsCheck(t *testing.T) {
	params := serviceParams()
	params.Check = health.ArgsCheck{Script: "#!/bin/bash\nexit 0\n"}
	params.LauncherCheckYAML = "configType: python\n"

	l, err := layout.BuildService(params)
	require.NoError(t, err)

	files := filePaths(l)
	require.Contains(t, files, "service/monitoring/bin/check.sh")
	require.Contains(t, files, "service/bin/launcher-check.yml")
	require.True(t, files["service/monitoring/bin/check.sh"].Executable)
}

func TestBuildServiceWithScriptCheck(t *testing.T) {
	params := serviceParams()
	params.Check = health.ScriptCheck{SourcePath: "/src/check.sh"}

	l, err := layout.BuildService(params)
	require.NoError(t, err)

	files := filePaths(l)
	check := files["service/monitoring/bin/check.sh"]
	require.Equal(t, "/src/check.sh", check.SourcePath)
	require.False(t, check.IsInline())
}

func TestBuildServiceWithHooks(t *testing.T) {
	params := serviceParams()
	params.Hooks = &layout.HookSet{
		Entrypoint:  "#!/bin/sh\n",
		Library:     "run_hooks() { :; }\n",
		StartupShim: "#!/bin/sh\n",
		Scripts: map[string]string{
			"pre-startup.d/10-migrate.sh": "/src/migrate.sh",
			"configure.d/05-render.sh":    "/src/render.sh",
		},
	}

	l, err := layout.BuildService(params)
	require.NoError(t, err)

	dirs := dirPaths(l)
	for _, dir := range []string{
		"hooks/pre-configure.d", "hooks/configure.d", "hooks/pre-startup.d",
		"hooks/startup.d", "hooks/post-startup.d", "hooks/pre-shutdown.d",
		"hooks/shutdown.d", "var/state", "var/metrics",
	} {
		require.True(t, dirs[dir], dir)
	}

	files := filePaths(l)
	require.True(t, files["service/bin/entrypoint.sh"].Executable)
	require.Contains(t, files, "service/lib/hooks.sh")
	require.True(t, files["hooks/startup.d/00-main.sh"].Executable)

	migrate := files["hooks/pre-startup.d/10-migrate.sh"]
	require.Equal(t, "/src/migrate.sh", migrate.SourcePath)
	require.True(t, migrate.Executable)
	require.Contains(t, files, "hooks/configure.d/05-render.sh")
}

func TestBuildServiceWithoutHooksHasNoHookTree(t *testing.T) {
	l, err := layout.BuildService(serviceParams())
	require.NoError(t, err)

	for _, dir := range l.Directories {
		if dir.RelativePath == "var/state" || dir.RelativePath == "hooks/startup.d" {
			t.Fatalf("unexpected hook directory %s in layout without hooks", dir.RelativePath)
		}
	}

	files := filePaths(l)
	require.NotContains(t, files, "service/bin/entrypoint.sh")
}

func TestBuildServiceDuplicatePath(t *testing.T) {
	params := serviceParams()
	params.Hooks = &layout.HookSet{
		Scripts: map[string]string{
			// Collides with the generated startup shim.
			"startup.d/00-main.sh": "/src/main.sh",
		},
	}

	_, err := layout.BuildService(params)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate layout path")
}

func TestBuildAsset(t *testing.T) {
	l, err := layout.BuildAsset(layout.AssetParams{
		ProductName:    "frontend-assets",
		ProductVersion: "2.0.0",
		ManifestYAML:   "manifest-version: '1.0'\n",
		Mappings: []layout.AssetMapping{
			{SourcePath: "/src/static", DestPath: "web/static"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "frontend-assets-2.0.0", l.DistName)

	// One file (the manifest) and one directory (asset/).
	require.Len(t, l.Directories, 1)
	require.Equal(t, "asset", l.Directories[0].RelativePath)

	files := filePaths(l)
	require.Contains(t, files, "deployment/manifest.yml")
	require.Equal(t, "/src/static", files["asset/web/static"].SourcePath)
}

func TestBuildAssetWithLockFile(t *testing.T) {
	l, err := layout.BuildAsset(layout.AssetParams{
		ProductName:    "frontend-assets",
		ProductVersion: "2.0.0",
		ManifestYAML:   "manifest-version: '1.0'\n",
		LockFile:       "# product-dependencies.lock\n",
	})
	require.NoError(t, err)

	files := filePaths(l)
	require.Contains(t, files, "deployment/product-dependencies.lock")
}

func TestFileMapExcludesSourceReferences(t *testing.T) {
	params := serviceParams()
	params.Check = health.ScriptCheck{SourcePath: "/src/check.sh"}

	l, err := layout.BuildService(params)
	require.NoError(t, err)

	fileMap := l.FileMap()
	require.Contains(t, fileMap, "deployment/manifest.yml")
	require.NotContains(t, fileMap, "service/monitoring/bin/check.sh")
}
