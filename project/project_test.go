// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package project_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"slskit.sh/project"
	"slskit.sh/sls"
)

const projectYAML = `services:
  - product-group: com.example
    product-name: my-service
    version: 1.0.0
    entrypoint: app:app
    args: ["--host", "0.0.0.0", "--port", "8080"]
    env:
      APP_MODE: production
    check:
      args: ["--check"]
    dependencies:
      - product-group: com.example
        product-name: db
        minimum-version: 1.0.0
assets:
  - product-group: com.example
    product-name: frontend-assets
    version: 2.0.0
    assets:
      static: web/static
`

func writeProject(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, project.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	prj, err := project.Load(writeProject(t, projectYAML))
	require.NoError(t, err)

	require.Equal(t, []string{"frontend-assets", "my-service"}, prj.Names())

	svc, ok := prj.Service("my-service")
	if !ok {
		t.Fatal("service my-service not found")
	}
	require.Equal(t, "com.example", svc.ProductGroup)
	require.Equal(t, "app:app", svc.Entrypoint)
	require.Equal(t, []string{"--check"}, svc.Check.Args)
	require.Len(t, svc.Dependencies, 1)

	asset, ok := prj.Asset("frontend-assets")
	if !ok {
		t.Fatal("asset frontend-assets not found")
	}
	require.Equal(t, "web/static", asset.Assets["static"])
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := project.Load(writeProject(t, `services:
  - product-group: com.example
    product-name: my-service
    version: 1.0.0
    entrypoint: app:app
    entry-point: typo
`))
	require.Error(t, err)
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	_, err := project.Load(writeProject(t, `services:
  - product-group: com.example
    product-name: my-service
    version: 1.0.0
    entrypoint: app:app
  - product-group: com.other
    product-name: my-service
    version: 2.0.0
    entrypoint: app:app
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate target name")
}

func TestServiceManifest(t *testing.T) {
	prj, err := project.Load(writeProject(t, projectYAML))
	require.NoError(t, err)

	svc, _ := prj.Service("my-service")
	m := svc.Manifest("1.0")

	require.Equal(t, "1.0", m.ManifestVersion)
	require.Equal(t, sls.ProductTypeService, m.ProductType)
	require.Equal(t, "com.example:my-service", m.ProductID())
	require.Len(t, m.Dependencies, 1)
	require.Equal(t, "com.example:db", m.Dependencies[0].ProductID())
}

func TestAssetManifest(t *testing.T) {
	prj, err := project.Load(writeProject(t, projectYAML))
	require.NoError(t, err)

	asset, _ := prj.Asset("frontend-assets")
	m := asset.Manifest("1.0")

	require.Equal(t, sls.ProductTypeAsset, m.ProductType)
	require.Equal(t, "com.example:frontend-assets", m.ProductID())
}

func TestServiceExecutable(t *testing.T) {
	svc := &project.Service{ProductName: "my-service"}
	require.Equal(t, "service/bin/my-service.pex", svc.Executable())

	svc.PexBinary = "service/bin/custom.pex"
	require.Equal(t, "service/bin/custom.pex", svc.Executable())
}

func TestServiceBuild(t *testing.T) {
	path := writeProject(t, projectYAML)
	prj, err := project.Load(path)
	require.NoError(t, err)

	svc, _ := prj.Service("my-service")

	l, err := svc.Build(context.Background(), prj.Dir(), project.DefaultBuildOptions())
	require.NoError(t, err)

	require.Equal(t, "my-service-1.0.0", l.DistName)

	fileMap := l.FileMap()
	require.Contains(t, fileMap, "deployment/manifest.yml")
	require.Contains(t, fileMap, "deployment/product-dependencies.lock")
	require.Contains(t, fileMap, "service/bin/init.sh")
	require.Contains(t, fileMap, "service/bin/launcher-static.yml")
	require.Contains(t, fileMap, "service/bin/launcher-check.yml")
	require.Contains(t, fileMap, "service/monitoring/bin/check.sh")

	require.Contains(t, fileMap["deployment/product-dependencies.lock"],
		"com.example:db (1.0.0, 1.x.x)")
	require.Contains(t, fileMap["service/bin/launcher-static.yml"],
		"executable: service/bin/my-service.pex")
	require.Contains(t, fileMap["service/bin/launcher-static.yml"],
		"entryPoint: app:app")
}

func TestServiceBuildWithHooks(t *testing.T) {
	path := writeProject(t, `services:
  - product-group: com.example
    product-name: my-service
    version: 1.0.0
    entrypoint: app:app
    hooks:
      pre-startup.d/10-migrate.sh: scripts/migrate.sh
`)

	dir := filepath.Dir(path)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "scripts", "migrate.sh"),
		[]byte("#!/bin/sh\nexit 0\n"),
		0o755,
	))

	prj, err := project.Load(path)
	require.NoError(t, err)

	svc, _ := prj.Service("my-service")
	l, err := svc.Build(context.Background(), prj.Dir(), project.DefaultBuildOptions())
	require.NoError(t, err)

	var hookFile, entrypoint bool
	for _, file := range l.Files {
		switch file.RelativePath {
		case "hooks/pre-startup.d/10-migrate.sh":
			hookFile = true
			require.Equal(t, filepath.Join(dir, "scripts", "migrate.sh"), file.SourcePath)
		case "service/bin/entrypoint.sh":
			entrypoint = true
		}
	}
	require.True(t, hookFile)
	require.True(t, entrypoint)
}

func TestServiceBuildInvalidHookPath(t *testing.T) {
	prj, err := project.Load(writeProject(t, `services:
  - product-group: com.example
    product-name: my-service
    version: 1.0.0
    entrypoint: app:app
    hooks:
      post-shutdown.d/10-x.sh: x.sh
`))
	require.NoError(t, err)

	svc, _ := prj.Service("my-service")
	_, err = svc.Build(context.Background(), prj.Dir(), project.DefaultBuildOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown hook phase")
}

func TestServiceBuildRejectsReplicationBounds(t *testing.T) {
	prj, err := project.Load(writeProject(t, `services:
  - product-group: com.example
    product-name: my-service
    version: 1.0.0
    entrypoint: app:app
    replication:
      min: 5
      max: 2
`))
	require.NoError(t, err)

	svc, _ := prj.Service("my-service")
	_, err = svc.Build(context.Background(), prj.Dir(), project.DefaultBuildOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "replication.min")
}

func TestServiceBuildRejectsBadGroupWithoutSchema(t *testing.T) {
	prj, err := project.Load(writeProject(t, `services:
  - product-group: Com.Example
    product-name: my-service
    version: 1.0.0
    entrypoint: app:app
`))
	require.NoError(t, err)

	// The identity gate holds even with schema validation switched off.
	opts := project.DefaultBuildOptions()
	opts.StrictValidation = false

	svc, _ := prj.Service("my-service")
	_, err = svc.Build(context.Background(), prj.Dir(), opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid product group")
}

func TestServiceBuildInvalidManifest(t *testing.T) {
	prj, err := project.Load(writeProject(t, `services:
  - product-group: com.example
    product-name: my-service
    version: not-a-version
    entrypoint: app:app
`))
	require.NoError(t, err)

	svc, _ := prj.Service("my-service")
	_, err = svc.Build(context.Background(), prj.Dir(), project.DefaultBuildOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid manifest")
}

func TestAssetBuild(t *testing.T) {
	path := writeProject(t, projectYAML)
	prj, err := project.Load(path)
	require.NoError(t, err)

	asset, _ := prj.Asset("frontend-assets")
	l, err := asset.Build(context.Background(), prj.Dir(), project.DefaultBuildOptions())
	require.NoError(t, err)

	require.Equal(t, "frontend-assets-2.0.0", l.DistName)

	var mapped bool
	for _, file := range l.Files {
		if file.RelativePath == "asset/web/static" {
			mapped = true
			require.Equal(t, filepath.Join(prj.Dir(), "static"), file.SourcePath)
		}
	}
	require.True(t, mapped)
}

func TestAssetBuildRequiresFiles(t *testing.T) {
	asset := &project.Asset{
		Name:         "empty",
		ProductGroup: "com.example",
		ProductName:  "empty",
		Version:      "1.0.0",
	}

	_, err := asset.Build(context.Background(), ".", project.DefaultBuildOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "declares no files")
}
