// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package archive_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"slskit.sh/archive"
	"slskit.sh/health"
	"slskit.sh/layout"
)

func buildTestLayout(t *testing.T) *layout.Layout {
	t.Helper()

	source := filepath.Join(t.TempDir(), "check.sh")
	require.NoError(t, os.WriteFile(source, []byte("#!/bin/bash\nexit 0\n"), 0o644))

	l, err := layout.BuildService(layout.ServiceParams{
		ProductName:        "my-service",
		ProductVersion:     "1.0.0",
		ManifestYAML:       "manifest-version: '1.0'\n",
		LauncherStaticYAML: "configType: python\n",
		InitScript:         "#!/bin/bash\n",
		Check:              health.ScriptCheck{SourcePath: source},
	})
	require.NoError(t, err)

	return l
}

func TestMaterialize(t *testing.T) {
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "my-service-1.0.0")

	require.NoError(t, archive.Materialize(ctx, buildTestLayout(t), dest))

	for _, dir := range []string{"var/data/tmp", "var/log", "var/run"} {
		info, err := os.Stat(filepath.Join(dest, dir))
		require.NoError(t, err, dir)
		require.True(t, info.IsDir())
	}

	manifest, err := os.ReadFile(filepath.Join(dest, "deployment/manifest.yml"))
	require.NoError(t, err)
	require.Equal(t, "manifest-version: '1.0'\n", string(manifest))

	initInfo, err := os.Stat(filepath.Join(dest, "service/bin/init.sh"))
	require.NoError(t, err)
	if initInfo.Mode()&0o111 == 0 {
		t.Fatal("init.sh is not executable")
	}

	// Source-referenced files are copied with the executable bit applied.
	checkInfo, err := os.Stat(filepath.Join(dest, "service/monitoring/bin/check.sh"))
	require.NoError(t, err)
	if checkInfo.Mode()&0o111 == 0 {
		t.Fatal("check.sh is not executable")
	}
}

func TestCreateTarGzRoundTrip(t *testing.T) {
	ctx := context.Background()
	work := t.TempDir()

	dest := filepath.Join(work, "my-service-1.0.0")
	require.NoError(t, archive.Materialize(ctx, buildTestLayout(t), dest))

	tarball := filepath.Join(work, archive.TarballName("my-service-1.0.0"))
	require.NoError(t, archive.CreateTarGz(ctx, dest, tarball, "my-service-1.0.0"))

	unpacked := filepath.Join(work, "unpacked")
	require.NoError(t, archive.Unarchive(tarball, unpacked))

	// Entries are rooted under the dist name.
	manifest, err := os.ReadFile(filepath.Join(unpacked, "my-service-1.0.0", "deployment/manifest.yml"))
	require.NoError(t, err)
	require.Equal(t, "manifest-version: '1.0'\n", string(manifest))

	info, err := os.Stat(filepath.Join(unpacked, "my-service-1.0.0", "var/log"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestTarballName(t *testing.T) {
	require.Equal(t, "my-service-1.0.0.sls.tgz", archive.TarballName("my-service-1.0.0"))
}

func TestUnarchiveUnknownExtension(t *testing.T) {
	err := archive.Unarchive("dist.zip", t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unrecognized extension")
}
