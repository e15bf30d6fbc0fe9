// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"slskit.sh/config"
)

func TestNewDefault(t *testing.T) {
	cfg := config.NewDefault()

	require.Equal(t, "1.0", cfg.ManifestVersion)
	require.True(t, cfg.StrictValidation)
	require.Equal(t, 30, cfg.ShutdownTimeout)
	require.Equal(t, "dist", cfg.OutputDir)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "dist", cfg.OutputDir)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`output_dir: build
shutdown_timeout: 60
log:
  level: debug
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "build", cfg.OutputDir)
	require.Equal(t, 60, cfg.ShutdownTimeout)
	require.Equal(t, "debug", cfg.Log.Level)

	// Keys absent from the file keep their defaults.
	require.Equal(t, "1.0", cfg.ManifestVersion)
	require.True(t, cfg.StrictValidation)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("output_dir: build\n"), 0o644))

	t.Setenv("SLSKIT_OUTPUT_DIR", "out")
	t.Setenv("SLSKIT_STRICT_VALIDATION", "false")
	t.Setenv("SLSKIT_SHUTDOWN_TIMEOUT", "15")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "out", cfg.OutputDir)
	require.False(t, cfg.StrictValidation)
	require.Equal(t, 15, cfg.ShutdownTimeout)
}
