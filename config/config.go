// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package config holds the global slskit configuration.  Values come from
// built-in defaults, an optional configuration file and SLSKIT_*-prefixed
// environment variables, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the name of a configuration file discovered next to the
// project file.
const DefaultFileName = ".slskit.yaml"

// SlsKit is the global slskit configuration.
type SlsKit struct {
	// ManifestVersion is written as the manifest-version of generated
	// manifests.  It should not normally be changed.
	ManifestVersion string `yaml:"manifest_version" env:"SLSKIT_MANIFEST_VERSION" usage:"Manifest version of generated manifests" default:"1.0"`

	// StrictValidation additionally validates generated manifests against
	// the embedded JSON schema.
	StrictValidation bool `yaml:"strict_validation" env:"SLSKIT_STRICT_VALIDATION" usage:"Validate manifests against the JSON schema" default:"true"`

	// ShutdownTimeout is the number of seconds init scripts wait for
	// graceful shutdown before sending SIGKILL.
	ShutdownTimeout int `yaml:"shutdown_timeout" env:"SLSKIT_SHUTDOWN_TIMEOUT" usage:"Graceful shutdown timeout in seconds" default:"30"`

	// OutputDir is the directory distributions are written to.
	OutputDir string `yaml:"output_dir" env:"SLSKIT_OUTPUT_DIR" long:"output-dir" usage:"Directory distributions are written to" default:"dist"`

	Log struct {
		Level      string `yaml:"level" env:"SLSKIT_LOG_LEVEL" long:"log-level" usage:"Log level verbosity. Choice of: [panic, fatal, error, warn, info, debug, trace]" default:"info"`
		Timestamps bool   `yaml:"timestamps" env:"SLSKIT_LOG_TIMESTAMPS" long:"log-timestamps" usage:"Enable log timestamps"`
	} `yaml:"log"`
}

// NewDefault returns a configuration populated with built-in defaults.
func NewDefault() *SlsKit {
	cfg := &SlsKit{
		ManifestVersion:  "1.0",
		StrictValidation: true,
		ShutdownTimeout:  30,
		OutputDir:        "dist",
	}
	cfg.Log.Level = "info"

	return cfg
}

// Load reads a configuration file over the defaults and applies environment
// overrides.  A missing file is not an error; environment overrides still
// apply.
func Load(path string) (*SlsKit, error) {
	cfg := NewDefault()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read configuration file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(content, cfg); err != nil {
				return nil, fmt.Errorf("could not parse configuration file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

func (cfg *SlsKit) applyEnv() {
	if v, ok := os.LookupEnv("SLSKIT_MANIFEST_VERSION"); ok {
		cfg.ManifestVersion = v
	}
	if v, ok := os.LookupEnv("SLSKIT_STRICT_VALIDATION"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StrictValidation = b
		}
	}
	if v, ok := os.LookupEnv("SLSKIT_SHUTDOWN_TIMEOUT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ShutdownTimeout = n
		}
	}
	if v, ok := os.LookupEnv("SLSKIT_OUTPUT_DIR"); ok {
		cfg.OutputDir = v
	}
	if v, ok := os.LookupEnv("SLSKIT_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("SLSKIT_LOG_TIMESTAMPS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Timestamps = b
		}
	}
}
