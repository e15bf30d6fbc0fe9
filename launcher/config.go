// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package launcher produces the configuration documents consumed by the
// service launcher binary.  The camelCase key names are a wire contract
// with the launcher and must be reproduced verbatim.
package launcher

import (
	"gopkg.in/yaml.v3"
)

const (
	// StaticConfigFileName is the layout location of launcher-static.yml.
	StaticConfigFileName = "service/bin/launcher-static.yml"

	// CheckConfigFileName is the layout location of launcher-check.yml.
	CheckConfigFileName = "service/bin/launcher-check.yml"

	configType    = "python"
	configVersion = 1
)

// MemoryMode selects the launcher's memory management strategy.
type MemoryMode string

const (
	MemoryModeCgroupAware MemoryMode = "cgroup-aware"
	MemoryModeFixed       MemoryMode = "fixed"
	MemoryModeUnmanaged   MemoryMode = "unmanaged"
)

// DefaultRuntimeDirs are the runtime directories the launcher creates before
// starting the service.  The list is ordered data; serialization preserves
// it as-is.
func DefaultRuntimeDirs() []string {
	return []string{"var/data/tmp", "var/log", "var/run"}
}

// StaticConfig is the primary launcher configuration shape
// (launcher-static.yml).  Optional scalar and collection fields are omitted
// entirely when unset; the memory, resources and watchdog sub-objects are
// always emitted in full.
type StaticConfig struct {
	ConfigType    string `yaml:"configType"`
	ConfigVersion int    `yaml:"configVersion"`

	// Executable is the service binary path relative to the dist root.
	Executable string `yaml:"executable"`

	PythonPath string            `yaml:"pythonPath,omitempty"`
	EntryPoint string            `yaml:"entryPoint,omitempty"`
	Args       []string          `yaml:"args,omitempty"`
	Env        map[string]string `yaml:"env,omitempty"`
	PythonOpts []string          `yaml:"pythonOpts,omitempty"`
	Dirs       []string          `yaml:"dirs,omitempty"`

	Memory    MemoryConfig   `yaml:"memory"`
	Resources ResourceLimits `yaml:"resources"`
	Watchdog  WatchdogConfig `yaml:"watchdog"`
}

// MemoryConfig tunes the launcher's memory management.
type MemoryConfig struct {
	Mode                    MemoryMode `yaml:"mode"`
	MaxRSSPercent           float64    `yaml:"maxRssPercent"`
	HeapFragmentationBuffer float64    `yaml:"heapFragmentationBuffer"`
	MallocTrimThreshold     int        `yaml:"mallocTrimThreshold"`
	MallocArenaMax          int        `yaml:"mallocArenaMax"`
}

// ResourceLimits tunes process resource limits applied by the launcher.
type ResourceLimits struct {
	MaxOpenFiles    int  `yaml:"maxOpenFiles"`
	MaxProcesses    int  `yaml:"maxProcesses"`
	CoreDumpEnabled bool `yaml:"coreDumpEnabled"`
}

// WatchdogConfig tunes the launcher's memory watchdog.
type WatchdogConfig struct {
	Enabled             bool    `yaml:"enabled"`
	PollIntervalSeconds int     `yaml:"pollIntervalSeconds"`
	SoftLimitPercent    float64 `yaml:"softLimitPercent"`
	HardLimitPercent    float64 `yaml:"hardLimitPercent"`
	GracePeriodSeconds  int     `yaml:"gracePeriodSeconds"`
}

// CheckConfig is the health check configuration shape (launcher-check.yml):
// the same executable run with different arguments.  Args is always emitted;
// callers supply at least one argument in this mode.
type CheckConfig struct {
	ConfigType    string   `yaml:"configType"`
	ConfigVersion int      `yaml:"configVersion"`
	Executable    string   `yaml:"executable"`
	EntryPoint    string   `yaml:"entryPoint,omitempty"`
	Args          []string `yaml:"args"`
}

// Option adjusts a StaticConfig under construction.
type Option func(*StaticConfig)

// WithPythonPath sets the interpreter path.
func WithPythonPath(path string) Option {
	return func(cfg *StaticConfig) {
		cfg.PythonPath = path
	}
}

// WithEntryPoint overrides the module:callable entry point.
func WithEntryPoint(entryPoint string) Option {
	return func(cfg *StaticConfig) {
		cfg.EntryPoint = entryPoint
	}
}

// WithArgs sets the service argument list.
func WithArgs(args ...string) Option {
	return func(cfg *StaticConfig) {
		cfg.Args = args
	}
}

// WithEnv merges caller-supplied environment entries over the defaults,
// caller entries winning on key collision.
func WithEnv(env map[string]string) Option {
	return func(cfg *StaticConfig) {
		for key, value := range env {
			cfg.Env[key] = value
		}
	}
}

// WithPythonOpts sets interpreter options.
func WithPythonOpts(opts ...string) Option {
	return func(cfg *StaticConfig) {
		cfg.PythonOpts = opts
	}
}

// NewStaticConfig builds a launcher configuration for the given service
// executable with the contract defaults applied.
func NewStaticConfig(executable string, opts ...Option) StaticConfig {
	cfg := StaticConfig{
		ConfigType:    configType,
		ConfigVersion: configVersion,
		Executable:    executable,
		Env: map[string]string{
			"PYTHONDONTWRITEBYTECODE": "1",
			"PYTHONUNBUFFERED":        "1",
		},
		Dirs: DefaultRuntimeDirs(),
		Memory: MemoryConfig{
			Mode:                    MemoryModeCgroupAware,
			MaxRSSPercent:           75.0,
			HeapFragmentationBuffer: 0.10,
			MallocTrimThreshold:     131072,
			MallocArenaMax:          2,
		},
		Resources: ResourceLimits{
			MaxOpenFiles:    65536,
			MaxProcesses:    4096,
			CoreDumpEnabled: false,
		},
		Watchdog: WatchdogConfig{
			Enabled:             true,
			PollIntervalSeconds: 5,
			SoftLimitPercent:    85.0,
			HardLimitPercent:    95.0,
			GracePeriodSeconds:  30,
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// NewCheckConfig builds the health check launcher configuration for the
// check_args pattern.
func NewCheckConfig(executable string, args []string, entryPoint string) CheckConfig {
	return CheckConfig{
		ConfigType:    configType,
		ConfigVersion: configVersion,
		Executable:    executable,
		EntryPoint:    entryPoint,
		Args:          args,
	}
}

// YAML serializes the configuration to its wire format.
func (cfg StaticConfig) YAML() (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// YAML serializes the configuration to its wire format.
func (cfg CheckConfig) YAML() (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
