// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package project loads and resolves slskit project files.  A project file
// (sls.yaml) declares the services and assets that can be packaged into SLS
// distributions, along with their dependencies, health checks and lifecycle
// hooks.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"slskit.sh/manifest"
	"slskit.sh/sls"
)

// DefaultFileName is the canonical name of a project file.
const DefaultFileName = "sls.yaml"

// Dependency declares a product dependency of a service or asset.
type Dependency struct {
	// ProductGroup is the Maven-style group of the depended-on product.
	ProductGroup string `yaml:"product-group"`

	// ProductName is the name of the depended-on product.
	ProductName string `yaml:"product-name"`

	// MinimumVersion is the minimum compatible version.
	MinimumVersion string `yaml:"minimum-version"`

	// MaximumVersion is the maximum compatible version.  When omitted it
	// defaults to "<major>.x.x" derived from the minimum version.
	MaximumVersion string `yaml:"maximum-version,omitempty"`

	// RecommendedVersion is the recommended version, if any.
	RecommendedVersion string `yaml:"recommended-version,omitempty"`

	// Optional marks the dependency as not required at install time.
	Optional bool `yaml:"optional,omitempty"`
}

// Incompatibility declares a product the distribution cannot coexist with.
type Incompatibility struct {
	ProductGroup string `yaml:"product-group"`
	ProductName  string `yaml:"product-name"`

	// VersionRange is the incompatible range, e.g. "< 2.0.0".
	VersionRange string `yaml:"version-range"`

	// Reason explains the incompatibility.
	Reason string `yaml:"reason"`
}

// Artifact references an external artifact, e.g. an OCI image.
type Artifact struct {
	Type   string `yaml:"type,omitempty"`
	Name   string `yaml:"name,omitempty"`
	URI    string `yaml:"uri"`
	Digest string `yaml:"digest,omitempty"`
}

// Replication declares replica counts for the product.
type Replication struct {
	Desired *int `yaml:"desired,omitempty"`
	Min     *int `yaml:"min,omitempty"`
	Max     *int `yaml:"max,omitempty"`
}

// Check declares the health check of a service.  At most one of Args,
// Command or Script may be set.
type Check struct {
	// Args runs the service binary itself with these arguments.
	Args []string `yaml:"args,omitempty"`

	// Command runs an arbitrary command, e.g. "python -m svc.healthcheck".
	Command string `yaml:"command,omitempty"`

	// Script is a path to a custom check script, copied verbatim into the
	// distribution.  Relative paths are resolved against the project file.
	Script string `yaml:"script,omitempty"`
}

// Service declares a Python service packaged as an SLS distribution.
type Service struct {
	// Name is the target name within the project.  It defaults to the
	// product name.
	Name string `yaml:"name,omitempty"`

	// ProductGroup is the Maven-style product group, e.g. "com.example".
	ProductGroup string `yaml:"product-group"`

	// ProductName is the product name, e.g. "my-service".
	ProductName string `yaml:"product-name"`

	// Version is the SLS orderable version of the distribution.
	Version string `yaml:"version"`

	// ProductType overrides the product type.  Defaults to service.v1.
	ProductType string `yaml:"product-type,omitempty"`

	DisplayName string `yaml:"display-name,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Entrypoint is the Python entrypoint in module:callable format.
	Entrypoint string `yaml:"entrypoint"`

	// Command names the command starting the service.  Informational:
	// the launcher resolves the actual executable from the PEX binary.
	Command string `yaml:"command,omitempty"`

	// Args are passed to the service command.
	Args []string `yaml:"args,omitempty"`

	// PythonVersion is the Python version requirement of the service.
	// Informational; interpreter selection is baked into the PEX.
	PythonVersion string `yaml:"python-version,omitempty"`

	// Env sets additional environment variables when launching the
	// service.
	Env map[string]string `yaml:"env,omitempty"`

	// PexBinary is a path to a PEX binary relative to the distribution
	// root.  When set the launcher executes it directly.
	PexBinary string `yaml:"pex-binary,omitempty"`

	// Check declares the health check.
	Check Check `yaml:"check,omitempty"`

	ResourceRequests map[string]string `yaml:"resource-requests,omitempty"`
	ResourceLimits   map[string]string `yaml:"resource-limits,omitempty"`

	Replication Replication `yaml:"replication,omitempty"`

	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
	Traits      []string          `yaml:"traits,omitempty"`

	// Endpoints, Volumes and Secrets are copied into the manifest as
	// opaque mappings; their shape is owned by the deployment platform.
	Endpoints []map[string]any `yaml:"endpoints,omitempty"`
	Volumes   []map[string]any `yaml:"volumes,omitempty"`
	Secrets   []map[string]any `yaml:"secrets,omitempty"`

	// Extensions are additional free-form manifest extension fields.
	Extensions map[string]any `yaml:"extensions,omitempty"`

	Dependencies      []Dependency      `yaml:"dependencies,omitempty"`
	Incompatibilities []Incompatibility `yaml:"incompatibilities,omitempty"`
	Artifacts         []Artifact        `yaml:"artifacts,omitempty"`

	// Hooks maps hook paths like "startup.d/10-warm-cache.sh" to script
	// files.  Relative paths are resolved against the project file.
	Hooks map[string]string `yaml:"hooks,omitempty"`
}

// Asset declares a static file distribution (product-type asset.v1).
type Asset struct {
	Name string `yaml:"name,omitempty"`

	ProductGroup string `yaml:"product-group"`
	ProductName  string `yaml:"product-name"`
	Version      string `yaml:"version"`

	DisplayName string `yaml:"display-name,omitempty"`
	Description string `yaml:"description,omitempty"`

	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`

	// Assets maps source paths (relative to the project file) to
	// destination paths below asset/ in the distribution.
	Assets map[string]string `yaml:"assets"`

	Dependencies []Dependency `yaml:"dependencies,omitempty"`
}

// Project is the root of a parsed project file.
type Project struct {
	Services []Service `yaml:"services,omitempty"`
	Assets   []Asset   `yaml:"assets,omitempty"`

	// dir is the directory containing the project file.  Relative source
	// paths resolve against it.
	dir string
}

// Load reads and parses a project file.  Unknown keys are rejected so typos
// in target declarations fail loudly rather than silently dropping fields.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open project file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var prj Project
	if err := dec.Decode(&prj); err != nil {
		return nil, fmt.Errorf("could not parse project file %s: %w", path, err)
	}

	prj.dir = filepath.Dir(path)

	for i := range prj.Services {
		if prj.Services[i].Name == "" {
			prj.Services[i].Name = prj.Services[i].ProductName
		}
	}
	for i := range prj.Assets {
		if prj.Assets[i].Name == "" {
			prj.Assets[i].Name = prj.Assets[i].ProductName
		}
	}

	if err := prj.checkNames(); err != nil {
		return nil, err
	}

	return &prj, nil
}

// Dir returns the directory containing the project file.
func (prj *Project) Dir() string {
	return prj.dir
}

// Names returns the names of all declared targets in sorted order.
func (prj *Project) Names() []string {
	names := make([]string, 0, len(prj.Services)+len(prj.Assets))
	for _, svc := range prj.Services {
		names = append(names, svc.Name)
	}
	for _, asset := range prj.Assets {
		names = append(names, asset.Name)
	}

	sort.Strings(names)
	return names
}

// Service returns the service with the given name, if declared.
func (prj *Project) Service(name string) (*Service, bool) {
	for i := range prj.Services {
		if prj.Services[i].Name == name {
			return &prj.Services[i], true
		}
	}

	return nil, false
}

// Asset returns the asset with the given name, if declared.
func (prj *Project) Asset(name string) (*Asset, bool) {
	for i := range prj.Assets {
		if prj.Assets[i].Name == name {
			return &prj.Assets[i], true
		}
	}

	return nil, false
}

func (prj *Project) checkNames() error {
	seen := map[string]bool{}

	for _, name := range prj.Names() {
		if seen[name] {
			return fmt.Errorf("duplicate target name: %s", name)
		}
		seen[name] = true
	}

	return nil
}

// manifestDependencies converts declared dependencies into their manifest
// representation.
func manifestDependencies(deps []Dependency) []manifest.ProductDependency {
	if len(deps) == 0 {
		return nil
	}

	converted := make([]manifest.ProductDependency, 0, len(deps))
	for _, dep := range deps {
		converted = append(converted, manifest.ProductDependency{
			ProductGroup:       dep.ProductGroup,
			ProductName:        dep.ProductName,
			MinimumVersion:     dep.MinimumVersion,
			MaximumVersion:     dep.MaximumVersion,
			RecommendedVersion: dep.RecommendedVersion,
			Optional:           dep.Optional,
		})
	}

	return converted
}

// Manifest resolves the service declaration into a deployment manifest.
func (s *Service) Manifest(manifestVersion string) *manifest.Manifest {
	productType := sls.ProductTypeService
	if s.ProductType != "" {
		productType = sls.ProductType(s.ProductType)
	}

	m := &manifest.Manifest{
		ManifestVersion:  manifestVersion,
		ProductType:      productType,
		ProductGroup:     s.ProductGroup,
		ProductName:      s.ProductName,
		ProductVersion:   s.Version,
		DisplayName:      s.DisplayName,
		Description:      s.Description,
		Traits:           s.Traits,
		Labels:           s.Labels,
		Annotations:      s.Annotations,
		ResourceRequests: s.ResourceRequests,
		ResourceLimits:   s.ResourceLimits,
		Replication: manifest.Replication{
			Desired: s.Replication.Desired,
			Min:     s.Replication.Min,
			Max:     s.Replication.Max,
		},
		Endpoints:    s.Endpoints,
		Volumes:      s.Volumes,
		Secrets:      s.Secrets,
		Extensions:   s.Extensions,
		Dependencies: manifestDependencies(s.Dependencies),
	}

	for _, inc := range s.Incompatibilities {
		m.Incompatibilities = append(m.Incompatibilities, manifest.ProductIncompatibility{
			ProductGroup: inc.ProductGroup,
			ProductName:  inc.ProductName,
			VersionRange: inc.VersionRange,
			Reason:       inc.Reason,
		})
	}

	for _, art := range s.Artifacts {
		m.Artifacts = append(m.Artifacts, manifest.Artifact{
			Type:   art.Type,
			Name:   art.Name,
			URI:    art.URI,
			Digest: art.Digest,
		})
	}

	return m
}

// Manifest resolves the asset declaration into a deployment manifest.
func (a *Asset) Manifest(manifestVersion string) *manifest.Manifest {
	return &manifest.Manifest{
		ManifestVersion: manifestVersion,
		ProductType:     sls.ProductTypeAsset,
		ProductGroup:    a.ProductGroup,
		ProductName:     a.ProductName,
		ProductVersion:  a.Version,
		DisplayName:     a.DisplayName,
		Description:     a.Description,
		Labels:          a.Labels,
		Annotations:     a.Annotations,
		Dependencies:    manifestDependencies(a.Dependencies),
	}
}
