// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package manifest

import (
	"gopkg.in/yaml.v3"

	"slskit.sh/sls"
)

// DefaultManifestVersion is the manifest-version emitted unless overridden.
const DefaultManifestVersion = "1.0"

// FileName is the relative location of the manifest within a distribution.
const FileName = "deployment/manifest.yml"

// Manifest is the complete set of values serialized into
// deployment/manifest.yml.  It is constructed once per generation request
// and never mutated afterwards; generation re-serializes it as needed.
type Manifest struct {
	// ManifestVersion of the manifest document format, e.g. "1.0"
	ManifestVersion string

	// ProductType of the distribution (helm.v1, asset.v1, service.v1)
	ProductType sls.ProductType

	// ProductGroup is the Maven-style group identifier, e.g. "com.example"
	ProductGroup string

	// ProductName of this product within its group
	ProductName string

	// ProductVersion is the SLS orderable version of this release
	ProductVersion string

	// DisplayName is an optional human-readable product name
	DisplayName string

	// Description of what this product provides
	Description string

	// Traits are ordered capability tags, e.g. ["api", "web"]
	Traits []string

	// Labels applied to the product
	Labels map[string]string

	// Annotations applied to the product
	Annotations map[string]string

	// ResourceRequests are scheduler resource requests, e.g. {"cpu": "100m"}
	ResourceRequests map[string]string

	// ResourceLimits are scheduler resource limits
	ResourceLimits map[string]string

	// Replication bounds for the product
	Replication Replication

	// Endpoints exposed by the product (opaque mappings)
	Endpoints []map[string]any

	// Volumes required by the product (opaque mappings)
	Volumes []map[string]any

	// Secrets required by the product (opaque mappings)
	Secrets []map[string]any

	// Dependencies on other SLS products
	Dependencies []ProductDependency

	// Incompatibilities with other SLS products
	Incompatibilities []ProductIncompatibility

	// Artifacts referenced by the product (OCI images, etc.)
	Artifacts []Artifact

	// Extensions is a free-form mapping merged into the manifest's
	// extensions block
	Extensions map[string]any
}

// ProductID derives the "<group>:<name>" identifier.  It is a projection,
// never stored.
func (m *Manifest) ProductID() string {
	return sls.ProductID(m.ProductGroup, m.ProductName)
}

// ProductDependency is a declared version range on another SLS product.
type ProductDependency struct {
	ProductGroup string `yaml:"product-group"`
	ProductName  string `yaml:"product-name"`

	// MinimumVersion is required and must be an orderable version.
	MinimumVersion string `yaml:"minimum-version"`

	// MaximumVersion is optional; when empty the effective maximum is
	// derived as "<major-of-minimum>.x.x".
	MaximumVersion string `yaml:"maximum-version,omitempty"`

	// RecommendedVersion is optional and must be orderable when set.
	RecommendedVersion string `yaml:"recommended-version,omitempty"`

	Optional bool `yaml:"optional"`
}

// ProductID derives the "<group>:<name>" identifier of the dependency.
func (d ProductDependency) ProductID() string {
	return sls.ProductID(d.ProductGroup, d.ProductName)
}

// EffectiveMaximumVersion resolves the explicit maximum version or derives
// the "<major>.x.x" default from the minimum version.
func (d ProductDependency) EffectiveMaximumVersion() string {
	if d.MaximumVersion != "" {
		return d.MaximumVersion
	}

	return sls.ResolveDefaultMaxVersion(d.MinimumVersion)
}

// ProductIncompatibility declares a version range of another product that
// this product cannot run alongside.
type ProductIncompatibility struct {
	ProductGroup string `yaml:"product-group"`
	ProductName  string `yaml:"product-name"`
	VersionRange string `yaml:"version-range"`
	Reason       string `yaml:"reason"`
}

// ProductID derives the "<group>:<name>" identifier of the incompatibility.
func (i ProductIncompatibility) ProductID() string {
	return sls.ProductID(i.ProductGroup, i.ProductName)
}

// Artifact is a reference to an external artifact, such as an OCI image.
type Artifact struct {
	Type   string `yaml:"type"`
	URI    string `yaml:"uri"`
	Name   string `yaml:"name,omitempty"`
	Digest string `yaml:"digest,omitempty"`
}

// Replication holds the optional replica bounds of a product.  An unset
// bound skips the corresponding ordering check; it does not default to zero
// or infinity.
type Replication struct {
	Desired *int `yaml:"desired,omitempty"`
	Min     *int `yaml:"min,omitempty"`
	Max     *int `yaml:"max,omitempty"`
}

// Empty reports whether no bound is set.
func (r Replication) Empty() bool {
	return r.Desired == nil && r.Min == nil && r.Max == nil
}

// document mirrors the manifest wire format.  Top-level key order is fixed
// by field order; optional keys are dropped entirely when their source value
// is empty.
type document struct {
	ManifestVersion string             `yaml:"manifest-version"`
	ProductType     sls.ProductType    `yaml:"product-type"`
	ProductGroup    string             `yaml:"product-group"`
	ProductName     string             `yaml:"product-name"`
	ProductVersion  string             `yaml:"product-version"`
	DisplayName     string             `yaml:"display-name,omitempty"`
	Description     string             `yaml:"description,omitempty"`
	Traits          []string           `yaml:"traits,omitempty"`
	Labels          map[string]string  `yaml:"labels,omitempty"`
	Annotations     map[string]string  `yaml:"annotations,omitempty"`
	Resources       *resourcesDocument `yaml:"resources,omitempty"`
	Replication     *Replication       `yaml:"replication,omitempty"`
	Endpoints       []map[string]any   `yaml:"endpoints,omitempty"`
	Volumes         []map[string]any   `yaml:"volumes,omitempty"`
	Secrets         []map[string]any   `yaml:"secrets,omitempty"`
	Extensions      map[string]any     `yaml:"extensions,omitempty"`
}

type resourcesDocument struct {
	Requests map[string]string `yaml:"requests,omitempty"`
	Limits   map[string]string `yaml:"limits,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (m *Manifest) MarshalYAML() (any, error) {
	doc := document{
		ManifestVersion: m.ManifestVersion,
		ProductType:     m.ProductType,
		ProductGroup:    m.ProductGroup,
		ProductName:     m.ProductName,
		ProductVersion:  m.ProductVersion,
		DisplayName:     m.DisplayName,
		Description:     m.Description,
		Traits:          m.Traits,
		Labels:          m.Labels,
		Annotations:     m.Annotations,
		Endpoints:       m.Endpoints,
		Volumes:         m.Volumes,
		Secrets:         m.Secrets,
	}

	if len(m.ResourceRequests) > 0 || len(m.ResourceLimits) > 0 {
		doc.Resources = &resourcesDocument{
			Requests: m.ResourceRequests,
			Limits:   m.ResourceLimits,
		}
	}

	if !m.Replication.Empty() {
		replication := m.Replication
		doc.Replication = &replication
	}

	extensions := make(map[string]any, len(m.Extensions)+3)
	for key, value := range m.Extensions {
		extensions[key] = value
	}

	if len(m.Dependencies) > 0 {
		extensions["product-dependencies"] = m.Dependencies
	}
	if len(m.Incompatibilities) > 0 {
		extensions["product-incompatibilities"] = m.Incompatibilities
	}
	if len(m.Artifacts) > 0 {
		extensions["artifacts"] = m.Artifacts
	}

	if len(extensions) > 0 {
		doc.Extensions = extensions
	}

	return doc, nil
}

// Document serializes the manifest to its YAML wire format.
func (m *Manifest) Document() (string, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
