// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package layout

import (
	"path"

	"slskit.sh/lockfile"
	"slskit.sh/manifest"
)

// AssetMapping places one source file at a destination path under the
// distribution's asset/ directory.
type AssetMapping struct {
	SourcePath string
	DestPath   string
}

// AssetParams are the artifacts assembled into an asset distribution.  An
// asset distribution has no runtime: no service tree, no init or check
// scripts and no hook system.
type AssetParams struct {
	ProductName    string
	ProductVersion string

	// ManifestYAML is the content of deployment/manifest.yml.
	ManifestYAML string

	// LockFile is the content of deployment/product-dependencies.lock;
	// empty means no lock file is emitted.
	LockFile string

	// Mappings places files under asset/.
	Mappings []AssetMapping
}

// BuildAsset assembles the asset distribution layout.
func BuildAsset(params AssetParams) (*Layout, error) {
	l := newLayout(params.ProductName, params.ProductVersion)

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

	if err := l.addDirectory("asset"); err != nil {
		return nil, err
	}

	for _, mapping := range params.Mappings {
		if err := l.addFile(File{
			RelativePath: path.Join("asset", mapping.DestPath),
			SourcePath:   mapping.SourcePath,
		}); err != nil {
			return nil, err
		}
	}

	return l, nil
}
