// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package launcher

import "fmt"

// BinaryName is the service launcher binary bundled into distributions for
// every supported platform.
const BinaryName = "python-service-launcher"

// Platform is an operating system and CPU architecture pair the launcher is
// published for.
type Platform struct {
	OS   string
	Arch string
}

// Platforms returns the platforms whose launcher binaries are bundled into a
// service distribution.
func Platforms() []Platform {
	return []Platform{
		{OS: "darwin", Arch: "amd64"},
		{OS: "darwin", Arch: "arm64"},
		{OS: "linux", Arch: "amd64"},
		{OS: "linux", Arch: "arm64"},
	}
}

// LayoutPath returns the relative path of a platform launcher binary within
// the distribution layout, e.g. "service/bin/linux-amd64/python-service-launcher".
func LayoutPath(os, arch string) string {
	return fmt.Sprintf("service/bin/%s-%s/%s", os, arch, BinaryName)
}

// AssetName returns the release asset name of a platform launcher binary,
// e.g. "python-service-launcher-linux-amd64".
func AssetName(os, arch string) string {
	return fmt.Sprintf("%s-%s-%s", BinaryName, os, arch)
}
