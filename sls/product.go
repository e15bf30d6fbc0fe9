// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package sls

// ProductType is the SLS product type of a distribution.
type ProductType string

const (
	ProductTypeHelm    ProductType = "helm.v1"
	ProductTypeAsset   ProductType = "asset.v1"
	ProductTypeService ProductType = "service.v1"
)

// ProductTypes returns all known SLS product types.
func ProductTypes() []ProductType {
	return []ProductType{
		ProductTypeHelm,
		ProductTypeAsset,
		ProductTypeService,
	}
}

// Valid reports whether the product type is one of the known SLS product
// types.
func (t ProductType) Valid() bool {
	for _, known := range ProductTypes() {
		if t == known {
			return true
		}
	}

	return false
}

// String implements fmt.Stringer.
func (t ProductType) String() string {
	return string(t)
}

// ProductID derives the "<group>:<name>" product identifier.
func ProductID(group, name string) string {
	return group + ":" + name
}
