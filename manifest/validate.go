// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package manifest

import (
	"fmt"

	"slskit.sh/sls"
)

// ValidateIdentity checks the manifest identity fields against the SLS
// grammar, failing on the first violated rule.  It gates all generation.
func ValidateIdentity(productGroup, productName, productVersion string) error {
	if !sls.IsValidProductGroup(productGroup) {
		return sls.NewValidationError(
			"product-group",
			"invalid product group %q: must be lowercase letters, digits, dots and hyphens",
			productGroup,
		)
	}

	if !sls.IsValidProductName(productName) {
		return sls.NewValidationError(
			"product-name",
			"invalid product name %q: must start with a lowercase letter; allows lowercase letters, digits, dots, hyphens",
			productName,
		)
	}

	if !sls.IsOrderableVersion(productVersion) {
		return sls.NewValidationError(
			"product-version",
			"invalid SLS version %q: must match X.Y.Z, X.Y.Z-rcN, X.Y.Z-N-gHASH or X.Y.Z-rcN-N-gHASH",
			productVersion,
		)
	}

	return nil
}

// ValidateDependency checks a single product dependency, failing on the
// first violated rule.  Invoked fail-fast during resolution.
func ValidateDependency(dep ProductDependency) error {
	if !sls.IsValidProductGroup(dep.ProductGroup) {
		return sls.NewValidationError(
			"product-dependencies",
			"invalid product group in dependency: %q", dep.ProductGroup,
		)
	}

	if !sls.IsValidProductName(dep.ProductName) {
		return sls.NewValidationError(
			"product-dependencies",
			"invalid product name in dependency: %q", dep.ProductName,
		)
	}

	if !sls.IsOrderableVersion(dep.MinimumVersion) {
		return sls.NewValidationError(
			"product-dependencies",
			"invalid minimum version: %q", dep.MinimumVersion,
		)
	}

	if dep.MaximumVersion != "" && dep.MinimumVersion == dep.MaximumVersion {
		return sls.NewValidationError(
			"product-dependencies",
			"minimum version must not equal maximum version for %s: this creates a lockstep upgrade requirement",
			dep.ProductID(),
		)
	}

	if dep.RecommendedVersion != "" && !sls.IsOrderableVersion(dep.RecommendedVersion) {
		return sls.NewValidationError(
			"product-dependencies",
			"invalid recommended version: %q", dep.RecommendedVersion,
		)
	}

	return nil
}

// ValidateReplication checks the replica bound ordering.  Each inequality is
// verified only when both of its operands are present.
func ValidateReplication(replication Replication) error {
	desired := replication.Desired
	min := replication.Min
	max := replication.Max

	if min != nil && desired != nil && *min > *desired {
		return sls.NewValidationError(
			"replication",
			"replication.min (%d) must be <= replication.desired (%d)", *min, *desired,
		)
	}
	if desired != nil && max != nil && *desired > *max {
		return sls.NewValidationError(
			"replication",
			"replication.desired (%d) must be <= replication.max (%d)", *desired, *max,
		)
	}
	if min != nil && max != nil && *min > *max {
		return sls.NewValidationError(
			"replication",
			"replication.min (%d) must be <= replication.max (%d)", *min, *max,
		)
	}

	return nil
}

// Check runs the fail-fast entity validators over the manifest, stopping at
// the first violation.  It gates generation; Validate is the collect-all
// counterpart.
func (m *Manifest) Check() error {
	if err := ValidateIdentity(m.ProductGroup, m.ProductName, m.ProductVersion); err != nil {
		return err
	}

	if err := ValidateReplication(m.Replication); err != nil {
		return err
	}

	for _, dep := range m.Dependencies {
		if err := ValidateDependency(dep); err != nil {
			return err
		}
	}

	return nil
}

// Validate runs the whole-document linter over the manifest.  Unlike the
// fail-fast entity validators, it collects every finding and returns the
// errors and warnings as two ordered lists.  Warnings never block
// generation.
func (m *Manifest) Validate() (errors []string, warnings []string) {
	if m.ProductGroup == "" {
		errors = append(errors, "product-group is required")
	}
	if m.ProductName == "" {
		errors = append(errors, "product-name is required")
	}
	if m.ProductVersion == "" {
		errors = append(errors, "product-version is required")
	}
	if m.ProductType == "" {
		errors = append(errors, "product-type is required")
	}

	if m.ProductVersion != "" && !sls.IsOrderableVersion(m.ProductVersion) {
		errors = append(errors, fmt.Sprintf(
			"product-version %q is not a valid SLS orderable version", m.ProductVersion,
		))
	}

	if m.ProductType != "" && !m.ProductType.Valid() {
		errors = append(errors, fmt.Sprintf(
			"product-type %q not in %v", m.ProductType, sls.ProductTypes(),
		))
	}

	if desired, min := m.Replication.Desired, m.Replication.Min; min != nil && desired != nil && *min > *desired {
		errors = append(errors, fmt.Sprintf(
			"replication.min (%d) > replication.desired (%d)", *min, *desired,
		))
	}
	if desired, max := m.Replication.Desired, m.Replication.Max; desired != nil && max != nil && *desired > *max {
		errors = append(errors, fmt.Sprintf(
			"replication.desired (%d) > replication.max (%d)", *desired, *max,
		))
	}
	if min, max := m.Replication.Min, m.Replication.Max; min != nil && max != nil && *min > *max {
		errors = append(errors, fmt.Sprintf(
			"replication.min (%d) > replication.max (%d)", *min, *max,
		))
	}

	seen := make(map[string]bool, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		id := dep.ProductID()
		if seen[id] {
			errors = append(errors, fmt.Sprintf("duplicate product dependency: %s", id))
		}
		seen[id] = true

		if !sls.IsOrderableVersion(dep.MinimumVersion) {
			errors = append(errors, fmt.Sprintf(
				"dependency %s: invalid minimum version %q", id, dep.MinimumVersion,
			))
		}

		if dep.MaximumVersion != "" && dep.MinimumVersion == dep.MaximumVersion {
			errors = append(errors, fmt.Sprintf(
				"dependency %s: minimum version equals maximum version (%s), which creates lockstep upgrade coupling",
				id, dep.MinimumVersion,
			))
		}

		if dep.RecommendedVersion != "" && !sls.IsOrderableVersion(dep.RecommendedVersion) {
			errors = append(errors, fmt.Sprintf(
				"dependency %s: invalid recommended version %q", id, dep.RecommendedVersion,
			))
		}
	}

	for _, incompat := range m.Incompatibilities {
		if incompat.Reason == "" {
			warnings = append(warnings, fmt.Sprintf(
				"incompatibility with %s has no reason specified", incompat.ProductID(),
			))
		}
	}

	return errors, warnings
}
