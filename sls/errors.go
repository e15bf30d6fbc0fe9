// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package sls

import "fmt"

// ValidationError indicates that a manifest, dependency or layout input
// violated the SLS grammar or a semantic policy.  Field names the offending
// manifest field when one can be attributed.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError with an optional field tag.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s", e.Field, e.Message)
	}

	return e.Message
}

// VersionFormatError indicates that a version string does not match any SLS
// orderable version grammar.
type VersionFormatError struct {
	Version string
}

// Error implements error.
func (e *VersionFormatError) Error() string {
	return fmt.Sprintf(
		"invalid SLS version %q: must match X.Y.Z, X.Y.Z-rcN, X.Y.Z-N-gHASH or X.Y.Z-rcN-N-gHASH",
		e.Version,
	)
}
