// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package manifest

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/manifest.v1.json
var manifestSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// loadSchema compiles the bundled manifest schema exactly once.  The schema
// never changes after load, so the compiled form is shared read-only.
func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(
			gojsonschema.NewBytesLoader(manifestSchemaJSON),
		)
	})

	return schema, schemaErr
}

// ValidateSchema checks the manifest's serialized document against the
// bundled manifest.v1.json schema and returns one message per violation.
func (m *Manifest) ValidateSchema() ([]string, error) {
	compiled, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("could not load manifest schema: %w", err)
	}

	doc, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("could not serialize manifest: %w", err)
	}

	// Round-trip through generic YAML so the schema validator sees the wire
	// shape rather than the Go structs.
	var generic map[string]any
	if err := yaml.Unmarshal(doc, &generic); err != nil {
		return nil, fmt.Errorf("could not reload manifest document: %w", err)
	}

	result, err := compiled.Validate(gojsonschema.NewGoLoader(generic))
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var errors []string
	for _, violation := range result.Errors() {
		field := violation.Field()
		if field == "(root)" {
			field = ""
		}

		prefix := ""
		if field != "" {
			prefix = fmt.Sprintf("[%s] ", field)
		}

		errors = append(errors, fmt.Sprintf("schema: %s%s", prefix, violation.Description()))
	}

	return errors, nil
}

// Report combines the findings of the semantic linter and, when strict is
// set, the schema validator.
type Report struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the manifest produced no errors.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Lint produces a full validation report for the manifest.
func (m *Manifest) Lint(strict bool) (Report, error) {
	errors, warnings := m.Validate()

	report := Report{
		Errors:   errors,
		Warnings: warnings,
	}

	if strict {
		schemaErrors, err := m.ValidateSchema()
		if err != nil {
			return Report{}, err
		}

		report.Errors = append(report.Errors, schemaErrors...)
	}

	return report, nil
}
