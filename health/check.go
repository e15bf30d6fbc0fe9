// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package health generates the service/monitoring/bin/check.sh health check
// configuration for an SLS service distribution.
//
// Three mutually exclusive modes exist:
//
//  1. check_args: delegate to the service launcher in --check mode; the
//     companion launcher-check.yml is produced by the launcher package.
//  2. check_command: run an arbitrary command.
//  3. check_script: a user-provided script is copied verbatim.
package health

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"slskit.sh/launcher"
)

// FileName is the relative location of the check script within a service
// distribution.
const FileName = "service/monitoring/bin/check.sh"

//go:embed templates/*.sh.tmpl
var templates embed.FS

var checkTemplates = template.Must(template.ParseFS(templates, "templates/*.sh.tmpl"))

// Mode identifies the active health check variant.
type Mode string

const (
	ModeArgs    Mode = "check_args"
	ModeCommand Mode = "check_command"
	ModeScript  Mode = "check_script"
	ModeNone    Mode = "none"
)

// Check is the result of health check generation.  It is a closed sum: each
// mode has its own variant carrying only the fields relevant to that mode,
// so invalid combinations cannot be represented.
type Check interface {
	Mode() Mode

	isCheck()
}

// ArgsCheck delegates health checking to the service launcher; Script
// invokes the launcher in --check mode.
type ArgsCheck struct {
	Script string
}

// CommandCheck runs a caller-supplied command verbatim.
type CommandCheck struct {
	Script string
}

// ScriptCheck references a user-provided check script to be copied into the
// layout verbatim; no content is generated.
type ScriptCheck struct {
	SourcePath string
}

// NoCheck indicates that no health check is configured.
type NoCheck struct{}

func (ArgsCheck) Mode() Mode    { return ModeArgs }
func (CommandCheck) Mode() Mode { return ModeCommand }
func (ScriptCheck) Mode() Mode  { return ModeScript }
func (NoCheck) Mode() Mode      { return ModeNone }

func (ArgsCheck) isCheck()    {}
func (CommandCheck) isCheck() {}
func (ScriptCheck) isCheck()  {}
func (NoCheck) isCheck()      {}

// Spec declares the requested health check.  At most one field may be set;
// a nil Args slice counts as unset.
type Spec struct {
	// Args passed to the launcher's --check mode (check_args pattern).
	Args []string

	// Command is an arbitrary health check command line.
	Command string

	// ScriptPath points at a user-provided check script.
	ScriptPath string
}

// Generate produces the health check configuration for a service.  Setting
// more than one mode in the spec is a hard error.
func Generate(serviceName string, spec Spec) (Check, error) {
	set := 0
	if spec.Args != nil {
		set++
	}
	if spec.Command != "" {
		set++
	}
	if spec.ScriptPath != "" {
		set++
	}
	if set > 1 {
		return nil, fmt.Errorf("only one of check_args, check_command or check_script may be set")
	}

	switch {
	case spec.Args != nil:
		script, err := render("check_args.sh.tmpl", map[string]string{
			"ServiceName": serviceName,
			"BinaryName":  launcher.BinaryName,
		})
		if err != nil {
			return nil, err
		}

		return ArgsCheck{Script: script}, nil

	case spec.Command != "":
		script, err := render("check_command.sh.tmpl", map[string]string{
			"ServiceName": serviceName,
			"Command":     spec.Command,
		})
		if err != nil {
			return nil, err
		}

		return CommandCheck{Script: script}, nil

	case spec.ScriptPath != "":
		return ScriptCheck{SourcePath: spec.ScriptPath}, nil
	}

	return NoCheck{}, nil
}

func render(name string, data map[string]string) (string, error) {
	var builder strings.Builder
	if err := checkTemplates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", fmt.Errorf("could not render %s: %w", name, err)
	}

	return builder.String(), nil
}
