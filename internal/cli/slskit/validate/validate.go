// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package validate

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"slskit.sh/internal/cli/slskit/options"
	"slskit.sh/log"
)

type ValidateOptions struct {
	Only string

	global *options.Global
}

func NewCmd(global *options.Global) *cobra.Command {
	opts := &ValidateOptions{global: global}

	cmd := &cobra.Command{
		Use:   "validate [FLAGS] [TARGET [TARGET...]]",
		Short: "Validate manifests against schema and semantic rules",
		Long: heredoc.Doc(`
			Validate the deployment manifest of each target.  Semantic rules
			cover product identity grammar, version ordering, dependency
			ranges and replication bounds; strict validation additionally
			checks the manifest against the JSON schema.

			The command fails when any target has validation errors.
			Warnings are reported but do not fail the command.
		`),
		Example: heredoc.Doc(`
			# Validate every target in the project
			$ slskit validate

			# Validate a single service
			$ slskit validate my-service
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&opts.Only, "only", "", "Only validate targets matching this glob pattern")

	return cmd
}

func (opts *ValidateOptions) Run(ctx context.Context, args []string) error {
	cfg, err := opts.global.Config()
	if err != nil {
		return err
	}

	prj, err := opts.global.Project()
	if err != nil {
		return err
	}

	targets, err := options.SelectTargets(prj, args, opts.Only)
	if err != nil {
		return err
	}

	failed := 0

	for _, target := range targets {
		m := target.Manifest(cfg.ManifestVersion)

		report, err := m.Lint(cfg.StrictValidation)
		if err != nil {
			return err
		}

		entry := log.G(ctx).
			WithField("product", m.ProductID()).
			WithField("version", m.ProductVersion)

		for _, warning := range report.Warnings {
			entry.Warn(warning)
		}

		if report.Valid() {
			entry.Info("manifest valid")
			continue
		}

		failed++
		for _, message := range report.Errors {
			entry.Error(message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d target(s)", failed, len(targets))
	}

	log.G(ctx).Infof("all %d manifest(s) valid", len(targets))
	return nil
}
