// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"slskit.sh/internal/cli/slskit/options"
	"slskit.sh/log"
	"slskit.sh/manifest"
)

type ManifestOptions struct {
	Only   string
	Output string

	global *options.Global
}

func NewCmd(global *options.Global) *cobra.Command {
	opts := &ManifestOptions{global: global}

	cmd := &cobra.Command{
		Use:   "manifest [FLAGS] [TARGET [TARGET...]]",
		Short: "Render deployment manifests",
		Long: heredoc.Doc(`
			Render the deployment/manifest.yml of one or more targets.

			Without arguments all targets of the project are rendered to
			standard output.  With --output the manifests are written below
			the given directory instead, one subdirectory per target.
		`),
		Example: heredoc.Doc(`
			# Render the manifest of a single service
			$ slskit manifest my-service

			# Write all manifests below dist/
			$ slskit manifest --output dist
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&opts.Only, "only", "", "Only render targets matching this glob pattern")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write manifests below this directory")

	return cmd
}

func (opts *ManifestOptions) Run(ctx context.Context, args []string) error {
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

	for _, target := range targets {
		document, err := target.Manifest(cfg.ManifestVersion).Document()
		if err != nil {
			return fmt.Errorf("could not render manifest for %s: %w", target.Name, err)
		}

		if opts.Output == "" {
			fmt.Printf("# %s\n%s", target.Name, document)
			continue
		}

		dest := filepath.Join(opts.Output, target.Name, manifest.FileName)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(document), 0o644); err != nil {
			return err
		}

		log.G(ctx).
			WithField("target", target.Name).
			WithField("path", dest).
			Info("wrote manifest")
	}

	return nil
}
