// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"slskit.sh/internal/cli/slskit/options"
	"slskit.sh/lockfile"
	"slskit.sh/log"
)

type LockOptions struct {
	Only  string
	Check bool

	global *options.Global
}

func NewCmd(global *options.Global) *cobra.Command {
	opts := &LockOptions{global: global}

	cmd := &cobra.Command{
		Use:   "lock [FLAGS] [TARGET [TARGET...]]",
		Short: "Generate product-dependencies.lock files",
		Long: heredoc.Doc(`
			Generate the product-dependencies.lock file of each target that
			declares product dependencies.  Lock files are written below the
			configured output directory, one subdirectory per target.

			With --check no files are written; instead existing lock files
			are compared against the declared dependencies and the command
			fails when they are out of date.
		`),
		Example: heredoc.Doc(`
			# Regenerate all lock files
			$ slskit lock

			# Verify lock files are up to date
			$ slskit lock --check
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&opts.Only, "only", "", "Only lock targets matching this glob pattern")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Verify lock files instead of writing them")

	return cmd
}

func (opts *LockOptions) Run(ctx context.Context, args []string) error {
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

	var stale []string

	for _, target := range targets {
		m := target.Manifest(cfg.ManifestVersion)
		if len(m.Dependencies) == 0 {
			log.G(ctx).
				WithField("target", target.Name).
				Debug("no dependencies, skipping lock file")
			continue
		}

		content := lockfile.Generate(m.Dependencies)
		dest := filepath.Join(cfg.OutputDir, target.Name, lockfile.FileName)

		if opts.Check {
			existing, err := os.ReadFile(dest)
			if err != nil || string(existing) != content {
				stale = append(stale, dest)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
			return err
		}

		log.G(ctx).
			WithField("target", target.Name).
			WithField("path", dest).
			WithField("dependencies", len(m.Dependencies)).
			Info("wrote lock file")
	}

	if len(stale) > 0 {
		for _, path := range stale {
			log.G(ctx).
				WithField("path", path).
				Error("lock file out of date")
		}
		return fmt.Errorf("%d lock file(s) out of date, run slskit lock to regenerate", len(stale))
	}

	return nil
}
