// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package pkg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/MakeNowJust/heredoc"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"slskit.sh/archive"
	"slskit.sh/internal/cli/slskit/options"
	"slskit.sh/log"
	"slskit.sh/project"
)

type PkgOptions struct {
	Only      string
	OutputDir string
	NoTarball bool

	global *options.Global
}

func NewCmd(global *options.Global) *cobra.Command {
	opts := &PkgOptions{global: global}

	cmd := &cobra.Command{
		Use:     "package [FLAGS] [TARGET [TARGET...]]",
		Aliases: []string{"pkg"},
		Short:   "Package targets into distribution tarballs",
		Long: heredoc.Doc(`
			Assemble the distribution layout of each target, materialize it
			below the output directory and pack it into a gzip-compressed
			tarball named <name>-<version>.sls.tgz.

			Targets are packaged in parallel.  Any previously materialized
			layout of the same distribution is replaced.
		`),
		Example: heredoc.Doc(`
			# Package every target in the project
			$ slskit package

			# Package services matching a pattern into a custom directory
			$ slskit package --only 'my-*' --output-dir out
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&opts.Only, "only", "", "Only package targets matching this glob pattern")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "Directory distributions are written to")
	cmd.Flags().BoolVar(&opts.NoTarball, "no-tarball", false, "Materialize the layout but skip the tarball")

	return cmd
}

func (opts *PkgOptions) Run(ctx context.Context, args []string) error {
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
	if len(targets) == 0 {
		return fmt.Errorf("no targets to package")
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	buildOpts := options.BuildOptions(cfg)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for _, target := range targets {
		target := target
		eg.Go(func() error {
			return opts.packageTarget(ctx, target, prj.Dir(), outputDir, buildOpts)
		})
	}

	return eg.Wait()
}

func (opts *PkgOptions) packageTarget(ctx context.Context, target options.Target, projectDir, outputDir string, buildOpts project.BuildOptions) error {
	l, err := target.Build(ctx, projectDir, buildOpts)
	if err != nil {
		return fmt.Errorf("%s: %w", target.Name, err)
	}

	distDir := filepath.Join(outputDir, l.DistName)
	if err := os.RemoveAll(distDir); err != nil {
		return fmt.Errorf("%s: could not clean output directory: %w", target.Name, err)
	}

	if err := archive.Materialize(ctx, l, distDir); err != nil {
		return fmt.Errorf("%s: %w", target.Name, err)
	}

	if opts.NoTarball {
		log.G(ctx).
			WithField("path", distDir).
			Info("materialized layout")
		return nil
	}

	tarball := filepath.Join(outputDir, archive.TarballName(l.DistName))
	if err := archive.CreateTarGz(ctx, distDir, tarball, l.DistName); err != nil {
		return fmt.Errorf("%s: %w", target.Name, err)
	}

	info, err := os.Stat(tarball)
	if err != nil {
		return err
	}

	log.G(ctx).
		WithField("path", tarball).
		WithField("size", humanize.Bytes(uint64(info.Size()))).
		Info("packaged distribution")

	return nil
}
