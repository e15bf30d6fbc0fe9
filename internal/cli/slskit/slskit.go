// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package slskit

import (
	"context"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"slskit.sh/internal/cli/slskit/lock"
	"slskit.sh/internal/cli/slskit/manifest"
	"slskit.sh/internal/cli/slskit/options"
	"slskit.sh/internal/cli/slskit/pkg"
	"slskit.sh/internal/cli/slskit/validate"
	"slskit.sh/internal/cli/slskit/version"
	kitversion "slskit.sh/internal/version"
	"slskit.sh/log"
)

func NewCmd() *cobra.Command {
	global := &options.Global{}

	cmd := &cobra.Command{
		Use:   "slskit [FLAGS] SUBCOMMAND",
		Short: "SLS distribution packaging CLI",
		Long: heredoc.Docf(`
			Package services and assets into SLS distributions.

			slskit reads a project file (sls.yaml), validates the declared
			products and assembles distribution trees with deployment
			manifests, dependency lock files, init scripts, health checks
			and lifecycle hooks.

			Version: %s
		`, kitversion.Version()),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, global)
		},
	}

	global.Register(cmd.PersistentFlags())

	cmd.AddCommand(manifest.NewCmd(global))
	cmd.AddCommand(lock.NewCmd(global))
	cmd.AddCommand(validate.NewCmd(global))
	cmd.AddCommand(pkg.NewCmd(global))
	cmd.AddCommand(version.NewCmd())

	return cmd
}

func setupLogging(cmd *cobra.Command, global *options.Global) error {
	cfg, err := global.Config()
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if global.LogLevel != "" {
		level = global.LogLevel
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetLevel(parsed)
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !(cfg.Log.Timestamps || global.LogTimestamps),
		FullTimestamp:    cfg.Log.Timestamps || global.LogTimestamps,
	})

	ctx := log.WithLogger(cmd.Context(), logrus.NewEntry(logger))
	cmd.SetContext(ctx)

	return nil
}

// Main runs the slskit root command and returns the process exit code.
func Main(ctx context.Context, args []string) int {
	cmd := NewCmd()
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.L.Error(err)
		return 1
	}

	return 0
}
