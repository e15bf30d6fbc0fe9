// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"slskit.sh/internal/cli/slskit"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := slskit.Main(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
