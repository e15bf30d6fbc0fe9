// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

var (
	// G is an alias for FromContext.
	G = FromContext

	// L is the fallback logger used when no logger has been attached to the
	// context.
	L = logrus.NewEntry(logrus.StandardLogger())
)

// WithLogger returns a new context derived from ctx which carries the
// provided logger.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or the fallback logger if
// none has been set.
func FromContext(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(loggerKey{})
	if logger == nil {
		return L
	}

	return logger.(*logrus.Entry)
}
