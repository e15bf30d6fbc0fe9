// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package layout assembles the deterministic file and directory tree of an
// SLS distribution.  The assembled Layout is a pure description: all I/O is
// performed by whoever materializes it.
package layout

import (
	"fmt"
)

// File is a single file to place in the distribution.  Exactly one of
// Content and SourcePath is set: inline text content, or a reference to an
// external file copied verbatim at materialization time.
type File struct {
	RelativePath string
	Content      string
	SourcePath   string
	Executable   bool
}

// Directory is a single directory to create in the distribution.
type Directory struct {
	RelativePath string
}

// Layout is the complete distribution specification.  It is built once and
// handed off to the caller; relative paths within one layout are unique.
type Layout struct {
	// DistName is "<product-name>-<product-version>".
	DistName string

	Files       []File
	Directories []Directory

	paths map[string]bool
}

func newLayout(productName, productVersion string) *Layout {
	return &Layout{
		DistName: fmt.Sprintf("%s-%s", productName, productVersion),
		paths:    map[string]bool{},
	}
}

func (l *Layout) addFile(file File) error {
	if file.Content != "" && file.SourcePath != "" {
		return fmt.Errorf("layout file %q has both inline content and a source reference", file.RelativePath)
	}
	if l.paths[file.RelativePath] {
		return fmt.Errorf("duplicate layout path: %s", file.RelativePath)
	}

	l.paths[file.RelativePath] = true
	l.Files = append(l.Files, file)

	return nil
}

func (l *Layout) addDirectory(relativePath string) error {
	if l.paths[relativePath] {
		return fmt.Errorf("duplicate layout path: %s", relativePath)
	}

	l.paths[relativePath] = true
	l.Directories = append(l.Directories, Directory{RelativePath: relativePath})

	return nil
}

// FileMap flattens the layout to a path→content mapping holding only the
// entries with inline content.  Source-referenced entries, which require
// file I/O, are excluded.  Used for inspection and testing without
// performing any I/O.
func (l *Layout) FileMap() map[string]string {
	result := make(map[string]string, len(l.Files))
	for _, file := range l.Files {
		if file.SourcePath == "" {
			result[file.RelativePath] = file.Content
		}
	}

	return result
}

// IsInline reports whether the file carries inline content rather than a
// source reference.
func (f File) IsInline() bool {
	return f.SourcePath == ""
}
