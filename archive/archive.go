// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2026, The SLSKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package archive materializes assembled layouts on disk and packs them
// into gzip-compressed distribution tarballs.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"slskit.sh/layout"
	"slskit.sh/log"
)

// TarballName returns the file name of the distribution tarball for the
// given dist name, e.g. "my-service-1.0.0.sls.tgz".
func TarballName(distName string) string {
	return distName + ".sls.tgz"
}

// Materialize writes the layout's directories and files below destDir.
// Inline content is written as-is; source-referenced files are copied.
// Executable entries are written with the executable bits set.
func Materialize(ctx context.Context, l *layout.Layout, destDir string) error {
	for _, dir := range l.Directories {
		if err := os.MkdirAll(filepath.Join(destDir, dir.RelativePath), 0o755); err != nil {
			return fmt.Errorf("could not create directory: %w", err)
		}
	}

	for _, file := range l.Files {
		dest := filepath.Join(destDir, file.RelativePath)

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("could not create parent directory: %w", err)
		}

		mode := os.FileMode(0o644)
		if file.Executable {
			mode = 0o755
		}

		if file.IsInline() {
			if err := os.WriteFile(dest, []byte(file.Content), mode); err != nil {
				return fmt.Errorf("could not write %s: %w", file.RelativePath, err)
			}
		} else {
			if err := copyFile(file.SourcePath, dest, mode); err != nil {
				return fmt.Errorf("could not copy %s: %w", file.RelativePath, err)
			}
		}

		log.G(ctx).
			WithField("path", file.RelativePath).
			Tracef("materialized")
	}

	return nil
}

// CreateTarGz packs srcDir into a gzip-compressed tarball at dst, rooting
// every entry under prefix (the dist name).
func CreateTarGz(ctx context.Context, srcDir, dst, prefix string) error {
	log.G(ctx).
		WithField("output", dst).
		Debugf("creating tarball")

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not create tarball: %w", err)
	}
	defer out.Close()

	gzw := gzip.NewWriter(out)
	defer gzw.Close()

	tw := tar.NewWriter(gzw)
	defer tw.Close()

	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}

		name := filepath.ToSlash(filepath.Join(prefix, rel))

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = name
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
}

// Unarchive takes an input src file and determines (based on its extension)
// how to unpack it below dst.
func Unarchive(src, dst string) error {
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		return UntarGz(src, dst)
	}

	return fmt.Errorf("unrecognized extension: %s", filepath.Base(src))
}

// UntarGz unarchives a tarball which has been gzip compressed.
func UntarGz(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("could not open gzip reader: %w", err)
	}
	defer gzr.Close()

	return Untar(gzr, dst)
}

// Untar unpacks a tar stream below dst.
func Untar(src io.Reader, dst string) error {
	tr := tar.NewReader(src)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		path := filepath.Join(dst, filepath.FromSlash(header.Name))
		if !strings.HasPrefix(path, filepath.Clean(dst)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal path in tarball: %s", header.Name)
		}

		info := header.FileInfo()

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, info.Mode()); err != nil {
				return fmt.Errorf("could not create directory: %w", err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("could not create parent directory: %w", err)
			}

			out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode())
			if err != nil {
				return fmt.Errorf("could not create file: %w", err)
			}

			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("could not write file: %w", err)
			}

			out.Close()
		}
	}

	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
