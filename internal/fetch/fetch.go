// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads reference files and unpacks release archives
// into a data directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/molgenis/biobesu/internal/httputil"
)

// ErrUnsupportedArchive reports an archive whose extension Archive cannot
// unpack.
var ErrUnsupportedArchive = errors.New("unsupported archive format")

// Getter issues GET requests. *httputil.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

var _ Getter = (*httputil.Client)(nil)

// FileName returns the last path segment of url, ignoring any query.
func FileName(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return path.Base(url)
}

// File downloads url to destPath. The body is written to a temporary file
// in the same directory and renamed into place once complete. An existing
// destPath is not overwritten; the returned error wraps fs.ErrExist.
func File(ctx context.Context, client Getter, url, destPath string) error {
	if _, err := os.Lstat(destPath); err == nil {
		return &fs.PathError{Op: "download", Path: destPath, Err: fs.ErrExist}
	}

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	// Link fails if destPath appeared meanwhile, unlike Rename.
	if err := os.Link(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	os.Remove(tmpPath)
	return nil
}

// Into downloads url into dir under its own file name and returns the
// resulting path.
func Into(ctx context.Context, client Getter, url, dir string) (string, error) {
	dest := filepath.Join(dir, FileName(url))
	if err := File(ctx, client, url, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Archive downloads url into dir, extracts it there and removes the
// archive. Only .tar.gz and .tgz are supported.
func Archive(ctx context.Context, client Getter, url, dir string) error {
	name := FileName(url)
	if !isTarGz(name) {
		return fmt.Errorf("%s: %w", name, ErrUnsupportedArchive)
	}

	archivePath, err := Into(ctx, client, url, dir)
	if err != nil {
		return err
	}
	if err := ExtractTarGz(archivePath, dir); err != nil {
		return err
	}
	return os.Remove(archivePath)
}

func isTarGz(name string) bool {
	return strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".tgz")
}
