// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks command-line paths before a runner starts any
// work, and creates output directories that must not exist yet.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrExtension reports a file whose name does not end in the expected
// extension.
var ErrExtension = errors.New("unexpected file extension")

// ErrNotDirectory reports a path that exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// File checks that path is an existing regular file. When extension is
// not empty the file name must end with it (e.g. ".tsv", ".hdt.index.v1-1").
func File(path, extension string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("file %s: is a directory: %w", path, fs.ErrInvalid)
	}
	if extension != "" && !strings.HasSuffix(path, extension) {
		return fmt.Errorf("file %s: expected %s: %w", path, extension, ErrExtension)
	}
	return nil
}

// Files checks every name inside dir with File and no extension.
func Files(dir string, names ...string) error {
	for _, name := range names {
		if err := File(filepath.Join(dir, name), ""); err != nil {
			return err
		}
	}
	return nil
}

// DirectoryOptions tunes Directory.
type DirectoryOptions struct {
	// Create makes the directory (and parents) when it is missing.
	Create bool
	// Writable requires the directory to accept new files.
	Writable bool
}

// Directory checks that path is a directory and returns it cleaned.
func Directory(path string, opts DirectoryOptions) (string, error) {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && opts.Create:
		if err := os.MkdirAll(path, 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", path, err)
		}
	case err != nil:
		return "", fmt.Errorf("directory %s: %w", path, err)
	case !info.IsDir():
		return "", fmt.Errorf("directory %s: %w", path, ErrNotDirectory)
	}

	if opts.Writable {
		probe, err := os.CreateTemp(path, ".biobesu-write-*")
		if err != nil {
			return "", fmt.Errorf("directory %s is not writable: %w", path, err)
		}
		name := probe.Name()
		probe.Close()
		os.Remove(name)
	}
	return path, nil
}

// OutputFile checks that path names a file (not a directory) whose parent
// directory exists or can be created.
func OutputFile(path string) error {
	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
		return fmt.Errorf("output %q must name a file: %w", path, fs.ErrInvalid)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output %s is a directory: %w", path, fs.ErrInvalid)
	}
	_, err := Directory(filepath.Dir(path), DirectoryOptions{Create: true, Writable: true})
	return err
}

// CreateDir creates path, which must not exist yet. An existing path
// yields an error wrapping fs.ErrExist.
func CreateDir(path string) (string, error) {
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// ExistingPath returns the path of an "already exists" failure anywhere in
// err's chain, and whether there was one.
func ExistingPath(err error) (string, bool) {
	if !errors.Is(err, fs.ErrExist) {
		return "", false
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Path, true
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.New, true
	}
	return "", true
}
