// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsv

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Writer writes "id<TAB>v1,v2,..." rows under a fixed header. The target
// file must not exist yet.
type Writer struct {
	path string
	f    *os.File
	w    *bufio.Writer
	rows int

	closed bool
}

// Create creates path exclusively and writes header as its first line.
// If path already exists the returned error wraps fs.ErrExist.
func Create(path string, header ...string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	w := &Writer{path: path, f: f, w: bufio.NewWriter(f)}
	if _, err := w.w.WriteString(strings.Join(header, DefaultSeparator) + "\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	return w, nil
}

// Path returns the file being written.
func (w *Writer) Path() string {
	return w.path
}

// Rows returns the number of rows written after the header.
func (w *Writer) Rows() int {
	return w.rows
}

// WriteList writes id and the comma-joined values as one row.
func (w *Writer) WriteList(id string, values []string) error {
	return w.WriteRow(id, strings.Join(values, listSeparator))
}

// WriteRow writes cells joined by tabs as one row.
func (w *Writer) WriteRow(cells ...string) error {
	if _, err := w.w.WriteString(strings.Join(cells, DefaultSeparator) + "\n"); err != nil {
		return fmt.Errorf("writing %s: %w", w.path, err)
	}
	w.rows++
	return nil
}

// Close flushes buffered rows and closes the file. Calls after the
// first return nil.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	flushErr := w.w.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flushing %s: %w", w.path, flushErr)
	}
	return closeErr
}
