// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vibe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/molgenis/biobesu/internal/tsv"
)

// MergedHeader is the header of a merged result file.
var MergedHeader = []string{"id", "suggested_genes"}

// MergeSimpleOutput collects the single-line, comma-separated gene lists
// VIBE writes with -l. Every visible file in dir becomes one row of
// outFile; its id is the file name up to the first ".". outFile must not
// exist yet. It returns the number of rows written.
func MergeSimpleOutput(dir, outFile string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	w, err := tsv.Create(outFile, MergedHeader...)
	if err != nil {
		return 0, err
	}
	defer w.Close()

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		genes, err := firstLine(filepath.Join(dir, name))
		if err != nil {
			return w.Rows(), err
		}
		id, _, _ := strings.Cut(name, ".")
		if err := w.WriteRow(id, genes); err != nil {
			return w.Rows(), err
		}
	}
	return w.Rows(), w.Close()
}

func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(line), nil
}
