// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lirical

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/molgenis/biobesu/internal/java"
)

// BatchResult holds the outcome of running LIRICAL over a set of cases.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// Total returns the number of cases LIRICAL was started for.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any invocation failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Args returns the LIRICAL command line for one phenopacket, without the
// leading "java -jar <jar>".
func Args(phenopacket, outDir, caseID, dataDir string) []string {
	return []string{
		"phenopacket",
		"-p", phenopacket,
		"-o", outDir,
		"-x", caseID,
		"-d", dataDir,
		"--tsv",
	}
}

// RunAll starts LIRICAL once per phenopacket in phenopacketsDir, in file
// name order, printing per-case status to w. A failed invocation is
// reported and counted and the next case still runs. The error is only
// set when phenopacketsDir cannot be listed.
func RunAll(rt java.Runtime, jar, dataDir, phenopacketsDir, outDir string, w io.Writer, log *zap.Logger) (BatchResult, error) {
	var result BatchResult
	if log == nil {
		log = zap.NewNop()
	}

	files, err := listFiles(phenopacketsDir, PhenopacketExt)
	if err != nil {
		return result, err
	}

	for _, name := range files {
		caseID := strings.TrimSuffix(name, PhenopacketExt)
		path := filepath.Join(phenopacketsDir, name)

		fmt.Fprintf(w, "running: LIRICAL %s\n", caseID)
		if err := rt.RunJar(jar, Args(path, outDir, caseID, dataDir), w, w); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", caseID, err)
			log.Warn("lirical failed", zap.String("case", caseID), zap.Error(err))
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	fmt.Fprintf(w, "\nLIRICAL summary: %d succeeded, %d failed (total: %d)\n",
		result.Succeeded, result.Failed, result.Total())
	return result, nil
}

// listFiles returns the sorted names of the visible regular files in dir
// that end in ext.
func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
