// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/molgenis/biobesu/internal/httputil"
	"github.com/molgenis/biobesu/internal/java"
	"github.com/molgenis/biobesu/internal/lirical"
	"github.com/molgenis/biobesu/internal/manifest"
)

var warn = color.New(color.FgYellow)

// printMissing lists, per conversion, the keys that had no value.
func printMissing(w io.Writer, missing []lirical.Missing) {
	for _, m := range missing {
		if len(m.Keys) == 0 {
			continue
		}
		warn.Fprintf(w, "Failed to convert these keys (%s): %s\n", m.Conversion, m.Keys)
	}
}

// printFailures warns when some tool invocations exited with an error.
func printFailures(w io.Writer, tool string, failed int) {
	if failed > 0 {
		warn.Fprintf(w, "%s failed for %d case(s); see the output above\n", tool, failed)
	}
}

// detectJava finds the configured java binary.
func detectJava() (java.Runtime, error) {
	rt, err := java.Detect(appConfig.Java.Bin)
	if err != nil {
		return nil, err
	}
	logger.Debug("java runtime", zap.String("bin", rt.Name()))
	return rt, nil
}

func httpClient() *httputil.Client {
	return httputil.New(appConfig.HTTP, logger)
}

// writeManifest writes the run record into dir and reports where.
func writeManifest(rec *manifest.Recorder, dir string) error {
	path, err := rec.Write(dir)
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	logger.Info("manifest written", zap.String("path", path))
	return nil
}

// stdout is where runners print per-case progress.
var stdout io.Writer = os.Stdout
