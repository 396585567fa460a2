// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vibe ranks genes for benchmark cases with VIBE. Each case's
// phenotypes, optionally joined by OMIM diseases LIRICAL found, are passed
// to one VIBE invocation; the per-case gene lists are merged into a single
// id/suggested_genes file.
package vibe

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/molgenis/biobesu/internal/fetch"
	"github.com/molgenis/biobesu/internal/java"
	"github.com/molgenis/biobesu/internal/manifest"
	"github.com/molgenis/biobesu/internal/tsv"
	"github.com/molgenis/biobesu/internal/validate"
	"github.com/molgenis/biobesu/pkg/types"
)

// OutputDir holds the per-case VIBE results.
const OutputDir = "vibe_output"

// Validate checks the paths of a VIBE run and returns cfg with its
// directories cleaned. Release files are only checked when they will not
// be downloaded; ValidateResources checks them after a download.
func Validate(cfg types.VibeConfig, rel Release) (types.VibeConfig, error) {
	if err := validate.File(cfg.Input, ".tsv"); err != nil {
		return cfg, err
	}
	if cfg.HPO != "" {
		if err := validate.File(cfg.HPO, ".owl"); err != nil {
			return cfg, err
		}
	}

	var err error
	if cfg.Output, err = validate.Directory(cfg.Output, validate.DirectoryOptions{Create: true, Writable: true}); err != nil {
		return cfg, err
	}
	if cfg.Data, err = validate.Directory(cfg.Data, validate.DirectoryOptions{Create: cfg.Download, Writable: cfg.Download}); err != nil {
		return cfg, err
	}

	if !cfg.Download {
		if err := ValidateResources(rel.Paths(cfg.Data, cfg.HPO)); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// ValidateResources checks that the jar, database, database index and
// ontology exist with the expected extensions.
func ValidateResources(p Paths) error {
	checks := []struct{ path, ext string }{
		{p.Jar, ".jar"},
		{p.Database, ".hdt"},
		{p.Index(), ".hdt" + IndexExt},
		{p.HPO, ".owl"},
	}
	for _, c := range checks {
		if err := validate.File(c.path, c.ext); err != nil {
			return err
		}
	}
	return nil
}

// Download fetches the release jar, database archive and ontology into
// dataDir. None of the files may exist yet.
func Download(ctx context.Context, client fetch.Getter, rel Release, dataDir string, w io.Writer) error {
	fmt.Fprintf(w, "downloading: %s\n", rel.Jar)
	if _, err := fetch.Into(ctx, client, rel.JarURL, dataDir); err != nil {
		return fmt.Errorf("downloading %s: %w", rel.JarURL, err)
	}
	fmt.Fprintf(w, "downloading: %s\n", fetch.FileName(rel.DatabaseURL))
	if err := fetch.Archive(ctx, client, rel.DatabaseURL, dataDir); err != nil {
		return fmt.Errorf("downloading %s: %w", rel.DatabaseURL, err)
	}
	fmt.Fprintf(w, "downloading: %s\n", HPOFile)
	if _, err := fetch.Into(ctx, client, rel.HPOURL, dataDir); err != nil {
		return fmt.Errorf("downloading %s: %w", rel.HPOURL, err)
	}
	return nil
}

// BatchResult holds the outcome of running VIBE over the benchmark cases.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// Total returns the number of cases VIBE was started for.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any invocation failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Invocation is one VIBE call: the case, the arguments after the jar, and
// the file VIBE writes.
type Invocation struct {
	CaseID string
	Args   []string
	Output string
}

// RunAll starts VIBE for every invocation in order, printing per-case
// status to w. A failed invocation is reported and counted and the next
// one still runs.
func RunAll(rt java.Runtime, jar string, calls []Invocation, w io.Writer, log *zap.Logger) BatchResult {
	var result BatchResult
	if log == nil {
		log = zap.NewNop()
	}

	for _, c := range calls {
		fmt.Fprintf(w, "running: VIBE %s\n", c.CaseID)
		if err := rt.RunJar(jar, c.Args, w, w); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", c.CaseID, err)
			log.Warn("vibe failed", zap.String("case", c.CaseID), zap.Error(err))
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	fmt.Fprintf(w, "\nVIBE summary: %d succeeded, %d failed (total: %d)\n",
		result.Succeeded, result.Failed, result.Total())
	return result
}

// Result is the outcome of a VIBE run.
type Result struct {
	// Merged is the final id/suggested_genes file.
	Merged string
	// Failed counts VIBE invocations that exited with an error.
	Failed int
}

// Runner drives one VIBE 5.x run. Config must have passed Validate.
type Runner struct {
	Config  types.VibeConfig
	Release Release
	Java    java.Runtime

	// Client is used when Config.Download is set.
	Client fetch.Getter

	Log      *zap.Logger
	Out      io.Writer
	Manifest *manifest.Recorder
}

// Run downloads the release when asked, runs VIBE for every benchmark
// case and merges the results into <output>/<release result file>.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var res Result
	paths := r.Release.Paths(r.Config.Data, r.Config.HPO)

	if r.Config.Download {
		if r.Client == nil {
			return res, fmt.Errorf("download requested without an HTTP client")
		}
		if err := Download(ctx, r.Client, r.Release, r.Config.Data, r.out()); err != nil {
			return res, err
		}
		if err := ValidateResources(paths); err != nil {
			return res, err
		}
		r.step(types.StepResult{Name: "download", Processed: 3, Output: r.Config.Data})
	}

	runDir := r.Release.RunDir(r.Config.Output)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return res, fmt.Errorf("creating directory %s: %w", runDir, err)
	}
	outDir, err := validate.CreateDir(filepath.Join(runDir, OutputDir))
	if err != nil {
		return res, err
	}

	cases, err := tsv.ReadBenchmark(r.Config.Input)
	if err != nil {
		return res, err
	}

	calls := make([]Invocation, 0, len(cases))
	for _, c := range cases {
		out := filepath.Join(outDir, c.ID+".tsv")
		args := []string{"-t", paths.Database}
		args = append(args, Arguments(PhenotypeFlag, c.Phenotypes)...)
		args = append(args, "-o", out, "-l", "-w", paths.HPO)
		calls = append(calls, Invocation{CaseID: c.ID, Args: args, Output: out})
	}

	batch := RunAll(r.Java, paths.Jar, calls, r.out(), r.logger())
	res.Failed = batch.Failed
	r.step(types.StepResult{Name: "vibe", Processed: batch.Total(), Failed: batch.Failed, Output: outDir})

	res.Merged = filepath.Join(r.Config.Output, r.Release.ResultFile)
	n, err := MergeSimpleOutput(outDir, res.Merged)
	r.step(types.StepResult{Name: "merge", Processed: n, Output: res.Merged})
	if err != nil {
		return res, err
	}
	return res, nil
}

func (r *Runner) step(s types.StepResult) {
	if r.Manifest != nil {
		r.Manifest.Step(s)
	}
}

func (r *Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}
