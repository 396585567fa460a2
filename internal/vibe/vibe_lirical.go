// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vibe

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/molgenis/biobesu/internal/java"
	"github.com/molgenis/biobesu/internal/lirical"
	"github.com/molgenis/biobesu/internal/manifest"
	"github.com/molgenis/biobesu/internal/tsv"
	"github.com/molgenis/biobesu/internal/validate"
	"github.com/molgenis/biobesu/pkg/types"
)

// LiricalResultFile is the merged result of a VIBE run seeded with
// LIRICAL's OMIM diseases.
const LiricalResultFile = "vibe_lirical.tsv"

// ValidateLirical checks the paths of a VIBE+LIRICAL run.
func ValidateLirical(cfg types.VibeLiricalConfig) (types.VibeLiricalConfig, error) {
	var err error
	if cfg.Lirical, err = lirical.Validate(cfg.Lirical); err != nil {
		return cfg, err
	}
	if err := validate.File(cfg.VibeJar, ".jar"); err != nil {
		return cfg, err
	}
	if err := validate.File(cfg.VibeHDT, ".hdt"); err != nil {
		return cfg, err
	}
	if err := validate.File(cfg.VibeHDT+IndexExt, ".hdt"+IndexExt); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LiricalRunner runs LIRICAL, keeps the OMIM diseases with a positive
// compositeLR and hands them to VIBE together with the case phenotypes.
// Config must have passed ValidateLirical.
type LiricalRunner struct {
	Config types.VibeLiricalConfig
	Java   java.Runtime

	Log      *zap.Logger
	Out      io.Writer
	Manifest *manifest.Recorder
}

// Run executes LIRICAL, the OMIM extraction, VIBE and the merge into
// <output>/vibe_lirical.tsv.
func (r *LiricalRunner) Run(_ context.Context) (Result, error) {
	var res Result
	cfg := r.Config.Lirical

	lr := &lirical.Runner{Config: cfg, Java: r.Java, Log: r.Log, Out: r.Out, Manifest: r.Manifest}
	phenopackets, err := lr.Phenopackets()
	if err != nil {
		return res, err
	}
	liricalOut, failed, err := lr.Lirical(phenopackets)
	if err != nil {
		return res, err
	}
	res.Failed = failed

	extractDir, err := validate.CreateDir(filepath.Join(cfg.Output, lirical.ExtractionDir))
	if err != nil {
		return res, err
	}
	omimFile := filepath.Join(extractDir, lirical.OMIMFile)
	n, err := lirical.ExtractOMIMs(liricalOut, omimFile)
	r.step(types.StepResult{Name: "extraction", Processed: n, Output: omimFile})
	if err != nil {
		return res, err
	}

	outDir, err := validate.CreateDir(filepath.Join(cfg.Output, OutputDir))
	if err != nil {
		return res, err
	}

	cases, err := tsv.ReadBenchmark(cfg.Input)
	if err != nil {
		return res, err
	}
	omims, err := tsv.ReadListColumn(omimFile)
	if err != nil {
		return res, err
	}

	calls := make([]Invocation, 0, len(cases))
	for _, c := range cases {
		out := filepath.Join(outDir, c.ID+".tsv")
		args := []string{"-t", r.Config.VibeHDT}
		args = append(args, Arguments(PhenotypeFlag, c.Phenotypes)...)
		args = append(args, Arguments(DiseaseFlag, omims.Get(c.ID))...)
		args = append(args, "-o", out, "-l")
		calls = append(calls, Invocation{CaseID: c.ID, Args: args, Output: out})
	}

	batch := RunAll(r.Java, r.Config.VibeJar, calls, r.out(), r.Log)
	res.Failed += batch.Failed
	r.step(types.StepResult{Name: "vibe", Processed: batch.Total(), Failed: batch.Failed, Output: outDir})

	res.Merged = filepath.Join(cfg.Output, LiricalResultFile)
	merged, err := MergeSimpleOutput(outDir, res.Merged)
	r.step(types.StepResult{Name: "merge", Processed: merged, Output: res.Merged})
	if err != nil {
		return res, fmt.Errorf("merging VIBE output: %w", err)
	}
	return res, nil
}

func (r *LiricalRunner) step(s types.StepResult) {
	if r.Manifest != nil {
		r.Manifest.Step(s)
	}
}

func (r *LiricalRunner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}
