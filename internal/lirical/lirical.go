// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lirical ranks genes for benchmark cases with LIRICAL. A run
// writes one phenopacket per case, calls LIRICAL once per phenopacket,
// pulls gene aliases and OMIM numbers out of its TSV output and converts
// both to gene symbols.
package lirical

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/molgenis/biobesu/internal/convert"
	"github.com/molgenis/biobesu/internal/fetch"
	"github.com/molgenis/biobesu/internal/java"
	"github.com/molgenis/biobesu/internal/manifest"
	"github.com/molgenis/biobesu/internal/validate"
	"github.com/molgenis/biobesu/pkg/types"
)

// Directories created inside the output directory, in step order.
const (
	PhenopacketsDir = "phenopackets"
	OutputDir       = "lirical_output"
	ExtractionDir   = "lirical_extraction"
	ConversionDir   = "lirical_conversion"
)

// Files written by the extraction and conversion steps.
const (
	GeneAliasFile          = "lirical_gene_alias.tsv"
	OMIMFile               = "lirical_omim.tsv"
	GeneAliasConvertedFile = "lirical_gene_alias_converted.tsv"
	OMIMGeneIDFile         = "lirical_omim_gene_id.tsv"
	OMIMConvertedFile      = "lirical_omim_converted.tsv"
)

// Files LIRICAL expects in its data directory.
const (
	GeneInfoFile    = "Homo_sapiens_gene_info.gz"
	HPOFile         = "hp.obo"
	Mim2GeneFile    = "mim2gene_medgen"
	AnnotationsFile = "phenotype.hpoa"
)

// DataFiles lists every file the LIRICAL data directory must contain.
var DataFiles = []string{GeneInfoFile, HPOFile, Mim2GeneFile, AnnotationsFile}

// Validate checks the paths of a LIRICAL run before any work starts and
// returns cfg with its directories cleaned. The output and runner-data
// directories are created when missing.
func Validate(cfg types.LiricalConfig) (types.LiricalConfig, error) {
	if err := validate.File(cfg.Input, ".tsv"); err != nil {
		return cfg, err
	}
	if err := validate.File(cfg.HPO, ".obo"); err != nil {
		return cfg, err
	}
	if err := validate.File(cfg.Jar, ".jar"); err != nil {
		return cfg, err
	}

	var err error
	if cfg.Output, err = validate.Directory(cfg.Output, validate.DirectoryOptions{Create: true, Writable: true}); err != nil {
		return cfg, err
	}
	if cfg.Data, err = validate.Directory(cfg.Data, validate.DirectoryOptions{}); err != nil {
		return cfg, err
	}
	if err := validate.Files(cfg.Data, DataFiles...); err != nil {
		return cfg, err
	}
	if cfg.RunnerData != "" {
		if cfg.RunnerData, err = validate.Directory(cfg.RunnerData, validate.DirectoryOptions{Create: true, Writable: true}); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Missing lists the keys one conversion could not map.
type Missing struct {
	Conversion string
	Keys       convert.KeySet
}

// Result is the outcome of a full LIRICAL run.
type Result struct {
	// GeneAliasConverted and OMIMConverted are the two final id/gene_symbol files.
	GeneAliasConverted string
	OMIMConverted      string
	// Failed counts LIRICAL invocations that exited with an error.
	Failed  int
	Missing []Missing
}

// Runner drives one LIRICAL run. Config must have passed Validate.
type Runner struct {
	Config types.LiricalConfig
	Java   java.Runtime

	// Client downloads the gene id/symbol file into Config.RunnerData when
	// it is absent. Nil disables the download.
	Client fetch.Getter

	// Log receives structured events; nil discards them.
	Log *zap.Logger
	// Out receives per-case progress lines and LIRICAL's own output; nil
	// discards them.
	Out io.Writer
	// Manifest, when set, records every step.
	Manifest *manifest.Recorder
}

// Run executes all steps in order. It stops at the first error; a failing
// LIRICAL invocation only counts towards Result.Failed.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var res Result

	phenopackets, err := r.Phenopackets()
	if err != nil {
		return res, err
	}

	liricalOut, failed, err := r.Lirical(phenopackets)
	if err != nil {
		return res, err
	}
	res.Failed = failed

	aliasFile, omimFile, err := r.Extract(liricalOut)
	if err != nil {
		return res, err
	}

	conv, err := r.Convert(ctx, aliasFile, omimFile)
	if err != nil {
		return res, err
	}
	conv.Failed = res.Failed
	return conv, nil
}

// Phenopackets writes <output>/phenopackets/<case>.json for every case in
// the benchmark file and returns the directory.
func (r *Runner) Phenopackets() (string, error) {
	dir, err := validate.CreateDir(filepath.Join(r.Config.Output, PhenopacketsDir))
	if err != nil {
		return "", err
	}

	phenotypes, err := convert.NewPhenotypeConverter(r.Config.HPO)
	if err != nil {
		return "", err
	}
	r.logger().Info("ontology loaded",
		zap.String("path", r.Config.HPO),
		zap.String("version", phenotypes.Version()),
		zap.Int("terms", phenotypes.Len()),
	)

	n, err := WritePhenopackets(r.Config.Input, phenotypes, dir)
	r.step(types.StepResult{Name: "phenopackets", Processed: n, Output: dir})
	if err != nil {
		return "", err
	}
	return dir, nil
}

// Lirical runs LIRICAL for every phenopacket in phenopacketsDir, writing
// into <output>/lirical_output. It returns the directory and the number
// of failed invocations.
func (r *Runner) Lirical(phenopacketsDir string) (string, int, error) {
	outDir, err := validate.CreateDir(filepath.Join(r.Config.Output, OutputDir))
	if err != nil {
		return "", 0, err
	}

	res, err := RunAll(r.Java, r.Config.Jar, r.Config.Data, phenopacketsDir, outDir, r.out(), r.logger())
	r.step(types.StepResult{Name: "lirical", Processed: res.Total(), Failed: res.Failed, Output: outDir})
	if err != nil {
		return "", 0, err
	}
	return outDir, res.Failed, nil
}

// Extract writes the gene alias and OMIM extraction files for every
// LIRICAL result in liricalOut and returns their paths.
func (r *Runner) Extract(liricalOut string) (aliasFile, omimFile string, err error) {
	dir, err := validate.CreateDir(filepath.Join(r.Config.Output, ExtractionDir))
	if err != nil {
		return "", "", err
	}
	aliasFile = filepath.Join(dir, GeneAliasFile)
	omimFile = filepath.Join(dir, OMIMFile)

	n, err := ExtractAll(liricalOut, aliasFile, omimFile)
	r.step(types.StepResult{Name: "extraction", Processed: n, Output: dir})
	if err != nil {
		return "", "", err
	}
	return aliasFile, omimFile, nil
}

// Convert maps the extracted aliases and OMIM numbers to gene symbols.
// Aliases go through the LIRICAL gene_info file; OMIM numbers go through
// mim2gene_medgen to gene ids and then through the gene id/symbol file.
func (r *Runner) Convert(ctx context.Context, aliasFile, omimFile string) (Result, error) {
	var res Result

	dir, err := validate.CreateDir(filepath.Join(r.Config.Output, ConversionDir))
	if err != nil {
		return res, err
	}
	res.GeneAliasConverted = filepath.Join(dir, GeneAliasConvertedFile)
	res.OMIMConverted = filepath.Join(dir, OMIMConvertedFile)
	intermediate := filepath.Join(dir, OMIMGeneIDFile)

	geneFile, err := r.geneFile(ctx)
	if err != nil {
		return res, err
	}

	fmt.Fprintln(r.out(), "Retrieve genes through gene aliases...")
	aliases, err := convert.NewAliasConverter(filepath.Join(r.Config.Data, GeneInfoFile))
	if err != nil {
		return res, err
	}
	if err := r.route(&res, "gene alias to gene symbol", aliases.AliasesToSymbols, aliasFile, res.GeneAliasConverted, SymbolHeader); err != nil {
		return res, err
	}

	fmt.Fprintln(r.out(), "Retrieve genes through OMIM...")
	omims, err := convert.NewOMIMConverter(filepath.Join(r.Config.Data, Mim2GeneFile))
	if err != nil {
		return res, err
	}
	if err := r.route(&res, "OMIM to gene id", omims.OMIMsToGeneIDs, omimFile, intermediate, GeneIDHeader); err != nil {
		return res, err
	}

	genes, err := convert.NewGeneConverter(geneFile)
	if err != nil {
		return res, err
	}
	if err := r.route(&res, "gene id to gene symbol", genes.IDsToSymbols, intermediate, res.OMIMConverted, SymbolHeader); err != nil {
		return res, err
	}
	return res, nil
}

func (r *Runner) route(res *Result, name string, fn convert.BatchFunc, in, out string, header []string) error {
	missing, rows, err := ConvertFile(fn, in, out, header...)
	r.step(types.StepResult{Name: name, Processed: rows, Output: out})
	if err != nil {
		return err
	}
	res.Missing = append(res.Missing, Missing{Conversion: name, Keys: missing})
	if r.Manifest != nil {
		r.Manifest.Missing(name, missing)
	}
	r.logger().Info("converted",
		zap.String("conversion", name),
		zap.Int("rows", rows),
		zap.Int("missing", len(missing)),
	)
	return nil
}

// geneFile returns the gene id/symbol file in the runner data directory,
// downloading it first when it is absent and a client is configured.
func (r *Runner) geneFile(ctx context.Context) (string, error) {
	dir := r.Config.RunnerData
	if dir == "" {
		dir = r.Config.Output
	}
	path := filepath.Join(dir, convert.GeneFileName)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if r.Client == nil {
		return "", fmt.Errorf("gene file %s: %w", path, os.ErrNotExist)
	}

	fmt.Fprintf(r.out(), "downloading: %s\n", convert.GeneFileName)
	r.logger().Info("downloading gene file", zap.String("url", convert.GeneFileURL), zap.String("path", path))
	if err := fetch.File(ctx, r.Client, convert.GeneFileURL, path); err != nil {
		return "", fmt.Errorf("downloading gene file: %w", err)
	}
	return path, nil
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
