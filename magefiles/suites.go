// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Vibe groups the vibe-versions suite targets.
type Vibe mg.Namespace

// Run runs a VIBE release ("5.0" or "5.1") on a benchmark file. The
// release files are downloaded into data/vibe/<release> on first use.
func (Vibe) Run(release, input, output string) error {
	mg.Deps(Build, Init)

	data := filepath.Join(dataDir, "vibe", release)
	args := []string{"vibe-versions", release, "--input", input, "--output", output, "--data", data}
	if empty(data) {
		args = append(args, "--download")
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// HPO groups the hpo-generank suite targets.
type HPO mg.Namespace

// PhenotypeToGenes runs the phenotype_to_genes baseline with
// data/phenotype_to_genes.tsv.
func (HPO) PhenotypeToGenes(input, output string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "hpo-generank", "phenotype-to-genes",
		"--data", filepath.Join(dataDir, "phenotype_to_genes.tsv"),
		"--input", input,
		"--output", output)
}

// Lirical runs LIRICAL with the jar at jar and the data in data/lirical.
func (HPO) Lirical(jar, hpo, input, output string) error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "hpo-generank", "lirical",
		"--jar", jar,
		"--hpo", hpo,
		"--input", input,
		"--output", output,
		"--lirical-data", filepath.Join(dataDir, "lirical"),
		"--runner-data", filepath.Join(dataDir, "runner"))
}

func empty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err != nil || len(entries) == 0
}
