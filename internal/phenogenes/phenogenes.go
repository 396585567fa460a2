// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package phenogenes is the phenotype_to_genes baseline: every case is
// answered with the genes the HPO annotations link to its phenotypes,
// without any ranking tool.
package phenogenes

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/molgenis/biobesu/internal/tsv"
	"github.com/molgenis/biobesu/internal/validate"
	"github.com/molgenis/biobesu/pkg/types"
)

const (
	phenotypeColumn = 0
	geneColumn      = 2
	commentPrefix   = "#"
)

// Header is the header of the result file.
var Header = []string{"id", "suggested_genes"}

// Index maps HPO ids to the genes annotated to them, in first-seen order
// and without duplicates.
type Index struct {
	genes map[string][]string
}

// LoadData reads an HPO phenotype_to_genes file (optionally compressed).
func LoadData(path string) (*Index, error) {
	f, err := tsv.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ix, err := ParseData(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ix, nil
}

// ParseData reads phenotype_to_genes content. Lines starting with "#"
// are skipped; column 0 is the HPO id and column 2 the gene.
func ParseData(r io.Reader) (*Index, error) {
	ix := &Index{genes: map[string][]string{}}
	seen := map[string]map[string]bool{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.HasPrefix(line, commentPrefix) || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) <= geneColumn {
			return nil, fmt.Errorf("line %d: expected at least %d columns, found %d", lineNo, geneColumn+1, len(fields))
		}
		hpo, gene := fields[phenotypeColumn], fields[geneColumn]

		if seen[hpo] == nil {
			seen[hpo] = map[string]bool{}
		}
		if seen[hpo][gene] {
			continue
		}
		seen[hpo][gene] = true
		ix.genes[hpo] = append(ix.genes[hpo], gene)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ix, nil
}

// Len returns the number of phenotypes with at least one gene.
func (ix *Index) Len() int {
	return len(ix.genes)
}

// Genes returns the genes annotated to phenotype, or nil.
func (ix *Index) Genes(phenotype string) []string {
	return ix.genes[phenotype]
}

// ProcessCase returns the union of the genes of all phenotypes. The
// phenotypes are visited in sorted order so their input order does not
// change the result; genes keep first-seen order. phenotypes is not
// modified.
func (ix *Index) ProcessCase(phenotypes []string) []string {
	sorted := append([]string(nil), phenotypes...)
	sort.Strings(sorted)

	found := []string{}
	seen := map[string]bool{}
	for _, p := range sorted {
		for _, gene := range ix.genes[p] {
			if !seen[gene] {
				seen[gene] = true
				found = append(found, gene)
			}
		}
	}
	return found
}

// GenerateResults answers every benchmark case in input and writes the
// rows to output, which must not exist yet. It returns the number of
// cases written.
func GenerateResults(input, output string, ix *Index) (int, error) {
	cases, err := tsv.ReadBenchmark(input)
	if err != nil {
		return 0, err
	}

	w, err := tsv.Create(output, Header...)
	if err != nil {
		return 0, err
	}
	defer w.Close()

	for _, c := range cases {
		if err := w.WriteList(c.ID, ix.ProcessCase(c.Phenotypes)); err != nil {
			return w.Rows(), err
		}
	}
	return w.Rows(), w.Close()
}

// Validate checks the paths of a phenotype_to_genes run. The output's
// parent directory is created when missing.
func Validate(cfg types.PhenotypeToGenesConfig) error {
	if err := validate.File(cfg.Data, ".tsv"); err != nil {
		return err
	}
	if err := validate.File(cfg.Input, ".tsv"); err != nil {
		return err
	}
	return validate.OutputFile(cfg.Output)
}

// Run loads cfg.Data and writes the results for cfg.Input to cfg.Output.
func Run(cfg types.PhenotypeToGenesConfig) (types.StepResult, error) {
	ix, err := LoadData(cfg.Data)
	if err != nil {
		return types.StepResult{}, err
	}
	n, err := GenerateResults(cfg.Input, cfg.Output, ix)
	return types.StepResult{Name: "phenotype_to_genes", Processed: n, Output: cfg.Output}, err
}
