// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lirical

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/molgenis/biobesu/internal/tsv"
)

const (
	// ResultExt is the extension of LIRICAL's per-case TSV output.
	ResultExt = ".tsv"

	commentPrefix = "!"

	diseaseIDColumn   = 2
	compositeLRColumn = 5

	omimPrefix = "OMIM"
)

// Headers of the extraction and conversion files.
var (
	GeneAliasHeader = []string{"id", "gene_aliases"}
	OMIMHeader      = []string{"id", "omims"}
	GeneIDHeader    = []string{"id", "gene_id"}
	SymbolHeader    = []string{"id", "gene_symbol"}
)

// geneAliasPattern captures the gene alias that follows "; " in the
// disease name column.
var geneAliasPattern = regexp.MustCompile(`\t[\w, ]+; (\w+)`)

// ResultLines calls fn with every data line of a LIRICAL TSV: lines
// starting with "!" and the column header are skipped. lineNo counts all
// lines from 1.
func ResultLines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)

	header := true
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.HasPrefix(line, commentPrefix) {
			continue
		}
		if header {
			header = false
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ExtractFields returns, in rank order, the gene alias of every result
// line that names one, and the OMIM number (the part after ":" of the
// disease id column) of every result line.
func ExtractFields(r io.Reader) (aliases, omims []string, err error) {
	err = ResultLines(r, func(lineNo int, line string) error {
		if m := geneAliasPattern.FindStringSubmatch(line); m != nil {
			aliases = append(aliases, m[1])
		}

		fields := strings.Split(line, "\t")
		if len(fields) <= diseaseIDColumn {
			return fmt.Errorf("line %d: expected at least %d columns, found %d", lineNo, diseaseIDColumn+1, len(fields))
		}
		_, number, ok := strings.Cut(fields[diseaseIDColumn], ":")
		if !ok {
			return fmt.Errorf("line %d: disease id %q has no prefix", lineNo, fields[diseaseIDColumn])
		}
		if i := strings.Index(number, ":"); i >= 0 {
			number = number[:i]
		}
		omims = append(omims, number)
		return nil
	})
	return aliases, omims, err
}

// ExtractPositiveOMIMs returns the full disease ids (e.g. "OMIM:154700")
// of the result lines whose disease id is an OMIM entry and whose
// compositeLR is greater than zero. compositeLR is written with "." as
// thousands separator and "," as decimal mark.
func ExtractPositiveOMIMs(r io.Reader) ([]string, error) {
	var omims []string
	err := ResultLines(r, func(lineNo int, line string) error {
		fields := strings.Split(line, "\t")
		if len(fields) <= compositeLRColumn {
			return fmt.Errorf("line %d: expected at least %d columns, found %d", lineNo, compositeLRColumn+1, len(fields))
		}

		lr, err := ParseCompositeLR(fields[compositeLRColumn])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if lr > 0 && strings.HasPrefix(fields[diseaseIDColumn], omimPrefix) {
			omims = append(omims, fields[diseaseIDColumn])
		}
		return nil
	})
	return omims, err
}

// ParseCompositeLR parses a LIRICAL compositeLR value such as "1.234,56".
func ParseCompositeLR(s string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid compositeLR %q", s)
	}
	return v, nil
}

// ExtractAll reads every LIRICAL result in liricalOut and writes one row
// per case to aliasFile (id, gene_aliases) and omimFile (id, omims). The
// case id is the result file name without ".tsv". Both files must not
// exist yet. It returns the number of cases written.
func ExtractAll(liricalOut, aliasFile, omimFile string) (int, error) {
	aliasWriter, err := tsv.Create(aliasFile, GeneAliasHeader...)
	if err != nil {
		return 0, err
	}
	defer aliasWriter.Close()

	omimWriter, err := tsv.Create(omimFile, OMIMHeader...)
	if err != nil {
		return 0, err
	}
	defer omimWriter.Close()

	n, err := eachResult(liricalOut, func(caseID string, r io.Reader) error {
		aliases, omims, err := ExtractFields(r)
		if err != nil {
			return err
		}
		if err := aliasWriter.WriteList(caseID, aliases); err != nil {
			return err
		}
		return omimWriter.WriteList(caseID, omims)
	})
	if err != nil {
		return n, err
	}

	if err := aliasWriter.Close(); err != nil {
		return n, err
	}
	return n, omimWriter.Close()
}

// ExtractOMIMs reads every LIRICAL result in liricalOut and writes the
// OMIM disease ids with a positive compositeLR to omimFile (id, omims).
func ExtractOMIMs(liricalOut, omimFile string) (int, error) {
	w, err := tsv.Create(omimFile, OMIMHeader...)
	if err != nil {
		return 0, err
	}
	defer w.Close()

	n, err := eachResult(liricalOut, func(caseID string, r io.Reader) error {
		omims, err := ExtractPositiveOMIMs(r)
		if err != nil {
			return err
		}
		return w.WriteList(caseID, omims)
	})
	if err != nil {
		return n, err
	}
	return n, w.Close()
}

// eachResult opens every LIRICAL result file in dir in name order and
// calls fn with its case id.
func eachResult(dir string, fn func(caseID string, r io.Reader) error) (int, error) {
	files, err := listFiles(dir, ResultExt)
	if err != nil {
		return 0, err
	}

	for i, name := range files {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return i, err
		}
		err = fn(strings.TrimSuffix(name, ResultExt), f)
		f.Close()
		if err != nil {
			return i, fmt.Errorf("extracting %s: %w", path, err)
		}
	}
	return len(files), nil
}
