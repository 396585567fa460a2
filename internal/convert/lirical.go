// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/molgenis/biobesu/internal/tsv"
)

const (
	geneInfoSymbolColumn  = 2
	geneInfoAliasesColumn = 4
	geneInfoAliasSep      = "|"

	mimNumberColumn = 0
	mimGeneColumn   = 1

	commentPrefix = "#"
	emptyCell     = "-"
)

// AliasConverter converts gene aliases to symbols using the NCBI
// Homo_sapiens_gene_info file shipped with LIRICAL.
type AliasConverter struct {
	symbolByAlias Table
}

// NewAliasConverter reads a (possibly gzip or zstd compressed) gene_info file.
func NewAliasConverter(path string) (*AliasConverter, error) {
	f, err := tsv.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gene info %s: %w", path, err)
	}
	defer f.Close()

	c, err := ParseGeneInfo(f)
	if err != nil {
		return nil, fmt.Errorf("reading gene info %s: %w", path, err)
	}
	return c, nil
}

// ParseGeneInfo maps every "|"-separated synonym in column 4 to the
// symbol in column 2. Comment lines and short rows are skipped.
func ParseGeneInfo(r io.Reader) (*AliasConverter, error) {
	c := &AliasConverter{symbolByAlias: Table{}}
	err := scanColumns(r, geneInfoAliasesColumn+1, func(fields []string) {
		symbol := fields[geneInfoSymbolColumn]
		for _, alias := range strings.Split(fields[geneInfoAliasesColumn], geneInfoAliasSep) {
			if alias == "" || alias == emptyCell {
				continue
			}
			c.symbolByAlias[alias] = symbol
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AliasToSymbol converts a single gene alias.
func (c *AliasConverter) AliasToSymbol(alias string) (string, bool) {
	return c.symbolByAlias.Lookup(alias)
}

// AliasesToSymbols converts gene aliases in order.
func (c *AliasConverter) AliasesToSymbols(aliases []string, includeNA bool) ([]string, KeySet) {
	return c.symbolByAlias.LookupAll(aliases, includeNA)
}

// OMIMConverter converts OMIM numbers to NCBI gene ids using the
// mim2gene_medgen file shipped with LIRICAL.
type OMIMConverter struct {
	geneByOMIM Table
}

// NewOMIMConverter reads a mim2gene_medgen file.
func NewOMIMConverter(path string) (*OMIMConverter, error) {
	f, err := tsv.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mim2gene %s: %w", path, err)
	}
	defer f.Close()

	c, err := ParseMim2Gene(f)
	if err != nil {
		return nil, fmt.Errorf("reading mim2gene %s: %w", path, err)
	}
	return c, nil
}

// ParseMim2Gene maps column 0 (MIM number) to column 1 (gene id). Rows
// whose gene id is "-" are skipped.
func ParseMim2Gene(r io.Reader) (*OMIMConverter, error) {
	c := &OMIMConverter{geneByOMIM: Table{}}
	err := scanColumns(r, mimGeneColumn+1, func(fields []string) {
		gene := fields[mimGeneColumn]
		if gene == emptyCell || gene == "" {
			return
		}
		c.geneByOMIM[fields[mimNumberColumn]] = gene
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// OMIMToGeneID converts a single OMIM number.
func (c *OMIMConverter) OMIMToGeneID(omim string) (string, bool) {
	return c.geneByOMIM.Lookup(omim)
}

// OMIMsToGeneIDs converts OMIM numbers in order.
func (c *OMIMConverter) OMIMsToGeneIDs(omims []string, includeNA bool) ([]string, KeySet) {
	return c.geneByOMIM.LookupAll(omims, includeNA)
}

// scanColumns calls fn with the tab-split fields of every non-comment line
// that has at least minColumns columns.
func scanColumns(r io.Reader, minColumns int, fn func(fields []string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < minColumns {
			continue
		}
		fn(fields)
	}
	return scanner.Err()
}
