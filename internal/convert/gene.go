// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// GeneFileName is the name the genenames download is stored under.
	GeneFileName = "gene_ids_symbols.tsv"

	// GeneFileURL is the genenames custom download of approved and
	// withdrawn genes, ordered by NCBI gene id.
	GeneFileURL = "https://www.genenames.org/cgi-bin/download/custom?col=gd_pub_eg_id&col=gd_app_sym" +
		"&status=Approved&status=Entry%20Withdrawn&hgnc_dbtag=on&order_by=gd_pub_eg_id" +
		"&format=text&submit=submit"

	// GeneFileHeader is the exact header line the gene file must start with.
	GeneFileHeader = "NCBI Gene ID\tApproved symbol"

	geneFileColumns = 2
)

// GeneConverter converts between NCBI gene ids and approved gene symbols.
type GeneConverter struct {
	symbolByID Table
	idBySymbol Table
}

// NewGeneConverter parses the gene id/symbol TSV at path.
func NewGeneConverter(path string) (*GeneConverter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gene file %s: %w", path, err)
	}
	defer f.Close()

	c, err := ParseGeneFile(f)
	if err != nil {
		var ce *ContentError
		if errors.As(err, &ce) {
			ce.Path = path
			return nil, ce
		}
		return nil, fmt.Errorf("reading gene file %s: %w", path, err)
	}
	return c, nil
}

// ParseGeneFile reads the gene TSV. The first line must equal
// GeneFileHeader. Rows without a gene id are skipped; a symbol assigned
// to two different ids is a *ContentError.
func ParseGeneFile(r io.Reader) (*GeneConverter, error) {
	c := &GeneConverter{
		symbolByID: Table{},
		idBySymbol: Table{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, &ContentError{Msg: fmt.Sprintf("empty gene info file, expected header %q", GeneFileHeader)}
	}
	if header := strings.TrimRight(scanner.Text(), " \t\r\n"); header != GeneFileHeader {
		return nil, &ContentError{Msg: fmt.Sprintf(
			"unexpected gene info file header\nExpected: %s\nActual: %s", GeneFileHeader, header)}
	}

	for scanner.Scan() {
		fields := strings.Split(strings.TrimRight(scanner.Text(), " \t\r\n"), "\t")
		for len(fields) < geneFileColumns {
			fields = append(fields, "")
		}
		geneID, symbol := fields[0], fields[1]
		if geneID == "" || symbol == "" {
			continue
		}

		if existing, ok := c.idBySymbol[symbol]; ok && existing != geneID {
			return nil, &ContentError{Msg: fmt.Sprintf(
				"the symbol %s was already assigned to %s (also found for %s)", symbol, existing, geneID)}
		}
		c.idBySymbol[symbol] = geneID
		c.symbolByID[geneID] = symbol
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Len returns the number of gene ids read.
func (c *GeneConverter) Len() int {
	return len(c.symbolByID)
}

// IDToSymbol converts a single gene id.
func (c *GeneConverter) IDToSymbol(id string) (string, bool) {
	return c.symbolByID.Lookup(id)
}

// IDsToSymbols converts gene ids in order.
func (c *GeneConverter) IDsToSymbols(ids []string, includeNA bool) ([]string, KeySet) {
	return c.symbolByID.LookupAll(ids, includeNA)
}

// SymbolToID converts a single gene symbol.
func (c *GeneConverter) SymbolToID(symbol string) (string, bool) {
	return c.idBySymbol.Lookup(symbol)
}

// SymbolsToIDs converts gene symbols in order.
func (c *GeneConverter) SymbolsToIDs(symbols []string, includeNA bool) ([]string, KeySet) {
	return c.idBySymbol.LookupAll(symbols, includeNA)
}
