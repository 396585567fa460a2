// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geneInfo = "#tax_id\tGeneID\tSymbol\tLocusTag\tSynonyms\tdbXrefs\tchromosome\tmap_location\tdescription\ttype_of_gene\n" +
	"9606\t1\tA1BG\t-\tA1B|ABG|GAB|HYST2477\tMIM:138670|HGNC:HGNC:5\t19\t19q13.43\talpha-1-B glycoprotein\tprotein-coding\n" +
	"9606\t2\tA2M\t-\tA2MD|CPAMD5|FWP007|S863-7\tMIM:103950|HGNC:HGNC:7\t12\t12p13.31\talpha-2-macroglobulin\tprotein-coding\n" +
	"9606\t3\tA2MP1\t-\t-\t-\t12\t12p13.31\tpseudogene\tpseudo\n"

const mim2Gene = "#MIM number\tGeneID\ttype\tSource\tMedGenCUI\tComment\n" +
	"100100\t1131\tphenotype\t GeneMap\tC0033770\t-\n" +
	"100200\t-\tphenotype\t-\tC4551519\t-\n" +
	"100300\t57514\tphenotype\t GeneMap\tC4551482\t-\n"

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestAliasesToSymbols(t *testing.T) {
	c, err := ParseGeneInfo(strings.NewReader(geneInfo))
	require.NoError(t, err)

	symbols, missing := c.AliasesToSymbols([]string{"GAB", "CPAMD5"}, false)
	assert.Equal(t, []string{"A1BG", "A2M"}, symbols)
	assert.Empty(t, missing)

	_, ok := c.AliasToSymbol("-")
	assert.False(t, ok, "placeholder alias must not be indexed")

	_, ok = c.AliasToSymbol("Synonyms")
	assert.False(t, ok, "header line must be skipped")
}

func TestNewAliasConverter_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Homo_sapiens_gene_info.gz")
	writeGzip(t, path, geneInfo)

	c, err := NewAliasConverter(path)
	require.NoError(t, err)

	symbol, ok := c.AliasToSymbol("HYST2477")
	assert.True(t, ok)
	assert.Equal(t, "A1BG", symbol)
}

func TestOMIMsToGeneIDs(t *testing.T) {
	c, err := ParseMim2Gene(strings.NewReader(mim2Gene))
	require.NoError(t, err)

	genes, missing := c.OMIMsToGeneIDs([]string{"100300", "100100"}, false)
	assert.Equal(t, []string{"57514", "1131"}, genes)
	assert.Empty(t, missing)

	genes, missing = c.OMIMsToGeneIDs([]string{"100200", "100100"}, true)
	assert.Equal(t, []string{NA, "1131"}, genes)
	assert.Equal(t, []string{"100200"}, missing.Sorted())
}

func TestNewOMIMConverter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mim2gene_medgen")
	require.NoError(t, os.WriteFile(path, []byte(mim2Gene), 0o644))

	c, err := NewOMIMConverter(path)
	require.NoError(t, err)

	gene, ok := c.OMIMToGeneID("100100")
	assert.True(t, ok)
	assert.Equal(t, "1131", gene)
}
