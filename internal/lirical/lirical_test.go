// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lirical

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/molgenis/biobesu/internal/convert"
	"github.com/molgenis/biobesu/internal/manifest"
	"github.com/molgenis/biobesu/internal/validate"
	"github.com/molgenis/biobesu/pkg/types"
)

const hpoOBO = `format-version: 1.2
data-version: releases/2021-02-08

[Term]
id: HP:0000008
name: Abnormal morphology of female internal genitalia

[Term]
id: HP:0000015
name: Bladder diverticulum
`

const benchmarkTSV = "id\tgenes\tphenotypes\n" +
	"case1\tFBN1\tHP:0000008,HP:0000015\n" +
	"case2\tTGFBR1\tHP:0000015\n"

const geneInfo = "#tax_id\tGeneID\tSymbol\tLocusTag\tSynonyms\tdbXrefs\n" +
	"9606\t2200\tFBN1\t-\tMFS|MASS|SGS\t-\n" +
	"9606\t7046\tTGFBR1\t-\tLDS1A|AAT5\t-\n"

const mim2gene = "#MIM number\tGeneID\ttype\tSource\tMedGenCUI\tComment\n" +
	"154700\t2200\tphenotype\tGeneMap\tC0024796\t-\n" +
	"609192\t7046\tphenotype\tGeneMap\tC1832722\t-\n" +
	"100100\t-\tphenotype\t-\tC0000000\t-\n"

const geneFile = "NCBI Gene ID\tApproved symbol\n2200\tFBN1\n7046\tTGFBR1\n"

const liricalCase1 = "! LIRICAL TSV Output (v1.3.4)\n" +
	"! Sample: case1\n" +
	"rank\tdiseaseName\tdiseaseCurie\tpretestprob\tposttestprob\tcompositeLR\tentrezGeneId\tvariants\n" +
	"1\tMARFAN SYNDROME; MFS\tOMIM:154700\t1/8000\t99,9%\t1.234,56\tNCBIGene:2200\tn/a\n" +
	"2\tLoeys-Dietz syndrome 1; LDS1A\tOMIM:609192\t1/8000\t0,1%\t0,00\tNCBIGene:7046\tn/a\n" +
	"3\tEhlers-Danlos; EDS\tORPHA:123\t1/8000\t0,0%\t-0,50\tn/a\tn/a\n"

// fakeJava stands in for LIRICAL: it records each call and writes the
// canned result for the case id given with -x into the -o directory.
type fakeJava struct {
	results map[string]string
	fail    map[string]bool
	calls   [][]string
}

func (f *fakeJava) Name() string    { return "fake-java" }
func (f *fakeJava) Available() bool { return true }

func (f *fakeJava) RunJar(jar string, args []string, _, _ io.Writer) error {
	f.calls = append(f.calls, append([]string{jar}, args...))
	outDir, caseID := flagValue(args, "-o"), flagValue(args, "-x")
	if f.fail[caseID] {
		return errors.New("exit status 1")
	}
	return os.WriteFile(filepath.Join(outDir, caseID+ResultExt), []byte(f.results[caseID]), 0o644)
}

func flagValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

// fakeGetter serves body for every URL.
type fakeGetter struct {
	body string
	urls []string
}

func (g *fakeGetter) Get(_ context.Context, url string) (*http.Response, error) {
	g.urls = append(g.urls, url)
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(g.body))}, nil
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzip(t *testing.T, path, content string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return writeFile(t, path, buf.String())
}

// fixture lays out a complete, valid LIRICAL run configuration.
func fixture(t *testing.T, withGeneFile bool) types.LiricalConfig {
	t.Helper()
	root := t.TempDir()
	data := filepath.Join(root, "lirical_data")
	writeGzip(t, filepath.Join(data, GeneInfoFile), geneInfo)
	writeFile(t, filepath.Join(data, Mim2GeneFile), mim2gene)
	writeFile(t, filepath.Join(data, HPOFile), hpoOBO)
	writeFile(t, filepath.Join(data, AnnotationsFile), "")

	runnerData := filepath.Join(root, "runner_data")
	require.NoError(t, os.MkdirAll(runnerData, 0o755))
	if withGeneFile {
		writeFile(t, filepath.Join(runnerData, convert.GeneFileName), geneFile)
	}

	return types.LiricalConfig{
		Jar:        writeFile(t, filepath.Join(root, "LIRICAL.jar"), "jar"),
		HPO:        writeFile(t, filepath.Join(root, "hp.obo"), hpoOBO),
		Input:      writeFile(t, filepath.Join(root, "benchmark.tsv"), benchmarkTSV),
		Output:     filepath.Join(root, "out"),
		Data:       data,
		RunnerData: runnerData,
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestValidate(t *testing.T) {
	cfg, err := Validate(fixture(t, true))
	require.NoError(t, err)
	assert.DirExists(t, cfg.Output)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.LiricalConfig)
		is     error
	}{
		{"input extension", func(c *types.LiricalConfig) { c.Input = c.HPO }, validate.ErrExtension},
		{"missing jar", func(c *types.LiricalConfig) { c.Jar += ".missing.jar" }, fs.ErrNotExist},
		{"missing data file", func(c *types.LiricalConfig) {
			os.Remove(filepath.Join(c.Data, AnnotationsFile))
		}, fs.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fixture(t, true)
			tt.mutate(&cfg)
			_, err := Validate(cfg)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	cfg, err := Validate(fixture(t, true))
	require.NoError(t, err)

	fj := &fakeJava{
		results: map[string]string{"case1": liricalCase1},
		fail:    map[string]bool{"case2": true},
	}
	var out bytes.Buffer
	rec := manifest.New("lirical", "test", nil)
	r := &Runner{Config: cfg, Java: fj, Log: zaptest.NewLogger(t), Out: &out, Manifest: rec}

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	// Phenopackets for both cases; LIRICAL is started for both in name order.
	assert.FileExists(t, filepath.Join(cfg.Output, PhenopacketsDir, "case1.json"))
	assert.FileExists(t, filepath.Join(cfg.Output, PhenopacketsDir, "case2.json"))
	require.Len(t, fj.calls, 2)
	assert.Equal(t, []string{
		cfg.Jar, "phenopacket",
		"-p", filepath.Join(cfg.Output, PhenopacketsDir, "case1.json"),
		"-o", filepath.Join(cfg.Output, OutputDir),
		"-x", "case1",
		"-d", cfg.Data,
		"--tsv",
	}, fj.calls[0])
	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, out.String(), "failed:  case2")

	extraction := filepath.Join(cfg.Output, ExtractionDir)
	assert.Equal(t, "id\tgene_aliases\ncase1\tMFS\n", readFile(t, filepath.Join(extraction, GeneAliasFile)))
	assert.Equal(t, "id\tomims\ncase1\t154700,609192,123\n", readFile(t, filepath.Join(extraction, OMIMFile)))

	conversion := filepath.Join(cfg.Output, ConversionDir)
	assert.Equal(t, "id\tgene_symbol\ncase1\tFBN1\n", readFile(t, res.GeneAliasConverted))
	assert.Equal(t, "id\tgene_id\ncase1\t2200,7046\n", readFile(t, filepath.Join(conversion, OMIMGeneIDFile)))
	assert.Equal(t, "id\tgene_symbol\ncase1\tFBN1,TGFBR1\n", readFile(t, res.OMIMConverted))

	require.Len(t, res.Missing, 3)
	assert.Empty(t, res.Missing[0].Keys)
	assert.Equal(t, []string{"123"}, res.Missing[1].Keys.Sorted())
	assert.Empty(t, res.Missing[2].Keys)

	m := rec.Manifest()
	require.Len(t, m.Missing, 1)
	assert.Equal(t, "OMIM to gene id", m.Missing[0].Conversion)
	assert.Equal(t, "lirical", m.Steps[1].Name)
	assert.Equal(t, 2, m.Steps[1].Processed)
	assert.Equal(t, 1, m.Steps[1].Failed)
}

func TestRunner_RunDownloadsGeneFile(t *testing.T) {
	cfg, err := Validate(fixture(t, false))
	require.NoError(t, err)

	getter := &fakeGetter{body: geneFile}
	r := &Runner{
		Config: cfg,
		Java:   &fakeJava{results: map[string]string{"case1": liricalCase1, "case2": liricalCase1}},
		Client: getter,
	}

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{convert.GeneFileURL}, getter.urls)
	assert.Equal(t, geneFile, readFile(t, filepath.Join(cfg.RunnerData, convert.GeneFileName)))
	assert.Equal(t, "id\tgene_symbol\ncase1\tFBN1,TGFBR1\ncase2\tFBN1,TGFBR1\n", readFile(t, res.OMIMConverted))
}

func TestRunner_MissingGeneFileWithoutClient(t *testing.T) {
	cfg, err := Validate(fixture(t, false))
	require.NoError(t, err)

	r := &Runner{Config: cfg, Java: &fakeJava{results: map[string]string{"case1": liricalCase1, "case2": liricalCase1}}}
	_, err = r.Run(context.Background())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunner_OutputExists(t *testing.T) {
	cfg, err := Validate(fixture(t, true))
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(cfg.Output, PhenopacketsDir), 0o755))

	fj := &fakeJava{}
	_, err = (&Runner{Config: cfg, Java: fj}).Run(context.Background())
	require.ErrorIs(t, err, fs.ErrExist)

	path, ok := validate.ExistingPath(err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(cfg.Output, PhenopacketsDir), path)
	assert.Empty(t, fj.calls, "no tool runs after an existing output")
}

func TestRunner_UnknownPhenotype(t *testing.T) {
	cfg := fixture(t, true)
	writeFile(t, cfg.Input, "id\tgenes\tphenotypes\ncase1\tFBN1\tHP:9999999\n")
	cfg, err := Validate(cfg)
	require.NoError(t, err)

	_, err = (&Runner{Config: cfg, Java: &fakeJava{}}).Phenopackets()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HP:9999999")
}

func TestExtractFields(t *testing.T) {
	aliases, omims, err := ExtractFields(strings.NewReader(liricalCase1))
	require.NoError(t, err)
	assert.Equal(t, []string{"MFS"}, aliases)
	assert.Equal(t, []string{"154700", "609192", "123"}, omims)
}

func TestExtractFields_HeaderOnly(t *testing.T) {
	aliases, omims, err := ExtractFields(strings.NewReader("! comment\nrank\tdiseaseName\tdiseaseCurie\n"))
	require.NoError(t, err)
	assert.Empty(t, aliases)
	assert.Empty(t, omims)
}

func TestExtractFields_MalformedDiseaseID(t *testing.T) {
	_, _, err := ExtractFields(strings.NewReader("header\n1\tname\tnoprefix\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestExtractPositiveOMIMs(t *testing.T) {
	input := liricalCase1 + "4\tSome disease; SD\tOMIM:100100\t1/8000\t0,0%\t0,5\tn/a\tn/a\n"
	omims, err := ExtractPositiveOMIMs(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"OMIM:154700", "OMIM:100100"}, omims)
}

func TestExtractPositiveOMIMs_BadLR(t *testing.T) {
	_, err := ExtractPositiveOMIMs(strings.NewReader("header\n1\tx\tOMIM:1\ta\tb\tnot-a-number\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compositeLR")
}

func TestParseCompositeLR(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"0,00", 0},
		{"-0,5", -0.5},
		{" 12 ", 12},
		{"1.000.000", 1000000},
	}
	for _, tt := range tests {
		got, err := ParseCompositeLR(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestExtractOMIMs(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "results")
	writeFile(t, filepath.Join(results, "case1.tsv"), liricalCase1)
	writeFile(t, filepath.Join(results, ".hidden.tsv"), "junk")
	writeFile(t, filepath.Join(results, "case1.html"), "<html/>")

	out := filepath.Join(dir, OMIMFile)
	n, err := ExtractOMIMs(results, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "id\tomims\ncase1\tOMIM:154700\n", readFile(t, out))
}

func TestConvertFile_AccumulatesMissing(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "in.tsv"), "id\tgene_id\na\t1,2\nb\t3\nc\t\n")
	out := filepath.Join(dir, "out.tsv")
	table := convert.Table{"1": "ONE"}

	missing, rows, err := ConvertFile(table.LookupAll, in, out, SymbolHeader...)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)
	assert.Equal(t, []string{"2", "3"}, missing.Sorted())
	assert.Equal(t, "id\tgene_symbol\na\tONE\nb\t\nc\t\n", readFile(t, out))
}

func TestConvertFile_OutputExists(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "in.tsv"), "id\tgene_id\na\t1\n")
	out := writeFile(t, filepath.Join(dir, "out.tsv"), "keep")

	_, _, err := ConvertFile(convert.Table{}.LookupAll, in, out, SymbolHeader...)
	assert.ErrorIs(t, err, fs.ErrExist)
	assert.Equal(t, "keep", readFile(t, out))
}
