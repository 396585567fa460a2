// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molgenis/biobesu/internal/convert"
	"github.com/molgenis/biobesu/internal/lirical"
)

func init() {
	color.NoColor = true
}

func TestReportError_Exists(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("step: %w", &fs.PathError{Op: "mkdir", Path: "out/phenopackets", Err: fs.ErrExist})
	reportError(&buf, err)
	assert.Equal(t, "\nAn output file/directory already exists: out/phenopackets\nExiting...\n", buf.String())
}

func TestReportError_Other(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestPrintLookup(t *testing.T) {
	var buf bytes.Buffer
	table := convert.Table{"9": "NAT1", "10": "NAT2"}
	require.NoError(t, printLookup(&buf, "genes", table.LookupAll, []string{"10", "3", "9"}))
	assert.Equal(t, "10\tNAT2\n3\tNA\n9\tNAT1\n", buf.String())
}

func TestPrintMissing(t *testing.T) {
	var buf bytes.Buffer
	printMissing(&buf, []lirical.Missing{
		{Conversion: "gene alias to gene symbol", Keys: convert.KeySet{}},
		{Conversion: "OMIM to gene id", Keys: convert.KeySet{"2": {}, "1": {}}},
	})
	assert.Equal(t, "Failed to convert these keys (OMIM to gene id): [1 2]\n", buf.String())
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"hpo-generank", "lirical"},
		{"hpo-generank", "phenotype-to-genes"},
		{"vibe-versions", "5.0"},
		{"vibe-versions", "5.1"},
		{"vibe-versions", "lirical"},
		{"lookup", "phenotype"},
		{"lookup", "gene"},
		{"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
