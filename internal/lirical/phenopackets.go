// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lirical

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/molgenis/biobesu/internal/convert"
	"github.com/molgenis/biobesu/internal/tsv"
)

// PhenopacketExt is the extension of generated phenopacket files.
const PhenopacketExt = ".json"

// WritePhenopackets reads the benchmark cases in input and writes one
// phenopacket per case into dir as <case>.json. It returns the number of
// files written. Existing files are never overwritten.
func WritePhenopackets(input string, phenotypes *convert.PhenotypeConverter, dir string) (int, error) {
	cases, err := tsv.ReadBenchmark(input)
	if err != nil {
		return 0, err
	}

	for i, c := range cases {
		doc, err := phenotypes.Phenopacket(c.ID, c.Phenotypes)
		if err != nil {
			return i, err
		}
		if err := writeExclusive(filepath.Join(dir, c.ID+PhenopacketExt), []byte(doc)); err != nil {
			return i, err
		}
	}
	return len(cases), nil
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
