// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/molgenis/biobesu/pkg/types"
)

const (
	oboVersionPrefix = "data-version:"
	oboTermStart     = "[Term]"
	oboIDPrefix      = "id: "
	oboNamePrefix    = "name: "

	// maxLineSize bounds a single .obo or TSV line.
	maxLineSize = 4 << 20

	createdBy       = "biobesu"
	createdLayout   = "2006-01-02T15:04:05.000000Z"
	hpoResourceID   = "hp"
	hpoResourceName = "Human Phenotype Ontology"
	hpoNamespace    = "HP"
	hpoOWLURL       = "http://purl.obolibrary.org/obo/hp.owl"
	hpoIRIPrefix    = "http://purl.obolibrary.org/obo/HP_"
)

// PhenotypeConverter converts between HPO ids and names using an hp.obo file.
type PhenotypeConverter struct {
	namesByID Table
	idByNames Table
	version   string

	// now stamps phenopackets; tests replace it.
	now func() time.Time
}

// NewPhenotypeConverter parses the .obo file at path.
func NewPhenotypeConverter(path string) (*PhenotypeConverter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ontology %s: %w", path, err)
	}
	defer f.Close()

	c, err := ParseOBO(f)
	if err != nil {
		return nil, fmt.Errorf("reading ontology %s: %w", path, err)
	}
	return c, nil
}

// ParseOBO builds a PhenotypeConverter from .obo content. Each [Term]
// block contributes its first id/name pair; lines after the pair is found
// are ignored until the next [Term]. Blocks lacking either field add
// nothing. The parser does not validate the file beyond that.
func ParseOBO(r io.Reader) (*PhenotypeConverter, error) {
	c := &PhenotypeConverter{
		namesByID: Table{},
		idByNames: Table{},
		now:       time.Now,
	}

	var id, name string
	var haveID, haveName, added bool

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, oboVersionPrefix) {
			c.version = parseOBOVersion(line)
		}

		switch {
		case strings.HasPrefix(line, oboTermStart):
			id, name = "", ""
			haveID, haveName, added = false, false, false
		case added:
			continue
		case strings.HasPrefix(line, oboIDPrefix):
			id = strings.TrimSpace(strings.TrimPrefix(line, oboIDPrefix))
			haveID = true
		case strings.HasPrefix(line, oboNamePrefix):
			name = strings.TrimSpace(strings.TrimPrefix(line, oboNamePrefix))
			haveName = true
		}

		if haveID && haveName && !added {
			c.namesByID[id] = name
			c.idByNames[name] = id
			added = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// parseOBOVersion extracts "2018-03-08" from "data-version: releases/2018-03-08".
func parseOBOVersion(line string) string {
	value := strings.TrimSpace(strings.TrimPrefix(line, oboVersionPrefix))
	if _, after, ok := strings.Cut(value, "/"); ok {
		// Only the segment directly after the first slash is the version.
		before, _, _ := strings.Cut(after, "/")
		return strings.TrimSpace(before)
	}
	return value
}

// Version returns the ontology data-version, or "" if the file had none.
func (c *PhenotypeConverter) Version() string {
	return c.version
}

// Len returns the number of id/name pairs read.
func (c *PhenotypeConverter) Len() int {
	return len(c.namesByID)
}

// IDToName converts a single HPO id.
func (c *PhenotypeConverter) IDToName(id string) (string, bool) {
	return c.namesByID.Lookup(id)
}

// IDsToNames converts HPO ids in order.
func (c *PhenotypeConverter) IDsToNames(ids []string, includeNA bool) ([]string, KeySet) {
	return c.namesByID.LookupAll(ids, includeNA)
}

// NameToID converts a single HPO name.
func (c *PhenotypeConverter) NameToID(name string) (string, bool) {
	return c.idByNames.Lookup(name)
}

// NamesToIDs converts HPO names in order.
func (c *PhenotypeConverter) NamesToIDs(names []string, includeNA bool) ([]string, KeySet) {
	return c.idByNames.LookupAll(names, includeNA)
}

// Phenopacket returns the tab-indented JSON phenopacket for a case. Every
// phenotype id must be known to the ontology.
func (c *PhenotypeConverter) Phenopacket(id string, phenotypeIDs []string) (string, error) {
	features := make([]types.PhenotypicFeature, 0, len(phenotypeIDs))
	for _, pid := range phenotypeIDs {
		label, ok := c.namesByID.Lookup(pid)
		if !ok {
			return "", fmt.Errorf("phenopacket %s: unknown phenotype %q", id, pid)
		}
		features = append(features, types.PhenotypicFeature{
			Type: types.OntologyClass{ID: pid, Label: label},
		})
	}

	packet := types.Phenopacket{
		ID:                 id,
		PhenotypicFeatures: features,
		MetaData: types.MetaData{
			Created:   c.now().UTC().Format(createdLayout),
			CreatedBy: createdBy,
			Resources: []types.Resource{{
				ID:              hpoResourceID,
				Name:            hpoResourceName,
				NamespacePrefix: hpoNamespace,
				URL:             hpoOWLURL,
				Version:         c.version,
				IRIPrefix:       hpoIRIPrefix,
			}},
		},
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(packet); err != nil {
		return "", fmt.Errorf("encoding phenopacket %s: %w", id, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
