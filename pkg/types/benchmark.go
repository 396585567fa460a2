// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the biobesu runners:
// benchmark cases, phenopackets, run configuration and run manifests.
package types

import "time"

// BenchmarkCase is one row of a benchmark TSV: a case id and the HPO
// phenotype ids observed for it.
type BenchmarkCase struct {
	// ID is the case identifier (column 0).
	ID string `json:"id" yaml:"id"`
	// Phenotypes lists HPO ids in file order (column 2, comma-separated).
	Phenotypes []string `json:"phenotypes" yaml:"phenotypes"`
}

// OntologyClass is a term reference inside a phenopacket.
type OntologyClass struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PhenotypicFeature wraps a single observed phenotype.
type PhenotypicFeature struct {
	Type OntologyClass `json:"type"`
}

// Resource describes an ontology a phenopacket refers to.
type Resource struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	NamespacePrefix string `json:"namespacePrefix"`
	URL             string `json:"url"`
	Version         string `json:"version"`
	IRIPrefix       string `json:"iriPrefix"`
}

// MetaData records who created a phenopacket, when, and against which
// ontology versions.
type MetaData struct {
	Created   string     `json:"created"`
	CreatedBy string     `json:"created_by"`
	Resources []Resource `json:"resources"`
}

// Phenopacket is the subset of the phenopackets v1 schema LIRICAL reads.
// Field order matches the serialized document.
type Phenopacket struct {
	ID                 string              `json:"id"`
	PhenotypicFeatures []PhenotypicFeature `json:"phenotypic_features"`
	MetaData           MetaData            `json:"meta_data"`
}

// StepResult counts the outcome of one runner step.
type StepResult struct {
	Name      string `yaml:"name"`
	Processed int    `yaml:"processed"`
	Failed    int    `yaml:"failed,omitempty"`
	Output    string `yaml:"output,omitempty"`
}

// MissingKeys lists the keys one conversion could not map.
type MissingKeys struct {
	Conversion string   `yaml:"conversion"`
	Keys       []string `yaml:"keys"`
}

// RunManifest is the YAML record written next to a run's output.
type RunManifest struct {
	RunID    string            `yaml:"run_id"`
	Runner   string            `yaml:"runner"`
	Version  string            `yaml:"version"`
	Started  time.Time         `yaml:"started"`
	Finished time.Time         `yaml:"finished"`
	Inputs   map[string]string `yaml:"inputs"`
	Steps    []StepResult      `yaml:"steps"`
	Missing  []MissingKeys     `yaml:"missing,omitempty"`
}
