// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records what a runner did and writes it as
// manifest.yaml next to the run's output.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/molgenis/biobesu/internal/convert"
	"github.com/molgenis/biobesu/pkg/types"
)

// FileName is the manifest file written into a run's output directory.
const FileName = "manifest.yaml"

// Recorder accumulates a RunManifest while a runner executes.
type Recorder struct {
	m   types.RunManifest
	now func() time.Time
}

// New starts a manifest for runner. Inputs maps flag names to the paths
// the run was given.
func New(runner, version string, inputs map[string]string) *Recorder {
	return newRecorder(runner, version, inputs, time.Now)
}

func newRecorder(runner, version string, inputs map[string]string, now func() time.Time) *Recorder {
	return &Recorder{
		m: types.RunManifest{
			RunID:   uuid.New().String(),
			Runner:  runner,
			Version: version,
			Started: now().UTC(),
			Inputs:  inputs,
		},
		now: now,
	}
}

// Step appends the outcome of one runner step.
func (r *Recorder) Step(s types.StepResult) {
	r.m.Steps = append(r.m.Steps, s)
}

// Missing records keys that a conversion could not map. Empty sets are
// not recorded.
func (r *Recorder) Missing(conversion string, keys convert.KeySet) {
	if len(keys) == 0 {
		return
	}
	r.m.Missing = append(r.m.Missing, types.MissingKeys{Conversion: conversion, Keys: keys.Sorted()})
}

// Manifest returns a copy of the manifest recorded so far.
func (r *Recorder) Manifest() types.RunManifest {
	return r.m
}

// Write stamps the finish time and writes the manifest to dir/manifest.yaml.
// An existing manifest is never overwritten.
func (r *Recorder) Write(dir string) (string, error) {
	r.m.Finished = r.now().UTC()

	data, err := yaml.Marshal(r.m)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, f.Close()
}

// Read loads a manifest written by Write.
func Read(path string) (types.RunManifest, error) {
	var m types.RunManifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}
