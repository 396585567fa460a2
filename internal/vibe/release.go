// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vibe

import (
	"fmt"
	"path/filepath"
	"sort"
)

const (
	releaseBaseURL  = "https://github.com/molgenis/vibe/releases/download/"
	databaseBaseURL = "https://downloads.molgeniscloud.org/downloads/vibe/"
	hpoOWLURL       = "https://raw.githubusercontent.com/obophenotype/human-phenotype-ontology/" +
		"2f6309173883d5d342849388c74bd986a2c0092c/hp.owl"

	// HPOFile is the ontology VIBE reads with -w.
	HPOFile = "hp.owl"

	// IndexExt is appended to a database path to name its HDT index.
	IndexExt = ".index.v1-1"
)

// Release describes the files of one VIBE version inside a data directory
// and where to download them.
type Release struct {
	Version string

	// Jar is the executable jar, relative to the data directory.
	Jar    string
	JarURL string

	// Database is the .hdt file, relative to the data directory. It is
	// shipped inside the .tar.gz at DatabaseURL.
	Database    string
	DatabaseURL string

	HPOURL string

	// Subdir, when set, is the directory under the run output that holds
	// this release's per-case results and manifest.
	Subdir string

	// ResultFile is the merged result written to the run output.
	ResultFile string
}

// Releases lists the supported VIBE versions by their command name.
var Releases = map[string]Release{
	"5.0": {
		Version:     "5.0.3",
		Jar:         "vibe-with-dependencies-5.0.3.jar",
		JarURL:      releaseBaseURL + "vibe-5.0.3/vibe-with-dependencies-5.0.3.jar",
		Database:    "vibe-5.0.0-hdt/vibe-5.0.0.hdt",
		DatabaseURL: databaseBaseURL + "vibe-5.0.0-hdt.tar.gz",
		HPOURL:      hpoOWLURL,
		ResultFile:  "vibe.tsv",
	},
	"5.1": {
		Version:     "5.1.5",
		Jar:         "vibe-with-dependencies-5.1.5.jar",
		JarURL:      releaseBaseURL + "vibe-5.1.5/vibe-with-dependencies-5.1.5.jar",
		Database:    "vibe-5.1.0-hdt/vibe-5.1.0.hdt",
		DatabaseURL: databaseBaseURL + "vibe-5.1.0-hdt.tar.gz",
		HPOURL:      hpoOWLURL,
		Subdir:      "5.1",
		ResultFile:  "vibe_5.1.0.tsv",
	},
}

// LookupRelease returns the release registered under name.
func LookupRelease(name string) (Release, error) {
	rel, ok := Releases[name]
	if !ok {
		return Release{}, fmt.Errorf("unknown VIBE release %q (known: %v)", name, ReleaseNames())
	}
	return rel, nil
}

// ReleaseNames returns the registered release names, sorted.
func ReleaseNames() []string {
	names := make([]string, 0, len(Releases))
	for name := range Releases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths resolves the release files inside dataDir. hpo overrides the
// ontology when not empty.
func (r Release) Paths(dataDir, hpo string) Paths {
	p := Paths{
		Jar:      filepath.Join(dataDir, r.Jar),
		Database: filepath.Join(dataDir, filepath.FromSlash(r.Database)),
		HPO:      filepath.Join(dataDir, HPOFile),
	}
	if hpo != "" {
		p.HPO = hpo
	}
	return p
}

// RunDir returns the directory under output that holds this release's
// per-case results.
func (r Release) RunDir(output string) string {
	return filepath.Join(output, r.Subdir)
}

// Paths are the resolved files a VIBE invocation needs.
type Paths struct {
	Jar      string
	Database string
	HPO      string
}

// Index returns the HDT index that must sit next to the database.
func (p Paths) Index() string {
	return p.Database + IndexExt
}
