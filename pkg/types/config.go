package types

import "time"

// HTTPConfig holds shared HTTP settings used by steps that download
// reference data.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "biobesu/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `json:"level" yaml:"level" mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// JavaConfig selects the Java binary used to launch LIRICAL and VIBE.
type JavaConfig struct {
	// Bin is the java executable name or path (default "java").
	Bin string `json:"bin" yaml:"bin" mapstructure:"bin"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Java    JavaConfig    `json:"java" yaml:"java" mapstructure:"java"`
}

// LiricalConfig holds the paths a LIRICAL run needs.
type LiricalConfig struct {
	// Jar is the LIRICAL executable jar.
	Jar string `json:"jar" yaml:"jar"`
	// HPO is the hp.obo file used to label phenopacket features.
	HPO string `json:"hpo" yaml:"hpo"`
	// Input is the benchmark TSV.
	Input string `json:"input" yaml:"input"`
	// Output is the run output directory.
	Output string `json:"output" yaml:"output"`
	// Data is the LIRICAL data directory (Homo_sapiens_gene_info.gz,
	// hp.obo, mim2gene_medgen, phenotype.hpoa).
	Data string `json:"data" yaml:"data"`
	// RunnerData is a directory the runner may store downloaded files in.
	RunnerData string `json:"runner_data,omitempty" yaml:"runner_data,omitempty"`
}

// VibeConfig holds the paths a VIBE run needs.
type VibeConfig struct {
	// Input is the benchmark TSV.
	Input string `json:"input" yaml:"input"`
	// Output is the run output directory.
	Output string `json:"output" yaml:"output"`
	// Data is the directory holding the VIBE jar, database and ontology.
	Data string `json:"data" yaml:"data"`
	// HPO optionally overrides the hp.owl passed to VIBE.
	HPO string `json:"hpo,omitempty" yaml:"hpo,omitempty"`
	// Download fetches the VIBE resources into Data before running.
	Download bool `json:"download" yaml:"download"`
}

// VibeLiricalConfig holds the paths for a VIBE run seeded with LIRICAL OMIMs.
type VibeLiricalConfig struct {
	Lirical LiricalConfig `json:"lirical" yaml:"lirical"`
	// VibeJar is the VIBE executable jar.
	VibeJar string `json:"vibe_jar" yaml:"vibe_jar"`
	// VibeHDT is the VIBE database (.hdt, with its .hdt.index.v1-1 sibling).
	VibeHDT string `json:"vibe_hdt" yaml:"vibe_hdt"`
}

// PhenotypeToGenesConfig holds the paths for the phenotype_to_genes baseline.
type PhenotypeToGenesConfig struct {
	// Data is the HPO phenotype_to_genes file.
	Data string `json:"data" yaml:"data"`
	// Input is the benchmark TSV.
	Input string `json:"input" yaml:"input"`
	// Output is the result file path.
	Output string `json:"output" yaml:"output"`
}
