// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/molgenis/biobesu/internal/manifest"
	"github.com/molgenis/biobesu/internal/vibe"
	"github.com/molgenis/biobesu/pkg/types"
)

var vibeVersionsCmd = &cobra.Command{
	Use:   "vibe-versions",
	Short: "Compare VIBE releases",
	Long: `The vibe-versions suite runs different VIBE releases, or VIBE seeded with
the diseases LIRICAL finds, over the same benchmark cases. Every runner
merges VIBE's per-case gene lists into one id<TAB>suggested_genes file.`,
}

var vibeLiricalCmd = &cobra.Command{
	Use:   "lirical",
	Short: "Run VIBE with the OMIM diseases LIRICAL scores above zero",
	Long: `Lirical runs LIRICAL for every case, keeps the OMIM diseases with a
positive compositeLR and passes them to VIBE together with the case
phenotypes. The merged result is written to vibe_lirical.tsv.`,
	RunE: runVibeLirical,
}

func init() {
	for _, name := range vibe.ReleaseNames() {
		vibeVersionsCmd.AddCommand(newVibeReleaseCmd(name))
	}

	vibeLiricalCmd.Flags().String("input", "", "benchmark .tsv file")
	vibeLiricalCmd.Flags().String("output", "", "directory to write output to")
	vibeLiricalCmd.Flags().String("hpo", "", "hp.obo file used to label phenopackets")
	vibeLiricalCmd.Flags().String("lirical-jar", "", "LIRICAL .jar file")
	vibeLiricalCmd.Flags().String("lirical-data", "", "directory containing the data LIRICAL needs")
	vibeLiricalCmd.Flags().String("vibe-jar", "", "VIBE .jar file")
	vibeLiricalCmd.Flags().String("vibe-hdt", "", "VIBE .hdt database (with its .hdt.index.v1-1 next to it)")
	for _, f := range []string{"input", "output", "hpo", "lirical-jar", "lirical-data", "vibe-jar", "vibe-hdt"} {
		vibeLiricalCmd.MarkFlagRequired(f)
	}

	vibeVersionsCmd.AddCommand(vibeLiricalCmd)
	rootCmd.AddCommand(vibeVersionsCmd)
}

// newVibeReleaseCmd builds the subcommand running one VIBE release.
func newVibeReleaseCmd(name string) *cobra.Command {
	rel := vibe.Releases[name]
	cmd := &cobra.Command{
		Use:   name,
		Short: "Run VIBE " + rel.Version,
		Long: `Runs VIBE ` + rel.Version + ` for every benchmark case and merges the results
into ` + rel.ResultFile + `. With --download the jar, database and ontology
are fetched into --data first; otherwise they must already be there.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVibe(cmd, rel, name)
		},
	}
	cmd.Flags().String("input", "", "benchmark .tsv file")
	cmd.Flags().String("output", "", "directory to write output to")
	cmd.Flags().String("data", "", "directory containing (or receiving) the VIBE jar, database and ontology")
	cmd.Flags().String("hpo", "", "hp.owl to use instead of the one in --data")
	cmd.Flags().Bool("download", false, "download the VIBE resources into --data first")
	for _, f := range []string{"input", "output", "data"} {
		cmd.MarkFlagRequired(f)
	}
	return cmd
}

func runVibe(cmd *cobra.Command, rel vibe.Release, name string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	data, _ := cmd.Flags().GetString("data")
	hpo, _ := cmd.Flags().GetString("hpo")
	download, _ := cmd.Flags().GetBool("download")

	cfg, err := vibe.Validate(types.VibeConfig{
		Input:    input,
		Output:   output,
		Data:     data,
		HPO:      hpo,
		Download: download,
	}, rel)
	if err != nil {
		return err
	}

	rt, err := detectJava()
	if err != nil {
		return err
	}

	rec := manifest.New("vibe-versions/"+name, version, map[string]string{
		"input": cfg.Input, "data": cfg.Data, "hpo": cfg.HPO, "vibe": rel.Version,
	})
	r := &vibe.Runner{
		Config:   cfg,
		Release:  rel,
		Java:     rt,
		Client:   httpClient(),
		Log:      logger,
		Out:      stdout,
		Manifest: rec,
	}

	res, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}
	printFailures(os.Stderr, "VIBE", res.Failed)
	logger.Info("vibe finished", zap.String("release", rel.Version), zap.String("output", res.Merged))
	return writeManifest(rec, rel.RunDir(cfg.Output))
}

func runVibeLirical(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	hpo, _ := cmd.Flags().GetString("hpo")
	liricalJar, _ := cmd.Flags().GetString("lirical-jar")
	liricalData, _ := cmd.Flags().GetString("lirical-data")
	vibeJar, _ := cmd.Flags().GetString("vibe-jar")
	vibeHDT, _ := cmd.Flags().GetString("vibe-hdt")

	cfg, err := vibe.ValidateLirical(types.VibeLiricalConfig{
		Lirical: types.LiricalConfig{
			Jar:    liricalJar,
			HPO:    hpo,
			Input:  input,
			Output: output,
			Data:   liricalData,
		},
		VibeJar: vibeJar,
		VibeHDT: vibeHDT,
	})
	if err != nil {
		return err
	}

	rt, err := detectJava()
	if err != nil {
		return err
	}

	rec := manifest.New("vibe-versions/lirical", version, map[string]string{
		"input": cfg.Lirical.Input, "hpo": cfg.Lirical.HPO, "lirical_jar": cfg.Lirical.Jar,
		"lirical_data": cfg.Lirical.Data, "vibe_jar": cfg.VibeJar, "vibe_hdt": cfg.VibeHDT,
	})
	r := &vibe.LiricalRunner{Config: cfg, Java: rt, Log: logger, Out: stdout, Manifest: rec}

	res, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}
	printFailures(os.Stderr, "LIRICAL or VIBE", res.Failed)
	logger.Info("vibe lirical finished", zap.String("output", res.Merged))
	return writeManifest(rec, cfg.Lirical.Output)
}
