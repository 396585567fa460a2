// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/molgenis/biobesu/internal/lirical"
	"github.com/molgenis/biobesu/internal/manifest"
	"github.com/molgenis/biobesu/internal/phenogenes"
	"github.com/molgenis/biobesu/pkg/types"
)

var hpoGeneRankCmd = &cobra.Command{
	Use:   "hpo-generank",
	Short: "Rank genes from HPO phenotypes",
	Long: `The hpo-generank suite answers every benchmark case with the genes a
tool suggests for its HPO phenotypes. Each runner writes a TSV with the
header id<TAB>gene_symbol or id<TAB>suggested_genes.`,
}

var liricalCmd = &cobra.Command{
	Use:   "lirical",
	Short: "Rank genes with LIRICAL",
	Long: `Lirical writes a phenopacket per benchmark case, runs LIRICAL on each,
extracts the gene aliases and OMIM diseases LIRICAL reports and converts
both to gene symbols. Output directories that already exist abort the run.`,
	RunE: runLirical,
}

var phenotypeToGenesCmd = &cobra.Command{
	Use:   "phenotype-to-genes",
	Short: "Suggest every gene annotated to a case's phenotypes",
	Long: `Phenotype-to-genes is a baseline without a ranking tool: each case gets
the union of the genes the HPO phenotype_to_genes file lists for its
phenotypes.`,
	RunE: runPhenotypeToGenes,
}

func init() {
	liricalCmd.Flags().String("jar", "", "LIRICAL .jar file")
	liricalCmd.Flags().String("hpo", "", "hp.obo file used to label phenopackets")
	liricalCmd.Flags().String("input", "", "benchmark .tsv file")
	liricalCmd.Flags().String("output", "", "directory to write output to")
	liricalCmd.Flags().String("lirical-data", "", "directory containing the data LIRICAL needs")
	liricalCmd.Flags().String("runner-data", "", "directory the runner may store downloaded data in")
	for _, f := range []string{"jar", "hpo", "input", "output", "lirical-data", "runner-data"} {
		liricalCmd.MarkFlagRequired(f)
	}

	phenotypeToGenesCmd.Flags().String("data", "", "HPO phenotype_to_genes .tsv file")
	phenotypeToGenesCmd.Flags().String("input", "", "benchmark .tsv file")
	phenotypeToGenesCmd.Flags().String("output", "", "file to write output to")
	for _, f := range []string{"data", "input", "output"} {
		phenotypeToGenesCmd.MarkFlagRequired(f)
	}

	hpoGeneRankCmd.AddCommand(liricalCmd, phenotypeToGenesCmd)
	rootCmd.AddCommand(hpoGeneRankCmd)
}

func runLirical(cmd *cobra.Command, args []string) error {
	jar, _ := cmd.Flags().GetString("jar")
	hpo, _ := cmd.Flags().GetString("hpo")
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	data, _ := cmd.Flags().GetString("lirical-data")
	runnerData, _ := cmd.Flags().GetString("runner-data")

	cfg, err := lirical.Validate(types.LiricalConfig{
		Jar:        jar,
		HPO:        hpo,
		Input:      input,
		Output:     output,
		Data:       data,
		RunnerData: runnerData,
	})
	if err != nil {
		return err
	}

	rt, err := detectJava()
	if err != nil {
		return err
	}

	rec := manifest.New("hpo-generank/lirical", version, map[string]string{
		"jar": cfg.Jar, "hpo": cfg.HPO, "input": cfg.Input,
		"lirical_data": cfg.Data, "runner_data": cfg.RunnerData,
	})
	r := &lirical.Runner{
		Config:   cfg,
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
	printMissing(os.Stderr, res.Missing)
	printFailures(os.Stderr, "LIRICAL", res.Failed)

	logger.Info("lirical finished",
		zap.String("gene_alias_converted", res.GeneAliasConverted),
		zap.String("omim_converted", res.OMIMConverted),
		zap.Int("failed", res.Failed),
	)
	return writeManifest(rec, cfg.Output)
}

func runPhenotypeToGenes(cmd *cobra.Command, args []string) error {
	data, _ := cmd.Flags().GetString("data")
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")

	cfg := types.PhenotypeToGenesConfig{Data: data, Input: input, Output: output}
	if err := phenogenes.Validate(cfg); err != nil {
		return err
	}

	step, err := phenogenes.Run(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote: %s (%d cases)\n", step.Output, step.Processed)
	logger.Info("phenotype_to_genes finished", zap.String("output", step.Output), zap.Int("cases", step.Processed))
	return nil
}
