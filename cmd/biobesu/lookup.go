// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/molgenis/biobesu/internal/convert"
	"github.com/molgenis/biobesu/internal/lirical"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Convert identifiers with a reference file",
	Long: `Lookup converts identifiers from the command line with the same
reference files and tables the runners use. Every key is printed with its
value, or NA when the table has none; unmapped keys are listed at the end.`,
}

var lookupPhenotypeCmd = &cobra.Command{
	Use:   "phenotype [ids or names...]",
	Short: "Convert HPO ids to names (or names to ids with --names)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hpo, _ := cmd.Flags().GetString("hpo")
		byName, _ := cmd.Flags().GetBool("names")

		c, err := convert.NewPhenotypeConverter(hpo)
		if err != nil {
			return err
		}
		fn := c.IDsToNames
		if byName {
			fn = c.NamesToIDs
		}
		return printLookup(cmd.OutOrStdout(), "HPO "+c.Version(), fn, args)
	},
}

var lookupGeneCmd = &cobra.Command{
	Use:   "gene [ids or symbols...]",
	Short: "Convert NCBI gene ids to symbols (or symbols to ids with --symbols)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		genes, _ := cmd.Flags().GetString("genes")
		bySymbol, _ := cmd.Flags().GetBool("symbols")

		c, err := convert.NewGeneConverter(genes)
		if err != nil {
			return err
		}
		fn := c.IDsToSymbols
		if bySymbol {
			fn = c.SymbolsToIDs
		}
		return printLookup(cmd.OutOrStdout(), "genes", fn, args)
	},
}

var lookupAliasCmd = &cobra.Command{
	Use:   "alias [aliases...]",
	Short: "Convert gene aliases to symbols with a LIRICAL gene_info file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		geneInfo, _ := cmd.Flags().GetString("gene-info")
		c, err := convert.NewAliasConverter(geneInfo)
		if err != nil {
			return err
		}
		return printLookup(cmd.OutOrStdout(), "aliases", c.AliasesToSymbols, args)
	},
}

var lookupOMIMCmd = &cobra.Command{
	Use:   "omim [numbers...]",
	Short: "Convert OMIM numbers to NCBI gene ids with a mim2gene_medgen file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mim2gene, _ := cmd.Flags().GetString("mim2gene")
		c, err := convert.NewOMIMConverter(mim2gene)
		if err != nil {
			return err
		}
		return printLookup(cmd.OutOrStdout(), "OMIM", c.OMIMsToGeneIDs, args)
	},
}

func init() {
	lookupPhenotypeCmd.Flags().String("hpo", "", "hp.obo file")
	lookupPhenotypeCmd.Flags().Bool("names", false, "arguments are HPO names")
	lookupPhenotypeCmd.MarkFlagRequired("hpo")

	lookupGeneCmd.Flags().String("genes", convert.GeneFileName, "gene id/symbol .tsv file")
	lookupGeneCmd.Flags().Bool("symbols", false, "arguments are gene symbols")

	lookupAliasCmd.Flags().String("gene-info", lirical.GeneInfoFile, "NCBI gene_info file (.gz or .zst accepted)")
	lookupOMIMCmd.Flags().String("mim2gene", lirical.Mim2GeneFile, "mim2gene_medgen file")

	lookupCmd.AddCommand(lookupPhenotypeCmd, lookupGeneCmd, lookupAliasCmd, lookupOMIMCmd)
	rootCmd.AddCommand(lookupCmd)
}

// printLookup writes "key<TAB>value" per key, NA for keys without a
// value, and warns about the missing keys on stderr.
func printLookup(w io.Writer, table string, fn convert.BatchFunc, keys []string) error {
	values, missing := fn(keys, true)
	for i, key := range keys {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", key, values[i]); err != nil {
			return err
		}
	}
	printMissing(os.Stderr, []lirical.Missing{{Conversion: table, Keys: missing}})
	return nil
}
