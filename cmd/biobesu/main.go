// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the biobesu CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/molgenis/biobesu/internal/config"
	"github.com/molgenis/biobesu/internal/observability"
	"github.com/molgenis/biobesu/internal/validate"
	"github.com/molgenis/biobesu/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// v holds the merged file, environment and flag configuration.
	v = config.New("")

	appConfig types.Config
	logger    = zap.NewNop()
)

// rootCmd is the base command for the biobesu CLI.
var rootCmd = &cobra.Command{
	Use:   "biobesu",
	Short: "Benchmark suite for gene prioritization tools",
	Long: `biobesu runs gene prioritization tools over benchmark cases and writes
their suggestions in one comparable format: a TSV with a case id and a
comma-separated gene list per line.

Suites group related runners: hpo-generank ranks genes from HPO phenotypes
(LIRICAL, phenotype_to_genes) and vibe-versions compares VIBE releases.
The lookup command converts single identifiers with the same reference
files the runners use.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromViper(v)
		if err != nil {
			return err
		}
		appConfig = cfg

		l, err := observability.NewLogger(cfg.Logging)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./biobesu.yaml or ~/.config/biobesu/biobesu.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("java", "", "java executable used to run LIRICAL and VIBE")

	v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("java.bin", rootCmd.PersistentFlags().Lookup("java"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Reading config file:", err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err for the user. An output path that already exists
// gets its own message naming the path.
func reportError(w io.Writer, err error) {
	if path, ok := validate.ExistingPath(err); ok && path != "" {
		fmt.Fprintf(w, "\nAn output file/directory already exists: %s\nExiting...\n", path)
		return
	}
	color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
}
