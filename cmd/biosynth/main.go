// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the biosynth CLI. Run without a
// subcommand it starts the interactive terminal UI; analyze runs one
// analysis and prints the report.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/biosynth/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the biosynth CLI.
var rootCmd = &cobra.Command{
	Use:   "biosynth",
	Short: "Hypothesis-driven literature and dataset synthesis",
	Long: `biosynth takes a biomedical research hypothesis and asks a grounded
generative model for a structured synthesis report: an executive summary,
the ten most influential papers with a consensus breakdown for each, and
five relevant public datasets from GEO, SRA, and CellxGene.

Run without arguments to start the interactive terminal UI, or use
"biosynth analyze" to print a single report.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./biosynth.yaml or ~/.config/biosynth/biosynth.yaml)")
	pf.String("api-key", "", "Gemini API key (default: GEMINI_API_KEY, GOOGLE_API_KEY, API_KEY, .env, or .secrets/gemini-api-key)")
	pf.String("model", "", "model identifier (default "+types.DefaultModel+")")
	pf.Duration("timeout", 0, "upper bound on one analysis (default 3m)")
	pf.Bool("no-grounding", false, "disable Google Search grounding")
	pf.String("log-level", "", "log level: debug, info, warn, error (default info)")
	pf.Bool("log-dev", false, "human-readable console logs")

	bindFlag(keyAPIKey, pf.Lookup("api-key"))
	bindFlag(keyModel, pf.Lookup("model"))
	bindFlag(keyTimeout, pf.Lookup("timeout"))
	bindFlag(keyLogLevel, pf.Lookup("log-level"))
	bindFlag(keyLogDevelopment, pf.Lookup("log-dev"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("biosynth")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "biosynth"))
		}
	}

	viper.SetEnvPrefix("BIOSYNTH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
