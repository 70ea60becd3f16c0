// Package main provides the featurize CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Load .env if present so FEATURIZE_* variables reach config resolution.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "featurize",
	Short: "Batch featurization of scientific data",
	Long: `featurize converts scientific data objects into numeric feature vectors.

It drives batch featurization of small molecules (SMILES), crystal
structures, crystal compositions and molecule/protein complexes against a
remote descriptor service, with per-datapoint failure isolation and an
optional local SQLite feature cache. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
