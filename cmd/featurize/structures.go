package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/crestlab/featurize/internal/crystal"
	"github.com/crestlab/featurize/internal/featurize"
)

var (
	structuresInput     string
	structuresSet       string
	structuresURL       string
	structuresLogEveryN int
)

func init() {
	structuresCmd.Flags().StringVar(&structuresInput, "input", "", "JSON file holding an array of structure dictionaries")
	structuresCmd.Flags().StringVar(&structuresSet, "set", "", "Descriptor set to compute")
	structuresCmd.Flags().StringVar(&structuresURL, "provider", "", "Descriptor service URL")
	structuresCmd.Flags().IntVar(&structuresLogEveryN, "log-every-n", featurize.DefaultLogEveryN, "Progress logging interval")
	structuresCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(structuresCmd)
}

var structuresCmd = &cobra.Command{
	Use:   "structures",
	Short: "Featurize crystal structures from dictionary form",
	Long: `Featurize 3D crystal structures supplied as JSON dictionaries.
Each dictionary is parsed into a structure object before feature
computation; malformed structures degrade to an empty feature vector.`,
	RunE: runStructures,
}

func runStructures(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(structuresInput)
	if err != nil {
		exitWithError(ExitDataError, "reading input: %v", err)
	}

	var dicts []crystal.StructureDict
	if err := json.Unmarshal(data, &dicts); err != nil {
		exitWithError(ExitDataError, "parsing input JSON: %v", err)
	}

	cfg := mustLoadConfig()
	client := newProviderClient(cfg, structuresURL, structuresSet)

	batch := &featurize.StructureBatch{Parser: client, Featurizer: client}
	mat, err := batch.Featurize(cmd.Context(), dicts,
		featurize.WithLogEveryN(structuresLogEveryN))
	if err != nil {
		exitWithError(ExitError, "featurizing structures: %v", err)
	}

	printFeaturesResult(newFeaturesResult(mat))
	return nil
}
