package main

import (
	"github.com/spf13/cobra"

	"github.com/crestlab/featurize/internal/featurize"
)

var (
	compositionsInput     string
	compositionsSet       string
	compositionsURL       string
	compositionsLogEveryN int
)

func init() {
	compositionsCmd.Flags().StringVar(&compositionsInput, "input", "", "File with one composition formula per line")
	compositionsCmd.Flags().StringVar(&compositionsSet, "set", "", "Descriptor set to compute")
	compositionsCmd.Flags().StringVar(&compositionsURL, "provider", "", "Descriptor service URL")
	compositionsCmd.Flags().IntVar(&compositionsLogEveryN, "log-every-n", featurize.DefaultLogEveryN, "Progress logging interval")
	rootCmd.AddCommand(compositionsCmd)
}

var compositionsCmd = &cobra.Command{
	Use:     "compositions [formula...]",
	Aliases: []string{"comp"},
	Short:   "Featurize crystal compositions from formula strings",
	Long: `Featurize crystal compositions given as formula strings (e.g. "MoS2"),
either as arguments or one per line in the --input file. Unparseable
formulas degrade to an empty feature vector.`,
	RunE: runCompositions,
}

func runCompositions(cmd *cobra.Command, args []string) error {
	formulas, err := readInputLines(args, compositionsInput)
	if err != nil {
		exitWithError(ExitDataError, "reading input: %v", err)
	}

	cfg := mustLoadConfig()
	client := newProviderClient(cfg, compositionsURL, compositionsSet)

	batch := &featurize.CompositionBatch{Parser: client, Featurizer: client}
	mat, err := batch.Featurize(cmd.Context(), formulas,
		featurize.WithLogEveryN(compositionsLogEveryN))
	if err != nil {
		exitWithError(ExitError, "featurizing compositions: %v", err)
	}

	printFeaturesResult(newFeaturesResult(mat))
	return nil
}
