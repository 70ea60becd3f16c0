package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/crestlab/featurize/internal/chem"
	"github.com/crestlab/featurize/internal/feature"
	"github.com/crestlab/featurize/internal/featurize"
	"github.com/crestlab/featurize/internal/store"
)

var (
	moleculesInput     string
	moleculesSet       string
	moleculesURL       string
	moleculesUseCache  bool
	moleculesLogEveryN int
)

func init() {
	moleculesCmd.Flags().StringVar(&moleculesInput, "input", "", "File with one SMILES string per line")
	moleculesCmd.Flags().StringVar(&moleculesSet, "set", "", "Descriptor set to compute")
	moleculesCmd.Flags().StringVar(&moleculesURL, "provider", "", "Descriptor service URL")
	moleculesCmd.Flags().BoolVar(&moleculesUseCache, "cache", false, "Consult and fill the local feature cache")
	moleculesCmd.Flags().IntVar(&moleculesLogEveryN, "log-every-n", featurize.DefaultLogEveryN, "Progress logging interval")
	rootCmd.AddCommand(moleculesCmd)
}

var moleculesCmd = &cobra.Command{
	Use:     "molecules [smiles...]",
	Aliases: []string{"mol"},
	Short:   "Featurize small molecules from SMILES strings",
	Long: `Featurize small molecules given as SMILES strings, either as arguments
or one per line in the --input file. Unparseable molecules degrade to an
empty feature vector; the batch never fails on a single bad input.`,
	RunE: runMolecules,
}

// cachedMoleculeFeaturizer consults the feature cache before delegating to
// the remote featurizer, keyed by canonical SMILES.
type cachedMoleculeFeaturizer struct {
	inner featurize.MoleculeFeaturizer
	db    *store.DB
	set   string
}

func (c *cachedMoleculeFeaturizer) FeaturizeMolecule(ctx context.Context, mol *chem.Molecule) (feature.Vector, error) {
	hash := store.HashInput(mol.SMILES)
	if vec, ok, err := c.db.Get(hash, c.set); err == nil && ok {
		return vec, nil
	}

	vec, err := c.inner.FeaturizeMolecule(ctx, mol)
	if err != nil {
		return nil, err
	}
	if err := c.db.Put(hash, c.set, vec); err != nil {
		return nil, err
	}
	return vec, nil
}

func runMolecules(cmd *cobra.Command, args []string) error {
	smiles, err := readInputLines(args, moleculesInput)
	if err != nil {
		exitWithError(ExitDataError, "reading input: %v", err)
	}

	cfg := mustLoadConfig()
	client := newProviderClient(cfg, moleculesURL, moleculesSet)

	var hook featurize.MoleculeFeaturizer = client
	var db *store.DB
	if moleculesUseCache {
		db = openCache(cfg)
		hook = &cachedMoleculeFeaturizer{inner: client, db: db, set: client.DescriptorSet()}
	}

	batch := &featurize.MolecularBatch{Parser: client, Featurizer: hook}
	mat, err := batch.Featurize(cmd.Context(), chem.SMILESInputs(smiles),
		featurize.WithLogEveryN(moleculesLogEveryN))
	if db != nil {
		db.Close()
	}
	if err != nil {
		exitWithError(ExitError, "featurizing molecules: %v", err)
	}

	printFeaturesResult(newFeaturesResult(mat))
	return nil
}
