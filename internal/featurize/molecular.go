package featurize

import (
	"context"
	"fmt"

	"github.com/crestlab/featurize/internal/chem"
	"github.com/crestlab/featurize/internal/feature"
)

// MoleculeFeaturizer computes a feature vector for one parsed molecule.
type MoleculeFeaturizer interface {
	FeaturizeMolecule(ctx context.Context, mol *chem.Molecule) (feature.Vector, error)
}

// MoleculeFunc adapts a plain function to MoleculeFeaturizer.
type MoleculeFunc func(ctx context.Context, mol *chem.Molecule) (feature.Vector, error)

// FeaturizeMolecule implements MoleculeFeaturizer.
func (fn MoleculeFunc) FeaturizeMolecule(ctx context.Context, mol *chem.Molecule) (feature.Vector, error) {
	return fn(ctx, mol)
}

// MolecularBatch featurizes molecular datapoints. Raw SMILES inputs are
// parsed through the configured Parser before the hook runs; the parse and
// the hook share one failure net, so an unparseable SMILES degrades to an
// empty vector like any other per-item domain failure.
type MolecularBatch struct {
	Parser     chem.Parser
	Featurizer MoleculeFeaturizer
}

// Featurize computes features for the inputs in order. A missing Parser or
// Featurizer fails the whole call before any datapoint is touched.
func (b *MolecularBatch) Featurize(ctx context.Context, inputs []chem.Input, opts ...Option) (feature.Matrix, error) {
	if b.Parser == nil {
		return nil, fmt.Errorf("%w: molecule parser", ErrCapabilityMissing)
	}
	if b.Featurizer == nil {
		return nil, fmt.Errorf("%w: molecule featurizer", ErrCapabilityMissing)
	}
	o := buildOptions(opts)
	return forEach(ctx, inputs, o, b.featurizeOne)
}

// FeaturizeOne featurizes a single molecular input. It is exactly
// equivalent to Featurize over a one-element slice.
func (b *MolecularBatch) FeaturizeOne(ctx context.Context, in chem.Input, opts ...Option) (feature.Vector, error) {
	mat, err := b.Featurize(ctx, []chem.Input{in}, opts...)
	if err != nil {
		return nil, err
	}
	return mat[0], nil
}

func (b *MolecularBatch) featurizeOne(ctx context.Context, in chem.Input) (feature.Vector, error) {
	mol := in.Molecule()
	if mol == nil {
		var err error
		mol, err = b.Parser.ParseSMILES(ctx, in.Raw())
		if err != nil {
			return nil, err
		}
	}
	return b.Featurizer.FeaturizeMolecule(ctx, mol)
}
