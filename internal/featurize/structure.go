package featurize

import (
	"context"
	"fmt"

	"github.com/crestlab/featurize/internal/crystal"
	"github.com/crestlab/featurize/internal/feature"
)

// StructureFeaturizer computes a feature vector for one parsed crystal
// structure.
type StructureFeaturizer interface {
	FeaturizeStructure(ctx context.Context, s *crystal.Structure) (feature.Vector, error)
}

// StructureFunc adapts a plain function to StructureFeaturizer.
type StructureFunc func(ctx context.Context, s *crystal.Structure) (feature.Vector, error)

// FeaturizeStructure implements StructureFeaturizer.
func (fn StructureFunc) FeaturizeStructure(ctx context.Context, s *crystal.Structure) (feature.Vector, error) {
	return fn(ctx, s)
}

// StructureBatch featurizes crystal structures supplied in dictionary form.
// Each dictionary is parsed through the configured StructureParser before
// the hook runs, under the same per-item failure net.
type StructureBatch struct {
	Parser     crystal.StructureParser
	Featurizer StructureFeaturizer
}

// Featurize computes features for the structure dictionaries in order. A
// missing Parser or Featurizer fails the whole call before any datapoint is
// touched.
func (b *StructureBatch) Featurize(ctx context.Context, dicts []crystal.StructureDict, opts ...Option) (feature.Matrix, error) {
	if b.Parser == nil {
		return nil, fmt.Errorf("%w: structure parser", ErrCapabilityMissing)
	}
	if b.Featurizer == nil {
		return nil, fmt.Errorf("%w: structure featurizer", ErrCapabilityMissing)
	}
	o := buildOptions(opts)
	return forEach(ctx, dicts, o, b.featurizeOne)
}

// FeaturizeOne featurizes a single structure dictionary. It is exactly
// equivalent to Featurize over a one-element slice.
func (b *StructureBatch) FeaturizeOne(ctx context.Context, d crystal.StructureDict, opts ...Option) (feature.Vector, error) {
	mat, err := b.Featurize(ctx, []crystal.StructureDict{d}, opts...)
	if err != nil {
		return nil, err
	}
	return mat[0], nil
}

func (b *StructureBatch) featurizeOne(ctx context.Context, d crystal.StructureDict) (feature.Vector, error) {
	s, err := b.Parser.ParseStructure(ctx, d)
	if err != nil {
		return nil, err
	}
	return b.Featurizer.FeaturizeStructure(ctx, s)
}
