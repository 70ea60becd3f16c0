package featurize

import (
	"context"
	"fmt"

	"github.com/crestlab/featurize/internal/crystal"
	"github.com/crestlab/featurize/internal/feature"
)

// CompositionFeaturizer computes a feature vector for one parsed crystal
// composition.
type CompositionFeaturizer interface {
	FeaturizeComposition(ctx context.Context, c *crystal.Composition) (feature.Vector, error)
}

// CompositionFunc adapts a plain function to CompositionFeaturizer.
type CompositionFunc func(ctx context.Context, c *crystal.Composition) (feature.Vector, error)

// FeaturizeComposition implements CompositionFeaturizer.
func (fn CompositionFunc) FeaturizeComposition(ctx context.Context, c *crystal.Composition) (feature.Vector, error) {
	return fn(ctx, c)
}

// CompositionBatch featurizes crystal compositions supplied as formula
// strings (e.g. "MoS2"). Each formula is parsed through the configured
// CompositionParser before the hook runs, under the same per-item failure
// net.
type CompositionBatch struct {
	Parser     crystal.CompositionParser
	Featurizer CompositionFeaturizer
}

// Featurize computes features for the composition strings in order. A
// missing Parser or Featurizer fails the whole call before any datapoint is
// touched.
func (b *CompositionBatch) Featurize(ctx context.Context, formulas []string, opts ...Option) (feature.Matrix, error) {
	if b.Parser == nil {
		return nil, fmt.Errorf("%w: composition parser", ErrCapabilityMissing)
	}
	if b.Featurizer == nil {
		return nil, fmt.Errorf("%w: composition featurizer", ErrCapabilityMissing)
	}
	o := buildOptions(opts)
	return forEach(ctx, formulas, o, b.featurizeOne)
}

// FeaturizeOne featurizes a single composition string. It is exactly
// equivalent to Featurize over a one-element slice.
func (b *CompositionBatch) FeaturizeOne(ctx context.Context, formula string, opts ...Option) (feature.Vector, error) {
	mat, err := b.Featurize(ctx, []string{formula}, opts...)
	if err != nil {
		return nil, err
	}
	return mat[0], nil
}

func (b *CompositionBatch) featurizeOne(ctx context.Context, formula string) (feature.Vector, error) {
	c, err := b.Parser.ParseComposition(ctx, formula)
	if err != nil {
		return nil, err
	}
	return b.Featurizer.FeaturizeComposition(ctx, c)
}
