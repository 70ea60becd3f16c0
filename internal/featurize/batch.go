// Package featurize provides batch featurization templates: a sequential
// loop that isolates per-datapoint failures, specialized variants for
// molecules, crystal structures and crystal compositions, and a pooled
// pairwise featurizer for molecule/protein complexes.
//
// Each variant delegates the actual feature computation to a single-item
// hook supplied by the caller. A hook failure shaped like a DomainError is
// recovered locally: the batch logs a warning and substitutes an empty
// vector in that datapoint's slot, so the output stays index-aligned with
// the input. Any other error aborts the batch.
package featurize

import (
	"context"
	"fmt"

	"github.com/crestlab/featurize/internal/feature"
)

// DatapointFeaturizer computes a feature vector for one datapoint of an
// arbitrary type. Implementations must report input-shaped failures as
// domain errors (see Domainf) so Batch can recover them per item.
type DatapointFeaturizer[T any] interface {
	FeaturizeDatapoint(ctx context.Context, point T) (feature.Vector, error)
}

// DatapointFunc adapts a plain function to DatapointFeaturizer.
type DatapointFunc[T any] func(ctx context.Context, point T) (feature.Vector, error)

// FeaturizeDatapoint implements DatapointFeaturizer.
func (fn DatapointFunc[T]) FeaturizeDatapoint(ctx context.Context, point T) (feature.Vector, error) {
	return fn(ctx, point)
}

// Batch featurizes datapoints strictly in input order. The returned matrix
// has exactly one row per datapoint: a feature vector on success, an empty
// vector where the hook failed with a domain error. Non-domain errors,
// including context cancellation, abort the batch.
func Batch[T any](ctx context.Context, f DatapointFeaturizer[T], points []T, opts ...Option) (feature.Matrix, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: datapoint featurizer", ErrCapabilityMissing)
	}
	o := buildOptions(opts)
	return forEach(ctx, points, o, f.FeaturizeDatapoint)
}

// One featurizes a single datapoint. It is exactly equivalent to Batch over
// a one-element slice.
func One[T any](ctx context.Context, f DatapointFeaturizer[T], point T, opts ...Option) (feature.Vector, error) {
	mat, err := Batch(ctx, f, []T{point}, opts...)
	if err != nil {
		return nil, err
	}
	return mat[0], nil
}

// forEach is the shared iteration template behind every batch variant.
func forEach[T any](ctx context.Context, points []T, o options, one func(context.Context, T) (feature.Vector, error)) (feature.Matrix, error) {
	total := len(points)
	mat := make(feature.Matrix, 0, total)

	for i, point := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if i%o.logEveryN == 0 {
			o.logger.Info("featurizing datapoint", "index", i, "total", total)
		}

		vec, err := one(ctx, point)
		if err != nil {
			if !IsDomainError(err) {
				return nil, fmt.Errorf("featurizing datapoint %d: %w", i, err)
			}
			o.logger.Warn("failed to featurize datapoint, appending empty vector",
				"index", i, "error", err)
			vec = feature.Vector{}
		}
		mat = append(mat, vec)

		if o.progress != nil {
			o.progress(i+1, total)
		}
	}

	return mat, nil
}
