package featurize

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/crestlab/featurize/internal/feature"
)

// ComplexFeaturizer computes a feature vector for one molecule/protein
// complex, identified by a pair of file paths. Returning a nil vector with
// a nil error is the null sentinel for a load or parse failure: the pair is
// excluded from the result and its index recorded. Returning a non-nil
// error aborts the whole call.
type ComplexFeaturizer interface {
	FeaturizeComplex(ctx context.Context, molFile, proteinFile string) (feature.Vector, error)
}

// ComplexFunc adapts a plain function to ComplexFeaturizer.
type ComplexFunc func(ctx context.Context, molFile, proteinFile string) (feature.Vector, error)

// FeaturizeComplex implements ComplexFeaturizer.
func (fn ComplexFunc) FeaturizeComplex(ctx context.Context, molFile, proteinFile string) (feature.Vector, error) {
	return fn(ctx, molFile, proteinFile)
}

// Complexes featurizes matched (molecule file, protein file) pairs over a
// worker pool scoped to this call. Pairing is positional: molFiles[i] with
// proteinFiles[i]. Results are aggregated in submission order; pairs whose
// hook returned the null sentinel are excluded from the matrix and their
// input indices returned as the failure list, in ascending order.
//
// Unlike the batch templates, hook errors are not recovered: the first
// error (by input index) cancels outstanding work and propagates once the
// pool has drained.
func Complexes(ctx context.Context, f ComplexFeaturizer, molFiles, proteinFiles []string, opts ...Option) (feature.Matrix, []int, error) {
	if f == nil {
		return nil, nil, fmt.Errorf("%w: complex featurizer", ErrCapabilityMissing)
	}
	if len(molFiles) != len(proteinFiles) {
		return nil, nil, fmt.Errorf("%w: %d molecule files, %d protein files",
			ErrLengthMismatch, len(molFiles), len(proteinFiles))
	}
	o := buildOptions(opts)

	total := len(molFiles)
	vecs := make([]feature.Vector, total)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		done     int
		firstErr error
		errIndex int
	)
	fail := func(i int, err error) {
		mu.Lock()
		// Prefer the real failure: cancelling the pool makes in-flight
		// pairs fail with context.Canceled, which must not mask the
		// error that triggered the cancellation.
		canceled := errors.Is(err, context.Canceled)
		switch {
		case firstErr == nil:
			firstErr, errIndex = err, i
		case errors.Is(firstErr, context.Canceled) && !canceled:
			firstErr, errIndex = err, i
		case !canceled && i < errIndex:
			firstErr, errIndex = err, i
		}
		mu.Unlock()
		cancel()
	}

	workers := o.workers
	if workers > total {
		workers = total
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				o.logger.Info("featurizing complex", "index", i, "total", total)
				vec, err := f.FeaturizeComplex(ctx, molFiles[i], proteinFiles[i])
				if err != nil {
					fail(i, err)
					continue
				}
				vecs[i] = vec
				mu.Lock()
				done++
				n := done
				mu.Unlock()
				if o.progress != nil {
					o.progress(n, total)
				}
			}
		}()
	}

	// Submit pairs in input order; stop feeding once cancelled.
feed:
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, nil, fmt.Errorf("featurizing complex %d: %w", errIndex, firstErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	features := make(feature.Matrix, 0, total)
	var failures []int
	for i, vec := range vecs {
		if vec == nil {
			failures = append(failures, i)
			continue
		}
		features = append(features, vec)
	}
	return features, failures, nil
}
