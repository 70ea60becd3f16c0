package featurize

import (
	"context"

	"github.com/crestlab/featurize/internal/feature"
)

// UserDefined passes through caller-computed feature columns. Each
// datapoint is a map of named feature values; the configured fields are
// selected in order into the output vector. A datapoint missing any
// configured field fails with a domain error, so Batch degrades it to an
// empty vector like any other per-item failure.
type UserDefined struct {
	Fields []string
}

// FeaturizeDatapoint implements DatapointFeaturizer.
func (u *UserDefined) FeaturizeDatapoint(_ context.Context, point map[string]float64) (feature.Vector, error) {
	vec := make(feature.Vector, 0, len(u.Fields))
	for _, field := range u.Fields {
		val, ok := point[field]
		if !ok {
			return nil, Domainf("datapoint has no field %q", field)
		}
		vec = append(vec, val)
	}
	return vec, nil
}
