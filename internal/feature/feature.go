// Package feature provides the numeric value types produced by featurizers.
package feature

// Vector is a numeric feature vector for a single datapoint.
type Vector []float64

// Dimensions returns the dimensionality of the vector.
func (v Vector) Dimensions() int {
	return len(v)
}

// IsEmpty reports whether the vector carries no features. Batch featurization
// substitutes an empty vector for datapoints that failed to featurize.
func (v Vector) IsEmpty() bool {
	return len(v) == 0
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Matrix is an ordered collection of feature vectors, index-aligned with the
// input collection it was computed from. Rows may have heterogeneous lengths
// when individual datapoints failed; callers that need a rectangular matrix
// must filter or pad it themselves.
type Matrix []Vector

// Rows returns the number of rows in the matrix.
func (m Matrix) Rows() int {
	return len(m)
}

// Uniform reports whether all non-empty rows share a single width, and that
// width. An all-empty or empty matrix is uniform with width 0.
func (m Matrix) Uniform() (int, bool) {
	width := 0
	for _, row := range m {
		if row.IsEmpty() {
			continue
		}
		if width == 0 {
			width = len(row)
			continue
		}
		if len(row) != width {
			return 0, false
		}
	}
	return width, true
}

// Failed returns the indices of rows that hold an empty vector.
func (m Matrix) Failed() []int {
	var failed []int
	for i, row := range m {
		if row.IsEmpty() {
			failed = append(failed, i)
		}
	}
	return failed
}
