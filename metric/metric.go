// Package metric provides the pairwise distance functions consumed by the
// lowdim embedding algorithms, plus a pairwise distance-matrix builder.
//
// What:
//
//   - Metric — a function (a, b) → non-negative real over equal-length vectors.
//   - SquaredEuclidean — the default kernel for affinity calibration (cheaper
//     than Euclidean and monotone-equivalent for neighbor ranking).
//   - Euclidean — for auxiliary geometric checks.
//   - PairwiseMatrix — builds the symmetric, zero-diagonal distance matrix Δ
//     from a row-per-point input matrix in one deterministic pass.
//
// Errors:
//
//   - ErrVectorLength: the two vectors passed to a Metric differ in length.
//   - matrix sentinels propagate unchanged from PairwiseMatrix allocation.
//
// Determinism:
//
//   - Fixed i<j traversal in PairwiseMatrix; each pair is computed once and
//     mirrored, so Δ is exactly symmetric bit-for-bit.
package metric

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lowdim/matrix"
)

// ErrVectorLength indicates that a Metric received vectors of unequal length.
var ErrVectorLength = errors.New("metric: vector length mismatch")

// Metric maps two equal-length vectors to a non-negative dissimilarity.
// Implementations must be symmetric in their arguments and return
// ErrVectorLength when len(a) != len(b).
type Metric func(a, b []float64) (float64, error)

// SquaredEuclidean returns Σ_k (a[k]-b[k])².
// The default calibration metric: monotone in Euclidean distance, no sqrt.
// Complexity: O(len(a)).
func SquaredEuclidean(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("SquaredEuclidean(%d,%d): %w", len(a), len(b), ErrVectorLength)
	}

	var s, d float64
	for k := range a {
		d = a[k] - b[k]
		s += d * d
	}

	return s, nil
}

// Euclidean returns √(Σ_k (a[k]-b[k])²).
// Complexity: O(len(a)).
func Euclidean(a, b []float64) (float64, error) {
	s, err := SquaredEuclidean(a, b)
	if err != nil {
		return 0, fmt.Errorf("Euclidean(%d,%d): %w", len(a), len(b), ErrVectorLength)
	}

	return math.Sqrt(s), nil
}

// PairwiseMatrix computes the N×N distance matrix of the rows of x under m.
// Stage 1 (Validate): non-nil inputs.
// Stage 2 (Execute): for each i<j compute m(row_i, row_j) once, mirror into
// (j,i); the diagonal stays zero.
// Complexity: O(N²·D) time, O(N²) space.
func PairwiseMatrix(x *matrix.Dense, m Metric) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, fmt.Errorf("PairwiseMatrix: %w", err)
	}
	if m == nil {
		m = SquaredEuclidean
	}

	n := x.Rows()
	delta, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("PairwiseMatrix: %w", err)
	}

	var i, j int
	var ri, rj []float64
	var d float64
	for i = 0; i < n; i++ {
		ri, _ = x.RowView(i) // i is always in range here
		for j = i + 1; j < n; j++ {
			rj, _ = x.RowView(j)
			d, err = m(ri, rj)
			if err != nil {
				return nil, fmt.Errorf("PairwiseMatrix(%d,%d): %w", i, j, err)
			}
			_ = delta.Set(i, j, d) // indices proven in range by the loops
			_ = delta.Set(j, i, d)
		}
	}

	return delta, nil
}
