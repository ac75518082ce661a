// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms the embedding algorithms lean on
//     (in-place column centering, in-place L1 row normalization, total sum,
//     sample covariance) as deterministic flat-buffer kernels.
//
// Determinism & Performance:
//   - Fixed i→j traversal for all loops; Dense flat-slice access throughout.
//   - In-place variants exist because the t-SNE optimizer re-centers the
//     embedding after every step and must not allocate per step.

package matrix

import "math"

// CenterColumnsInPlace subtracts the per-column mean from every element of d.
// Stage 1 (Execute): accumulate column sums in a deterministic row sweep.
// Stage 2 (Finalize): convert sums to means, broadcast-subtract over rows.
// Returns the column means (len == Cols) so callers can un-center later.
// Complexity: O(r*c) time, O(c) extra space.
//
// AI-Hints:
//   - Safe to call every iteration of a gradient loop; it never allocates
//     beyond the returned means slice.
func CenterColumnsInPlace(d *Dense) []float64 {
	r, c := d.r, d.c
	means := make([]float64, c)

	// Accumulate per-column sums.
	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			means[j] += d.data[base+j]
		}
	}

	// Convert to means.
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	// Broadcast-subtract.
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			d.data[base+j] -= means[j]
		}
	}

	return means
}

// NormalizeRowsL1InPlace scales each row of d to unit L1 norm when possible.
// Degenerate rows (norm == 0) are left unchanged — a stable, error-free
// policy that keeps row-stochastic preprocessing total.
// Returns the original L1 norms (len == Rows).
// Complexity: O(r*c) time, O(r) extra space.
func NormalizeRowsL1InPlace(d *Dense) []float64 {
	r, c := d.r, d.c
	norms := make([]float64, r)

	var i, j, base int
	var s float64
	for i = 0; i < r; i++ {
		base = i * c

		// Row L1 norm.
		s = 0.0
		for j = 0; j < c; j++ {
			s += math.Abs(d.data[base+j])
		}
		norms[i] = s
		if s == 0 {
			continue // degenerate row stays as-is
		}

		// Scale the row to sum 1 in absolute value.
		inv := 1.0 / s
		for j = 0; j < c; j++ {
			d.data[base+j] *= inv
		}
	}

	return norms
}

// Sum returns the total of all elements of d.
// Complexity: O(r*c).
func Sum(d *Dense) float64 {
	var s float64
	for _, v := range d.data {
		s += v
	}

	return s
}

// Covariance computes the sample covariance (Xcᵀ·Xc)/(r-1) of a
// column-centered matrix Xc. Compose with CenterColumnsInPlace:
//
//	Xc := X.CloneDense()
//	matrix.CenterColumnsInPlace(Xc)
//	cov, err := matrix.Covariance(Xc)
//
// Stage 1 (Validate): Xc non-nil with at least 2 rows (sample estimator).
// Stage 2 (Execute): symmetric accumulation over the upper triangle, then
// mirror — half the multiplications of the naive Gram loop.
// Returns a c×c symmetric *Dense.
// Complexity: O(r*c²) time, O(c²) space.
func Covariance(xc *Dense) (*Dense, error) {
	// Validate input.
	if xc == nil {
		return nil, validatorErrorf("Covariance", ErrNilMatrix)
	}
	if xc.r < 2 {
		return nil, validatorErrorf("Covariance", ErrBadShape)
	}

	r, c := xc.r, xc.c
	cov := &Dense{r: c, c: c, data: make([]float64, c*c)}

	// Upper-triangle accumulation in fixed k→i→j order.
	var k, i, j, base int
	var s float64
	inv := 1.0 / float64(r-1)
	for i = 0; i < c; i++ {
		for j = i; j < c; j++ {
			s = 0.0
			for k = 0; k < r; k++ {
				base = k * c
				s += xc.data[base+i] * xc.data[base+j]
			}
			s *= inv
			cov.data[i*c+j] = s
			cov.data[j*c+i] = s // mirror for exact symmetry
		}
	}

	return cov, nil
}
