// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense linear-algebra kernels used by the closed-form reducers:
//     matrix product and a cyclic Jacobi eigendecomposition for symmetric
//     matrices (covariance spectra).
//
// Determinism & Performance:
//   - Fixed pivot search order (row-major upper triangle) and fixed rotation
//     application order ⇒ identical spectra for identical inputs.
//   - Flat-buffer access only; no interface dispatch in the hot loops.

package matrix

import "math"

// Mul computes the matrix product a×b into a freshly allocated Dense.
// Stage 1 (Validate): non-nil operands, a.Cols == b.Rows.
// Stage 2 (Execute): i→k→j loop order for cache-friendly row-major access.
// Complexity: O(r·n·c) time, O(r·c) space.
func Mul(a, b *Dense) (*Dense, error) {
	// Validate operands.
	if a == nil || b == nil {
		return nil, validatorErrorf("Mul", ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, validatorErrorf("Mul", ErrDimensionMismatch)
	}

	r, n, c := a.r, a.c, b.c
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}

	// i→k→j keeps both a-row and b-row accesses sequential.
	var i, k, j int
	var aik float64
	for i = 0; i < r; i++ {
		for k = 0; k < n; k++ {
			aik = a.data[i*n+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < c; j++ {
				out.data[i*c+j] += aik * b.data[k*c+j]
			}
		}
	}

	return out, nil
}

// EigenSym computes eigenvalues and eigenvectors of a symmetric matrix via
// classical Jacobi rotations.
//
// Algorithm Outline:
//  1. Validate m symmetric within tol; copy m into working matrix A,
//     initialize accumulator V = I.
//  2. Repeat up to maxIter sweeps: find the largest off-diagonal |A[p,q]|;
//     if below tol, stop. Otherwise rotate rows/columns p,q of A to zero
//     A[p,q] and accumulate the rotation into V.
//  3. Eigenvalues are the diagonal of A; eigenvector k is column k of V.
//
// Inputs:
//   - m: symmetric *Dense (n×n). Not mutated.
//   - tol: convergence threshold on the largest off-diagonal magnitude;
//     tol <= 0 is replaced by DefaultEpsilon.
//   - maxIter: rotation budget; maxIter <= 0 defaults to 100·n².
//
// Returns:
//   - []float64: eigenvalues (diagonal order, unsorted).
//   - *Dense: orthogonal eigenvector matrix V (columns align with values).
//
// Errors:
//   - ErrNilMatrix / ErrNonSquare / ErrAsymmetry from validation.
//   - ErrEigenFailed when the off-diagonal mass does not drop below tol
//     within the budget.
//
// Complexity: O(maxIter·n²) worst case; convergence is typically quadratic.
//
// AI-Hints:
//   - Use ValidateSymmetric up front when the input comes from user data;
//     covariance matrices built by this package are symmetric by construction.
//   - Eigenvalues arrive unsorted; order them at the call site if needed.
func EigenSym(m *Dense, tol float64, maxIter int) ([]float64, *Dense, error) {
	// Stage 1 (Validate): symmetry implies non-nil and square.
	if tol <= 0 {
		tol = DefaultEpsilon
	}
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, validatorErrorf("EigenSym", err)
	}
	n := m.r
	if maxIter <= 0 {
		maxIter = 100 * n * n
	}

	// Stage 2 (Prepare): working copy A and identity accumulator V.
	a := m.CloneDense()
	v := &Dense{r: n, c: n, data: make([]float64, n*n)}
	var i, j int
	for i = 0; i < n; i++ {
		v.data[i*n+i] = 1.0
	}

	// Stage 3 (Execute): Jacobi rotations.
	var (
		iter           int
		p, q           int
		maxOff, off    float64
		app, aqq, apq  float64
		theta, t, c, s float64
		aip, aiq       float64
		vip, viq       float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// Pivot: largest |A[p,q]| over the upper triangle, fixed order.
		maxOff = 0.0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff < tol {
			break // converged
		}

		// Rotation parameters from A[p,p], A[q,q], A[p,q].
		app = a.data[p*n+p]
		aqq = a.data[q*n+q]
		apq = a.data[p*n+q]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// Apply the rotation to A, preserving symmetry explicitly.
		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+q]
			a.data[i*n+p], a.data[p*n+i] = c*aip-s*aiq, c*aip-s*aiq
			a.data[i*n+q], a.data[q*n+i] = s*aip+c*aiq, s*aip+c*aiq
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+q], a.data[q*n+p] = 0, 0

		// Accumulate the rotation into V.
		for i = 0; i < n; i++ {
			vip = v.data[i*n+p]
			viq = v.data[i*n+q]
			v.data[i*n+p] = c*vip - s*viq
			v.data[i*n+q] = s*vip + c*viq
		}
	}

	// Stage 4 (Finalize): re-check convergence and extract the spectrum.
	maxOff = 0.0
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			off = math.Abs(a.data[i*n+j])
			if off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, validatorErrorf("EigenSym", ErrEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, v, nil
}
