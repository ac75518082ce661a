// Package pca provides principal component analysis on the lowdim matrix
// substrate: closed-form linear dimensionality reduction via column
// centering, sample covariance and a Jacobi eigendecomposition.
//
// What:
//
//   - Fit(x, dims)  — learn the top-`dims` principal directions of x.
//   - Project(x)    — map points into the principal subspace.
//   - ExplainedVariance — the sorted eigenvalue spectrum of the model.
//
// Why:
//
//   - A cheap, deterministic baseline next to tsne: no iterations, no seed.
//   - Because it is non-iterative it deliberately does NOT implement
//     tsne.Reducer; there is nothing to step or stream.
//
// Errors:
//
//   - ErrBadComponents: dims < 1 or dims > input columns.
//   - matrix sentinels (ErrNilMatrix, ErrBadShape, ErrEigenFailed, ...)
//     propagate wrapped from the substrate.
//
// Complexity: Fit O(N·D² + sweeps·D²), Project O(N·D·dims).
package pca

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lowdim/matrix"
)

// ErrBadComponents indicates a requested component count outside [1, D].
var ErrBadComponents = errors.New("pca: component count out of range")

// eigenTol is the Jacobi convergence threshold for covariance spectra.
const eigenTol = 1e-10

// PCA is a fitted model: column means of the training data and the top-k
// principal directions as a D×k matrix (one component per column).
type PCA struct {
	means      []float64
	components *matrix.Dense
	variance   []float64 // eigenvalues, descending, len == k
}

// Fit learns a PCA model from x (one point per row).
// Stage 1 (Validate): non-nil x, 1 <= dims <= D, at least 2 rows.
// Stage 2 (Execute): center a working copy, form the covariance, solve its
// spectrum with Jacobi, sort eigenpairs by descending eigenvalue.
// Stage 3 (Finalize): keep the top-`dims` directions and their variances.
// Complexity: O(N·D²) + Jacobi sweeps.
func Fit(x *matrix.Dense, dims int) (*PCA, error) {
	// Validate inputs.
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, fmt.Errorf("pca.Fit: %w", err)
	}
	d := x.Cols()
	if dims < 1 || dims > d {
		return nil, fmt.Errorf("pca.Fit(dims=%d, D=%d): %w", dims, d, ErrBadComponents)
	}

	// Center a working copy; x itself stays untouched.
	xc := x.CloneDense()
	means := matrix.CenterColumnsInPlace(xc)

	// Covariance spectrum.
	cov, err := matrix.Covariance(xc)
	if err != nil {
		return nil, fmt.Errorf("pca.Fit: %w", err)
	}
	eigs, vecs, err := matrix.EigenSym(cov, eigenTol, 0)
	if err != nil {
		return nil, fmt.Errorf("pca.Fit: %w", err)
	}

	// Order eigenpairs by descending eigenvalue; ties keep index order for
	// determinism.
	order := make([]int, d)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return eigs[order[a]] > eigs[order[b]] })

	// Assemble the D×dims component matrix (column c = eigenvector order[c]).
	comp, err := matrix.NewDense(d, dims)
	if err != nil {
		return nil, fmt.Errorf("pca.Fit: %w", err)
	}
	variance := make([]float64, dims)
	var row, c int
	var v float64
	for c = 0; c < dims; c++ {
		variance[c] = eigs[order[c]]
		for row = 0; row < d; row++ {
			v, _ = vecs.At(row, order[c]) // indices in range by construction
			_ = comp.Set(row, c, v)
		}
	}

	return &PCA{means: means, components: comp, variance: variance}, nil
}

// Project maps the rows of x into the fitted principal subspace:
// (x − means) × components. Returns an N×k matrix.
// Returns matrix.ErrDimensionMismatch when x's width differs from the
// training width.
// Complexity: O(N·D·k).
func (p *PCA) Project(x *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, fmt.Errorf("pca.Project: %w", err)
	}
	if x.Cols() != len(p.means) {
		return nil, fmt.Errorf("pca.Project(D=%d, want %d): %w", x.Cols(), len(p.means), matrix.ErrDimensionMismatch)
	}

	// Center by the TRAINING means (not x's own) and project.
	xc := x.CloneDense()
	var i, j int
	for i = 0; i < xc.Rows(); i++ {
		ri, _ := xc.RowView(i) // in range by loop bounds
		for j = range ri {
			ri[j] -= p.means[j]
		}
	}

	return matrix.Mul(xc, p.components)
}

// ExplainedVariance returns the descending eigenvalues retained by the
// model, one per component. The slice is a copy.
func (p *PCA) ExplainedVariance() []float64 {
	out := make([]float64, len(p.variance))
	copy(out, p.variance)

	return out
}

// FitProject is a convenience composing Fit and Project on the same data.
func FitProject(x *matrix.Dense, dims int) (*matrix.Dense, error) {
	model, err := Fit(x, dims)
	if err != nil {
		return nil, err
	}

	return model.Project(x)
}
