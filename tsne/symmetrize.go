package tsne

import "github.com/katalvlaran/lowdim/matrix"

// symmetrizeInPlace folds the directed conditionals into the fixed joint
// target distribution, overwriting praw:
//
//	P[i,j] = (p_{j|i} + p_{i|j}) / (2N)
//
// Invariants produced (and relied on by the optimizer for the whole run):
// P symmetric, non-negative, Σ_ij P[i,j] = 1. Called exactly once per Init;
// the result is never mutated afterwards.
//
// Complexity: O(N²) time, zero extra space.
func symmetrizeInPlace(praw *matrix.Dense) *matrix.Dense {
	n := praw.Rows()
	inv := 1.0 / (2.0 * float64(n))

	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		pi, _ := praw.RowView(i) // in range by loop bounds
		for j = i; j < n; j++ {
			pj, _ := praw.RowView(j)
			v = (pi[j] + pj[i]) * inv
			pi[j], pj[i] = v, v
		}
	}

	return praw
}
