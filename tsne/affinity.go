package tsne

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lowdim/matrix"
)

// computeAffinities builds the row-stochastic conditional affinity matrix
// P_raw from the distance matrix delta.
//
// For each row i a positive precision β_i is binary-searched so that the
// Shannon entropy of the row's Gaussian kernel hits log(perplexity) within
// entropyTol, in at most maxBetaTries tries:
//
//	p_{j|i} = exp(-β_i · Δ[i,j])            (j ≠ i)
//	H       = log(Σ_j p) + β_i·(Σ_j Δ[i,j]·p) / Σ_j p
//
// Search policy: bounds start at (−∞, +∞); with one known bound β is doubled
// or halved, with both known it bisects. Degenerate rows (perplexity ≥ N,
// duplicate points) simply exhaust the try budget and keep the last β — a
// quality concern, never an error.
//
// After the search each row is divided by the accepted kernel mass Σ_j p
// BEFORE p_{i|i} is pinned to selfAffinity: the raw mass shrinks like
// exp(-β·d_min) for sharp kernels, and pinning an absolute constant against
// an unnormalized row would let the self term absorb a material share of it
// and drag the calibrated entropy off target. A final L1 pass restores an
// exact row sum of 1 (and turns a fully underflowed row into a self-spike,
// the stable policy for degenerate inputs).
//
// Complexity: O(N²·maxBetaTries) time, O(N²) space.
func computeAffinities(delta *matrix.Dense, perplexity float64) (*matrix.Dense, error) {
	n := delta.Rows()
	p, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("computeAffinities: %w", err)
	}
	target := math.Log(perplexity)

	var (
		i, j, try        int
		beta             float64
		betaMin, betaMax float64
		sumP, sumDP      float64
		h, diff, v       float64
	)
	for i = 0; i < n; i++ {
		di, _ := delta.RowView(i) // i in range by loop bounds
		pi, _ := p.RowView(i)

		// Binary-search β_i toward the entropy target.
		beta = 1.0
		betaMin, betaMax = math.Inf(-1), math.Inf(1)
		for try = 0; try < maxBetaTries; try++ {
			// Evaluate the kernel row and its entropy terms for current β.
			sumP, sumDP = 0, 0
			for j = 0; j < n; j++ {
				if j == i {
					pi[j] = 0
					continue
				}
				v = math.Exp(-beta * di[j])
				pi[j] = v
				sumP += v
				sumDP += di[j] * v
			}
			h = 0
			if sumP > 0 {
				h = math.Log(sumP) + beta*sumDP/sumP
			}

			diff = h - target
			if math.Abs(diff) < entropyTol {
				break // calibrated
			}
			if diff > 0 {
				// Entropy too high ⇒ neighborhood too wide ⇒ sharpen.
				betaMin = beta
				if math.IsInf(betaMax, 1) {
					beta *= 2
				} else {
					beta = (beta + betaMax) / 2
				}
			} else {
				// Entropy too low ⇒ widen.
				betaMax = beta
				if math.IsInf(betaMin, -1) {
					beta /= 2
				} else {
					beta = (beta + betaMin) / 2
				}
			}
		}

		// Normalize by the accepted kernel mass so the self term's share of
		// the row stays ~selfAffinity regardless of β's scale.
		if sumP > 0 {
			v = 1.0 / sumP
			for j = 0; j < n; j++ {
				pi[j] *= v
			}
		}

		// Pin the self-affinity so no row can collapse to all zeros.
		pi[i] = selfAffinity
	}

	// Row-stochastic: every conditional distribution sums to 1.
	matrix.NormalizeRowsL1InPlace(p)

	return p, nil
}
