package tsne

import (
	"math"

	"github.com/katalvlaran/lowdim/matrix"
)

// studentNumerators fills t.num with the Student-t kernel (degree 1)
// numerators of the current embedding and returns their total:
//
//	num[i,j] = 1 / (1 + ‖y_i − y_j‖²)   (i ≠ j; diagonal stays 0)
//	qsum     = Σ_{i≠j} num[i,j]
//
// Each pair is computed once and mirrored, so num is exactly symmetric.
// Shared by step (gradient) and Cost (KL divergence).
// Complexity: O(N²·d) time, zero allocations.
func (t *TSNE) studentNumerators() float64 {
	n, d := t.n, t.opts.OutputDims

	var (
		i, j, k     int
		dist2, diff float64
		q, qsum     float64
	)
	for i = 0; i < n; i++ {
		yi, _ := t.y.RowView(i) // in range by loop bounds
		ni, _ := t.num.RowView(i)
		ni[i] = 0
		for j = i + 1; j < n; j++ {
			yj, _ := t.y.RowView(j)
			dist2 = 0
			for k = 0; k < d; k++ {
				diff = yi[k] - yj[k]
				dist2 += diff * diff
			}
			q = 1.0 / (1.0 + dist2)

			nj, _ := t.num.RowView(j)
			ni[j], nj[i] = q, q
			qsum += 2 * q
		}
	}

	return qsum
}

// sign is the three-way sign: −1, 0 or +1. Zero is its own sign class,
// which matters for the gain schedule below.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// updatedGain applies the adaptive gain schedule to one parameter: decay
// when the fresh gradient's sign agrees with the carried velocity's, bump
// on disagreement (zero velocity disagrees with any nonzero gradient),
// floored at minGain.
func updatedGain(gain, grad, vel float64) float64 {
	if sign(grad) == sign(vel) {
		gain *= gainDecay
	} else {
		gain += gainBump
	}
	if gain < minGain {
		gain = minGain
	}

	return gain
}

// exaggerationAt returns the target-term multiplier for the given 1-based
// step number: 4 for steps 1..exaggerationUntil-1, 1 from the
// exaggerationUntil-th step on.
func exaggerationAt(iter int) float64 {
	if iter < exaggerationUntil {
		return exaggeration
	}

	return 1.0
}

// momentumAt returns the momentum coefficient for the given 1-based step
// number: momentumEarly for steps 1..momentumSwitch-1, momentumLate from
// the momentumSwitch-th step on.
func momentumAt(iter int) float64 {
	if iter < momentumSwitch {
		return momentumEarly
	}

	return momentumLate
}

// step performs one gradient update on the embedding. The iteration counter
// is advanced at the top of the step, so the schedules below see 1-based
// step numbers. Callers guarantee the session is initialized.
//
// Update rule per point i, dimension k:
//
//	g_i[k]  = 4 · Σ_{j≠i} (pmul·P[i,j] − num[i,j]/qsum) · num[i,j] · (y_i[k] − y_j[k])
//	gain    += gainBump   if sign(g) ≠ sign(velocity)
//	gain    ×= gainDecay  otherwise          (floored at minGain)
//	vel'    = momentum·vel − η·gain·g
//	y'      = y + vel'
//
// pmul is the early-exaggeration factor (4 for steps 1..99, 1 from the
// 100th step) and the momentum coefficient switches 0.5 → 0.8 at the 250th
// step. After the update the embedding is re-centered per dimension: the
// gradient is translation-invariant, so drift must be removed to keep Y
// bounded and comparable.
//
// Returns the live (shared, in-place) embedding.
// Complexity: O(N²·d) time, zero allocations.
func (t *TSNE) step() *matrix.Dense {
	n, d := t.n, t.opts.OutputDims
	t.iter++

	// 1) Low-dimensional kernel.
	qsum := t.studentNumerators()

	// 2) Early exaggeration schedule.
	pmul := exaggerationAt(t.iter)

	// 3) Pairwise-interaction gradient.
	var (
		i, j, k int
		mult    float64
	)
	for i = 0; i < n; i++ {
		gi, _ := t.grad.RowView(i) // in range by loop bounds
		yi, _ := t.y.RowView(i)
		pi, _ := t.p.RowView(i)
		ni, _ := t.num.RowView(i)

		for k = 0; k < d; k++ {
			gi[k] = 0
		}
		for j = 0; j < n; j++ {
			if j == i {
				continue
			}
			yj, _ := t.y.RowView(j)
			mult = 4 * (pmul*pi[j] - ni[j]/qsum) * ni[j]
			for k = 0; k < d; k++ {
				gi[k] += mult * (yi[k] - yj[k])
			}
		}
	}

	// 4) Adaptive gains, momentum, position update.
	momentum := momentumAt(t.iter)
	eta := t.opts.LearningRate
	for i = 0; i < n; i++ {
		gi, _ := t.grad.RowView(i)
		vi, _ := t.vel.RowView(i)
		ai, _ := t.gains.RowView(i)
		yi, _ := t.y.RowView(i)
		for k = 0; k < d; k++ {
			ai[k] = updatedGain(ai[k], gi[k], vi[k])
			vi[k] = momentum*vi[k] - eta*ai[k]*gi[k]
			yi[k] += vi[k]
		}
	}

	// 5) Remove translational drift.
	matrix.CenterColumnsInPlace(t.y)

	return t.y
}

// Cost returns the Kullback–Leibler divergence KL(P ‖ Q) of the current
// embedding — the objective the optimizer descends. Both distributions are
// floored at costEps inside the logarithm; the i=j terms are excluded.
// Returns ErrNotInitialized before Init.
// Complexity: O(N²·d).
func (t *TSNE) Cost() (float64, error) {
	if !t.ready {
		return 0, ErrNotInitialized
	}

	qsum := t.studentNumerators()

	var (
		i, j     int
		p, q, kl float64
	)
	for i = 0; i < t.n; i++ {
		pi, _ := t.p.RowView(i) // in range by loop bounds
		ni, _ := t.num.RowView(i)
		for j = 0; j < t.n; j++ {
			if j == i {
				continue
			}
			p = math.Max(pi[j], costEps)
			q = math.Max(ni[j]/qsum, costEps)
			kl += pi[j] * math.Log(p/q)
		}
	}

	return kl, nil
}
