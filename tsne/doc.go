// Package tsne implements t-distributed stochastic neighbor embedding:
// a deterministic, seeded optimizer that embeds N high-dimensional points
// into a low-dimensional space while preserving local neighborhoods.
//
// What:
//
//   - TSNE — the session. Owns the immutable input X, the fixed target
//     distribution P, and the evolving embedding Y plus its optimizer state.
//   - Init — one-time setup: distance matrix, perplexity-calibrated
//     affinities, symmetrization, noise-seeded embedding.
//   - Transform — runs a fixed number of gradient steps, returns Y.
//   - Generator — a lazy, finite, pull-driven Stream of per-step snapshots.
//   - Cost — KL divergence between P and the current low-dimensional Q.
//
// Pipeline:
//
//	X (N×D) → Δ (N×N distances) → binary-search β per row (entropy ≡
//	log perplexity) → row-stochastic P_raw → symmetrize to P (ΣP = 1) →
//	gradient descent on Y with early exaggeration, adaptive per-parameter
//	gains and momentum, re-centering after every step.
//
// Determinism:
//
//   - Same input, options and seed ⇒ same embedding, bit-for-bit. All loops
//     run in fixed order; randomness enters only through rng.Source at Init.
//
// Contracts worth knowing:
//
//   - Step/Transform return the LIVE embedding matrix; it is mutated by
//     subsequent steps. Clone it if you need a stable snapshot.
//   - Stream.Embedding is likewise a live view; Stream.Snapshot copies.
//   - Re-running Init intentionally recomputes P and reseeds the embedding.
//
// Errors:
//
//   - ErrNotInitialized: Step/Transform/Generator/Cost before Init.
//   - ErrBadOptions: non-positive perplexity, learning rate or output dims.
//   - matrix.ErrNonSquare and friends: malformed precomputed distance input.
//
// Complexity per step: O(N²·d) time, O(N²) resident memory (target + one
// scratch matrix). Perplexity calibration: O(N²·tries) once at Init.
package tsne
