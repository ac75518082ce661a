// Package lowdim is your in-memory toolkit for embedding high-dimensional
// data into low-dimensional spaces — deterministically and reproducibly.
//
// 🚀 What is lowdim?
//
//	A compact, pure-Go dimensionality-reduction library built around:
//		• Stochastic neighbor embedding (t-SNE): perplexity-calibrated
//		  affinities, symmetrized targets, adaptive gradient descent
//		• Principal component analysis: closed-form projection via
//		  covariance + Jacobi eigendecomposition
//		• Dense matrix substrate: row-major float64 storage, validators,
//		  statistical kernels
//		• Explicit metrics & randomness: no globals, same seed ⇒ same result
//
// ✨ Why choose lowdim?
//
//   - Deterministic by construction – fixed loop orders, explicit seeds
//   - Rock-solid guarantees – sentinel errors, in-code invariants & docs
//   - Pure Go – no cgo, no hidden deps
//   - Honest numerics – every epsilon and schedule constant is named
//
// Everything is organized under flat subpackages:
//
//	matrix/ — Matrix interface, *Dense storage, centering, covariance, eigen
//	metric/ — pairwise distance functions & distance-matrix builder
//	rng/    — deterministic seeded randomness with stream derivation
//	tsne/   — the t-SNE session: Init, Transform, Generator, Cost
//	pca/    — principal component projection on the same substrate
//
// Quick sketch:
//
//	X (N×D) ──metric──▶ Δ (N×N) ──perplexity──▶ P (N×N, Σ=1)
//	                                              │
//	                              Y (N×d) ◀──gradient descent──┘
//
// Dive into each package's doc.go for contracts, complexity and examples.
//
//	go get github.com/katalvlaran/lowdim
package lowdim
