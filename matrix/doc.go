// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric substrate for the embedding
// algorithms in lowdim: row-major float64 storage, centralized validators,
// statistical kernels, and a Jacobi eigendecomposition.
//
// What:
//
//   - Matrix — minimal read/write interface (Rows, Cols, At, Set, Clone).
//   - *Dense — the canonical row-major flat-slice implementation. All kernels
//     in this package operate on *Dense directly; the interface exists for
//     callers that want to wrap alternative storage.
//   - Validators — single source of truth for shape/nil/symmetry checks
//     (ValidateSquare, ValidateSymmetric, ValidateZeroDiagonal, ...).
//   - Kernels — CenterColumnsInPlace, NormalizeRowsL1InPlace, Sum,
//     Covariance, Mul, EigenSym.
//
// Why:
//
//   - Embedding optimizers mutate millions of entries per run; a flat
//     backing slice with RowView access keeps the hot loops allocation-free.
//   - Centralized validators keep algorithm packages free of ad hoc guard
//     logic and let tests match sentinel errors via errors.Is.
//
// Determinism:
//
//   - Every kernel uses fixed i→j traversal; no randomness, no map
//     iteration. Identical inputs yield identical outputs bit-for-bit.
//
// Errors:
//
//   - All user-triggered failures return package sentinels (ErrBadShape,
//     ErrOutOfRange, ErrDimensionMismatch, ErrNonSquare, ErrAsymmetry,
//     ErrNonZeroDiagonal, ErrNilMatrix, ErrRagged, ErrEigenFailed).
//     No panics on user input.
//
// Complexity (r×c operands unless noted):
//
//   - Accessors O(1); Clone/centering/normalization O(r·c);
//     Covariance O(r·c²); Mul O(r·n·c); EigenSym O(sweeps·n²).
package matrix
