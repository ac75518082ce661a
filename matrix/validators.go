// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep kernels and algorithm packages free of ad hoc guard logic.
//   - Return plain sentinel errors wrapped once with a validator tag so call
//     sites can match via errors.Is.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing on success.
//   - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//   - Each composite validator follows a fixed sequence (NotNil → Shape → value).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// It takes the concrete *Dense rather than the Matrix interface: a nil
// *Dense boxed into an interface value does not compare equal to nil and
// would slip past an interface-level check straight into a panic.
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare ensures m is non-nil and square (Rows == Cols).
// Returns ErrNilMatrix or ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and share dimensions.
// Returns ErrNilMatrix or ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b *Dense) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.r != b.r || a.c != b.c {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric ensures d is square and |d[i,j]-d[j,i]| <= eps for every
// upper-triangle pair. A negative eps is replaced by DefaultEpsilon.
// Returns ErrNilMatrix, ErrNonSquare or ErrAsymmetry.
// Complexity: O(n²) over the upper triangle.
func ValidateSymmetric(d *Dense, eps float64) error {
	// Stage 1 (Validate): nil + square preconditions.
	if d == nil {
		return validatorErrorf("ValidateSymmetric", ErrNilMatrix)
	}
	if d.r != d.c {
		return validatorErrorf("ValidateSymmetric", ErrNonSquare)
	}
	if eps < 0 {
		eps = DefaultEpsilon
	}

	// Stage 2 (Execute): deterministic upper-triangle sweep on the flat buffer.
	n := d.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(d.data[i*n+j]-d.data[j*n+i]) > eps {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal ensures every diagonal entry of the square matrix d is
// within eps of zero. A negative eps is replaced by DefaultEpsilon.
// Returns ErrNilMatrix, ErrNonSquare or ErrNonZeroDiagonal.
// Complexity: O(n).
func ValidateZeroDiagonal(d *Dense, eps float64) error {
	if d == nil {
		return validatorErrorf("ValidateZeroDiagonal", ErrNilMatrix)
	}
	if d.r != d.c {
		return validatorErrorf("ValidateZeroDiagonal", ErrNonSquare)
	}
	if eps < 0 {
		eps = DefaultEpsilon
	}

	n := d.r
	for i := 0; i < n; i++ {
		if math.Abs(d.data[i*n+i]) > eps {
			return validatorErrorf("ValidateZeroDiagonal", ErrNonZeroDiagonal)
		}
	}

	return nil
}
