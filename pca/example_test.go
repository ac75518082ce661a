package pca_test

import (
	"fmt"

	"github.com/katalvlaran/lowdim/matrix"
	"github.com/katalvlaran/lowdim/pca"
)

// ExampleFitProject reduces 2-D points lying on a line to a single
// coordinate without losing their ordering.
func ExampleFitProject() {
	x, _ := matrix.FromRows([][]float64{
		{-2, -4},
		{-1, -2},
		{0, 0},
		{1, 2},
		{2, 4},
	})

	proj, _ := pca.FitProject(x, 1)

	ordered := true
	prev, _ := proj.At(0, 0)
	sign := 1.0
	if prev > 0 {
		sign = -1.0 // eigenvector sign is arbitrary; normalize direction
	}
	for i := 1; i < proj.Rows(); i++ {
		v, _ := proj.At(i, 0)
		if sign*v < sign*prev {
			ordered = false
		}
		prev = v
	}

	fmt.Printf("shape: %dx%d\n", proj.Rows(), proj.Cols())
	fmt.Println("ordering preserved:", ordered)
	// Output:
	// shape: 5x1
	// ordering preserved: true
}
