package linear

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/core/parallel"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

// InterceptColumn is the index of the all-ones column of every design matrix.
const InterceptColumn = 0

// NewDesign returns [1, X]: a copy of the raw predictor matrix X with a
// leading intercept column.
func NewDesign(x mat.Matrix) *mat.Dense {
	r, c := x.Dims()
	z := mat.NewDense(r, c+1, nil)

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			z.Set(i, InterceptColumn, 1.0)
			for j := 0; j < c; j++ {
				z.Set(i, j+1, x.At(i, j))
			}
		}
	})
	return z
}

// SelectColumns copies the listed columns of z, in order, into a new matrix.
// The result never aliases z.
func SelectColumns(z mat.Matrix, cols []int) (*mat.Dense, error) {
	r, c := z.Dims()
	if len(cols) == 0 {
		return nil, errors.NewValueError("SelectColumns", "no columns selected")
	}
	for _, j := range cols {
		if j < 0 || j >= c {
			return nil, errors.NewDimensionError("SelectColumns", c, j, 1)
		}
	}

	sub := mat.NewDense(r, len(cols), nil)
	col := make([]float64, r)
	for k, j := range cols {
		mat.Col(col, j, z)
		sub.SetCol(k, col)
	}
	return sub, nil
}

// WithIntercept returns cols with the intercept column in front and without
// duplicates, preserving the order of the rest.
func WithIntercept(cols []int) []int {
	out := make([]int, 0, len(cols)+1)
	out = append(out, InterceptColumn)
	for _, j := range cols {
		if j == InterceptColumn || slices.Contains(out, j) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// ValidateDesign checks the design-matrix invariants: column 0 is constant 1,
// columns are pairwise distinct, and there are more rows than columns.
func ValidateDesign(z mat.Matrix) error {
	r, c := z.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "ValidateDesign")
	}
	if r <= c {
		return errors.NewValidationError("design", "needs more observations than columns", [2]int{r, c})
	}

	cols := make([][]float64, c)
	for j := 0; j < c; j++ {
		cols[j] = mat.Col(nil, j, z)
	}

	for i, v := range cols[InterceptColumn] {
		if v != 1 {
			return errors.NewValidationError("design", "column 0 must be the all-ones intercept", i)
		}
	}

	for a := 0; a < c; a++ {
		for b := a + 1; b < c; b++ {
			if floats.Equal(cols[a], cols[b]) {
				return errors.NewValidationError("design", "duplicate columns", [2]int{a, b})
			}
		}
	}
	return nil
}
