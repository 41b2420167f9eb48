// Package testdata provides fixed and synthetic regression datasets for tests.
package testdata

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ToyResponse is the 7-observation illustration response.
func ToyResponse() *mat.VecDense {
	return mat.NewVecDense(7, []float64{2, 41, 32, 43, 78, 38, 3})
}

// ToyDesign is a 7×5 design matrix: intercept plus four predictors.
func ToyDesign() *mat.Dense {
	return mat.NewDense(7, 5, []float64{
		1, 1, 3, 2, 10,
		1, 2, 1, 7, 40,
		1, 3, 4, 1, 35,
		1, 4, 1, 8, 45,
		1, 5, 5, 2, 80,
		1, 6, 9, 8, 35,
		1, 7, 2, 1, 5,
	})
}

// Planted is a synthetic dataset whose informative columns are known.
type Planted struct {
	Z           *mat.Dense    // n×(p+1) design, column 0 intercept
	Y           *mat.VecDense // response
	Informative []int         // columns the selector should keep
	Noise       []int         // columns the selector should leave out
}

// NewPlanted builds y = 3 + 2·x1 − 1.5·x3 + ε with n rows and five predictors.
// Columns 2, 4 and 5 are orthogonalized against {1, x1, x3, y}, so every
// partial F statistic for them is zero up to rounding.
func NewPlanted(n int, seed uint64) *Planted {
	rng := rand.New(rand.NewPCG(seed, seed))

	ones := constant(n, 1)
	x1 := uniform(rng, n, -2, 2)
	x3 := uniform(rng, n, -2, 2)

	y := make([]float64, n)
	for i := range y {
		y[i] = 3 + 2*x1[i] - 1.5*x3[i] + 0.5*rng.NormFloat64()
	}

	basis := orthonormal(ones, x1, x3, y)
	noise := make([][]float64, 3)
	for k := range noise {
		v := uniform(rng, n, -2, 2)
		for _, b := range basis {
			floats.AddScaled(v, -floats.Dot(v, b), b)
		}
		// shift away from zero mean would break orthogonality to 1; scale only
		floats.Scale(3, v)
		noise[k] = v
	}

	cols := [][]float64{ones, x1, noise[0], x3, noise[1], noise[2]}
	return &Planted{
		Z:           fromColumns(cols),
		Y:           mat.NewVecDense(n, y),
		Informative: []int{1, 3},
		Noise:       []int{2, 4, 5},
	}
}

// NewProxy builds three predictors where x1 = a + b + u is a noisy proxy for
// x2 = a and x3 = b, and y = 3 + 1.5·a + b + e. The components 1, a, b, u and
// e are mutually orthogonal with ‖a‖² = ‖b‖² = n, ‖u‖² = n/4 and ‖e‖² = n/100.
//
// Stepwise selection takes x1 first, then x2, then x3; once x2 and x3 are in,
// x1 explains nothing more and is pruned.
func NewProxy(n int, seed uint64) *Planted {
	rng := rand.New(rand.NewPCG(seed, seed))

	ones := constant(n, 1)
	vs := [][]float64{ones}
	for k := 0; k < 4; k++ {
		vs = append(vs, uniform(rng, n, -1, 1))
	}
	q := orthonormal(vs...)

	root := math.Sqrt(float64(n))
	a := scaled(root, q[1])
	b := scaled(root, q[2])
	u := scaled(root/2, q[3])
	e := scaled(root/10, q[4])

	x1 := make([]float64, n)
	y := make([]float64, n)
	for i := range y {
		x1[i] = a[i] + b[i] + u[i]
		y[i] = 3 + 1.5*a[i] + b[i] + e[i]
	}

	return &Planted{
		Z:           fromColumns([][]float64{ones, x1, a, b}),
		Y:           mat.NewVecDense(n, y),
		Informative: []int{2, 3},
		Noise:       []int{1},
	}
}

// NewUnrelated builds a design whose predictors are all orthogonal to y and
// to the intercept, so no single predictor is significant.
func NewUnrelated(n, predictors int, seed uint64) (*mat.Dense, *mat.VecDense) {
	rng := rand.New(rand.NewPCG(seed, seed))

	ones := constant(n, 1)
	y := uniform(rng, n, 0, 10)
	basis := orthonormal(ones, y)

	cols := [][]float64{ones}
	for k := 0; k < predictors; k++ {
		v := uniform(rng, n, -1, 1)
		for _, b := range basis {
			floats.AddScaled(v, -floats.Dot(v, b), b)
		}
		basis = append(basis, normalized(v))
		cols = append(cols, v)
	}
	return fromColumns(cols), mat.NewVecDense(n, y)
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func uniform(rng *rand.Rand, n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*rng.Float64()
	}
	return out
}

// orthonormal runs modified Gram-Schmidt over vs.
func orthonormal(vs ...[]float64) [][]float64 {
	var basis [][]float64
	for _, v := range vs {
		u := append([]float64(nil), v...)
		for _, b := range basis {
			floats.AddScaled(u, -floats.Dot(u, b), b)
		}
		basis = append(basis, normalized(u))
	}
	return basis
}

func scaled(s float64, v []float64) []float64 {
	u := append([]float64(nil), v...)
	floats.Scale(s, u)
	return u
}

func normalized(v []float64) []float64 {
	u := append([]float64(nil), v...)
	floats.Scale(1/floats.Norm(u, 2), u)
	return u
}

func fromColumns(cols [][]float64) *mat.Dense {
	n := len(cols[0])
	z := mat.NewDense(n, len(cols), nil)
	for j, c := range cols {
		z.SetCol(j, c)
	}
	return z
}
