package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/internal/testdata"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

const tol = 1e-8

func relClose(a, b float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestCoefficientEstimate_ExactLine(t *testing.T) {
	// y = 1 + 2x
	z := mat.NewDense(4, 2, []float64{
		1, 1,
		1, 2,
		1, 3,
		1, 4,
	})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})

	beta, err := CoefficientEstimate(z, y)
	if err != nil {
		t.Fatalf("CoefficientEstimate failed: %v", err)
	}
	if !relClose(beta.AtVec(0), 1) || !relClose(beta.AtVec(1), 2) {
		t.Errorf("Expected beta [1 2], got %v", mat.Formatted(beta.T()))
	}
}

func TestDecompose_Toy(t *testing.T) {
	z := testdata.ToyDesign()
	y := testdata.ToyResponse()

	ss, err := Decompose(z, y)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}

	if ss.Residual < 0 || ss.Regression < 0 {
		t.Errorf("Expected non-negative sums of squares, got RSS=%g RegSS=%g", ss.Residual, ss.Regression)
	}
	if !relClose(ss.Total, CenteredSumOfSquares(y)) {
		t.Errorf("Expected TSS %g, got %g", CenteredSumOfSquares(y), ss.Total)
	}
	if ss.N != 7 || ss.Columns != 5 || ss.Predictors() != 4 {
		t.Errorf("Unexpected shape: n=%d columns=%d p=%d", ss.N, ss.Columns, ss.Predictors())
	}
}

func TestDecompose_MatchesProjectionForms(t *testing.T) {
	z := testdata.ToyDesign()
	y := testdata.ToyResponse()
	n := y.Len()

	pz, err := ProjectionMatrix(z)
	if err != nil {
		t.Fatalf("ProjectionMatrix failed: %v", err)
	}
	p1 := MeanProjectionMatrix(n)

	// y^T (I - Pz) y
	var ipz mat.Dense
	ipz.Sub(eye(n), pz)
	rss := mat.Inner(y, &ipz, y)

	// y^T (Pz - P1) y
	var pzp1 mat.Dense
	pzp1.Sub(pz, p1)
	reg := mat.Inner(y, &pzp1, y)

	ss, err := Decompose(z, y)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if !relClose(ss.Residual, rss) {
		t.Errorf("RSS mismatch: decompose %g, quadratic form %g", ss.Residual, rss)
	}
	if !relClose(ss.Regression, reg) {
		t.Errorf("RegSS mismatch: decompose %g, quadratic form %g", ss.Regression, reg)
	}
}

func TestProjectionMatrix_Properties(t *testing.T) {
	z := testdata.ToyDesign()
	y := testdata.ToyResponse()

	pz, err := ProjectionMatrix(z)
	if err != nil {
		t.Fatalf("ProjectionMatrix failed: %v", err)
	}

	// 対称性
	if !mat.EqualApprox(pz, pz.T(), tol) {
		t.Error("Expected projection matrix to be symmetric")
	}

	// 冪等性
	var pp mat.Dense
	pp.Mul(pz, pz)
	if !mat.EqualApprox(&pp, pz, 1e-6) {
		t.Error("Expected projection matrix to be idempotent")
	}

	// Pz y = Z β̂
	var py mat.VecDense
	py.MulVec(pz, y)
	yHat, err := FittedValues(z, y)
	if err != nil {
		t.Fatalf("FittedValues failed: %v", err)
	}
	if !mat.EqualApprox(&py, yHat, 1e-6) {
		t.Error("Expected Pz·y to equal Z·β̂")
	}
}

func TestMeanProjectionMatrix(t *testing.T) {
	p1 := MeanProjectionMatrix(4)
	r, c := p1.Dims()
	if r != 4 || c != 4 {
		t.Fatalf("Expected 4x4, got %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if p1.At(i, j) != 0.25 {
				t.Fatalf("Expected 0.25 at (%d,%d), got %g", i, j, p1.At(i, j))
			}
		}
	}
}

func TestKernel_SingularDesign(t *testing.T) {
	tests := []struct {
		name string
		z    *mat.Dense
	}{
		{
			name: "collinear columns",
			z: mat.NewDense(4, 3, []float64{
				1, 1, 2,
				1, 2, 4,
				1, 3, 6,
				1, 4, 8,
			}),
		},
		{
			name: "rows equal columns",
			z: mat.NewDense(2, 2, []float64{
				1, 1,
				1, 2,
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := tt.z.Dims()
			y := mat.NewVecDense(r, nil)
			for i := 0; i < r; i++ {
				y.SetVec(i, float64(i))
			}

			_, err := Decompose(tt.z, y)
			if err == nil {
				t.Fatal("Expected error for singular design")
			}
			if !errors.Is(err, errors.ErrSingularMatrix) {
				t.Errorf("Expected ErrSingularMatrix, got %v", err)
			}
			var se *errors.SingularMatrixError
			if !errors.As(err, &se) {
				t.Errorf("Expected *SingularMatrixError, got %T", err)
			}
		})
	}
}

func TestKernel_ResponseLengthMismatch(t *testing.T) {
	z := testdata.ToyDesign()
	y := mat.NewVecDense(3, []float64{1, 2, 3})

	_, err := CoefficientEstimate(z, y)
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("Expected DimensionError, got %v", err)
	}
}

func TestRegressionSumOfSquares_MonotoneInColumns(t *testing.T) {
	z := testdata.ToyDesign()
	y := testdata.ToyResponse()

	prevReg, prevRSS := -1.0, math.Inf(1)
	for k := 1; k <= 5; k++ {
		cols := make([]int, k)
		for j := range cols {
			cols[j] = j
		}
		sub, err := SelectColumns(z, cols)
		if err != nil {
			t.Fatalf("SelectColumns failed: %v", err)
		}
		ss, err := Decompose(sub, y)
		if err != nil {
			t.Fatalf("Decompose with %d columns failed: %v", k, err)
		}
		if ss.Regression < prevReg-tol {
			t.Errorf("RegSS decreased when adding column %d: %g -> %g", k-1, prevReg, ss.Regression)
		}
		if ss.Residual > prevRSS+tol {
			t.Errorf("RSS increased when adding column %d: %g -> %g", k-1, prevRSS, ss.Residual)
		}
		prevReg, prevRSS = ss.Regression, ss.Residual
	}
}

func TestInterceptOnlyModel(t *testing.T) {
	y := testdata.ToyResponse()
	ones := mat.NewDense(y.Len(), 1, nil)
	for i := 0; i < y.Len(); i++ {
		ones.Set(i, 0, 1)
	}

	ss, err := Decompose(ones, y)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if math.Abs(ss.Regression) > 1e-9 {
		t.Errorf("Expected RegSS 0 for intercept-only model, got %g", ss.Regression)
	}
	if !relClose(ss.Residual, CenteredSumOfSquares(y)) {
		t.Errorf("Expected RSS %g, got %g", CenteredSumOfSquares(y), ss.Residual)
	}
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
