package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// SumsOfSquares is the ANOVA decomposition of y for one design matrix.
type SumsOfSquares struct {
	Residual   float64 // y^T (I - Pz) y
	Regression float64 // y^T (Pz - P1) y
	Total      float64 // Residual + Regression
	N          int     // observations
	Columns    int     // columns of Z, intercept included
}

// Predictors is the number of non-intercept columns, p.
func (s SumsOfSquares) Predictors() int {
	return s.Columns - 1
}

// gramInverse は (Z^T Z)^(-1) を計算する
func gramInverse(op string, z mat.Matrix) (*mat.Dense, error) {
	r, c := z.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}
	if r <= c {
		return nil, errors.NewSingularMatrixError(op, r, c)
	}

	var gram mat.Dense
	gram.Mul(z.T(), z)

	var inv mat.Dense
	if err := inv.Inverse(&gram); err != nil {
		return nil, errors.NewSingularMatrixError(op, r, c)
	}
	return &inv, nil
}

func checkResponse(op string, z mat.Matrix, y *mat.VecDense) error {
	r, _ := z.Dims()
	if y.Len() != r {
		return errors.NewDimensionError(op, r, y.Len(), 0)
	}
	return nil
}

// CoefficientEstimate computes β̂ = (Z^T Z)^(-1) Z^T y.
func CoefficientEstimate(z mat.Matrix, y *mat.VecDense) (*mat.VecDense, error) {
	if err := checkResponse("CoefficientEstimate", z, y); err != nil {
		return nil, err
	}
	inv, err := gramInverse("CoefficientEstimate", z)
	if err != nil {
		return nil, err
	}

	_, c := z.Dims()
	var zty mat.VecDense
	zty.MulVec(z.T(), y)

	beta := mat.NewVecDense(c, nil)
	beta.MulVec(inv, &zty)
	return beta, nil
}

// ProjectionMatrix computes Pz = Z (Z^T Z)^(-1) Z^T, the n×n orthogonal
// projection onto the column space of Z.
func ProjectionMatrix(z mat.Matrix) (*mat.Dense, error) {
	inv, err := gramInverse("ProjectionMatrix", z)
	if err != nil {
		return nil, err
	}

	var zInv mat.Dense
	zInv.Mul(z, inv)

	var pz mat.Dense
	pz.Mul(&zInv, z.T())
	return &pz, nil
}

// MeanProjectionMatrix returns the n×n matrix P1 with every entry 1/n.
// n must be positive.
func MeanProjectionMatrix(n int) *mat.Dense {
	data := make([]float64, n*n)
	v := 1 / float64(n)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(n, n, data)
}

// FittedValues computes ŷ = Z β̂, which equals Pz y.
func FittedValues(z mat.Matrix, y *mat.VecDense) (*mat.VecDense, error) {
	beta, err := CoefficientEstimate(z, y)
	if err != nil {
		return nil, err
	}
	r, _ := z.Dims()
	yHat := mat.NewVecDense(r, nil)
	yHat.MulVec(z, beta)
	return yHat, nil
}

// Decompose fits Z once and returns RSS, RegSS and TSS.
//
// The quadratic forms are evaluated through ŷ = Pz y instead of forming Pz:
// y^T Pz y = ŷ^T ŷ because Pz is symmetric and idempotent, and y^T P1 y = nȳ².
func Decompose(z mat.Matrix, y *mat.VecDense) (SumsOfSquares, error) {
	yHat, err := FittedValues(z, y)
	if err != nil {
		return SumsOfSquares{}, err
	}

	r, c := z.Dims()
	mean := mat.Sum(y) / float64(r)

	var rss, centered, drift float64
	for i := 0; i < r; i++ {
		res := y.AtVec(i) - yHat.AtVec(i)
		rss += res * res
		d := yHat.AtVec(i) - mean
		centered += d * d
		drift += d
	}

	// ŷ^T ŷ - nȳ² = Σ(ŷ-ȳ)² + 2ȳΣ(ŷ-ȳ); the second term vanishes when Z has an intercept.
	reg := centered + 2*mean*drift

	return SumsOfSquares{
		Residual:   rss,
		Regression: reg,
		Total:      rss + reg,
		N:          r,
		Columns:    c,
	}, nil
}

// ResidualSumOfSquares computes y^T (I - Pz) y.
func ResidualSumOfSquares(z mat.Matrix, y *mat.VecDense) (float64, error) {
	ss, err := Decompose(z, y)
	if err != nil {
		return 0, err
	}
	return ss.Residual, nil
}

// RegressionSumOfSquares computes y^T (Pz - P1) y.
func RegressionSumOfSquares(z mat.Matrix, y *mat.VecDense) (float64, error) {
	ss, err := Decompose(z, y)
	if err != nil {
		return 0, err
	}
	return ss.Regression, nil
}

// TotalSumOfSquares computes RSS + RegSS. It depends on y only.
func TotalSumOfSquares(z mat.Matrix, y *mat.VecDense) (float64, error) {
	ss, err := Decompose(z, y)
	if err != nil {
		return 0, err
	}
	return ss.Total, nil
}

// CenteredSumOfSquares computes y^T (I - P1) y = Σ(y - ȳ)², the residual sum
// of squares of the intercept-only model.
func CenteredSumOfSquares(y *mat.VecDense) float64 {
	n := y.Len()
	if n == 0 {
		return 0
	}
	mean := mat.Sum(y) / float64(n)
	var ss float64
	for i := 0; i < n; i++ {
		d := y.AtVec(i) - mean
		ss += d * d
	}
	return ss
}
