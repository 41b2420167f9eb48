// Package metrics implements the model-selection criteria used to compare
// candidate subsets: R², adjusted R², AIC and Mallows' Cp, plus the residual
// error metrics reported for the final model.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/linear"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// Criteria は一つの部分モデルに対する四つの評価指標
type Criteria struct {
	R2         float64
	AdjustedR2 float64
	AIC        float64
	Cp         float64
}

// RSquared computes RegSS/TSS for the model with design z.
func RSquared(z mat.Matrix, y *mat.VecDense) (float64, error) {
	ss, err := linear.Decompose(z, y)
	if err != nil {
		return 0, err
	}
	return rSquared(ss)
}

// AdjustedRSquared computes 1 − (1−R²)(n−1)/(n−p−1), p being the number of
// non-intercept predictors the caller attributes to z.
func AdjustedRSquared(z mat.Matrix, y *mat.VecDense, p int) (float64, error) {
	ss, err := linear.Decompose(z, y)
	if err != nil {
		return 0, err
	}
	r2, err := rSquared(ss)
	if err != nil {
		return 0, err
	}
	return adjustedRSquared(r2, ss.N, p)
}

// AIC computes n·ln(RSS/n) + 2(p+1).
func AIC(z mat.Matrix, y *mat.VecDense, p int) (float64, error) {
	ss, err := linear.Decompose(z, y)
	if err != nil {
		return 0, err
	}
	return aic(ss.Residual, ss.N, p)
}

// Cp computes Mallows' Cp of the subset model relative to the full model:
// RSS_subset/RSS_full − (n − 2(p+1)).
func Cp(zFull, zSubset mat.Matrix, y *mat.VecDense, p int) (float64, error) {
	full, err := linear.Decompose(zFull, y)
	if err != nil {
		return 0, errors.Wrap(err, "Cp: full model")
	}
	sub, err := linear.Decompose(zSubset, y)
	if err != nil {
		return 0, errors.Wrap(err, "Cp: subset model")
	}
	return cp(sub.Residual, full.Residual, sub.N, p)
}

// Evaluate fits the subset and full models once each and returns all four criteria.
func Evaluate(zFull, zSubset mat.Matrix, y *mat.VecDense, p int) (Criteria, error) {
	full, err := linear.Decompose(zFull, y)
	if err != nil {
		return Criteria{}, errors.Wrap(err, "Evaluate: full model")
	}
	sub, err := linear.Decompose(zSubset, y)
	if err != nil {
		return Criteria{}, errors.Wrap(err, "Evaluate: subset model")
	}
	return EvaluateSums(sub, full, p)
}

// EvaluateSums computes the criteria from already decomposed subset and full
// models. Both decompositions must come from the same response.
func EvaluateSums(subset, full linear.SumsOfSquares, p int) (Criteria, error) {
	if subset.N != full.N {
		return Criteria{}, errors.NewDimensionError("EvaluateSums", full.N, subset.N, 0)
	}

	var c Criteria
	var err error
	if c.R2, err = rSquared(subset); err != nil {
		return Criteria{}, err
	}
	if c.AdjustedR2, err = adjustedRSquared(c.R2, subset.N, p); err != nil {
		return Criteria{}, err
	}
	if c.AIC, err = aic(subset.Residual, subset.N, p); err != nil {
		return Criteria{}, err
	}
	if c.Cp, err = cp(subset.Residual, full.Residual, subset.N, p); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

func rSquared(ss linear.SumsOfSquares) (float64, error) {
	// 応答が定数のとき R² は定義されない
	if ss.Total <= 0 {
		return 0, errors.NewUndefinedMetricError("R2", "total sum of squares is zero")
	}
	return ss.Regression / ss.Total, nil
}

func adjustedRSquared(r2 float64, n, p int) (float64, error) {
	df := n - p - 1
	if df <= 0 {
		return 0, errors.NewDegreesOfFreedomError("AdjustedRSquared", errors.DegenerateDegreesOfFreedom, p, df)
	}
	return 1 - (1-r2)*float64(n-1)/float64(df), nil
}

func aic(rss float64, n, p int) (float64, error) {
	if rss <= 0 {
		return 0, errors.NewUndefinedLogarithmError("AIC", rss/float64(n))
	}
	return float64(n)*math.Log(rss/float64(n)) + 2*float64(p+1), nil
}

func cp(rssSubset, rssFull float64, n, p int) (float64, error) {
	if rssFull <= 0 {
		return 0, errors.NewUndefinedMetricError("Cp", "full-model residual sum of squares is not positive")
	}
	return rssSubset/rssFull - float64(n-2*(p+1)), nil
}
