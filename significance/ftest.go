// Package significance implements the partial F-test deciding whether the
// predictors present in a full model and absent from a nested reduced model
// improve the fit.
package significance

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/stepreg/linear"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// DefaultAlpha is the significance level used when none is configured.
const DefaultAlpha = 0.05

// Result is the outcome of one partial F-test.
type Result struct {
	F           float64
	Critical    float64 // F_crit(1−alpha; df1, df2)
	PValue      float64 // 1 − CDF(F)
	CDF         float64
	DF1         int
	DF2         int
	RSSFull     float64
	RSSReduced  float64
	Alpha       float64
	Rule        Rule
	Significant bool
}

// Tester holds the significance level and decision rule shared by all tests
// of one selection run.
type Tester struct {
	Alpha float64
	Rule  Rule
}

// NewTester returns a Tester using the critical-value rule.
func NewTester(alpha float64) Tester {
	return Tester{Alpha: alpha, Rule: RuleCriticalValue}
}

// Validate checks that alpha lies in (0, 1) and the rule is known.
func (t Tester) Validate() error {
	if !(t.Alpha > 0 && t.Alpha < 1) {
		return errors.NewValidationError("alpha", "must be in (0, 1)", t.Alpha)
	}
	if t.Rule < RuleCriticalValue || t.Rule > RuleLegacyCDF {
		return errors.NewValidationError("rule", "unknown decision rule", int(t.Rule))
	}
	return nil
}

// PartialF tests zFull against the nested zReduced on response y. Degrees of
// freedom count every column but one as a predictor, so both designs are
// expected to carry the intercept as column 0.
func PartialF(zFull, zReduced mat.Matrix, y *mat.VecDense, alpha float64, rule Rule) (Result, error) {
	return Tester{Alpha: alpha, Rule: rule}.Test(zFull, zReduced, y)
}

// Test fits both models and runs the partial F-test. A reduced model made of
// the all-ones column alone is evaluated as y^T(I − P1)y without a fit; any
// other single column is fitted.
func (t Tester) Test(zFull, zReduced mat.Matrix, y *mat.VecDense) (Result, error) {
	full, err := linear.Decompose(zFull, y)
	if err != nil {
		return Result{}, errors.Wrap(err, "partial F: full model")
	}

	var reduced linear.SumsOfSquares
	if _, c := zReduced.Dims(); c == 1 && allOnes(zReduced) {
		rss := linear.CenteredSumOfSquares(y)
		reduced = linear.SumsOfSquares{Residual: rss, Total: rss, N: y.Len(), Columns: 1}
	} else {
		reduced, err = linear.Decompose(zReduced, y)
		if err != nil {
			return Result{}, errors.Wrap(err, "partial F: reduced model")
		}
	}
	return t.TestSums(full, reduced)
}

func allOnes(z mat.Matrix) bool {
	r, _ := z.Dims()
	for i := 0; i < r; i++ {
		if z.At(i, 0) != 1 {
			return false
		}
	}
	return true
}

// TestSums runs the partial F-test on already decomposed models.
//
//	F = [(RSS_reduced − RSS_full) / df1] / [RSS_full / df2]
//
// RSS_reduced − RSS_full equals y^T(P_full − P_reduced)y for nested models.
func (t Tester) TestSums(full, reduced linear.SumsOfSquares) (Result, error) {
	if err := t.Validate(); err != nil {
		return Result{}, err
	}
	if full.N != reduced.N {
		return Result{}, errors.NewDimensionError("partial F", full.N, reduced.N, 0)
	}

	df1 := full.Predictors() - reduced.Predictors()
	df2 := full.N - full.Predictors() - 1
	if df1 <= 0 || df2 <= 0 {
		return Result{}, errors.NewDegreesOfFreedomError("partial F", errors.InvalidDegreesOfFreedom, df1, df2)
	}

	for _, rss := range []float64{reduced.Residual, full.Residual} {
		if err := errors.CheckScalar("partial F", rss); err != nil {
			return Result{}, err
		}
	}

	// 丸め誤差で差が負になることがある
	gain := math.Max(reduced.Residual-full.Residual, 0)

	var f float64
	switch {
	case full.Residual > 0:
		f = (gain / float64(df1)) / (full.Residual / float64(df2))
	case gain > 0:
		// 完全適合: 追加した列で残差が消えた
		f = math.Inf(1)
	}
	if math.IsNaN(f) {
		return Result{}, errors.NewNumericalInstabilityError("partial F", []float64{reduced.Residual, full.Residual})
	}

	cdf := 1.0
	if !math.IsInf(f, 1) {
		cdf = distuv.F{D1: float64(df1), D2: float64(df2)}.CDF(f)
	}

	res := Result{
		F:          f,
		Critical:   CriticalValue(t.Alpha, df1, df2),
		PValue:     1 - cdf,
		CDF:        cdf,
		DF1:        df1,
		DF2:        df2,
		RSSFull:    full.Residual,
		RSSReduced: reduced.Residual,
		Alpha:      t.Alpha,
		Rule:       t.Rule,
	}

	switch t.Rule {
	case RulePValue:
		res.Significant = res.PValue < t.Alpha
	case RuleLegacyCDF:
		res.Significant = res.CDF > t.Alpha
	default:
		res.Significant = f > res.Critical
	}
	return res, nil
}

// CriticalValue returns the (1−alpha) quantile of the F(df1, df2) distribution.
//
// With z = I⁻¹(1−alpha; df1/2, df2/2), the quantile is df2·z / (df1·(1−z)).
func CriticalValue(alpha float64, df1, df2 int) float64 {
	d1, d2 := float64(df1), float64(df2)
	z := mathext.InvRegIncBeta(d1/2, d2/2, 1-alpha)
	if z >= 1 {
		return math.Inf(1)
	}
	return d2 * z / (d1 * (1 - z))
}
