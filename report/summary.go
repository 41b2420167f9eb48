// Package report renders a selection result as text and as a criteria chart.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/linear"
	"github.com/YuminosukeSato/stepreg/metrics"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
	"github.com/YuminosukeSato/stepreg/preprocessing"
	"github.com/YuminosukeSato/stepreg/stepwise"
)

// FinalModel is the OLS fit of the selected columns.
type FinalModel struct {
	Columns      []int
	Names        []string
	Coefficients []float64
	Standardized []float64 // 標準化回帰係数（切片は 0）
	R2           float64
	AdjustedR2   float64
	RMSE         float64
	MAE          float64
}

// Fit refits the selected design of res on y.
func Fit(res *stepwise.Result, y *mat.VecDense, names []string) (*FinalModel, error) {
	if res == nil || res.Design == nil {
		return nil, errors.NewValueError("report.Fit", "empty selection result")
	}

	ols := linear.NewOLS()
	if err := ols.Fit(res.Design, y); err != nil {
		return nil, errors.Wrap(err, "report: final model")
	}
	pred, err := ols.Predict(res.Design)
	if err != nil {
		return nil, errors.Wrap(err, "report: final model")
	}

	fm := &FinalModel{
		Columns:      append([]int(nil), res.Columns...),
		Coefficients: ols.Coefficients(),
	}
	if fm.Standardized, err = standardizedCoefficients(res.Design, y); err != nil {
		return nil, errors.Wrap(err, "report: standardized coefficients")
	}
	for _, c := range res.Columns {
		fm.Names = append(fm.Names, columnName(names, c))
	}

	p := len(res.Columns) - 1
	if p > 0 {
		if fm.R2, err = ols.Score(res.Design, y); err != nil {
			return nil, err
		}
		if fm.AdjustedR2, err = metrics.AdjustedRSquared(res.Design, y, p); err != nil {
			return nil, err
		}
	}
	if fm.RMSE, err = metrics.RMSE(y, pred); err != nil {
		return nil, err
	}
	if fm.MAE, err = metrics.MAE(y, pred); err != nil {
		return nil, err
	}
	return fm, nil
}

// standardizedCoefficients refits on standardized predictors and response.
// The intercept column is constant and passes through the scaler unchanged.
func standardizedCoefficients(z *mat.Dense, y *mat.VecDense) ([]float64, error) {
	zScaled, err := preprocessing.NewStandardScaler().FitTransform(z)
	if err != nil {
		return nil, err
	}
	yScaled, err := preprocessing.NewStandardScaler().FitTransform(y)
	if err != nil {
		return nil, err
	}

	ols := linear.NewOLS()
	if err := ols.Fit(zScaled, mat.VecDenseCopyOf(yScaled.ColView(0))); err != nil {
		return nil, err
	}
	coef := ols.Coefficients()
	coef[linear.InterceptColumn] = 0
	return coef, nil
}

// WriteSummary writes the per-step decisions, the selected columns and the
// refitted final model. names labels design columns; nil falls back to x<j>.
func WriteSummary(w io.Writer, res *stepwise.Result, y *mat.VecDense, names []string) error {
	fm, err := Fit(res, y, names)
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}
	if len(res.Steps) > 0 {
		t := res.Steps[0].Test
		ew.printf("Stepwise selection (alpha=%g, rule=%s)\n", t.Alpha, t.Rule)
	}
	ew.printf("Observations: %d\n\n", y.Len())

	tw := tabwriter.NewWriter(ew, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Round\tStage\tCandidate\tF\tF_crit\tp-value\tdf\tDecision")
	for _, s := range res.Steps {
		decision := "reject"
		if s.Test.Significant {
			decision = "accept"
		}
		if s.Stage == stepwise.PruningSubset {
			decision = "keep"
			if !s.Test.Significant {
				decision = "drop"
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s [%d]\t%.4f\t%.4f\t%.4g\t%d/%d\t%s\n",
			s.Round, s.Stage, columnName(names, s.Candidate), s.Candidate,
			s.Test.F, s.Test.Critical, s.Test.PValue, s.Test.DF1, s.Test.DF2, decision)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "report: write steps")
	}

	ew.printf("\nStopped after %d rounds: %s\n", res.Rounds, res.Reason)
	ew.printf("Selected columns: %v\n\n", res.Columns)

	tw = tabwriter.NewWriter(ew, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Column\tName\tCoefficient\tStandardized")
	for i, c := range fm.Columns {
		fmt.Fprintf(tw, "%d\t%s\t%.6g\t%.4f\n", c, fm.Names[i], fm.Coefficients[i], fm.Standardized[i])
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "report: write coefficients")
	}

	ew.printf("\nR² = %.6f  adjusted R² = %.6f  RMSE = %.6f  MAE = %.6f\n", fm.R2, fm.AdjustedR2, fm.RMSE, fm.MAE)
	return ew.err
}

func columnName(names []string, c int) string {
	if c >= 0 && c < len(names) && names[c] != "" {
		return names[c]
	}
	if c == linear.InterceptColumn {
		return "(intercept)"
	}
	return "x" + strconv.Itoa(c)
}

// errWriter は最初の書き込みエラーを保持する
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = errors.Wrap(err, "report")
	}
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
