// Package stepreg implements bidirectional stepwise selection of regressors
// for ordinary least squares models.
//
// Selection starts from the intercept-only model. Each candidate predictor
// is scored by R², adjusted R², AIC and Mallows' Cp, the criteria vote on a
// first predictor, and a partial F-test decides whether it enters. Later
// rounds add the predictor with the largest regression sum of squares and
// re-test every accepted predictor, removing the ones that are no longer
// significant.
//
// # Packages
//
//   - linear: design matrices, projections and the sums-of-squares decomposition
//   - metrics: selection criteria and residual metrics
//   - significance: the partial F-test and its decision rules
//   - stepwise: the selection state machine
//   - dataset: semicolon-delimited CSV loading with missing-value handling
//   - report: text summaries and criteria charts
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/stepreg/linear"
//	    "github.com/YuminosukeSato/stepreg/stepwise"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    x := mat.NewDense(n, p, data) // raw predictors
//	    z := linear.NewDesign(x)      // prepend the intercept column
//
//	    res, err := stepwise.Select(context.Background(), z, y,
//	        stepwise.WithAlpha(0.05))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(res.Columns, res.Reason)
//	}
//
// The stepreg command wraps the same pipeline for CSV files:
//
//	stepreg --plot criteria.png AirQualityUCI.csv
package stepreg
