package stepwise

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/metrics"
	"github.com/YuminosukeSato/stepreg/significance"
)

// Step records one partial F-test made during selection.
type Step struct {
	Round     int // 0 for the initial selection
	Stage     State
	Candidate int
	Accepted  []int // model the candidate was tested against or within
	Test      significance.Result
}

// PathPoint is the accepted model after a round together with its criteria.
// Cp is relative to the model using every predictor.
type PathPoint struct {
	Round    int
	Columns  []int
	Criteria metrics.Criteria
}

// Result is the outcome of a selection run.
type Result struct {
	// Columns are the selected design-matrix columns in acceptance order,
	// intercept first.
	Columns []int
	// Design is a copy of the selected columns.
	Design *mat.Dense

	Steps         []Step
	InitialScores []CandidateScore
	Path          []PathPoint
	Reason        StopReason
	Rounds        int
}

// Predictors returns the selected columns without the intercept.
func (r *Result) Predictors() []int {
	if len(r.Columns) <= 1 {
		return nil
	}
	return append([]int(nil), r.Columns[1:]...)
}
