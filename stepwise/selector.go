// Package stepwise implements forward-stepwise variable selection driven by
// partial F-tests.
//
// The selector is an explicit state machine:
//
//	SelectingInitial → Validating → GrowingSubset → PruningSubset → Terminal
//
// SelectingInitial scores every predictor alone and lets R², adjusted R², AIC
// and Cp vote. Validating F-tests the winner against the intercept-only model.
// Each round then grows the accepted subset by the significant column with the
// largest regression sum of squares and prunes accepted columns that lost
// significance. Pruned columns never return.
package stepwise

import (
	"context"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/stepreg/core/parallel"
	"github.com/YuminosukeSato/stepreg/linear"
	"github.com/YuminosukeSato/stepreg/metrics"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
	"github.com/YuminosukeSato/stepreg/pkg/log"
	"github.com/YuminosukeSato/stepreg/significance"
)

// Selector runs stepwise selection with a fixed configuration.
type Selector struct {
	cfg    Config
	tester significance.Tester
	logger log.Logger
}

// New returns a Selector configured by opts on top of DefaultConfig.
func New(opts ...Option) (*Selector, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "stepwise: invalid configuration")
	}
	return &Selector{
		cfg:    cfg,
		tester: significance.Tester{Alpha: cfg.Alpha, Rule: cfg.Rule},
		logger: cfg.Logger.With(log.ComponentKey, "stepwise"),
	}, nil
}

// Config returns the configuration in use.
func (s *Selector) Config() Config {
	return s.cfg
}

// run はひとつの Run 呼び出しの作業領域
type run struct {
	*Selector
	z          *mat.Dense
	y          *mat.VecDense
	predictors int
	full       linear.SumsOfSquares
	st         *state
	res        *Result
}

// Run selects a subset of the columns of z for response y. Column 0 of z must
// be the intercept. On failure no partial result is returned.
func (s *Selector) Run(ctx context.Context, z *mat.Dense, y *mat.VecDense) (res *Result, err error) {
	defer errors.Recover(&err, "stepwise.Run")

	if err := linear.ValidateDesign(z); err != nil {
		return nil, errors.Wrap(err, "stepwise")
	}
	n, c := z.Dims()
	if y.Len() != n {
		return nil, errors.NewDimensionError("stepwise.Run", n, y.Len(), 0)
	}
	if err := errors.CheckMatrix("stepwise: design", z, n, c); err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix("stepwise: response", y, n, 1); err != nil {
		return nil, err
	}

	full, err := linear.Decompose(z, y)
	if err != nil {
		return nil, errors.Wrap(err, "stepwise: full model")
	}

	r := &run{
		Selector:   s,
		z:          z,
		y:          y,
		predictors: c - 1,
		full:       full,
		st:         newState(),
		res:        &Result{},
	}

	s.logger.Info("Stepwise selection started",
		log.SamplesKey, n,
		log.FeaturesKey, r.predictors,
		log.AlphaKey, s.cfg.Alpha,
		log.RuleKey, s.cfg.Rule.String(),
	)

	if err := r.selectInitial(ctx); err != nil {
		return nil, err
	}
	if err := r.iterate(ctx); err != nil {
		return nil, err
	}

	design, err := linear.SelectColumns(z, r.st.accepted)
	if err != nil {
		return nil, errors.Wrap(err, "stepwise: final design")
	}
	r.res.Columns = r.st.acceptedCopy()
	r.res.Design = design
	r.res.Rounds = r.st.round

	s.logger.Info("Stepwise selection finished",
		log.AcceptedKey, r.res.Columns,
		log.ReasonKey, r.res.Reason.String(),
		log.RoundKey, r.st.round,
	)
	return r.res, nil
}

// selectInitial runs SelectingInitial and Validating until a single
// predictor is significant against the intercept-only model.
func (r *run) selectInitial(ctx context.Context) error {
	pool := make([]int, r.predictors)
	for j := range pool {
		pool[j] = j + 1
	}

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "stepwise: selecting initial")
		}
		if len(pool) == 0 {
			return errors.Wrap(errors.ErrExhaustedCandidatePool, "stepwise: selecting initial")
		}

		r.st.phase = SelectingInitial
		scores, err := r.scoreInitial(pool)
		if err != nil {
			return err
		}
		if r.res.InitialScores == nil {
			r.res.InitialScores = scores
		}
		winner := Vote(Nominate(scores))
		r.logger.Debug("Initial candidate nominated",
			log.StageKey, r.st.phase.String(),
			log.CandidateKey, winner,
		)

		r.st.phase = Validating
		test, err := r.test([]int{linear.InterceptColumn, winner}, []int{linear.InterceptColumn}, winner)
		if err != nil {
			return err
		}
		if test.Significant {
			r.st.accepted = []int{linear.InterceptColumn, winner}
			r.st.added = 1
			return r.recordPath()
		}

		// 有意でない候補は初期候補から外して選び直す
		pool = slices.DeleteFunc(pool, func(j int) bool { return j == winner })
	}
}

// scoreInitial evaluates [1, c] for every c in pool. Cp is taken relative to
// the intercept plus the whole pool.
func (r *run) scoreInitial(pool []int) ([]CandidateScore, error) {
	fullZ, err := linear.SelectColumns(r.z, linear.WithIntercept(pool))
	if err != nil {
		return nil, r.wrap(err, -1)
	}
	full, err := linear.Decompose(fullZ, r.y)
	if err != nil {
		return nil, r.wrap(err, -1)
	}

	return parallel.Map(len(pool), r.cfg.ParallelThreshold, func(i int) (CandidateScore, error) {
		c := pool[i]
		sub, err := linear.SelectColumns(r.z, []int{linear.InterceptColumn, c})
		if err != nil {
			return CandidateScore{}, r.wrap(err, c)
		}
		ss, err := linear.Decompose(sub, r.y)
		if err != nil {
			return CandidateScore{}, r.wrap(err, c)
		}
		crit, err := metrics.EvaluateSums(ss, full, 1)
		if err != nil {
			return CandidateScore{}, r.wrap(err, c)
		}
		return CandidateScore{Column: c, Criteria: crit}, nil
	})
}

// iterate alternates GrowingSubset and PruningSubset until Terminal.
func (r *run) iterate(ctx context.Context) error {
	// 1 ラウンドごとに採用済み∪除外済みが必ず 1 列増える
	bound := r.predictors + 1

	for {
		if r.st.added+r.st.leaves == r.predictors {
			return r.terminate(Exhausted)
		}
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "stepwise: round %d", r.st.round+1)
		}
		r.st.round++
		if r.st.round > bound {
			return errors.Wrapf(errors.ErrNonTermination, "stepwise: %d rounds over %d predictors", r.st.round-1, r.predictors)
		}

		r.st.phase = GrowingSubset
		grown, err := r.grow()
		if err != nil {
			return err
		}
		if !grown {
			return r.terminate(NoSignificantCandidate)
		}

		r.st.phase = PruningSubset
		if err := r.prune(); err != nil {
			return err
		}
		if err := r.recordPath(); err != nil {
			return err
		}
	}
}

// grow adds the significant candidate with the largest RegSS. Candidates that
// fail the test are skipped for this round only.
func (r *run) grow() (bool, error) {
	remaining := r.st.candidates(r.predictors)
	base := r.st.acceptedCopy()

	for len(remaining) > 0 {
		regSS, err := parallel.Map(len(remaining), r.cfg.ParallelThreshold, func(i int) (float64, error) {
			sub, err := linear.SelectColumns(r.z, append(slices.Clone(base), remaining[i]))
			if err != nil {
				return 0, r.wrap(err, remaining[i])
			}
			ss, err := linear.Decompose(sub, r.y)
			if err != nil {
				return 0, r.wrap(err, remaining[i])
			}
			return ss.Regression, nil
		})
		if err != nil {
			return false, err
		}

		best := 0
		for i := 1; i < len(regSS); i++ {
			if regSS[i] > regSS[best] {
				best = i
			}
		}
		c := remaining[best]
		r.logger.Debug("Candidate with largest regression sum of squares",
			log.StageKey, r.st.phase.String(),
			log.RoundKey, r.st.round,
			log.CandidateKey, c,
			log.RegSSKey, regSS[best],
		)

		test, err := r.test(append(slices.Clone(base), c), base, c)
		if err != nil {
			return false, err
		}
		if test.Significant {
			r.st.accepted = append(r.st.accepted, c)
			r.logger.Info("Candidate accepted",
				log.RoundKey, r.st.round,
				log.CandidateKey, c,
				log.FStatKey, test.F,
			)
			return true, nil
		}
		remaining = slices.Delete(remaining, best, best+1)
	}
	return false, nil
}

// prune re-tests each accepted predictor against the accepted subset
// without it, in acceptance order. Dropped columns are excluded for good.
func (r *run) prune() error {
	for _, c := range r.st.acceptedCopy() {
		if c == linear.InterceptColumn {
			continue
		}
		full := r.st.acceptedCopy()
		reduced := slices.DeleteFunc(r.st.acceptedCopy(), func(j int) bool { return j == c })

		test, err := r.test(full, reduced, c)
		if err != nil {
			return err
		}
		if !test.Significant {
			r.st.accepted = reduced
			r.st.excluded[c] = true
			r.st.leaves++
			r.logger.Info("Predictor pruned",
				log.RoundKey, r.st.round,
				log.CandidateKey, c,
				log.FStatKey, test.F,
			)
		}
	}
	r.st.added = len(r.st.accepted) - 1

	r.logger.Debug("Pruning finished",
		log.RoundKey, r.st.round,
		log.AddedKey, r.st.added,
		log.LeavesKey, r.st.leaves,
		log.AcceptedKey, r.st.acceptedCopy(),
	)
	return nil
}

func (r *run) terminate(reason StopReason) error {
	r.st.phase = Terminal
	r.res.Reason = reason
	return nil
}

// test runs the partial F-test of fullCols against reducedCols and appends
// the outcome to the trace.
func (r *run) test(fullCols, reducedCols []int, candidate int) (significance.Result, error) {
	fullZ, err := linear.SelectColumns(r.z, fullCols)
	if err != nil {
		return significance.Result{}, r.wrap(err, candidate)
	}
	reducedZ, err := linear.SelectColumns(r.z, reducedCols)
	if err != nil {
		return significance.Result{}, r.wrap(err, candidate)
	}

	res, err := r.tester.Test(fullZ, reducedZ, r.y)
	if err != nil {
		return significance.Result{}, r.wrap(err, candidate)
	}

	r.res.Steps = append(r.res.Steps, Step{
		Round:     r.st.round,
		Stage:     r.st.phase,
		Candidate: candidate,
		Accepted:  slices.Clone(fullCols),
		Test:      res,
	})

	if r.logger.Enabled(context.Background(), log.LevelDebug) {
		r.logger.Debug("Partial F-test",
			log.StageKey, r.st.phase.String(),
			log.RoundKey, r.st.round,
			log.CandidateKey, candidate,
			log.FStatKey, res.F,
			log.CriticalKey, res.Critical,
			log.PValueKey, res.PValue,
			log.DF1Key, res.DF1,
			log.DF2Key, res.DF2,
			log.DecisionKey, res.Significant,
		)
	}
	return res, nil
}

// recordPath appends the criteria of the current accepted model.
func (r *run) recordPath() error {
	cols := r.st.acceptedCopy()
	sub, err := linear.SelectColumns(r.z, cols)
	if err != nil {
		return r.wrap(err, -1)
	}
	ss, err := linear.Decompose(sub, r.y)
	if err != nil {
		return r.wrap(err, -1)
	}
	crit, err := metrics.EvaluateSums(ss, r.full, len(cols)-1)
	if err != nil {
		return r.wrap(err, -1)
	}

	r.res.Path = append(r.res.Path, PathPoint{Round: r.st.round, Columns: cols, Criteria: crit})
	r.logger.Debug("Accepted model criteria",
		log.RoundKey, r.st.round,
		log.AcceptedKey, cols,
		log.R2Key, crit.R2,
		log.AdjustedR2Key, crit.AdjustedR2,
		log.AICKey, crit.AIC,
		log.CpKey, crit.Cp,
	)
	return nil
}

// wrap はエラーに段階と候補列を付ける
func (r *run) wrap(err error, candidate int) error {
	if candidate < 0 {
		return errors.Wrapf(err, "stepwise: %s", r.st.phase.label())
	}
	return errors.Wrapf(err, "stepwise: %s: candidate %d", r.st.phase.label(), candidate)
}

// Select is a convenience wrapper around New and Run.
func Select(ctx context.Context, z *mat.Dense, y *mat.VecDense, opts ...Option) (*Result, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, z, y)
}
