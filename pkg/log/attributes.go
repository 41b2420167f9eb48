// Standard attribute keys for stepwise selection logs.
//
// Keys are hierarchical ("stepwise.stage", "ftest.f") so that JSON output can
// be filtered per concern.

package log

// Run context
const (
	// ComponentKey identifies the package emitting the record.
	// Examples: "stepwise", "dataset", "report"
	ComponentKey = "component"

	// StageKey is the selector state the record belongs to.
	// Values: see the Stage* constants below.
	StageKey = "stepwise.stage"

	// RoundKey counts grow/prune rounds, starting at 1.
	RoundKey = "stepwise.round"

	// CandidateKey is the design-matrix column index under consideration.
	CandidateKey = "stepwise.candidate"

	// AcceptedKey lists the accepted column indices (intercept included).
	AcceptedKey = "stepwise.accepted"

	// AddedKey and LeavesKey are the prune counts of one round.
	AddedKey  = "stepwise.added"
	LeavesKey = "stepwise.leaves"

	// ReasonKey records why the selector stopped.
	ReasonKey = "stepwise.reason"
)

// Data shape
const (
	// SamplesKey indicates the number of observations (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of candidate predictors.
	FeaturesKey = "data.features"

	// DroppedRowsKey counts rows removed by the missing-value policy.
	DroppedRowsKey = "data.dropped_rows"

	// PathKey is the input or output file path.
	PathKey = "data.path"
)

// Partial F-test
const (
	FStatKey    = "ftest.f"
	CriticalKey = "ftest.critical"
	PValueKey   = "ftest.p_value"
	DF1Key      = "ftest.df1"
	DF2Key      = "ftest.df2"
	AlphaKey    = "ftest.alpha"
	RuleKey     = "ftest.rule"
	DecisionKey = "ftest.significant"
)

// Selection criteria
const (
	R2Key         = "metrics.r2"
	AdjustedR2Key = "metrics.adjusted_r2"
	AICKey        = "metrics.aic"
	CpKey         = "metrics.cp"
	RegSSKey      = "metrics.reg_ss"
)

// Stage values for StageKey.
const (
	StageSelectingInitial = "selecting_initial"
	StageValidating       = "validating"
	StageGrowing          = "growing_subset"
	StagePruning          = "pruning_subset"
	StageTerminal         = "terminal"
)
