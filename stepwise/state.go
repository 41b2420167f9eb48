package stepwise

import (
	"strings"

	"github.com/YuminosukeSato/stepreg/pkg/log"
)

// State is a phase of the selection state machine.
type State int

const (
	SelectingInitial State = iota
	Validating
	GrowingSubset
	PruningSubset
	Terminal
)

func (s State) String() string {
	switch s {
	case SelectingInitial:
		return log.StageSelectingInitial
	case Validating:
		return log.StageValidating
	case GrowingSubset:
		return log.StageGrowing
	case PruningSubset:
		return log.StagePruning
	case Terminal:
		return log.StageTerminal
	default:
		return "unknown"
	}
}

// label はエラーメッセージ用の表記
func (s State) label() string {
	return strings.ReplaceAll(s.String(), "_", " ")
}

// StopReason says why the selector reached Terminal.
type StopReason int

const (
	// Exhausted: every predictor is either accepted or excluded.
	Exhausted StopReason = iota
	// NoSignificantCandidate: growing tested every remaining column and none
	// was significant.
	NoSignificantCandidate
)

func (r StopReason) String() string {
	switch r {
	case Exhausted:
		return "exhausted"
	case NoSignificantCandidate:
		return "no_significant_candidate"
	default:
		return "unknown"
	}
}

// state はある時点での選択状況
type state struct {
	phase    State
	accepted []int        // 切片を含む採用列（採用順）
	excluded map[int]bool // 枝刈りで恒久的に除外された列
	added    int
	leaves   int
	round    int
}

func newState() *state {
	return &state{
		phase:    SelectingInitial,
		excluded: make(map[int]bool),
	}
}

// candidates は採用済みでも除外済みでもない予測変数列を昇順で返す
func (s *state) candidates(predictors int) []int {
	in := make(map[int]bool, len(s.accepted))
	for _, j := range s.accepted {
		in[j] = true
	}
	var out []int
	for j := 1; j <= predictors; j++ {
		if !in[j] && !s.excluded[j] {
			out = append(out, j)
		}
	}
	return out
}

func (s *state) acceptedCopy() []int {
	return append([]int(nil), s.accepted...)
}
