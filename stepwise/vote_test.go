package stepwise

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YuminosukeSato/stepreg/metrics"
)

func TestVote(t *testing.T) {
	tests := []struct {
		name        string
		nominations []int
		want        int
	}{
		{"unanimous", []int{3, 3, 3, 3}, 3},
		{"majority", []int{4, 1, 4, 4}, 4},
		{"two-two tie goes to lowest index", []int{5, 2, 5, 2}, 2},
		{"all different", []int{7, 3, 9, 4}, 3},
		{"empty", nil, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Vote(tt.nominations))
		})
	}
}

func TestNominate(t *testing.T) {
	scores := []CandidateScore{
		{Column: 1, Criteria: metrics.Criteria{R2: 0.5, AdjustedR2: 0.4, AIC: 10, Cp: 3}},
		{Column: 2, Criteria: metrics.Criteria{R2: 0.7, AdjustedR2: 0.6, AIC: 12, Cp: 2}},
		{Column: 3, Criteria: metrics.Criteria{R2: 0.7, AdjustedR2: 0.6, AIC: 8, Cp: 2}},
	}

	// 同値は先に現れた候補
	assert.Equal(t, []int{2, 2, 3, 2}, Nominate(scores))
	assert.Equal(t, 2, Vote(Nominate(scores)))
	assert.Nil(t, Nominate(nil))
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "growing_subset", GrowingSubset.String())
	assert.Equal(t, "pruning subset", PruningSubset.label())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestStateCandidates(t *testing.T) {
	st := newState()
	st.accepted = []int{0, 2}
	st.excluded[4] = true

	assert.Equal(t, []int{1, 3, 5}, st.candidates(5))
}
