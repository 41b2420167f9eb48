package stepwise

import "github.com/YuminosukeSato/stepreg/metrics"

// CandidateScore holds the criteria of the one-predictor model [1, Column].
type CandidateScore struct {
	Column   int
	Criteria metrics.Criteria
}

// Nominate returns one column per criterion: the maximum R², the maximum
// adjusted R², the minimum AIC and the minimum Cp. Ties go to the first
// score in slice order.
func Nominate(scores []CandidateScore) []int {
	if len(scores) == 0 {
		return nil
	}

	// R², 調整済み R², AIC, Cp の順
	best := [4]int{}
	for i := 1; i < len(scores); i++ {
		c := scores[i].Criteria
		if c.R2 > scores[best[0]].Criteria.R2 {
			best[0] = i
		}
		if c.AdjustedR2 > scores[best[1]].Criteria.AdjustedR2 {
			best[1] = i
		}
		if c.AIC < scores[best[2]].Criteria.AIC {
			best[2] = i
		}
		if c.Cp < scores[best[3]].Criteria.Cp {
			best[3] = i
		}
	}

	out := make([]int, len(best))
	for k, i := range best {
		out[k] = scores[i].Column
	}
	return out
}

// Vote returns the column named most often in nominations. Ties go to the
// lowest column index. Vote returns -1 for no nominations.
func Vote(nominations []int) int {
	counts := make(map[int]int, len(nominations))
	for _, c := range nominations {
		counts[c]++
	}

	winner, most := -1, 0
	for c, n := range counts {
		if n > most || (n == most && c < winner) {
			winner, most = c, n
		}
	}
	return winner
}
