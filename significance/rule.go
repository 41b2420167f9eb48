package significance

import (
	"strings"

	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// Rule は F 統計量から有意性を判定する規則
type Rule int

const (
	// RuleCriticalValue は F > F_crit(1−alpha; df1, df2) で有意と判定する（既定）
	RuleCriticalValue Rule = iota
	// RulePValue は上側確率 p = 1 − CDF(F) < alpha で有意と判定する
	RulePValue
	// RuleLegacyCDF は CDF(F) > alpha で有意と判定する。比較実行専用
	RuleLegacyCDF
)

func (r Rule) String() string {
	switch r {
	case RuleCriticalValue:
		return "critical-value"
	case RulePValue:
		return "p-value"
	case RuleLegacyCDF:
		return "legacy-cdf"
	default:
		return "unknown"
	}
}

// ParseRule parses the names produced by Rule.String. Matching ignores case.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical-value", "critical", "":
		return RuleCriticalValue, nil
	case "p-value", "pvalue":
		return RulePValue, nil
	case "legacy-cdf", "legacy":
		return RuleLegacyCDF, nil
	default:
		return 0, errors.NewValidationError("rule", "unknown decision rule", s)
	}
}
