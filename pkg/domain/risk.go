package domain

import dErrors "docseal/pkg/domain-errors"

// RiskLevel is the ordinal severity assigned to a detected change or
// duplicate signal. Ordering: none < low < medium < high < critical.
type RiskLevel string

const (
	// RiskNone is the zero value: no changes, no rollup severity.
	RiskNone     RiskLevel = ""
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskSeverity = map[RiskLevel]int{
	RiskNone:     0,
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// ParseRiskLevel constructs a RiskLevel from external input.
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if _, ok := riskSeverity[r]; !ok {
		return RiskNone, dErrors.New(dErrors.CodeValidation, "invalid risk level")
	}
	return r, nil
}

// Severity returns the ordinal position; unknown levels rank lowest.
func (r RiskLevel) Severity() int {
	return riskSeverity[r]
}

// AtLeast reports whether r is as severe as other.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.Severity() >= other.Severity()
}

// MaxRisk returns the more severe of the two levels.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

func (r RiskLevel) String() string { return string(r) }
