// Package sensitivity holds the single authoritative field-sensitivity table.
// Both the diff engine and the duplicate gate consume it; keeping one table
// prevents the "required" vs "sensitive" field sets from drifting apart.
package sensitivity

import (
	"strings"

	"docseal/pkg/domain"
)

// DefaultRisk applies to any field not present in the table.
const DefaultRisk = domain.RiskMedium

// fieldRisk maps a field name (the last segment of a field path) to the risk
// of that field changing after sealing. Borrower identity and financial terms
// are the fields a tampering attempt targets; free-text fields change for
// legitimate reasons all the time.
var fieldRisk = map[string]domain.RiskLevel{
	// Borrower identity
	"borrower_name": domain.RiskCritical,
	"ssn":           domain.RiskCritical,
	"ssn_last4":     domain.RiskCritical,
	"date_of_birth": domain.RiskCritical,
	"national_id":   domain.RiskCritical,

	// Financial terms
	"loan_amount":    domain.RiskCritical,
	"interest_rate":  domain.RiskCritical,
	"bank_account":   domain.RiskCritical,
	"routing_number": domain.RiskCritical,

	// Loan structure
	"loan_id":          domain.RiskHigh,
	"loan_term_months": domain.RiskHigh,
	"property_address": domain.RiskHigh,
	"monthly_payment":  domain.RiskHigh,
	"borrower_email":   domain.RiskHigh,
	"email":            domain.RiskHigh,

	// Contact and employment
	"borrower_phone": domain.RiskMedium,
	"phone":          domain.RiskMedium,
	"employer":       domain.RiskMedium,
	"annual_income":  domain.RiskMedium,

	// Administrative free text
	"additional_notes": domain.RiskLow,
	"notes":            domain.RiskLow,
	"comments":         domain.RiskLow,
	"internal_memo":    domain.RiskLow,
}

// RiskFor returns the sensitivity of the field at the given path. Nested
// paths are classified by their final segment, so "borrower.ssn" and "ssn"
// rank the same. Unmapped fields default to medium.
func RiskFor(path string) domain.RiskLevel {
	name := path
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		name = path[idx+1:]
	}
	if risk, ok := fieldRisk[name]; ok {
		return risk
	}
	return DefaultRisk
}

// IdentityFields lists the borrower attributes the duplicate gate treats as
// identity dimensions.
func IdentityFields() []string {
	return []string{"borrower_email", "email", "ssn_last4"}
}
