package sensitivity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docseal/pkg/domain"
)

func TestRiskFor(t *testing.T) {
	t.Run("financial fields are critical", func(t *testing.T) {
		assert.Equal(t, domain.RiskCritical, RiskFor("loan_amount"))
		assert.Equal(t, domain.RiskCritical, RiskFor("ssn"))
	})

	t.Run("free text fields are low", func(t *testing.T) {
		assert.Equal(t, domain.RiskLow, RiskFor("additional_notes"))
		assert.Equal(t, domain.RiskLow, RiskFor("comments"))
	})

	t.Run("nested paths classify by final segment", func(t *testing.T) {
		assert.Equal(t, domain.RiskCritical, RiskFor("borrower.ssn"))
		assert.Equal(t, domain.RiskLow, RiskFor("application.review.notes"))
	})

	t.Run("unmapped fields default to medium", func(t *testing.T) {
		assert.Equal(t, domain.RiskMedium, RiskFor("co_signer_relation"))
		assert.Equal(t, domain.RiskMedium, RiskFor("some.unknown.field"))
	})
}
