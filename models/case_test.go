package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegalAidRendering(t *testing.T) {
	c := Case{AidStatus: AidUnrequested}
	assert.Equal(t, "", c.LegalAid())

	c = Case{AidStatus: AidUnderReview, AidProvider: "a@y.com"}
	assert.Equal(t, "under review: a@y.com", c.LegalAid())

	c = Case{AidStatus: AidAccepted, AidProvider: "a@y.com"}
	assert.Equal(t, "accepted: a@y.com", c.LegalAid())
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 1, SeverityRank("petty"))
	assert.Equal(t, 2, SeverityRank("minor"))
	assert.Equal(t, 3, SeverityRank("moderate"))
	assert.Equal(t, 4, SeverityRank("serious"))
}

func TestSeverityRankNormalizesInput(t *testing.T) {
	assert.Equal(t, 4, SeverityRank("Serious"))
	assert.Equal(t, 2, SeverityRank("  minor "))
}

func TestSeverityRankUnknownIsZero(t *testing.T) {
	assert.Equal(t, 0, SeverityRank(""))
	assert.Equal(t, 0, SeverityRank("catastrophic"))
}

func TestReference(t *testing.T) {
	c := Case{CaseNumber: 42}
	assert.Equal(t, "CASE-42", c.Reference())
}
