package models

import (
	"fmt"
	"strings"
	"time"
)

// AidStatus is the typed legal-aid assignment state of a case. The legacy
// schema encoded this as a free-text prefix inside a single "legalAid"
// column; the typed field plus AidProvider replaces that encoding, and
// LegalAid() renders the legacy string for API payloads.
type AidStatus string

const (
	AidUnrequested AidStatus = "unrequested"
	AidUnderReview AidStatus = "under_review"
	AidAccepted    AidStatus = "accepted"
)

// Case is a submitted under-trial prisoner's legal matter.
type Case struct {
	CaseNumber              int       `bson:"case_number" json:"case_number"`
	SubmittedBy             string    `bson:"submitted_by" json:"submitted_by"`
	CaseDescription         string    `bson:"case_description" json:"case_description"`
	Age                     int       `bson:"age" json:"age"`
	Gender                  string    `bson:"gender" json:"gender"`
	SocioeconomicBackground string    `bson:"socioeconomic_background" json:"socioeconomic_background"`
	EmploymentStatus        string    `bson:"employment_status" json:"employment_status"`
	OffenseNature           string    `bson:"offense_nature" json:"offense_nature"`
	Severity                string    `bson:"severity" json:"severity"`
	CriminalHistory         string    `bson:"criminal_history" json:"criminal_history"`
	VictimImpact            string    `bson:"victim_impact" json:"victim_impact"`
	PublicInterest          string    `bson:"public_interest" json:"public_interest"`
	CustodyTime             string    `bson:"custody_time" json:"custody_time"`
	Adjournments            string    `bson:"adjournments" json:"adjournments"`
	BailAmount              string    `bson:"bail_amount" json:"bail_amount"`
	BailConditions          string    `bson:"bail_conditions" json:"bail_conditions"`
	AidStatus               AidStatus `bson:"aid_status" json:"aid_status"`
	AidProvider             string    `bson:"aid_provider,omitempty" json:"aid_provider,omitempty"`
	JudgeAssigned           string    `bson:"judge_assigned,omitempty" json:"judge_assigned,omitempty"`
	TrialDate               *time.Time `bson:"trial_date,omitempty" json:"trial_date,omitempty"`
	CreatedAt               time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt               time.Time `bson:"updated_at" json:"updated_at"`
}

// LegalAid renders the legacy single-field status string: empty when
// unrequested, "under review: <provider>" while pending, and
// "accepted: <provider>" once assigned.
func (c *Case) LegalAid() string {
	switch c.AidStatus {
	case AidUnderReview:
		return "under review: " + c.AidProvider
	case AidAccepted:
		return "accepted: " + c.AidProvider
	default:
		return ""
	}
}

// Reference returns the display identifier, e.g. "CASE-42".
func (c *Case) Reference() string {
	return fmt.Sprintf("CASE-%d", c.CaseNumber)
}

// severityRanks orders offense severity: petty < minor < moderate < serious.
var severityRanks = map[string]int{
	"petty":    1,
	"minor":    2,
	"moderate": 3,
	"serious":  4,
}

// SeverityRank maps a severity label to its ordinal rank. Unknown labels
// rank below petty so they sink to the bottom of descending sorts.
func SeverityRank(severity string) int {
	return severityRanks[strings.ToLower(strings.TrimSpace(severity))]
}
