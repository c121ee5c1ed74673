package models

import "time"

// Request statuses. A request mutates exactly once in the happy path:
// Pending -> Accepted or Pending -> Declined.
const (
	RequestPending  = "Pending"
	RequestAccepted = "Accepted"
	RequestDeclined = "Declined"
)

// AidRequest links a case, the prisoner who submitted it and the provider
// asked to review it.
type AidRequest struct {
	ID            string    `bson:"id" json:"id"`
	CaseNumber    int       `bson:"case_number" json:"case_number"`
	RequestedBy   string    `bson:"requested_by" json:"requested_by"`
	ProviderEmail string    `bson:"provider_email" json:"provider_email"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// RequestWithCase is a ledger row joined with its case, as shown on the
// provider's received-requests screen.
type RequestWithCase struct {
	AidRequest `bson:",inline"`
	Case       *Case `bson:"case,omitempty" json:"case,omitempty"`
}
