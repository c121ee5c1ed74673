package models

import "time"

// FamilyNotification records a mail sent to a prisoner's family contact.
type FamilyNotification struct {
	ID          string    `bson:"id" json:"id"`
	FamilyEmail string    `bson:"family_email" json:"family_email"`
	CaseNumber  int       `bson:"case_number" json:"case_number"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
