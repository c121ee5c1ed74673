package models

import "time"

// CourtFeedback is a judge's note for a case after a hearing, shown on the
// case timeline and mailed to the family contact.
type CourtFeedback struct {
	ID          string    `bson:"id" json:"id"`
	CaseNumber  int       `bson:"case_number" json:"case_number"`
	JudgeEmail  string    `bson:"judge_email" json:"judge_email"`
	Feedback    string    `bson:"feedback" json:"feedback"`
	HearingDate time.Time `bson:"hearing_date" json:"hearing_date"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
