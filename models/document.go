package models

import "time"

// CaseDocument is metadata for an uploaded case file. The binary lives in
// Cloudinary; PublicID is the handle download URLs are built from.
type CaseDocument struct {
	ID           string    `bson:"id" json:"id"`
	CaseNumber   int       `bson:"case_number" json:"case_number"`
	UploadedBy   string    `bson:"uploaded_by" json:"uploaded_by"`
	FileName     string    `bson:"file_name" json:"file_name"`
	PublicID     string    `bson:"public_id" json:"public_id"`
	ResourceType string    `bson:"resource_type" json:"resource_type"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
