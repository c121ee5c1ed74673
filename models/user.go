package models

import "time"

// Roles recognised by the platform.
const (
	RolePrisoner = "under trial prisoner"
	RoleProvider = "legal aid provider"
	RoleJudge    = "judge"
)

// User represents a platform account. Email is the identity other records
// reference (cases, requests, messages), not the surrogate ID.
type User struct {
	ID             string    `bson:"id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	Role           string    `bson:"role" json:"role"`
	FullName       string    `bson:"full_name,omitempty" json:"full_name,omitempty"`
	FamilyEmail    string    `bson:"family_email,omitempty" json:"family_email,omitempty"`
	Specialization string    `bson:"specialization,omitempty" json:"specialization,omitempty"`
	CasesHandled   int       `bson:"cases_handled" json:"cases_handled"`
	Password       string    `bson:"-" json:"password,omitempty"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	TokenHash      string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
}
