package models

import "time"

// Message is a direct chat message between two accounts.
type Message struct {
	ID        string    `bson:"id" json:"id"`
	FromEmail string    `bson:"from_email" json:"from_email"`
	ToEmail   string    `bson:"to_email" json:"to_email"`
	Body      string    `bson:"body" json:"body"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ConversationSummary is one row of a provider's inbox: a correspondent,
// the most recent message either way, and how many are still unread.
type ConversationSummary struct {
	PeerEmail   string `json:"peer_email"`
	LastMessage string `json:"last_message,omitempty"`
	UnreadCount int64  `json:"unread_count"`
}
