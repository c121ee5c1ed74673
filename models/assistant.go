package models

import "time"

// AssistantConversation groups a user's exchanges with the legal assistant.
type AssistantConversation struct {
	ID        string    `bson:"id" json:"id"`
	UserEmail string    `bson:"user_email" json:"user_email"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AssistantMessage is a single turn, either role "user" or "assistant".
type AssistantMessage struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversation_id"`
	Role           string    `bson:"role" json:"role"`
	Content        string    `bson:"content" json:"content"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// AssistantTurn is a compact prompt/reply pair kept in the rolling Redis
// context fed back to the model.
type AssistantTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AssistantContext is the short-lived conversational memory for one user.
type AssistantContext struct {
	ConversationID string          `json:"conversationId"`
	Turns          []AssistantTurn `json:"turns"`
}
