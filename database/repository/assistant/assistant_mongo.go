package assistantRepo

import (
	"context"
	"fmt"
	"time"

	"nyayamitra/database"
	"nyayamitra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssistantRepository persists legal-assistant conversations and messages.
type AssistantRepository interface {
	// CreateConversation inserts a new conversation.
	CreateConversation(c *models.AssistantConversation) error
	// GetConversation retrieves a conversation by ID, nil when absent.
	GetConversation(id string) (*models.AssistantConversation, error)
	// GetConversationsByUser lists a user's conversations, newest first.
	GetConversationsByUser(email string) ([]models.AssistantConversation, error)
	// TouchConversation bumps a conversation's updated time and title.
	TouchConversation(id, title string) error
	// DeleteConversation removes a conversation and all its messages.
	DeleteConversation(id string) error
	// AppendMessage inserts a message into a conversation.
	AppendMessage(m *models.AssistantMessage) error
	// GetMessages retrieves a conversation's messages, oldest first.
	GetMessages(conversationID string) ([]models.AssistantMessage, error)
}

// MongoAssistantRepo implements AssistantRepository using MongoDB.
type MongoAssistantRepo struct {
	convColl *mongo.Collection
	msgColl  *mongo.Collection
}

// NewMongoAssistantRepo creates a new AssistantRepository using MongoDB.
func NewMongoAssistantRepo() AssistantRepository {
	db := database.MongoClient.Database(database.DBName)
	return &MongoAssistantRepo{
		convColl: db.Collection("assistant_conversations"),
		msgColl:  db.Collection("assistant_messages"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// CreateConversation inserts a new conversation.
func (r *MongoAssistantRepo) CreateConversation(c *models.AssistantConversation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := r.convColl.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// GetConversation retrieves a conversation by ID, nil when absent.
func (r *MongoAssistantRepo) GetConversation(id string) (*models.AssistantConversation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.AssistantConversation
	if err := r.convColl.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch conversation %s: %w", id, err)
	}
	return &c, nil
}

// GetConversationsByUser lists a user's conversations, newest first.
func (r *MongoAssistantRepo) GetConversationsByUser(email string) ([]models.AssistantConversation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.convColl.Find(ctx, bson.M{"user_email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve conversations for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var convs []models.AssistantConversation
	for cursor.Next(ctx) {
		var c models.AssistantConversation
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode conversation: %w", err)
		}
		convs = append(convs, c)
	}
	return convs, nil
}

// TouchConversation bumps a conversation's updated time and title.
func (r *MongoAssistantRepo) TouchConversation(id, title string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields := bson.M{"updated_at": time.Now()}
	if title != "" {
		fields["title"] = title
	}
	if _, err := r.convColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields}); err != nil {
		return fmt.Errorf("failed to touch conversation %s: %w", id, err)
	}
	return nil
}

// DeleteConversation removes a conversation and all its messages.
func (r *MongoAssistantRepo) DeleteConversation(id string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.msgColl.DeleteMany(ctx, bson.M{"conversation_id": id}); err != nil {
		return fmt.Errorf("failed to delete conversation messages: %w", err)
	}
	result, err := r.convColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("conversation %s not found", id)
	}
	return nil
}

// AppendMessage inserts a message into a conversation.
func (r *MongoAssistantRepo) AppendMessage(m *models.AssistantMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.CreatedAt = time.Now()
	if _, err := r.msgColl.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// GetMessages retrieves a conversation's messages, oldest first.
func (r *MongoAssistantRepo) GetMessages(conversationID string) ([]models.AssistantMessage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.msgColl.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.AssistantMessage
	for cursor.Next(ctx) {
		var m models.AssistantMessage
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}
