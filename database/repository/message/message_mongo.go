package messageRepo

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

// MessageRepository defines methods for direct-message access.
type MessageRepository interface {
	// Create inserts a new message.
	Create(m *models.Message) error
	// GetConversation retrieves all messages between the two emails, oldest first.
	GetConversation(a, b string) ([]models.Message, error)
	// GetCorrespondents returns the distinct emails that have messaged the
	// given recipient.
	GetCorrespondents(toEmail string) ([]string, error)
	// GetLastMessage returns the most recent message between the two emails,
	// nil when they have never exchanged one.
	GetLastMessage(a, b string) (*models.Message, error)
	// CountUnread counts unread messages from one sender to a recipient.
	CountUnread(toEmail, fromEmail string) (int64, error)
	// MarkRead marks every message from one sender to a recipient as read.
	MarkRead(toEmail, fromEmail string) error
}

// MongoMessageRepo implements MessageRepository using MongoDB.
type MongoMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoMessageRepo creates a new MessageRepository using MongoDB.
func NewMongoMessageRepo() MessageRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("messages")
	repo := &MongoMessageRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMessageRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "to_email", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "from_email", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new message.
func (r *MongoMessageRepo) Create(m *models.Message) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// pairFilter matches messages flowing either direction between two emails.
func pairFilter(a, b string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"from_email": a, "to_email": b},
		bson.M{"from_email": b, "to_email": a},
	}}
}

// GetConversation retrieves all messages between the two emails, oldest first.
func (r *MongoMessageRepo) GetConversation(a, b string) ([]models.Message, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, pairFilter(a, b), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve conversation: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	for cursor.Next(ctx) {
		var m models.Message
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// GetCorrespondents returns the distinct emails that have messaged the recipient.
func (r *MongoMessageRepo) GetCorrespondents(toEmail string) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"to_email": toEmail, "from_email": bson.M{"$ne": toEmail}}
	values, err := r.coll.Distinct(ctx, "from_email", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list correspondents for %s: %w", toEmail, err)
	}

	emails := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			emails = append(emails, s)
		}
	}
	return emails, nil
}

// GetLastMessage returns the most recent message between the two emails.
func (r *MongoMessageRepo) GetLastMessage(a, b string) (*models.Message, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var m models.Message
	if err := r.coll.FindOne(ctx, pairFilter(a, b), opts).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last message: %w", err)
	}
	return &m, nil
}

// CountUnread counts unread messages from one sender to a recipient.
func (r *MongoMessageRepo) CountUnread(toEmail, fromEmail string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"to_email":   toEmail,
		"from_email": fromEmail,
		"read":       false,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// MarkRead marks every message from one sender to a recipient as read.
func (r *MongoMessageRepo) MarkRead(toEmail, fromEmail string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"to_email": toEmail, "from_email": fromEmail, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}
