package notificationRepo

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

// NotificationRepository records mails sent to family contacts.
type NotificationRepository interface {
	// Create inserts a notification record.
	Create(n *models.FamilyNotification) error
	// GetByFamilyEmail retrieves notification history, newest first.
	GetByFamilyEmail(email string) ([]models.FamilyNotification, error)
}

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo creates a new NotificationRepository using MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("family_notifications")
	return &MongoNotificationRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a notification record.
func (r *MongoNotificationRepo) Create(n *models.FamilyNotification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetByFamilyEmail retrieves notification history, newest first.
func (r *MongoNotificationRepo) GetByFamilyEmail(email string) ([]models.FamilyNotification, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"family_email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var notifications []models.FamilyNotification
	for cursor.Next(ctx) {
		var n models.FamilyNotification
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
