package feedbackRepo

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

// FeedbackRepository stores court feedback entries per case.
type FeedbackRepository interface {
	// Create inserts a feedback entry.
	Create(f *models.CourtFeedback) error
	// GetByCase retrieves all feedback for a case ordered by hearing date.
	GetByCase(caseNumber int) ([]models.CourtFeedback, error)
}

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo creates a new FeedbackRepository using MongoDB.
func NewMongoFeedbackRepo() FeedbackRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("court_feedbacks")
	return &MongoFeedbackRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a feedback entry.
func (r *MongoFeedbackRepo) Create(f *models.CourtFeedback) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	f.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetByCase retrieves all feedback for a case ordered by hearing date.
func (r *MongoFeedbackRepo) GetByCase(caseNumber int) ([]models.CourtFeedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "hearing_date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"case_number": caseNumber}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve feedback for case %d: %w", caseNumber, err)
	}
	defer cursor.Close(ctx)

	var feedbacks []models.CourtFeedback
	for cursor.Next(ctx) {
		var f models.CourtFeedback
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, nil
}
