package resourceRepo

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

// ResourceRepository serves IPC section reference data.
type ResourceRepository interface {
	// GetAll retrieves every IPC section ordered by section number.
	GetAll() ([]models.IPCSection, error)
	// GetBySection retrieves one section, nil when absent.
	GetBySection(section string) (*models.IPCSection, error)
}

// MongoResourceRepo implements ResourceRepository using MongoDB.
type MongoResourceRepo struct {
	coll *mongo.Collection
}

// NewMongoResourceRepo creates a new ResourceRepository using MongoDB.
func NewMongoResourceRepo() ResourceRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("ipc_sections")
	return &MongoResourceRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetAll retrieves every IPC section ordered by section number.
func (r *MongoResourceRepo) GetAll() ([]models.IPCSection, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "section", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve IPC sections: %w", err)
	}
	defer cursor.Close(ctx)

	var sections []models.IPCSection
	for cursor.Next(ctx) {
		var s models.IPCSection
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode IPC section: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// GetBySection retrieves one section, nil when absent.
func (r *MongoResourceRepo) GetBySection(section string) (*models.IPCSection, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var s models.IPCSection
	if err := r.coll.FindOne(ctx, bson.M{"section": section}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch IPC section %s: %w", section, err)
	}
	return &s, nil
}
