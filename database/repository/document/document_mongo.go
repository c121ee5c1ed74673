package documentRepo

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

// DocumentRepository stores case-document metadata.
type DocumentRepository interface {
	// Create inserts a document record.
	Create(d *models.CaseDocument) error
	// GetByID retrieves a document by ID, nil when absent.
	GetByID(id string) (*models.CaseDocument, error)
	// GetByCase retrieves all documents for a case, newest first.
	GetByCase(caseNumber int) ([]models.CaseDocument, error)
	// Delete removes a document record by ID.
	Delete(id string) error
}

// MongoDocumentRepo implements DocumentRepository using MongoDB.
type MongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo creates a new DocumentRepository using MongoDB.
func NewMongoDocumentRepo() DocumentRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("case_documents")
	return &MongoDocumentRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a document record.
func (r *MongoDocumentRepo) Create(d *models.CaseDocument) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	d.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to create document record: %w", err)
	}
	return nil
}

// GetByID retrieves a document by ID, nil when absent.
func (r *MongoDocumentRepo) GetByID(id string) (*models.CaseDocument, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var d models.CaseDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch document %s: %w", id, err)
	}
	return &d, nil
}

// GetByCase retrieves all documents for a case, newest first.
func (r *MongoDocumentRepo) GetByCase(caseNumber int) ([]models.CaseDocument, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"case_number": caseNumber}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve documents for case %d: %w", caseNumber, err)
	}
	defer cursor.Close(ctx)

	var docs []models.CaseDocument
	for cursor.Next(ctx) {
		var d models.CaseDocument
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Delete removes a document record by ID.
func (r *MongoDocumentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("document %s not found", id)
	}
	return nil
}
