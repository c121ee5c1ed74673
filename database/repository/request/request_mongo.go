package requestRepo

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

// MongoRequestRepo implements RequestRepository using MongoDB. It holds the
// cases collection as well so accept/decline can update both documents
// inside one transaction.
type MongoRequestRepo struct {
	coll     *mongo.Collection
	caseColl *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &MongoRequestRepo{
		coll:     db.Collection("requests"),
		caseColl: db.Collection("cases"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates lookup indexes plus the partial unique index that
// allows at most one Pending/Accepted request per case.
func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_email", Value: 1}}},
		{
			Keys: bson.D{{Key: "case_number", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{models.RequestPending, models.RequestAccepted}},
				}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new request row.
func (r *MongoRequestRepo) Create(req *models.AidRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateActiveRequest
		}
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its ID, nil when absent.
func (r *MongoRequestRepo) GetByID(id string) (*models.AidRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.AidRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch request %s: %w", id, err)
	}
	return &req, nil
}

// GetActiveByCase retrieves the Pending or Accepted request for a case.
func (r *MongoRequestRepo) GetActiveByCase(caseNumber int) (*models.AidRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"case_number": caseNumber,
		"status":      bson.M{"$in": bson.A{models.RequestPending, models.RequestAccepted}},
	}
	var req models.AidRequest
	if err := r.coll.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch active request for case %d: %w", caseNumber, err)
	}
	return &req, nil
}

// GetByProvider retrieves all requests addressed to the given provider.
func (r *MongoRequestRepo) GetByProvider(email string) ([]models.AidRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"provider_email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve requests for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var requests []models.AidRequest
	for cursor.Next(ctx) {
		var req models.AidRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// Accept marks the request Accepted and the case accepted-by-provider in a
// single transaction.
func (r *MongoRequestRepo) Accept(ctx context.Context, requestID string, caseNumber int, provider string) error {
	return r.transition(ctx, requestID, models.RequestAccepted, caseNumber, bson.M{
		"aid_status":   models.AidAccepted,
		"aid_provider": provider,
		"updated_at":   time.Now(),
	})
}

// Decline marks the request Declined and clears the case's aid status in a
// single transaction.
func (r *MongoRequestRepo) Decline(ctx context.Context, requestID string, caseNumber int) error {
	return r.transition(ctx, requestID, models.RequestDeclined, caseNumber, bson.M{
		"aid_status":   models.AidUnrequested,
		"aid_provider": "",
		"updated_at":   time.Now(),
	})
}

// transition applies the request status change and the case update inside
// one Mongo transaction so readers never observe them split.
func (r *MongoRequestRepo) transition(ctx context.Context, requestID, newStatus string, caseNumber int, caseFields bson.M) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		reqFilter := bson.M{"id": requestID, "status": models.RequestPending}
		reqUpdate := bson.M{"$set": bson.M{"status": newStatus, "updated_at": time.Now()}}
		res, err := r.coll.UpdateOne(sc, reqFilter, reqUpdate)
		if err != nil {
			return fmt.Errorf("update request failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotPending
		}

		caseRes, err := r.caseColl.UpdateOne(sc, bson.M{"case_number": caseNumber}, bson.M{"$set": caseFields})
		if err != nil {
			return fmt.Errorf("update case failed: %w", err)
		}
		if caseRes.MatchedCount == 0 {
			return fmt.Errorf("case %d not found", caseNumber)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
