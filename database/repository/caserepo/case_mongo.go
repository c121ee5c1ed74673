package caseRepo

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

// MongoCaseRepo implements CaseRepository using MongoDB.
type MongoCaseRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoCaseRepo creates a new instance of CaseRepository using MongoDB.
func NewMongoCaseRepo() CaseRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &MongoCaseRepo{
		coll:     db.Collection("cases"),
		counters: db.Collection("counters"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCaseRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "case_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "submitted_by", Value: 1}}},
		{Keys: bson.D{{Key: "judge_assigned", Value: 1}}},
		{Keys: bson.D{{Key: "aid_provider", Value: 1}}},
		{Keys: bson.D{{Key: "trial_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// nextCaseNumber atomically increments and returns the case sequence.
func (r *MongoCaseRepo) nextCaseNumber(ctx context.Context) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "case_number"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance case counter: %w", err)
	}
	return counter.Seq, nil
}

// Create inserts a new case document with the next sequential case number.
func (r *MongoCaseRepo) Create(c *models.Case) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	num, err := r.nextCaseNumber(ctx)
	if err != nil {
		return err
	}
	c.CaseNumber = num

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.AidStatus == "" {
		c.AidStatus = models.AidUnrequested
	}

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

// GetByNumber retrieves a case by its number, nil when absent.
func (r *MongoCaseRepo) GetByNumber(caseNumber int) (*models.Case, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.Case
	if err := r.coll.FindOne(ctx, bson.M{"case_number": caseNumber}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch case %d: %w", caseNumber, err)
	}
	return &c, nil
}

func (r *MongoCaseRepo) find(filter bson.M) ([]models.Case, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cases: %w", err)
	}
	defer cursor.Close(ctx)

	var cases []models.Case
	for cursor.Next(ctx) {
		var c models.Case
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// GetByNumbers retrieves the cases matching the given numbers.
func (r *MongoCaseRepo) GetByNumbers(caseNumbers []int) ([]models.Case, error) {
	return r.find(bson.M{"case_number": bson.M{"$in": caseNumbers}})
}

// GetBySubmitter retrieves all cases submitted by the given email.
func (r *MongoCaseRepo) GetBySubmitter(email string) ([]models.Case, error) {
	return r.find(bson.M{"submitted_by": email})
}

// GetByJudge retrieves all cases assigned to the given judge.
func (r *MongoCaseRepo) GetByJudge(email string) ([]models.Case, error) {
	return r.find(bson.M{"judge_assigned": email})
}

// GetByAidProvider retrieves all cases whose aid provider is the given email.
func (r *MongoCaseRepo) GetByAidProvider(email string) ([]models.Case, error) {
	return r.find(bson.M{"aid_provider": email})
}

// SetAidStatus updates the aid assignment state of a case.
func (r *MongoCaseRepo) SetAidStatus(caseNumber int, status models.AidStatus, provider string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"aid_status":   status,
		"aid_provider": provider,
		"updated_at":   time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"case_number": caseNumber}, update)
	if err != nil {
		return fmt.Errorf("failed to update aid status for case %d: %w", caseNumber, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("case %d not found", caseNumber)
	}
	return nil
}

// SetTrialDate sets the trial date of a case.
func (r *MongoCaseRepo) SetTrialDate(caseNumber int, date time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"trial_date": date,
		"updated_at": time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"case_number": caseNumber}, update)
	if err != nil {
		return fmt.Errorf("failed to set trial date for case %d: %w", caseNumber, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("case %d not found", caseNumber)
	}
	return nil
}

// GetWithTrialDateBetween retrieves cases whose trial date falls in [from, to).
func (r *MongoCaseRepo) GetWithTrialDateBetween(from, to time.Time) ([]models.Case, error) {
	return r.find(bson.M{"trial_date": bson.M{"$gte": from, "$lt": to}})
}
