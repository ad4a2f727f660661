package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"startup-registration/common"
	"startup-registration/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	queryTimeout = 5 * time.Second
	listTimeout  = 30 * time.Second
)

// MongoSubmissionRepository stores submissions in a MongoDB collection.
type MongoSubmissionRepository struct {
	Collection *mongo.Collection
}

// NewMongoSubmissionRepository binds the repository to database/collection on client.
func NewMongoSubmissionRepository(client *mongo.Client, database, collection string) *MongoSubmissionRepository {
	return &MongoSubmissionRepository{
		Collection: client.Database(database).Collection(collection),
	}
}

// EnsureIndexes creates the non-unique email index used by every payment lookup.
func (r *MongoSubmissionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_1"),
	})
	if err != nil {
		return fmt.Errorf("%w: create email index: %w", common.ErrPersistence, err)
	}
	return nil
}

func (r *MongoSubmissionRepository) Insert(ctx context.Context, s *models.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.Collection.InsertOne(ctx, s)
	if err != nil {
		return fmt.Errorf("%w: insert submission: %w", common.ErrPersistence, err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return nil
}

func (r *MongoSubmissionRepository) FindAll(ctx context.Context) ([]models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: find submissions: %w", common.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	submissions := []models.Submission{}
	for cursor.Next(ctx) {
		var s models.Submission
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: decode submission: %w", common.ErrPersistence, err)
		}
		submissions = append(submissions, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: read submissions: %w", common.ErrPersistence, err)
	}
	return submissions, nil
}

func (r *MongoSubmissionRepository) FindByEmail(ctx context.Context, email string) (*models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s models.Submission
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: submission for %s", common.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find submission by email: %w", common.ErrPersistence, err)
	}
	return &s, nil
}

func (r *MongoSubmissionRepository) MarkPaidByEmail(ctx context.Context, email string) (*models.Submission, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// The pre-image tells whether this call performed the transition.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	update := bson.M{"$set": bson.M{"paymentStatus": true}}

	var s models.Submission
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("%w: submission for %s", common.ErrNotFound, email)
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: update payment status: %w", common.ErrPersistence, err)
	}

	transitioned := !s.PaymentStatus
	s.PaymentStatus = true
	return &s, transitioned, nil
}

func (r *MongoSubmissionRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: count submissions: %w", common.ErrPersistence, err)
	}
	return n, nil
}
