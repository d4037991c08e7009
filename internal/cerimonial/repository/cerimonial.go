package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	ceerrors "campushub/internal/cerimonial/errors"
	"campushub/pkg/config"
	"campushub/pkg/model"
)

const (
	CerimonialCollection = "Cerimonial_requests"
)

type mongoCerimonialRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type CerimonialRepository interface {
	Create(ctx context.Context, request *model.CerimonialRequest) error
	FindByID(ctx context.Context, id string) (*model.CerimonialRequest, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.CerimonialRequest, error)
	SetFields(ctx context.Context, id string, set bson.M) error
	SetTaskDone(ctx context.Context, id string, index int, done bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func NewMongoCerimonialRepository(cfg *config.Config) CerimonialRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCerimonialRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CerimonialCollection),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function, as we cannot wrap SessionContext
// without breaking transaction semantics.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCerimonialRepository) Create(ctx context.Context, request *model.CerimonialRequest) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	request.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create cerimonial request: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCerimonialRepository) FindByID(ctx context.Context, id string) (*model.CerimonialRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ceerrors.ErrInvalidID, id)
	}

	var request model.CerimonialRequest
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ceerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cerimonial request: %w", err)
	}

	return &request, nil
}

func (r *mongoCerimonialRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.CerimonialRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cerimonial requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.CerimonialRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode cerimonial requests: %w", err)
	}

	return requests, nil
}

func (r *mongoCerimonialRepository) SetFields(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ceerrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update cerimonial request: %w", err)
	}

	if result.MatchedCount == 0 {
		return ceerrors.ErrNotFound
	}

	return nil
}

// SetTaskDone flips one task of the fixed checklist by positional index. The
// filter guards the index against the stored array length.
func (r *mongoCerimonialRepository) SetTaskDone(ctx context.Context, id string, index int, done bool) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ceerrors.ErrInvalidID, id)
	}

	filter := bson.M{
		"_id": objectID,
		fmt.Sprintf("tasks.%d", index): bson.M{"$exists": true},
	}
	update := bson.M{"$set": bson.M{fmt.Sprintf("tasks.%d.done", index): done}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update cerimonial task: %w", err)
	}

	if result.MatchedCount == 0 {
		return ceerrors.ErrNotFound
	}

	return nil
}

func (r *mongoCerimonialRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ceerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete cerimonial request: %w", err)
	}

	if result.DeletedCount == 0 {
		return ceerrors.ErrNotFound
	}

	return nil
}

func (r *mongoCerimonialRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cerimonial requests: %w", err)
	}

	return count, nil
}
