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

	mkerrors "campushub/internal/marketing/errors"
	"campushub/pkg/config"
	mongotx "campushub/pkg/db/mongo"
	"campushub/pkg/model"
)

const (
	MarketingCollection = "Marketing_requests"
)

type mongoMarketingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type MarketingRepository interface {
	Create(ctx context.Context, request *model.MarketingRequest) error
	FindByID(ctx context.Context, id string) (*model.MarketingRequest, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.MarketingRequest, error)
	FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.MarketingRequest, error)
	SetApproval(ctx context.Context, id string, stage model.Stage, approval model.Approval, status string) error
	SetChecklistItem(ctx context.Context, id string, patch *model.ChecklistPatch) error
	SetStatus(ctx context.Context, id string, status string, completedAt *time.Time) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoMarketingRepository(cfg *config.Config) MarketingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoMarketingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(MarketingCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
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

func (r *mongoMarketingRepository) Create(ctx context.Context, request *model.MarketingRequest) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	request.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create marketing request: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid.Hex()
	}
	return nil
}

func (r *mongoMarketingRepository) FindByID(ctx context.Context, id string) (*model.MarketingRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", mkerrors.ErrInvalidID, id)
	}

	var request model.MarketingRequest
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mkerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find marketing request: %w", err)
	}

	return &request, nil
}

// FindAll lists requests newest first.
func (r *mongoMarketingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.MarketingRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find marketing requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.MarketingRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode marketing requests: %w", err)
	}

	return requests, nil
}

func (r *mongoMarketingRepository) FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.MarketingRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find marketing requests by status: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.MarketingRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode marketing requests: %w", err)
	}

	return requests, nil
}

// SetApproval writes one stage's decision together with the derived overall
// status in a single update.
func (r *mongoMarketingRepository) SetApproval(ctx context.Context, id string, stage model.Stage, approval model.Approval, status string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", mkerrors.ErrInvalidID, id)
	}

	set := bson.M{
		fmt.Sprintf("approvals.%s", stage): approval,
		"status":                           status,
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}

	if result.MatchedCount == 0 {
		return mkerrors.ErrNotFound
	}

	return nil
}

// SetChecklistItem updates one checklist item. The field path is assembled
// here from the already-validated group and item keys.
func (r *mongoMarketingRepository) SetChecklistItem(ctx context.Context, id string, patch *model.ChecklistPatch) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", mkerrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if patch.Done != nil {
		set[fmt.Sprintf("%s.%s.done", patch.Group, patch.Item)] = *patch.Done
	}
	if patch.Assignee != nil {
		set[fmt.Sprintf("%s.%s.assignee", patch.Group, patch.Item)] = *patch.Assignee
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}

	if result.MatchedCount == 0 {
		return mkerrors.ErrNotFound
	}

	return nil
}

func (r *mongoMarketingRepository) SetStatus(ctx context.Context, id string, status string, completedAt *time.Time) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", mkerrors.ErrInvalidID, id)
	}

	set := bson.M{"status": status}
	if completedAt != nil {
		set["completed_at"] = *completedAt
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update marketing request status: %w", err)
	}

	if result.MatchedCount == 0 {
		return mkerrors.ErrNotFound
	}

	return nil
}

func (r *mongoMarketingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count marketing requests: %w", err)
	}

	return count, nil
}

func (r *mongoMarketingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
