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

	averrors "campushub/internal/audiovisual/errors"
	"campushub/pkg/config"
	"campushub/pkg/model"
)

const (
	EquipmentCollection = "Equipment"
)

type mongoEquipmentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type EquipmentRepository interface {
	Create(ctx context.Context, equipment *model.Equipment) error
	FindByID(ctx context.Context, id string) (*model.Equipment, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Equipment, error)
	FindByStatus(ctx context.Context, status string) ([]*model.Equipment, error)
	Update(ctx context.Context, id string, equipment *model.Equipment) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func NewMongoEquipmentRepository(cfg *config.Config) EquipmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEquipmentRepository{
		cfg:        cfg,
		collection: db.Collection(EquipmentCollection),
	}
}

func (r *mongoEquipmentRepository) Create(ctx context.Context, equipment *model.Equipment) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	equipment.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, equipment)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		equipment.ID = oid.Hex()
	}
	return nil
}

func (r *mongoEquipmentRepository) FindByID(ctx context.Context, id string) (*model.Equipment, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", averrors.ErrInvalidID, id)
	}

	var equipment model.Equipment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&equipment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, averrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}

	return &equipment, nil
}

func (r *mongoEquipmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Equipment, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "tag", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}
	defer cursor.Close(ctx)

	var equipment []*model.Equipment
	if err = cursor.All(ctx, &equipment); err != nil {
		return nil, fmt.Errorf("failed to decode equipment: %w", err)
	}

	return equipment, nil
}

func (r *mongoEquipmentRepository) FindByStatus(ctx context.Context, status string) ([]*model.Equipment, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "tag", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find equipment by status: %w", err)
	}
	defer cursor.Close(ctx)

	var equipment []*model.Equipment
	if err = cursor.All(ctx, &equipment); err != nil {
		return nil, fmt.Errorf("failed to decode equipment: %w", err)
	}

	return equipment, nil
}

func (r *mongoEquipmentRepository) Update(ctx context.Context, id string, equipment *model.Equipment) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", averrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"tag":    equipment.Tag,
			"name":   equipment.Name,
			"type":   equipment.Type,
			"block":  equipment.Block,
			"status": equipment.Status,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}

	if result.MatchedCount == 0 {
		return averrors.ErrNotFound
	}

	return nil
}

func (r *mongoEquipmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", averrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}

	if result.DeletedCount == 0 {
		return averrors.ErrNotFound
	}

	return nil
}

func (r *mongoEquipmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}

	return count, nil
}
