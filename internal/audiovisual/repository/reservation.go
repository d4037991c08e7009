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
	mongotx "campushub/pkg/db/mongo"
	"campushub/pkg/model"
)

const (
	ReservationCollection = "Reservations"
)

type mongoReservationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error)
	FindBySlot(ctx context.Context, date string, period model.Period, roomID string, slotTime string) ([]*model.Reservation, error)
	FindByDate(ctx context.Context, date string, period model.Period, limit int, offset int64) ([]*model.Reservation, error)
	FindEquipmentInUse(ctx context.Context, date string, period model.Period, slotTime string) ([]string, error)
	CountByDate(ctx context.Context, date string, period model.Period) (int64, error)
	SetStatus(ctx context.Context, id string, status string, cancelledAt *time.Time) error
	SetUsageLocation(ctx context.Context, id string, usageLocation string) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(ReservationCollection),
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

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", averrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var reservation model.Reservation
	err = r.collection.FindOne(ctx, filter).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, averrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// FindBySlot returns the non-cancelled reservations holding the exact
// (date, period, room, time) slot. Cancelled reservations free the slot.
func (r *mongoReservationRepository) FindBySlot(ctx context.Context, date string, period model.Period, roomID string, slotTime string) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"date":    date,
		"period":  period,
		"room_id": roomID,
		"time":    slotTime,
		"status":  bson.M{"$ne": model.ReservationCancelled},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations by slot: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) FindByDate(ctx context.Context, date string, period model.Period, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildDateFilter(date, period), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations by date: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// FindEquipmentInUse returns the equipment IDs held by live reservations
// in the slot. An empty slotTime widens the check to the whole period.
func (r *mongoReservationRepository) FindEquipmentInUse(ctx context.Context, date string, period model.Period, slotTime string) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"date":         date,
		"period":       period,
		"equipment_id": bson.M{"$exists": true, "$ne": ""},
		"status":       bson.M{"$ne": model.ReservationCancelled},
	}
	if slotTime != "" {
		filter["time"] = slotTime
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find equipment in use: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	ids := make([]string, 0, len(reservations))
	for _, reservation := range reservations {
		ids = append(ids, reservation.EquipmentID)
	}
	return ids, nil
}

func (r *mongoReservationRepository) CountByDate(ctx context.Context, date string, period model.Period) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildDateFilter(date, period))
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations by date: %w", err)
	}
	return count, nil
}

// buildDateFilter treats the "todos" period as no period filter at all.
func buildDateFilter(date string, period model.Period) bson.M {
	filter := bson.M{"date": date}
	if period != "" && period != model.PeriodAll {
		filter["period"] = period
	}
	return filter
}

func (r *mongoReservationRepository) SetStatus(ctx context.Context, id string, status string, cancelledAt *time.Time) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", averrors.ErrInvalidID, id)
	}

	set := bson.M{"status": status}
	if cancelledAt != nil {
		set["cancelled_at"] = *cancelledAt
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	if result.MatchedCount == 0 {
		return averrors.ErrNotFound
	}

	return nil
}

func (r *mongoReservationRepository) SetUsageLocation(ctx context.Context, id string, usageLocation string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", averrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"usage_location": usageLocation}},
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}

	if result.MatchedCount == 0 {
		return averrors.ErrNotFound
	}

	return nil
}

func (r *mongoReservationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	return count, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
