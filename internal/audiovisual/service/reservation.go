package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	averrors "campushub/internal/audiovisual/errors"
	"campushub/internal/audiovisual/repository"
	"campushub/internal/audiovisual/validator"
	"campushub/pkg/config"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/model"
	"campushub/pkg/sanitizer"
	"campushub/pkg/sealer"
)

// ChangeNotifier publishes document change events for dashboard consumers.
type ChangeNotifier interface {
	Publish(ctx context.Context, sector model.Sector, action string, documentID string)
}

type ReservationService interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
	SearchByDate(ctx context.Context, date string, period model.Period, limit int, offset int64) ([]*model.Reservation, int64, error)
	CheckAvailability(ctx context.Context, date string, period model.Period, roomID string, slotTime string) (bool, error)
	Update(ctx context.Context, id string, updates *model.ReservationUpdate) error
	Approve(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	CancelToken(ctx context.Context, id string) (string, error)
	CancelWithToken(ctx context.Context, token string) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.ReservationValidator
	notifier  ChangeNotifier
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.ReservationValidator,
	notifier ChangeNotifier,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, reservation *model.Reservation) error {
	s.applyDefaults(reservation)
	s.sanitize(reservation)
	if err := s.validate(reservation); err != nil {
		return err
	}

	// Acquire advisory lock to prevent race conditions on the same slot
	lockID, err := s.acquireSlotLock(ctx, reservation)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifySlotFree(sessCtx, reservation); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return err
	}

	s.publish(ctx, model.ChangeCreated, reservation.ID)
	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"date", reservation.Date,
		"period", reservation.Period,
		"room_id", reservation.RoomID,
		"time", reservation.Time,
	)
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "Reservation", id)
	}

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) SearchByDate(ctx context.Context, date string, period model.Period, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if date == "" {
		return nil, 0, apperrors.InvalidInput("date is required")
	}
	if period != "" && period != model.PeriodAll && !period.Valid() {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid period: %s", period))
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByDate(ctx, date, period)
		if err != nil {
			s.cfg.Log.Error("Failed to count reservations by date", "date", date, "period", period, "error", err)
			errCount = apperrors.Internal("Failed to count reservations", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		reservations, err = s.repo.FindByDate(ctx, date, period, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search reservations", "date", date, "period", period, "error", err)
			errFind = apperrors.Internal("Failed to search reservations", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

// CheckAvailability reports whether the slot is free. A read-only answer:
// the authoritative check runs again inside the creation transaction.
func (s *reservationService) CheckAvailability(ctx context.Context, date string, period model.Period, roomID string, slotTime string) (bool, error) {
	if date == "" || roomID == "" || slotTime == "" {
		return false, apperrors.InvalidInput("date, room_id and time are required")
	}
	if !period.Valid() {
		return false, apperrors.InvalidInput(fmt.Sprintf("invalid period: %s", period))
	}

	existing, err := s.repo.FindBySlot(ctx, date, period, roomID, slotTime)
	if err != nil {
		return false, apperrors.Internal("Failed to check slot availability", err)
	}

	return len(existing) == 0, nil
}

func (s *reservationService) Update(ctx context.Context, id string, updates *model.ReservationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	if updates == nil || (updates.Status == "" && updates.UsageLocation == nil) {
		return apperrors.InvalidInput("No fields to update")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateRepoError(err, "Reservation", id)
	}

	// Approve and Cancel publish their own change event.
	published := false
	if updates.Status != "" && updates.Status != existing.Status {
		switch updates.Status {
		case model.ReservationApproved:
			if err := s.Approve(ctx, id); err != nil {
				return err
			}
		case model.ReservationCancelled:
			if err := s.Cancel(ctx, id); err != nil {
				return err
			}
		default:
			return apperrors.InvalidInput("status can only transition to aprovado or cancelado")
		}
		published = true
	}

	if updates.UsageLocation != nil {
		location := sanitizer.NormalizeLocation(*updates.UsageLocation)
		if err := s.repo.SetUsageLocation(ctx, id, location); err != nil {
			return translateRepoError(err, "Reservation", id)
		}
		if !published {
			s.publish(ctx, model.ChangeUpdated, id)
		}
	}

	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	return nil
}

func (s *reservationService) Approve(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateRepoError(err, "Reservation", id)
	}
	if existing.Status == model.ReservationCancelled {
		return apperrors.Conflict("Cancelled reservations cannot be approved")
	}

	if err := s.repo.SetStatus(ctx, id, model.ReservationApproved, nil); err != nil {
		return translateRepoError(err, "Reservation", id)
	}

	s.publish(ctx, model.ChangeUpdated, id)
	s.cfg.Log.Info("Reservation approved", "id", id)
	return nil
}

func (s *reservationService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translateRepoError(err, "Reservation", id)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	if err := s.repo.SetStatus(ctx, id, model.ReservationCancelled, &now); err != nil {
		return translateRepoError(err, "Reservation", id)
	}

	s.publish(ctx, model.ChangeUpdated, id)
	s.cfg.Log.Info("Reservation cancelled", "id", id)
	return nil
}

// CancelToken builds an opaque self-service cancellation token for a
// reservation, bound to its requester.
func (s *reservationService) CancelToken(ctx context.Context, id string) (string, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	token, err := sealer.CreateOpaqueToken(reservation.ID, reservation.Requester)
	if err != nil {
		return "", apperrors.Internal("Failed to create cancellation token", err)
	}
	return token, nil
}

func (s *reservationService) CancelWithToken(ctx context.Context, token string) error {
	id, requester, err := sealer.ParseOpaqueToken(token)
	if err != nil {
		return apperrors.InvalidInput("Invalid cancellation token")
	}

	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation.Requester != requester {
		return apperrors.InvalidInput("Invalid cancellation token")
	}

	return s.Cancel(ctx, id)
}

// --- Helpers ---

func (s *reservationService) applyDefaults(r *model.Reservation) {
	if r.Status == "" {
		r.Status = model.ReservationPending
	}
	if r.Period == "" && r.Time != "" {
		if p, ok := model.PeriodForTime(r.Time); ok {
			r.Period = p
		}
	}
}

func (s *reservationService) sanitize(r *model.Reservation) {
	r.Requester = sanitizer.NormalizeName(r.Requester)
	r.RoomID = sanitizer.TrimAndNormalize(r.RoomID)
	r.UsageLocation = sanitizer.NormalizeLocation(r.UsageLocation)
}

func (s *reservationService) validate(r *model.Reservation) error {
	if err := s.validator.Validate(r); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifySlotFree checks for a live reservation on the same slot. Runs inside
// the creation transaction, under the advisory lock.
func (s *reservationService) verifySlotFree(ctx context.Context, r *model.Reservation) error {
	if r.RoomID == "" {
		return nil
	}

	existing, err := s.repo.FindBySlot(ctx, r.Date, r.Period, r.RoomID, r.Time)
	if err != nil {
		return apperrors.Internal("Failed to check existing reservations", err)
	}

	for _, other := range existing {
		if other.ID == r.ID {
			continue
		}
		return apperrors.Conflict(fmt.Sprintf(
			"Room %s is already reserved on %s at %s (%s)",
			r.RoomID, r.Date, r.Time, r.Period,
		))
	}
	return nil
}

func (s *reservationService) acquireSlotLock(ctx context.Context, r *model.Reservation) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s", r.SlotKey())

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This slot is currently being reserved by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *reservationService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *reservationService) publish(ctx context.Context, action string, id string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, model.SectorAudiovisual, action, id)
}

func translateRepoError(err error, entity string, id string) error {
	if errors.Is(err, averrors.ErrNotFound) {
		return apperrors.NotFoundWithID(entity, id)
	}
	if errors.Is(err, averrors.ErrInvalidID) {
		return apperrors.InvalidInput(fmt.Sprintf("Invalid %s ID format", entity))
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal(fmt.Sprintf("Failed to access %s", entity), err)
}
