package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	averrors "campushub/internal/audiovisual/errors"
	"campushub/internal/audiovisual/validator"
	"campushub/pkg/config"
	mongotx "campushub/pkg/db/mongo"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/logger"
	"campushub/pkg/model"
)

// Mock repositories for testing

type mockReservationRepository struct {
	reservations  []*model.Reservation
	createFunc    func(ctx context.Context, r *model.Reservation) error
	findByIDFunc  func(ctx context.Context, id string) (*model.Reservation, error)
	setStatusFunc func(ctx context.Context, id string, status string, cancelledAt *time.Time) error
	created       []*model.Reservation
}

func (m *mockReservationRepository) Create(ctx context.Context, r *model.Reservation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, r)
	}
	r.ID = "65f000000000000000000001"
	m.created = append(m.created, r)
	return nil
}

func (m *mockReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	for _, r := range m.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, averrorsNotFound()
}

func (m *mockReservationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	return m.reservations, nil
}

func (m *mockReservationRepository) FindBySlot(ctx context.Context, date string, period model.Period, roomID string, slotTime string) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.Status == model.ReservationCancelled {
			continue
		}
		if r.Date == date && r.Period == period && r.RoomID == roomID && r.Time == slotTime {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReservationRepository) FindByDate(ctx context.Context, date string, period model.Period, limit int, offset int64) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.Date != date {
			continue
		}
		if period != "" && period != model.PeriodAll && r.Period != period {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockReservationRepository) FindEquipmentInUse(ctx context.Context, date string, period model.Period, slotTime string) ([]string, error) {
	var ids []string
	for _, r := range m.reservations {
		if r.Status == model.ReservationCancelled || r.EquipmentID == "" {
			continue
		}
		if r.Date != date || r.Period != period {
			continue
		}
		if slotTime != "" && r.Time != slotTime {
			continue
		}
		ids = append(ids, r.EquipmentID)
	}
	return ids, nil
}

func (m *mockReservationRepository) CountByDate(ctx context.Context, date string, period model.Period) (int64, error) {
	out, _ := m.FindByDate(ctx, date, period, 0, 0)
	return int64(len(out)), nil
}

func (m *mockReservationRepository) SetStatus(ctx context.Context, id string, status string, cancelledAt *time.Time) error {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, id, status, cancelledAt)
	}
	for _, r := range m.reservations {
		if r.ID == id {
			r.Status = status
			r.CancelledAt = cancelledAt
			return nil
		}
	}
	return averrorsNotFound()
}

func (m *mockReservationRepository) SetUsageLocation(ctx context.Context, id string, usageLocation string) error {
	for _, r := range m.reservations {
		if r.ID == id {
			r.UsageLocation = usageLocation
			return nil
		}
	}
	return averrorsNotFound()
}

func (m *mockReservationRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.reservations)), nil
}

func (m *mockReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleted    []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockChangeNotifier struct {
	published []string
}

func (m *mockChangeNotifier) Publish(ctx context.Context, sector model.Sector, action string, documentID string) {
	m.published = append(m.published, action)
}

func averrorsNotFound() error {
	return averrors.ErrNotFound
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
		SlotLockTTL: 10 * time.Second,
	}
}

func newTestService(repo *mockReservationRepository, lockRepo *mockSlotLockRepository) *reservationService {
	cfg := testConfig()
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator.NewReservationValidator(cfg.Log),
		cfg:       cfg,
	}
}

func validReservation() *model.Reservation {
	return &model.Reservation{
		Date:      "2025-11-07",
		Time:      "14:00",
		Period:    model.PeriodAfternoon,
		Block:     "B",
		RoomID:    "B203",
		Requester: "Prof. Almeida",
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockReservationRepository{}
	svc := newTestService(repo, &mockSlotLockRepository{})

	r := validReservation()
	if err := svc.Create(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Status != model.ReservationPending {
		t.Errorf("expected status %q, got %q", model.ReservationPending, r.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created reservation, got %d", len(repo.created))
	}
}

func TestCreate_SlotConflict(t *testing.T) {
	repo := &mockReservationRepository{
		reservations: []*model.Reservation{
			{
				ID:     "65f000000000000000000099",
				Date:   "2025-11-07",
				Time:   "14:00",
				Period: model.PeriodAfternoon,
				RoomID: "B203",
				Status: model.ReservationPending,
			},
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	err := svc.Create(context.Background(), validReservation())
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}

func TestCreate_AdjacentSlotDoesNotConflict(t *testing.T) {
	repo := &mockReservationRepository{
		reservations: []*model.Reservation{
			{
				ID:     "65f000000000000000000099",
				Date:   "2025-11-07",
				Time:   "14:00",
				Period: model.PeriodAfternoon,
				RoomID: "B203",
				Status: model.ReservationPending,
			},
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	r := validReservation()
	r.Time = "14:30"
	if err := svc.Create(context.Background(), r); err != nil {
		t.Fatalf("adjacent slot should be free: %v", err)
	}
}

func TestCreate_CancelledReservationFreesSlot(t *testing.T) {
	repo := &mockReservationRepository{
		reservations: []*model.Reservation{
			{
				ID:     "65f000000000000000000099",
				Date:   "2025-11-07",
				Time:   "14:00",
				Period: model.PeriodAfternoon,
				RoomID: "B203",
				Status: model.ReservationCancelled,
			},
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	if err := svc.Create(context.Background(), validReservation()); err != nil {
		t.Fatalf("cancelled reservation should not block the slot: %v", err)
	}
}

func TestCreate_TimeOutsidePeriodWindow(t *testing.T) {
	repo := &mockReservationRepository{}
	svc := newTestService(repo, &mockSlotLockRepository{})

	r := validReservation()
	r.Period = model.PeriodMorning // 14:00 is outside 06:00-12:00

	err := svc.Create(context.Background(), r)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, apperrors.AsAppError(err).Code)
	}
	if len(repo.created) != 0 {
		t.Error("reservation should be rejected before reaching the store")
	}
}

func TestCreate_PeriodDerivedFromTime(t *testing.T) {
	repo := &mockReservationRepository{}
	svc := newTestService(repo, &mockSlotLockRepository{})

	r := validReservation()
	r.Period = ""
	r.Time = "19:30"

	if err := svc.Create(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Period != model.PeriodEvening {
		t.Errorf("expected derived period %q, got %q", model.PeriodEvening, r.Period)
	}
}

func TestCreate_SlotLockHeld(t *testing.T) {
	lockRepo := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return nil, mongo.WriteException{
				WriteErrors: []mongo.WriteError{{Code: 11000}},
			}
		},
	}
	svc := newTestService(&mockReservationRepository{}, lockRepo)

	err := svc.Create(context.Background(), validReservation())
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}

func TestCreate_LockReleasedAfterCreate(t *testing.T) {
	lockRepo := &mockSlotLockRepository{}
	svc := newTestService(&mockReservationRepository{}, lockRepo)

	if err := svc.Create(context.Background(), validReservation()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lockRepo.deleted) != 1 {
		t.Fatalf("expected 1 released lock, got %d", len(lockRepo.deleted))
	}
}

func TestCheckAvailability(t *testing.T) {
	repo := &mockReservationRepository{
		reservations: []*model.Reservation{
			{
				ID:     "65f000000000000000000099",
				Date:   "2025-11-07",
				Time:   "14:00",
				Period: model.PeriodAfternoon,
				RoomID: "B203",
				Status: model.ReservationApproved,
			},
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	available, err := svc.CheckAvailability(context.Background(), "2025-11-07", model.PeriodAfternoon, "B203", "14:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if available {
		t.Error("expected slot to be taken")
	}

	available, err = svc.CheckAvailability(context.Background(), "2025-11-07", model.PeriodAfternoon, "B203", "14:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("expected adjacent slot to be free")
	}
}

func TestUpdate_EmptyPatch(t *testing.T) {
	reservation := &model.Reservation{
		ID:     "65f000000000000000000001",
		Status: model.ReservationPending,
	}
	repo := &mockReservationRepository{reservations: []*model.Reservation{reservation}}
	notifier := &mockChangeNotifier{}
	svc := newTestService(repo, &mockSlotLockRepository{})
	svc.notifier = notifier

	err := svc.Update(context.Background(), "65f000000000000000000001", &model.ReservationUpdate{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
	}
	if len(notifier.published) != 0 {
		t.Errorf("expected no change events, got %v", notifier.published)
	}
}

func TestUpdate_StatusChangePublishesOnce(t *testing.T) {
	reservation := &model.Reservation{
		ID:     "65f000000000000000000001",
		Status: model.ReservationPending,
	}
	repo := &mockReservationRepository{reservations: []*model.Reservation{reservation}}
	notifier := &mockChangeNotifier{}
	svc := newTestService(repo, &mockSlotLockRepository{})
	svc.notifier = notifier

	updates := &model.ReservationUpdate{Status: model.ReservationApproved}
	if err := svc.Update(context.Background(), "65f000000000000000000001", updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != model.ReservationApproved {
		t.Errorf("expected status %q, got %q", model.ReservationApproved, reservation.Status)
	}
	if len(notifier.published) != 1 {
		t.Errorf("expected exactly 1 change event, got %d", len(notifier.published))
	}
}

func TestUpdate_UsageLocationPublishesOnce(t *testing.T) {
	reservation := &model.Reservation{
		ID:     "65f000000000000000000001",
		Status: model.ReservationPending,
	}
	repo := &mockReservationRepository{reservations: []*model.Reservation{reservation}}
	notifier := &mockChangeNotifier{}
	svc := newTestService(repo, &mockSlotLockRepository{})
	svc.notifier = notifier

	location := "Sala dos Professores"
	updates := &model.ReservationUpdate{UsageLocation: &location}
	if err := svc.Update(context.Background(), "65f000000000000000000001", updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.UsageLocation != "Sala dos Professores" {
		t.Errorf("unexpected usage location %q", reservation.UsageLocation)
	}
	if len(notifier.published) != 1 {
		t.Errorf("expected exactly 1 change event, got %d", len(notifier.published))
	}
}

func TestApprove_CancelledReservation(t *testing.T) {
	repo := &mockReservationRepository{
		reservations: []*model.Reservation{
			{
				ID:     "65f000000000000000000001",
				Status: model.ReservationCancelled,
			},
		},
	}
	svc := newTestService(repo, &mockSlotLockRepository{})

	err := svc.Approve(context.Background(), "65f000000000000000000001")
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}

func TestCancel_SetsCancelledAt(t *testing.T) {
	reservation := &model.Reservation{
		ID:     "65f000000000000000000001",
		Status: model.ReservationPending,
	}
	repo := &mockReservationRepository{reservations: []*model.Reservation{reservation}}
	svc := newTestService(repo, &mockSlotLockRepository{})

	if err := svc.Cancel(context.Background(), "65f000000000000000000001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != model.ReservationCancelled {
		t.Errorf("expected status %q, got %q", model.ReservationCancelled, reservation.Status)
	}
	if reservation.CancelledAt == nil {
		t.Error("expected cancelled_at to be set")
	}
}

func TestCancelWithToken(t *testing.T) {
	reservation := &model.Reservation{
		ID:        "65f000000000000000000001",
		Requester: "Prof. Almeida",
		Status:    model.ReservationPending,
	}
	repo := &mockReservationRepository{reservations: []*model.Reservation{reservation}}
	svc := newTestService(repo, &mockSlotLockRepository{})

	token, err := svc.CancelToken(context.Background(), reservation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.CancelWithToken(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != model.ReservationCancelled {
		t.Errorf("expected status %q, got %q", model.ReservationCancelled, reservation.Status)
	}
}

func TestCancelWithToken_Garbage(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &mockSlotLockRepository{})

	err := svc.CancelWithToken(context.Background(), "not-a-token")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
	}
}
