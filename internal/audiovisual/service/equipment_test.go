package service

import (
	"context"
	"testing"

	"campushub/internal/audiovisual/validator"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/model"
)

type mockEquipmentRepository struct {
	equipment []*model.Equipment
	created   []*model.Equipment
}

func (m *mockEquipmentRepository) Create(ctx context.Context, equipment *model.Equipment) error {
	equipment.ID = "66a000000000000000000001"
	m.created = append(m.created, equipment)
	return nil
}

func (m *mockEquipmentRepository) FindByID(ctx context.Context, id string) (*model.Equipment, error) {
	for _, e := range m.equipment {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, averrorsNotFound()
}

func (m *mockEquipmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Equipment, error) {
	return m.equipment, nil
}

func (m *mockEquipmentRepository) FindByStatus(ctx context.Context, status string) ([]*model.Equipment, error) {
	var out []*model.Equipment
	for _, e := range m.equipment {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEquipmentRepository) Update(ctx context.Context, id string, equipment *model.Equipment) error {
	return nil
}

func (m *mockEquipmentRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockEquipmentRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.equipment)), nil
}

func newTestEquipmentService(repo *mockEquipmentRepository, reservationRepo *mockReservationRepository) *equipmentService {
	cfg := testConfig()
	return &equipmentService{
		repo:            repo,
		reservationRepo: reservationRepo,
		validator:       validator.NewReservationValidator(cfg.Log),
		cfg:             cfg,
	}
}

func TestEquipmentCreate_Defaults(t *testing.T) {
	repo := &mockEquipmentRepository{}
	svc := newTestEquipmentService(repo, &mockReservationRepository{})

	equipment := &model.Equipment{
		Tag:   "AV-017",
		Name:  "Projetor Epson",
		Type:  "Datashow",
		Block: "C",
	}
	if err := svc.Create(context.Background(), equipment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if equipment.Status != model.EquipmentAvailable {
		t.Errorf("expected status %q, got %q", model.EquipmentAvailable, equipment.Status)
	}
	if equipment.Type != model.EquipmentDatashow {
		t.Errorf("expected normalized type %q, got %q", model.EquipmentDatashow, equipment.Type)
	}
}

func TestEquipmentCreate_InvalidType(t *testing.T) {
	svc := newTestEquipmentService(&mockEquipmentRepository{}, &mockReservationRepository{})

	equipment := &model.Equipment{
		Tag:   "AV-017",
		Name:  "Ar condicionado",
		Type:  "climatizador",
		Block: "C",
	}
	err := svc.Create(context.Background(), equipment)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, apperrors.AsAppError(err).Code)
	}
}

func TestAvailableForSlot(t *testing.T) {
	repo := &mockEquipmentRepository{
		equipment: []*model.Equipment{
			{ID: "eq-1", Tag: "AV-001", Status: model.EquipmentAvailable},
			{ID: "eq-2", Tag: "AV-002", Status: model.EquipmentAvailable},
			{ID: "eq-3", Tag: "AV-003", Status: model.EquipmentMaintenance},
		},
	}
	reservationRepo := &mockReservationRepository{
		reservations: []*model.Reservation{
			{
				ID:          "65f000000000000000000010",
				Date:        "2025-11-07",
				Period:      model.PeriodAfternoon,
				Time:        "14:00",
				EquipmentID: "eq-1",
				Status:      model.ReservationApproved,
			},
			{
				ID:          "65f000000000000000000011",
				Date:        "2025-11-07",
				Period:      model.PeriodAfternoon,
				Time:        "14:00",
				EquipmentID: "eq-2",
				Status:      model.ReservationCancelled,
			},
		},
	}
	svc := newTestEquipmentService(repo, reservationRepo)

	free, err := svc.AvailableForSlot(context.Background(), "2025-11-07", model.PeriodAfternoon, "14:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// eq-1 is reserved, eq-3 is under maintenance, eq-2's reservation was
	// cancelled so it is free again.
	if len(free) != 1 {
		t.Fatalf("expected 1 free equipment, got %d", len(free))
	}
	if free[0].ID != "eq-2" {
		t.Errorf("expected eq-2 to be free, got %s", free[0].ID)
	}
}

func TestAvailableForSlot_InvalidPeriod(t *testing.T) {
	svc := newTestEquipmentService(&mockEquipmentRepository{}, &mockReservationRepository{})

	_, err := svc.AvailableForSlot(context.Background(), "2025-11-07", "madrugada", "14:00")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
	}
}
