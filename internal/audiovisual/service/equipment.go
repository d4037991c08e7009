package service

import (
	"context"
	"fmt"
	"sync"

	"campushub/internal/audiovisual/repository"
	"campushub/internal/audiovisual/validator"
	"campushub/pkg/config"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/model"
	"campushub/pkg/sanitizer"
)

type EquipmentService interface {
	Create(ctx context.Context, equipment *model.Equipment) error
	GetByID(ctx context.Context, id string) (*model.Equipment, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Equipment, int64, error)
	Update(ctx context.Context, id string, updates *model.EquipmentUpdate) error
	Delete(ctx context.Context, id string) error
	AvailableForSlot(ctx context.Context, date string, period model.Period, slotTime string) ([]*model.Equipment, error)
}

type equipmentService struct {
	repo            repository.EquipmentRepository
	reservationRepo repository.ReservationRepository
	validator       *validator.ReservationValidator
	notifier        ChangeNotifier
	cfg             *config.Config
}

func NewEquipmentService(
	repo repository.EquipmentRepository,
	reservationRepo repository.ReservationRepository,
	validator *validator.ReservationValidator,
	notifier ChangeNotifier,
	cfg *config.Config,
) EquipmentService {
	return &equipmentService{
		repo:            repo,
		reservationRepo: reservationRepo,
		validator:       validator,
		notifier:        notifier,
		cfg:             cfg,
	}
}

func (s *equipmentService) Create(ctx context.Context, equipment *model.Equipment) error {
	if equipment.Status == "" {
		equipment.Status = model.EquipmentAvailable
	}
	s.sanitize(equipment)

	if err := s.validator.ValidateEquipment(equipment); err != nil {
		s.cfg.Log.Warn("Equipment validation failed", "error", err)
		return apperrors.Validation("Equipment validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, equipment); err != nil {
		s.cfg.Log.Error("Failed to create equipment", "error", err)
		return apperrors.Internal("Failed to create equipment", err)
	}

	s.publish(ctx, model.ChangeCreated, equipment.ID)
	s.cfg.Log.Info("Equipment created successfully", "id", equipment.ID, "tag", equipment.Tag)
	return nil
}

func (s *equipmentService) GetByID(ctx context.Context, id string) (*model.Equipment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Equipment ID cannot be empty")
	}

	equipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "Equipment", id)
	}

	return equipment, nil
}

func (s *equipmentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Equipment, int64, error) {
	var count int64
	var equipment []*model.Equipment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count equipment", "error", errCount)
			errCount = apperrors.Internal("Failed to count equipment", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		equipment, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list equipment", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve equipment", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return equipment, count, nil
}

func (s *equipmentService) Update(ctx context.Context, id string, updates *model.EquipmentUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Equipment ID cannot be empty")
	}

	if err := s.validator.ValidateEquipmentUpdate(updates); err != nil {
		s.cfg.Log.Warn("Equipment update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateRepoError(err, "Equipment", id)
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)

	if err := s.validator.ValidateEquipment(merged); err != nil {
		return apperrors.Validation("Equipment validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		return translateRepoError(err, "Equipment", id)
	}

	s.publish(ctx, model.ChangeUpdated, id)
	s.cfg.Log.Info("Equipment updated successfully", "id", id)
	return nil
}

func (s *equipmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Equipment ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepoError(err, "Equipment", id)
	}

	s.publish(ctx, model.ChangeDeleted, id)
	s.cfg.Log.Info("Equipment deleted successfully", "id", id)
	return nil
}

// AvailableForSlot lists available equipment not already reserved in the
// slot. Items under maintenance never appear.
func (s *equipmentService) AvailableForSlot(ctx context.Context, date string, period model.Period, slotTime string) ([]*model.Equipment, error) {
	if date == "" {
		return nil, apperrors.InvalidInput("date is required")
	}
	if !period.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid period: %s", period))
	}

	available, err := s.repo.FindByStatus(ctx, model.EquipmentAvailable)
	if err != nil {
		return nil, apperrors.Internal("Failed to list equipment", err)
	}

	inUse, err := s.reservationRepo.FindEquipmentInUse(ctx, date, period, slotTime)
	if err != nil {
		return nil, apperrors.Internal("Failed to check equipment reservations", err)
	}

	taken := make(map[string]struct{}, len(inUse))
	for _, id := range inUse {
		taken[id] = struct{}{}
	}

	free := make([]*model.Equipment, 0, len(available))
	for _, equipment := range available {
		if _, ok := taken[equipment.ID]; ok {
			continue
		}
		free = append(free, equipment)
	}

	return free, nil
}

func (s *equipmentService) sanitize(e *model.Equipment) {
	e.Tag = sanitizer.TrimAndNormalize(e.Tag)
	e.Name = sanitizer.NormalizeName(e.Name)
	e.Type = sanitizer.NormalizeKey(e.Type)
}

func (s *equipmentService) mergeUpdates(existing *model.Equipment, updates *model.EquipmentUpdate) *model.Equipment {
	merged := *existing

	if updates.Tag != "" {
		merged.Tag = updates.Tag
	}
	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Type != "" {
		merged.Type = updates.Type
	}
	if updates.Block != "" {
		merged.Block = updates.Block
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *equipmentService) publish(ctx context.Context, action string, id string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, model.SectorAudiovisual, action, id)
}
