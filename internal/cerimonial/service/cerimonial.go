package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	ceerrors "campushub/internal/cerimonial/errors"
	"campushub/internal/cerimonial/repository"
	"campushub/internal/cerimonial/validator"
	"campushub/pkg/config"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/model"
	"campushub/pkg/sanitizer"
)

// ChangeNotifier publishes document change events for dashboard consumers.
type ChangeNotifier interface {
	Publish(ctx context.Context, sector model.Sector, action string, documentID string)
}

type CerimonialService interface {
	Create(ctx context.Context, request *model.CerimonialRequest) error
	GetByID(ctx context.Context, id string) (*model.CerimonialRequest, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.CerimonialRequest, int64, error)
	Update(ctx context.Context, id string, updates *model.CerimonialUpdate) error
	ToggleTask(ctx context.Context, id string, index int, done bool) error
	Delete(ctx context.Context, id string) error
}

type cerimonialService struct {
	repo      repository.CerimonialRepository
	validator *validator.CerimonialValidator
	notifier  ChangeNotifier
	cfg       *config.Config
}

func NewCerimonialService(
	repo repository.CerimonialRepository,
	validator *validator.CerimonialValidator,
	notifier ChangeNotifier,
	cfg *config.Config,
) CerimonialService {
	return &cerimonialService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *cerimonialService) Create(ctx context.Context, request *model.CerimonialRequest) error {
	s.applyDefaults(request)
	s.sanitize(request)

	if err := s.validator.Validate(request); err != nil {
		s.cfg.Log.Warn("Cerimonial request validation failed", "error", err)
		return apperrors.Validation("Cerimonial request validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.cfg.Log.Error("Failed to create cerimonial request", "error", err)
		return apperrors.Internal("Failed to create cerimonial request", err)
	}

	s.publish(ctx, model.ChangeCreated, request.ID)
	s.cfg.Log.Info("Cerimonial request created successfully",
		"id", request.ID,
		"title", request.Title,
		"date", request.Date,
	)
	return nil
}

func (s *cerimonialService) GetByID(ctx context.Context, id string) (*model.CerimonialRequest, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Cerimonial request ID cannot be empty")
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id)
	}

	return request, nil
}

func (s *cerimonialService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.CerimonialRequest, int64, error) {
	var count int64
	var requests []*model.CerimonialRequest
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count cerimonial requests", "error", errCount)
			errCount = apperrors.Internal("Failed to count cerimonial requests", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		requests, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list cerimonial requests", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve cerimonial requests", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return requests, count, nil
}

func (s *cerimonialService) Update(ctx context.Context, id string, updates *model.CerimonialUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Cerimonial request ID cannot be empty")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Cerimonial update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	set := bson.M{}
	if updates.Status != "" {
		set["status"] = updates.Status
	}
	if updates.Notes != nil {
		set["notes"] = sanitizer.TrimAndNormalize(*updates.Notes)
	}
	if updates.ExtraItems != nil {
		set["extra_items"] = sanitizer.TrimAndNormalize(*updates.ExtraItems)
	}
	if len(set) == 0 {
		return apperrors.InvalidInput("No fields to update")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translateRepoError(err, id)
	}

	if err := s.repo.SetFields(ctx, id, set); err != nil {
		return translateRepoError(err, id)
	}

	s.publish(ctx, model.ChangeUpdated, id)
	s.cfg.Log.Info("Cerimonial request updated successfully", "id", id)
	return nil
}

func (s *cerimonialService) ToggleTask(ctx context.Context, id string, index int, done bool) error {
	if id == "" {
		return apperrors.InvalidInput("Cerimonial request ID cannot be empty")
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateRepoError(err, id)
	}
	if index < 0 || index >= len(request.Tasks) {
		return apperrors.InvalidInput(fmt.Sprintf("Task index %d is out of range", index))
	}
	if request.Status == model.CerimonialCompleted {
		return apperrors.Conflict("Completed events accept no further task changes")
	}

	if err := s.repo.SetTaskDone(ctx, id, index, done); err != nil {
		return translateRepoError(err, id)
	}

	s.publish(ctx, model.ChangeUpdated, id)
	s.cfg.Log.Info("Cerimonial task toggled", "id", id, "index", index, "done", done)
	return nil
}

func (s *cerimonialService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Cerimonial request ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepoError(err, id)
	}

	s.publish(ctx, model.ChangeDeleted, id)
	s.cfg.Log.Info("Cerimonial request deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *cerimonialService) applyDefaults(request *model.CerimonialRequest) {
	if request.Status == "" {
		request.Status = model.CerimonialOpen
	}
	if request.Period == "" && request.Time != "" {
		if p, ok := model.PeriodForTime(request.Time); ok {
			request.Period = p
		}
	}
	if len(request.Tasks) == 0 {
		request.Tasks = model.DefaultEventTasks()
	}
}

func (s *cerimonialService) sanitize(request *model.CerimonialRequest) {
	request.Requester = sanitizer.NormalizeName(request.Requester)
	request.Title = sanitizer.TrimAndNormalize(request.Title)
	request.Location = sanitizer.NormalizeLocation(request.Location)
	request.ExtraItems = sanitizer.TrimAndNormalize(request.ExtraItems)
	request.Notes = sanitizer.TrimAndNormalize(request.Notes)
}

func (s *cerimonialService) publish(ctx context.Context, action string, id string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, model.SectorCerimonial, action, id)
}

func translateRepoError(err error, id string) error {
	if errors.Is(err, ceerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Cerimonial request", id)
	}
	if errors.Is(err, ceerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid cerimonial request ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Failed to access cerimonial request", err)
}
