package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	mkerrors "campushub/internal/marketing/errors"
	"campushub/internal/marketing/repository"
	"campushub/internal/marketing/validator"
	"campushub/pkg/config"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/model"
	"campushub/pkg/sanitizer"
)

// ChangeNotifier publishes document change events for dashboard consumers.
type ChangeNotifier interface {
	Publish(ctx context.Context, sector model.Sector, action string, documentID string)
}

// SystemActor records the automatic coordenador self-approval on requests
// opened by a coordinator.
const SystemActor = "sistema"

type MarketingService interface {
	Create(ctx context.Context, request *model.MarketingRequest) error
	GetByID(ctx context.Context, id string) (*model.MarketingRequest, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.MarketingRequest, int64, error)
	Approve(ctx context.Context, id string, stage model.Stage, approved bool, actor string) error
	UpdateChecklist(ctx context.Context, id string, patch *model.ChecklistPatch) error
	Complete(ctx context.Context, id string) error
}

type marketingService struct {
	repo      repository.MarketingRepository
	validator *validator.MarketingValidator
	notifier  ChangeNotifier
	cfg       *config.Config
}

func NewMarketingService(
	repo repository.MarketingRepository,
	validator *validator.MarketingValidator,
	notifier ChangeNotifier,
	cfg *config.Config,
) MarketingService {
	return &marketingService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *marketingService) Create(ctx context.Context, request *model.MarketingRequest) error {
	s.applyDefaults(request)
	s.sanitize(request)

	if err := s.validator.Validate(request); err != nil {
		s.cfg.Log.Warn("Marketing request validation failed", "error", err)
		return apperrors.Validation("Marketing request validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.cfg.Log.Error("Failed to create marketing request", "error", err)
		return apperrors.Internal("Failed to create marketing request", err)
	}

	s.publish(ctx, model.ChangeCreated, request.ID)
	s.cfg.Log.Info("Marketing request created successfully",
		"id", request.ID,
		"title", request.Title,
		"status", request.Status,
	)
	return nil
}

func (s *marketingService) GetByID(ctx context.Context, id string) (*model.MarketingRequest, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Marketing request ID cannot be empty")
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id)
	}

	return request, nil
}

func (s *marketingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.MarketingRequest, int64, error) {
	var count int64
	var requests []*model.MarketingRequest
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count marketing requests", "error", errCount)
			errCount = apperrors.Internal("Failed to count marketing requests", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		requests, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list marketing requests", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve marketing requests", errFind)
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

// Approve records one stage's decision. The precondition check and the write
// run inside a transaction so two concurrent decisions cannot both pass the
// stage-order check.
func (s *marketingService) Approve(ctx context.Context, id string, stage model.Stage, approved bool, actor string) error {
	if id == "" {
		return apperrors.InvalidInput("Marketing request ID cannot be empty")
	}
	if !stage.Valid() {
		return apperrors.InvalidInput(fmt.Sprintf("invalid approval stage: %s", stage))
	}
	if actor == "" {
		return apperrors.InvalidInput("An authenticated actor is required to record an approval")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		request, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return translateRepoError(err, id)
		}

		if request.Terminal() {
			return apperrors.Conflict(fmt.Sprintf("Request is %s and accepts no further approvals", request.Status))
		}

		if request.Approvals.Stage(stage).Approved != nil {
			return apperrors.Conflict(fmt.Sprintf("Stage %s has already recorded a decision", stage))
		}

		if previous, ok := stage.Previous(); ok {
			decision := request.Approvals.Stage(previous).Approved
			if decision == nil || !*decision {
				return apperrors.Conflict(fmt.Sprintf("Stage %s cannot act before %s approves", stage, previous))
			}
		}

		now := time.Now().UTC().Truncate(time.Millisecond)
		approval := model.Approval{
			Approved: &approved,
			By:       actor,
			At:       &now,
		}

		status := statusAfterDecision(stage, approved)
		if err := s.repo.SetApproval(sessCtx, id, stage, approval, status); err != nil {
			return translateRepoError(err, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, model.ChangeUpdated, id)
	s.cfg.Log.Info("Marketing approval recorded",
		"id", id,
		"stage", stage,
		"approved", approved,
		"actor", actor,
	)
	return nil
}

func (s *marketingService) UpdateChecklist(ctx context.Context, id string, patch *model.ChecklistPatch) error {
	if id == "" {
		return apperrors.InvalidInput("Marketing request ID cannot be empty")
	}
	if err := s.validator.ValidateChecklistPatch(patch); err != nil {
		s.cfg.Log.Warn("Checklist patch validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid checklist update", map[string]any{"error": err.Error()})
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateRepoError(err, id)
	}
	if request.Terminal() {
		return apperrors.Conflict(fmt.Sprintf("Request is %s and its checklist can no longer change", request.Status))
	}

	if err := s.repo.SetChecklistItem(ctx, id, patch); err != nil {
		return translateRepoError(err, id)
	}

	s.publish(ctx, model.ChangeUpdated, id)
	s.cfg.Log.Info("Marketing checklist updated", "id", id, "group", patch.Group, "item", patch.Item)
	return nil
}

// Complete marks the request done. A staff action independent of the
// approval sub-machine.
func (s *marketingService) Complete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Marketing request ID cannot be empty")
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateRepoError(err, id)
	}
	if request.Status == model.MarketingRejected {
		return apperrors.Conflict("Rejected requests cannot be completed")
	}
	if request.Status == model.MarketingCompleted {
		return apperrors.Conflict("Request is already completed")
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	if err := s.repo.SetStatus(ctx, id, model.MarketingCompleted, &now); err != nil {
		return translateRepoError(err, id)
	}

	s.publish(ctx, model.ChangeUpdated, id)
	s.cfg.Log.Info("Marketing request completed", "id", id)
	return nil
}

// --- Helpers ---

func (s *marketingService) applyDefaults(request *model.MarketingRequest) {
	if request.Status == "" {
		request.Status = model.MarketingOpen
	}

	// A coordinator opening their own request carries the coordenador
	// approval implicitly.
	if request.Coordinator && request.Approvals.Coordenador.Approved == nil {
		now := time.Now().UTC().Truncate(time.Millisecond)
		approved := true
		request.Approvals.Coordenador = model.Approval{
			Approved: &approved,
			By:       SystemActor,
			At:       &now,
		}
		request.Status = model.MarketingPending
	}
}

func (s *marketingService) sanitize(request *model.MarketingRequest) {
	request.Requester = sanitizer.NormalizeName(request.Requester)
	request.SectorCourse = sanitizer.NormalizeLabel(request.SectorCourse)
	request.Title = sanitizer.TrimAndNormalize(request.Title)
	request.Location = sanitizer.NormalizeLocation(request.Location)
	request.OtherDetails = sanitizer.TrimAndNormalize(request.OtherDetails)

	if normalized := sanitizer.NormalizePhone(request.Phone); normalized != "" {
		request.Phone = normalized
	}
}

// statusAfterDecision derives the overall status from a single stage
// decision. Rejection anywhere is terminal; approving the last stage moves
// the request into production.
func statusAfterDecision(stage model.Stage, approved bool) string {
	if !approved {
		return model.MarketingRejected
	}
	if stage == model.StageVice {
		return model.MarketingInProgress
	}
	return model.MarketingPending
}

func (s *marketingService) publish(ctx context.Context, action string, id string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, model.SectorMarketing, action, id)
}

func translateRepoError(err error, id string) error {
	if errors.Is(err, mkerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Marketing request", id)
	}
	if errors.Is(err, mkerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid marketing request ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Failed to access marketing request", err)
}
