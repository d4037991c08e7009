package service

import (
	"context"
	"testing"
	"time"

	mkerrors "campushub/internal/marketing/errors"
	"campushub/internal/marketing/validator"
	"campushub/pkg/config"
	mongotx "campushub/pkg/db/mongo"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/logger"
	"campushub/pkg/model"
)

type mockMarketingRepository struct {
	requests  []*model.MarketingRequest
	created   []*model.MarketingRequest
	approvals []recordedApproval
	patches   []*model.ChecklistPatch
}

type recordedApproval struct {
	id       string
	stage    model.Stage
	approval model.Approval
	status   string
}

func (m *mockMarketingRepository) Create(ctx context.Context, request *model.MarketingRequest) error {
	request.ID = "67a000000000000000000001"
	m.created = append(m.created, request)
	return nil
}

func (m *mockMarketingRepository) FindByID(ctx context.Context, id string) (*model.MarketingRequest, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, mkerrors.ErrNotFound
}

func (m *mockMarketingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.MarketingRequest, error) {
	return m.requests, nil
}

func (m *mockMarketingRepository) FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.MarketingRequest, error) {
	var out []*model.MarketingRequest
	for _, r := range m.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMarketingRepository) SetApproval(ctx context.Context, id string, stage model.Stage, approval model.Approval, status string) error {
	m.approvals = append(m.approvals, recordedApproval{id: id, stage: stage, approval: approval, status: status})
	for _, r := range m.requests {
		if r.ID == id {
			*r.Approvals.Stage(stage) = approval
			r.Status = status
			return nil
		}
	}
	return mkerrors.ErrNotFound
}

func (m *mockMarketingRepository) SetChecklistItem(ctx context.Context, id string, patch *model.ChecklistPatch) error {
	m.patches = append(m.patches, patch)
	return nil
}

func (m *mockMarketingRepository) SetStatus(ctx context.Context, id string, status string, completedAt *time.Time) error {
	for _, r := range m.requests {
		if r.ID == id {
			r.Status = status
			r.CompletedAt = completedAt
			return nil
		}
	}
	return mkerrors.ErrNotFound
}

func (m *mockMarketingRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.requests)), nil
}

func (m *mockMarketingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
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
	}
}

func newTestService(repo *mockMarketingRepository) *marketingService {
	cfg := testConfig()
	return &marketingService{
		repo:      repo,
		validator: validator.NewMarketingValidator(cfg.Log),
		cfg:       cfg,
	}
}

func validRequest() *model.MarketingRequest {
	return &model.MarketingRequest{
		Requester:    "Ana Souza",
		SectorCourse: "Engenharia Civil",
		Phone:        "(11) 91234-5678",
		Email:        "ana.souza@example.edu.br",
		Demand:       "evento",
		Title:        "Semana Academica 2025",
		Date:         "2025-11-07",
		Location:     "Auditorio Central",
	}
}

func approved(by string) model.Approval {
	yes := true
	now := time.Now().UTC()
	return model.Approval{Approved: &yes, By: by, At: &now}
}

func pendingRequest(id string) *model.MarketingRequest {
	r := validRequest()
	r.ID = id
	r.Status = model.MarketingOpen
	return r
}

func TestCreate_StartsOpen(t *testing.T) {
	repo := &mockMarketingRepository{}
	svc := newTestService(repo)

	request := validRequest()
	if err := svc.Create(context.Background(), request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if request.Status != model.MarketingOpen {
		t.Errorf("expected status %q, got %q", model.MarketingOpen, request.Status)
	}
	if request.Approvals.Coordenador.Approved != nil {
		t.Error("coordenador stage should not have acted")
	}
	if request.Phone != "+5511912345678" {
		t.Errorf("expected normalized phone, got %q", request.Phone)
	}
}

func TestCreate_CoordinatorSelfApproval(t *testing.T) {
	repo := &mockMarketingRepository{}
	svc := newTestService(repo)

	request := validRequest()
	request.Coordinator = true
	if err := svc.Create(context.Background(), request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decision := request.Approvals.Coordenador.Approved
	if decision == nil || !*decision {
		t.Fatal("expected coordenador stage approved at creation")
	}
	if request.Approvals.Coordenador.By != SystemActor {
		t.Errorf("expected approval by %q, got %q", SystemActor, request.Approvals.Coordenador.By)
	}
	if request.Status != model.MarketingPending {
		t.Errorf("expected status %q, got %q", model.MarketingPending, request.Status)
	}
}

func TestCreate_UnknownChecklistItem(t *testing.T) {
	svc := newTestService(&mockMarketingRepository{})

	request := validRequest()
	request.Creation = model.Checklist{"outdoor10x3": {Requested: true}}

	err := svc.Create(context.Background(), request)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, apperrors.AsAppError(err).Code)
	}
}

func TestApprove_StageOrder(t *testing.T) {
	id := "67a000000000000000000002"

	tests := []struct {
		name      string
		approvals model.Approvals
		stage     model.Stage
		wantCode  string
	}{
		{
			name:     "coordenador acts first",
			stage:    model.StageCoordenador,
			wantCode: "",
		},
		{
			name:     "diretor before coordenador",
			stage:    model.StageDiretor,
			wantCode: apperrors.CodeConflict,
		},
		{
			name:      "diretor after coordenador",
			approvals: model.Approvals{Coordenador: approved("coord")},
			stage:     model.StageDiretor,
			wantCode:  "",
		},
		{
			name:      "vice before diretor",
			approvals: model.Approvals{Coordenador: approved("coord")},
			stage:     model.StageVice,
			wantCode:  apperrors.CodeConflict,
		},
		{
			name: "vice after diretor",
			approvals: model.Approvals{
				Coordenador: approved("coord"),
				Diretor:     approved("dir"),
			},
			stage:    model.StageVice,
			wantCode: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := pendingRequest(id)
			request.Approvals = tt.approvals
			repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
			svc := newTestService(repo)

			err := svc.Approve(context.Background(), id, tt.stage, true, "chefia")
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if apperrors.AsAppError(err).Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, apperrors.AsAppError(err).Code)
			}
		})
	}
}

func TestApprove_StatusDerivation(t *testing.T) {
	id := "67a000000000000000000003"

	t.Run("rejection is terminal", func(t *testing.T) {
		request := pendingRequest(id)
		request.Approvals = model.Approvals{Coordenador: approved("coord")}
		repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
		svc := newTestService(repo)

		if err := svc.Approve(context.Background(), id, model.StageDiretor, false, "diretoria"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if request.Status != model.MarketingRejected {
			t.Errorf("expected status %q, got %q", model.MarketingRejected, request.Status)
		}

		err := svc.Approve(context.Background(), id, model.StageVice, true, "reitoria")
		if err == nil {
			t.Fatal("expected conflict after rejection, got nil")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
			t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
		}
	})

	t.Run("vice approval moves to em_andamento", func(t *testing.T) {
		request := pendingRequest(id)
		request.Approvals = model.Approvals{
			Coordenador: approved("coord"),
			Diretor:     approved("dir"),
		}
		repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
		svc := newTestService(repo)

		if err := svc.Approve(context.Background(), id, model.StageVice, true, "reitoria"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if request.Status != model.MarketingInProgress {
			t.Errorf("expected status %q, got %q", model.MarketingInProgress, request.Status)
		}
	})

	t.Run("earlier approvals keep pendente", func(t *testing.T) {
		request := pendingRequest(id)
		repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
		svc := newTestService(repo)

		if err := svc.Approve(context.Background(), id, model.StageCoordenador, true, "coord"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if request.Status != model.MarketingPending {
			t.Errorf("expected status %q, got %q", model.MarketingPending, request.Status)
		}
	})
}

func TestApprove_RequiresActor(t *testing.T) {
	request := pendingRequest("67a000000000000000000004")
	repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
	svc := newTestService(repo)

	err := svc.Approve(context.Background(), request.ID, model.StageCoordenador, true, "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
	}
}

func TestApprove_StageAlreadyActed(t *testing.T) {
	request := pendingRequest("67a000000000000000000005")
	request.Approvals = model.Approvals{Coordenador: approved("coord")}
	repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
	svc := newTestService(repo)

	err := svc.Approve(context.Background(), request.ID, model.StageCoordenador, true, "coord")
	if err == nil {
		t.Fatal("expected conflict, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}

func TestUpdateChecklist(t *testing.T) {
	request := pendingRequest("67a000000000000000000006")
	request.Status = model.MarketingInProgress
	repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
	svc := newTestService(repo)

	done := true
	patch := &model.ChecklistPatch{
		Group: model.GroupCreation,
		Item:  "banner90x120",
		Done:  &done,
	}
	if err := svc.UpdateChecklist(context.Background(), request.ID, patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.patches) != 1 {
		t.Fatalf("expected 1 recorded patch, got %d", len(repo.patches))
	}
}

func TestUpdateChecklist_UnknownItem(t *testing.T) {
	request := pendingRequest("67a000000000000000000007")
	repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
	svc := newTestService(repo)

	done := true
	patch := &model.ChecklistPatch{
		Group: model.GroupOutreach,
		Item:  "banner90x120", // belongs to criacao, not divulgacao
		Done:  &done,
	}
	err := svc.UpdateChecklist(context.Background(), request.ID, patch)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, apperrors.AsAppError(err).Code)
	}
}

func TestComplete(t *testing.T) {
	request := pendingRequest("67a000000000000000000008")
	request.Status = model.MarketingInProgress
	repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
	svc := newTestService(repo)

	if err := svc.Complete(context.Background(), request.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != model.MarketingCompleted {
		t.Errorf("expected status %q, got %q", model.MarketingCompleted, request.Status)
	}
	if request.CompletedAt == nil {
		t.Error("expected completed_at to be set")
	}
}

func TestComplete_Rejected(t *testing.T) {
	request := pendingRequest("67a000000000000000000009")
	request.Status = model.MarketingRejected
	repo := &mockMarketingRepository{requests: []*model.MarketingRequest{request}}
	svc := newTestService(repo)

	err := svc.Complete(context.Background(), request.ID)
	if err == nil {
		t.Fatal("expected conflict, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}
