package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	ceerrors "campushub/internal/cerimonial/errors"
	"campushub/internal/cerimonial/validator"
	"campushub/pkg/config"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/logger"
	"campushub/pkg/model"
)

type mockCerimonialRepository struct {
	requests []*model.CerimonialRequest
	created  []*model.CerimonialRequest
	toggles  []taskToggle
}

type taskToggle struct {
	id    string
	index int
	done  bool
}

func (m *mockCerimonialRepository) Create(ctx context.Context, request *model.CerimonialRequest) error {
	request.ID = "68a000000000000000000001"
	m.created = append(m.created, request)
	return nil
}

func (m *mockCerimonialRepository) FindByID(ctx context.Context, id string) (*model.CerimonialRequest, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ceerrors.ErrNotFound
}

func (m *mockCerimonialRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.CerimonialRequest, error) {
	return m.requests, nil
}

func (m *mockCerimonialRepository) SetFields(ctx context.Context, id string, set bson.M) error {
	for _, r := range m.requests {
		if r.ID == id {
			if status, ok := set["status"].(string); ok {
				r.Status = status
			}
			return nil
		}
	}
	return ceerrors.ErrNotFound
}

func (m *mockCerimonialRepository) SetTaskDone(ctx context.Context, id string, index int, done bool) error {
	m.toggles = append(m.toggles, taskToggle{id: id, index: index, done: done})
	for _, r := range m.requests {
		if r.ID == id {
			r.Tasks[index].Done = done
			return nil
		}
	}
	return ceerrors.ErrNotFound
}

func (m *mockCerimonialRepository) Delete(ctx context.Context, id string) error {
	for i, r := range m.requests {
		if r.ID == id {
			m.requests = append(m.requests[:i], m.requests[i+1:]...)
			return nil
		}
	}
	return ceerrors.ErrNotFound
}

func (m *mockCerimonialRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.requests)), nil
}

func newTestService(repo *mockCerimonialRepository) *cerimonialService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}
	return &cerimonialService{
		repo:      repo,
		validator: validator.NewCerimonialValidator(log),
		cfg:       cfg,
	}
}

func validRequest() *model.CerimonialRequest {
	return &model.CerimonialRequest{
		Requester: "Carla Mendes",
		Title:     "Colacao de Grau 2025.2",
		Date:      "2025-12-12",
		Time:      "19:00",
		Period:    model.PeriodEvening,
		Location:  "Auditorio Central",
	}
}

func TestCreate_AttachesDefaultTasks(t *testing.T) {
	repo := &mockCerimonialRepository{}
	svc := newTestService(repo)

	request := validRequest()
	if err := svc.Create(context.Background(), request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if request.Status != model.CerimonialOpen {
		t.Errorf("expected status %q, got %q", model.CerimonialOpen, request.Status)
	}
	if len(request.Tasks) != 3 {
		t.Fatalf("expected 3 default tasks, got %d", len(request.Tasks))
	}
	sectors := map[string]bool{}
	for _, task := range request.Tasks {
		if task.Done {
			t.Errorf("task %q should start undone", task.Name)
		}
		sectors[task.Sector] = true
	}
	for _, sector := range []string{"Cerimonial", "Audiovisual", "Marketing"} {
		if !sectors[sector] {
			t.Errorf("expected a default task for sector %q", sector)
		}
	}
}

func TestCreate_DerivesPeriodFromTime(t *testing.T) {
	repo := &mockCerimonialRepository{}
	svc := newTestService(repo)

	request := validRequest()
	request.Period = ""
	request.Time = "09:30"

	if err := svc.Create(context.Background(), request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Period != model.PeriodMorning {
		t.Errorf("expected derived period %q, got %q", model.PeriodMorning, request.Period)
	}
}

func TestCreate_TimeOutsidePeriodWindow(t *testing.T) {
	svc := newTestService(&mockCerimonialRepository{})

	request := validRequest()
	request.Period = model.PeriodMorning // 19:00 is outside 06:00-12:00

	err := svc.Create(context.Background(), request)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, apperrors.AsAppError(err).Code)
	}
}

func TestToggleTask(t *testing.T) {
	request := validRequest()
	request.ID = "68a000000000000000000002"
	request.Status = model.CerimonialOpen
	request.Tasks = model.DefaultEventTasks()
	repo := &mockCerimonialRepository{requests: []*model.CerimonialRequest{request}}
	svc := newTestService(repo)

	if err := svc.ToggleTask(context.Background(), request.ID, 1, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !request.Tasks[1].Done {
		t.Error("expected task 1 to be done")
	}
}

func TestToggleTask_IndexOutOfRange(t *testing.T) {
	request := validRequest()
	request.ID = "68a000000000000000000003"
	request.Tasks = model.DefaultEventTasks()
	repo := &mockCerimonialRepository{requests: []*model.CerimonialRequest{request}}
	svc := newTestService(repo)

	for _, index := range []int{-1, 3} {
		err := svc.ToggleTask(context.Background(), request.ID, index, true)
		if err == nil {
			t.Fatalf("expected error for index %d, got nil", index)
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
			t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
		}
	}
	if len(repo.toggles) != 0 {
		t.Error("out-of-range toggles must not reach the store")
	}
}

func TestToggleTask_CompletedEvent(t *testing.T) {
	request := validRequest()
	request.ID = "68a000000000000000000004"
	request.Status = model.CerimonialCompleted
	request.Tasks = model.DefaultEventTasks()
	repo := &mockCerimonialRepository{requests: []*model.CerimonialRequest{request}}
	svc := newTestService(repo)

	err := svc.ToggleTask(context.Background(), request.ID, 0, true)
	if err == nil {
		t.Fatal("expected conflict, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	}
}

func TestUpdate_Status(t *testing.T) {
	request := validRequest()
	request.ID = "68a000000000000000000005"
	request.Status = model.CerimonialOpen
	repo := &mockCerimonialRepository{requests: []*model.CerimonialRequest{request}}
	svc := newTestService(repo)

	updates := &model.CerimonialUpdate{Status: model.CerimonialInProgress}
	if err := svc.Update(context.Background(), request.ID, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != model.CerimonialInProgress {
		t.Errorf("expected status %q, got %q", model.CerimonialInProgress, request.Status)
	}
}

func TestUpdate_NoFields(t *testing.T) {
	svc := newTestService(&mockCerimonialRepository{})

	err := svc.Update(context.Background(), "68a000000000000000000006", &model.CerimonialUpdate{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
	}
}
