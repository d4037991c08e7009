package model

import "time"

const (
	MarketingOpen       = "aberta"
	MarketingPending    = "pendente"
	MarketingInProgress = "em_andamento"
	MarketingCompleted  = "concluida"
	MarketingRejected   = "rejeitada"
)

// Stage is one step of the marketing approval chain, in order.
type Stage string

const (
	StageCoordenador Stage = "coordenador"
	StageDiretor     Stage = "diretor"
	StageVice        Stage = "vice"
)

func Stages() []Stage {
	return []Stage{StageCoordenador, StageDiretor, StageVice}
}

func (s Stage) Valid() bool {
	switch s {
	case StageCoordenador, StageDiretor, StageVice:
		return true
	}
	return false
}

// Previous returns the stage that must be approved before this one acts.
// The coordenador stage has no predecessor.
func (s Stage) Previous() (Stage, bool) {
	switch s {
	case StageDiretor:
		return StageCoordenador, true
	case StageVice:
		return StageDiretor, true
	}
	return "", false
}

// Approval records one stage's decision. Approved stays nil while the stage
// has not acted.
type Approval struct {
	Approved *bool      `json:"approved" bson:"approved"`
	By       string     `json:"by,omitempty" bson:"by,omitempty"`
	At       *time.Time `json:"at,omitempty" bson:"at,omitempty"`
}

type Approvals struct {
	Coordenador Approval `json:"coordenador" bson:"coordenador"`
	Diretor     Approval `json:"diretor" bson:"diretor"`
	Vice        Approval `json:"vice" bson:"vice"`
}

func (a *Approvals) Stage(s Stage) *Approval {
	switch s {
	case StageCoordenador:
		return &a.Coordenador
	case StageDiretor:
		return &a.Diretor
	case StageVice:
		return &a.Vice
	}
	return nil
}

// ChecklistItem is one requested deliverable inside a checklist group.
type ChecklistItem struct {
	Requested bool   `json:"requested" bson:"requested"`
	Done      bool   `json:"done" bson:"done"`
	Assignee  string `json:"assignee,omitempty" bson:"assignee,omitempty"`
}

type Checklist map[string]ChecklistItem

// Checklist groups and their item catalogs. Only cataloged keys are
// accepted on writes.
const (
	GroupCreation = "criacao"
	GroupOutreach = "divulgacao"
	GroupOther    = "outros"
)

var ChecklistCatalog = map[string][]string{
	GroupCreation: {"banner90x120", "cartazA4", "cartazA3", "cracha9x13", "postOnline", "emailMkt"},
	GroupOutreach: {"materiaImprensa", "materiaSite", "attSite", "divulgacaoSite"},
	GroupOther:    {"fixacaoCampus", "registroFoto", "filmagem", "outros"},
}

func ChecklistItemKnown(group, item string) bool {
	for _, known := range ChecklistCatalog[group] {
		if known == item {
			return true
		}
	}
	return false
}

type MarketingRequest struct {
	ID           string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Requester    string     `json:"requester" bson:"requester" validate:"required,min=2,max=100"`
	SectorCourse string     `json:"sector_course" bson:"sector_course" validate:"required,min=2,max=100"`
	Phone        string     `json:"phone" bson:"phone" validate:"required,min=8,max=20"`
	Email        string     `json:"email" bson:"email" validate:"required,email"`
	Coordinator  bool       `json:"coordinator" bson:"coordinator"`
	Demand       string     `json:"demand" bson:"demand" validate:"required,oneof=acao campanha evento"`
	Title        string     `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Date         string     `json:"date" bson:"date" validate:"required,iso_date"`
	Time         string     `json:"time,omitempty" bson:"time,omitempty" validate:"omitempty,hhmm_time"`
	Location     string     `json:"location" bson:"location" validate:"required,min=2,max=200"`
	Creation     Checklist  `json:"criacao" bson:"criacao" validate:"omitempty"`
	Outreach     Checklist  `json:"divulgacao" bson:"divulgacao" validate:"omitempty"`
	Other        Checklist  `json:"outros" bson:"outros" validate:"omitempty"`
	OtherDetails string     `json:"other_details,omitempty" bson:"other_details,omitempty" validate:"omitempty,max=500"`
	Approvals    Approvals  `json:"approvals" bson:"approvals"`
	Status       string     `json:"status" bson:"status" validate:"omitempty,oneof=aberta pendente em_andamento concluida rejeitada"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty" validate:"omitempty"`
}

// Terminal reports whether the request accepts no further approval
// transitions.
func (m *MarketingRequest) Terminal() bool {
	return m.Status == MarketingRejected || m.Status == MarketingCompleted
}

// ChecklistPatch is a typed partial update for a single checklist item;
// field paths are built server-side from validated group/item keys, never
// taken from the client as raw strings.
type ChecklistPatch struct {
	Group    string  `json:"group" validate:"required,oneof=criacao divulgacao outros"`
	Item     string  `json:"item" validate:"required,min=2,max=40"`
	Done     *bool   `json:"done,omitempty"`
	Assignee *string `json:"assignee,omitempty" validate:"omitempty,max=100"`
}

// ApprovalDecision is the request body for a stage transition. The acting
// party comes from the authenticated principal, not from this payload.
type ApprovalDecision struct {
	Approved bool `json:"approved"`
}
