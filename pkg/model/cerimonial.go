package model

import "time"

const (
	CerimonialOpen       = "aberta"
	CerimonialInProgress = "em_andamento"
	CerimonialCompleted  = "concluida"
)

// EventTask is one entry of the fixed cross-sector checklist attached to
// every ceremonial event.
type EventTask struct {
	Name   string `json:"name" bson:"name"`
	Sector string `json:"sector" bson:"sector"`
	Done   bool   `json:"done" bson:"done"`
}

// DefaultEventTasks returns a fresh copy of the task template so callers
// can mutate their own slice.
func DefaultEventTasks() []EventTask {
	return []EventTask{
		{Name: "Confirmar local", Sector: "Cerimonial"},
		{Name: "Solicitar som e microfones", Sector: "Audiovisual"},
		{Name: "Criar banner do evento", Sector: "Marketing"},
	}
}

type CerimonialRequest struct {
	ID         string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Requester  string      `json:"requester" bson:"requester" validate:"required,min=2,max=100"`
	Title      string      `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Date       string      `json:"date" bson:"date" validate:"required,iso_date"`
	Time       string      `json:"time,omitempty" bson:"time,omitempty" validate:"omitempty,hhmm_time"`
	Period     Period      `json:"period" bson:"period" validate:"required,oneof=matutino vespertino noturno"`
	Location   string      `json:"location" bson:"location" validate:"required,min=2,max=200"`
	ExtraItems string      `json:"extra_items,omitempty" bson:"extra_items,omitempty" validate:"omitempty,max=500"`
	Notes      string      `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	Status     string      `json:"status" bson:"status" validate:"omitempty,oneof=aberta em_andamento concluida"`
	Tasks      []EventTask `json:"tasks" bson:"tasks" validate:"omitempty"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type CerimonialUpdate struct {
	Status     string  `json:"status,omitempty" validate:"omitempty,oneof=aberta em_andamento concluida"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ExtraItems *string `json:"extra_items,omitempty" validate:"omitempty,max=500"`
}
