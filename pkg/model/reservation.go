package model

import (
	"fmt"
	"time"
)

const (
	ReservationPending   = "pendente"
	ReservationApproved  = "aprovado"
	ReservationCancelled = "cancelado"
)

// Reservation is a room and/or equipment booking for a single half-hour
// slot. At least one of RoomID and EquipmentID must be set; the validator
// enforces this because the store cannot.
type Reservation struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Date          string     `json:"date" bson:"date" validate:"required,iso_date"`
	Time          string     `json:"time" bson:"time" validate:"required,slot_time"`
	Period        Period     `json:"period" bson:"period" validate:"required,oneof=matutino vespertino noturno"`
	Block         string     `json:"block" bson:"block" validate:"required,oneof=B C D"`
	RoomID        string     `json:"room_id,omitempty" bson:"room_id,omitempty" validate:"omitempty,min=2,max=20"`
	EquipmentID   string     `json:"equipment_id,omitempty" bson:"equipment_id,omitempty" validate:"omitempty,mongodb"`
	UsageLocation string     `json:"usage_location,omitempty" bson:"usage_location,omitempty" validate:"omitempty,max=200"`
	Requester     string     `json:"requester" bson:"requester" validate:"required,min=2,max=100"`
	Status        string     `json:"status" bson:"status" validate:"required,oneof=pendente aprovado cancelado"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty" validate:"omitempty"`
}

// ReservationUpdate carries the staff-editable fields. Status changes go
// through the service so cancellation timestamps stay consistent.
type ReservationUpdate struct {
	Status        string  `json:"status,omitempty" validate:"omitempty,oneof=pendente aprovado cancelado"`
	UsageLocation *string `json:"usage_location,omitempty" validate:"omitempty,max=200"`
}

// SlotKey is the (date, period, room, time) tuple used for conflict
// detection and advisory locking.
func (r *Reservation) SlotKey() string {
	return fmt.Sprintf("%s_%s_%s_%s", r.Date, r.Period, r.RoomID, r.Time)
}
