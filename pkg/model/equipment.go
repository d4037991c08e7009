package model

import "time"

type Equipment struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Tag       string    `json:"tag" bson:"tag" validate:"required,min=2,max=40"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Type      string    `json:"type" bson:"type" validate:"required,oneof=datashow notebook microfone caixa_de_som"`
	Block     string    `json:"block" bson:"block" validate:"required,oneof=B C D"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=disponivel manutencao"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type EquipmentUpdate struct {
	Tag    string `json:"tag,omitempty" validate:"omitempty,min=2,max=40"`
	Name   string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Type   string `json:"type,omitempty" validate:"omitempty,oneof=datashow notebook microfone caixa_de_som"`
	Block  string `json:"block,omitempty" validate:"omitempty,oneof=B C D"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=disponivel manutencao"`
}

const (
	EquipmentAvailable   = "disponivel"
	EquipmentMaintenance = "manutencao"
)

const (
	EquipmentDatashow   = "datashow"
	EquipmentNotebook   = "notebook"
	EquipmentMicrophone = "microfone"
	EquipmentSpeaker    = "caixa_de_som"
)
