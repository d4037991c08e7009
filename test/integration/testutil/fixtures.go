package testutil

import (
	"campushub/pkg/model"
)

type ReservationBuilder struct {
	r model.Reservation
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		r: model.Reservation{
			Date:      "2025-11-07",
			Time:      "14:00",
			Period:    model.PeriodAfternoon,
			Block:     "B",
			RoomID:    "B203",
			Requester: "Ana Souza",
		},
	}
}

func (b *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	b.r.Date = date
	return b
}

func (b *ReservationBuilder) WithTime(hhmm string) *ReservationBuilder {
	b.r.Time = hhmm
	return b
}

func (b *ReservationBuilder) WithPeriod(period model.Period) *ReservationBuilder {
	b.r.Period = period
	return b
}

func (b *ReservationBuilder) WithRoom(block, roomID string) *ReservationBuilder {
	b.r.Block = block
	b.r.RoomID = roomID
	return b
}

func (b *ReservationBuilder) WithEquipment(equipmentID, usageLocation string) *ReservationBuilder {
	b.r.EquipmentID = equipmentID
	b.r.UsageLocation = usageLocation
	return b
}

func (b *ReservationBuilder) WithRequester(requester string) *ReservationBuilder {
	b.r.Requester = requester
	return b
}

func (b *ReservationBuilder) Build() model.Reservation {
	return b.r
}

type EquipmentBuilder struct {
	e model.Equipment
}

func NewEquipmentBuilder() *EquipmentBuilder {
	return &EquipmentBuilder{
		e: model.Equipment{
			Tag:   "AV-001",
			Name:  "Projetor Epson",
			Type:  model.EquipmentDatashow,
			Block: "B",
		},
	}
}

func (b *EquipmentBuilder) WithTag(tag string) *EquipmentBuilder {
	b.e.Tag = tag
	return b
}

func (b *EquipmentBuilder) WithType(equipmentType string) *EquipmentBuilder {
	b.e.Type = equipmentType
	return b
}

func (b *EquipmentBuilder) WithStatus(status string) *EquipmentBuilder {
	b.e.Status = status
	return b
}

func (b *EquipmentBuilder) Build() model.Equipment {
	return b.e
}

type MarketingRequestBuilder struct {
	m model.MarketingRequest
}

func NewMarketingRequestBuilder() *MarketingRequestBuilder {
	return &MarketingRequestBuilder{
		m: model.MarketingRequest{
			Requester:    "Carlos Lima",
			SectorCourse: "Engenharia",
			Phone:        "(11) 91234-5678",
			Email:        "carlos.lima@example.edu",
			Demand:       "evento",
			Title:        "Semana da Engenharia",
			Date:         "2025-11-20",
			Location:     "Auditorio Central",
		},
	}
}

func (b *MarketingRequestBuilder) WithRequester(requester string) *MarketingRequestBuilder {
	b.m.Requester = requester
	return b
}

func (b *MarketingRequestBuilder) AsCoordinator() *MarketingRequestBuilder {
	b.m.Coordinator = true
	return b
}

func (b *MarketingRequestBuilder) WithDemand(demand string) *MarketingRequestBuilder {
	b.m.Demand = demand
	return b
}

func (b *MarketingRequestBuilder) WithChecklist(creation, outreach, other model.Checklist) *MarketingRequestBuilder {
	b.m.Creation = creation
	b.m.Outreach = outreach
	b.m.Other = other
	return b
}

func (b *MarketingRequestBuilder) Build() model.MarketingRequest {
	return b.m
}

type CerimonialRequestBuilder struct {
	c model.CerimonialRequest
}

func NewCerimonialRequestBuilder() *CerimonialRequestBuilder {
	return &CerimonialRequestBuilder{
		c: model.CerimonialRequest{
			Requester: "Beatriz Nunes",
			Title:     "Colacao de Grau",
			Date:      "2025-12-05",
			Time:      "19:00",
			Period:    model.PeriodEvening,
			Location:  "Teatro Municipal",
		},
	}
}

func (b *CerimonialRequestBuilder) WithDate(date string) *CerimonialRequestBuilder {
	b.c.Date = date
	return b
}

func (b *CerimonialRequestBuilder) WithTimeAndPeriod(hhmm string, period model.Period) *CerimonialRequestBuilder {
	b.c.Time = hhmm
	b.c.Period = period
	return b
}

func (b *CerimonialRequestBuilder) WithExtraItems(items string) *CerimonialRequestBuilder {
	b.c.ExtraItems = items
	return b
}

func (b *CerimonialRequestBuilder) Build() model.CerimonialRequest {
	return b.c
}
