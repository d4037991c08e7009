package dashboard

import (
	"fmt"
	"sort"

	"campushub/pkg/model"
)

// Aggregation is pure and total: every function here recomputes its whole
// answer from the snapshot it is given.

// MergeCalendar projects the three sectors into one event list. Ids carry
// the sector tag as prefix so documents from different collections cannot
// collide.
func MergeCalendar(snap Snapshot) []*model.CalendarEvent {
	events := make([]*model.CalendarEvent, 0,
		len(snap.Reservations)+len(snap.Marketing)+len(snap.Cerimonial))

	for _, reservation := range snap.Reservations {
		events = append(events, &model.CalendarEvent{
			ID:       fmt.Sprintf("%s:%s", model.SectorAudiovisual, reservation.ID),
			Date:     reservation.Date,
			Time:     reservation.Time,
			Title:    reservationTitle(reservation),
			Location: reservation.UsageLocation,
			Sector:   model.SectorAudiovisual,
			Status:   reservation.Status,
		})
	}

	for _, request := range snap.Marketing {
		events = append(events, &model.CalendarEvent{
			ID:       fmt.Sprintf("%s:%s", model.SectorMarketing, request.ID),
			Date:     request.Date,
			Time:     request.Time,
			Title:    request.Title,
			Location: request.Location,
			Sector:   model.SectorMarketing,
			Status:   request.Status,
		})
	}

	for _, request := range snap.Cerimonial {
		events = append(events, &model.CalendarEvent{
			ID:       fmt.Sprintf("%s:%s", model.SectorCerimonial, request.ID),
			Date:     request.Date,
			Time:     request.Time,
			Title:    request.Title,
			Location: request.Location,
			Sector:   model.SectorCerimonial,
			Status:   request.Status,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})

	return events
}

func reservationTitle(r *model.Reservation) string {
	switch {
	case r.RoomID != "" && r.EquipmentID != "":
		return fmt.Sprintf("Reserva %s + equipamento", r.RoomID)
	case r.RoomID != "":
		return fmt.Sprintf("Reserva %s", r.RoomID)
	default:
		return "Reserva de equipamento"
	}
}

type ReservationBuckets struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Cancelled int `json:"cancelled"`
}

type MarketingBuckets struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type CerimonialBuckets struct {
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

type Buckets struct {
	Reservations ReservationBuckets `json:"reservations"`
	Marketing    MarketingBuckets   `json:"marketing"`
	Cerimonial   CerimonialBuckets  `json:"cerimonial"`
}

// ComputeBuckets counts documents per display bucket. Marketing statuses
// collapse pairwise: aberta and pendente both read as awaiting approval,
// em_andamento and concluida both count as approved work.
func ComputeBuckets(snap Snapshot) Buckets {
	var b Buckets

	for _, reservation := range snap.Reservations {
		switch reservation.Status {
		case model.ReservationPending:
			b.Reservations.Pending++
		case model.ReservationApproved:
			b.Reservations.Approved++
		case model.ReservationCancelled:
			b.Reservations.Cancelled++
		}
	}

	for _, request := range snap.Marketing {
		switch request.Status {
		case model.MarketingOpen, model.MarketingPending:
			b.Marketing.Pending++
		case model.MarketingInProgress, model.MarketingCompleted:
			b.Marketing.Approved++
		case model.MarketingRejected:
			b.Marketing.Rejected++
		}
	}

	for _, request := range snap.Cerimonial {
		switch request.Status {
		case model.CerimonialOpen:
			b.Cerimonial.Open++
		case model.CerimonialInProgress:
			b.Cerimonial.InProgress++
		case model.CerimonialCompleted:
			b.Cerimonial.Completed++
		}
	}

	return b
}

// EquipmentUsage joins a live reservation to the equipment it holds. A
// reservation pointing at deleted equipment keeps a placeholder so the row
// still renders.
type EquipmentUsage struct {
	ReservationID string       `json:"reservation_id"`
	Date          string       `json:"date"`
	Period        model.Period `json:"period"`
	Time          string       `json:"time"`
	EquipmentID   string       `json:"equipment_id"`
	Tag           string       `json:"tag"`
	Name          string       `json:"name"`
	Missing       bool         `json:"missing,omitempty"`
}

const missingEquipmentName = "equipamento removido"

func EquipmentInUse(snap Snapshot) []EquipmentUsage {
	byID := make(map[string]*model.Equipment, len(snap.Equipment))
	for _, equipment := range snap.Equipment {
		byID[equipment.ID] = equipment
	}

	var usage []EquipmentUsage
	for _, reservation := range snap.Reservations {
		if reservation.EquipmentID == "" || reservation.Status == model.ReservationCancelled {
			continue
		}

		row := EquipmentUsage{
			ReservationID: reservation.ID,
			Date:          reservation.Date,
			Period:        reservation.Period,
			Time:          reservation.Time,
			EquipmentID:   reservation.EquipmentID,
		}
		if equipment, ok := byID[reservation.EquipmentID]; ok {
			row.Tag = equipment.Tag
			row.Name = equipment.Name
		} else {
			row.Name = missingEquipmentName
			row.Missing = true
		}
		usage = append(usage, row)
	}

	sort.SliceStable(usage, func(i, j int) bool {
		if usage[i].Date != usage[j].Date {
			return usage[i].Date < usage[j].Date
		}
		return usage[i].Time < usage[j].Time
	})

	return usage
}

// RoomOccupancy lists the rooms held by live reservations on a (date,
// period) pair, deduplicated and sorted for the campus map view.
func RoomOccupancy(snap Snapshot, date string, period model.Period) []string {
	seen := make(map[string]struct{})
	for _, reservation := range snap.Reservations {
		if reservation.RoomID == "" || reservation.Status == model.ReservationCancelled {
			continue
		}
		if reservation.Date != date {
			continue
		}
		if period != "" && period != model.PeriodAll && reservation.Period != period {
			continue
		}
		seen[reservation.RoomID] = struct{}{}
	}

	rooms := make([]string, 0, len(seen))
	for room := range seen {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}
