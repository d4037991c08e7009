package dashboard

import (
	"testing"

	"campushub/pkg/model"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Reservations: []*model.Reservation{
			{
				ID:     "65f000000000000000000001",
				Date:   "2025-11-07",
				Time:   "14:00",
				Period: model.PeriodAfternoon,
				RoomID: "B203",
				Status: model.ReservationApproved,
			},
			{
				ID:          "65f000000000000000000002",
				Date:        "2025-11-07",
				Time:        "19:00",
				Period:      model.PeriodEvening,
				RoomID:      "C101",
				EquipmentID: "eq-1",
				Status:      model.ReservationPending,
			},
			{
				ID:     "65f000000000000000000003",
				Date:   "2025-11-10",
				Time:   "08:00",
				Period: model.PeriodMorning,
				RoomID: "B203",
				Status: model.ReservationCancelled,
			},
		},
		Equipment: []*model.Equipment{
			{ID: "eq-1", Tag: "AV-001", Name: "Projetor Epson"},
		},
		Marketing: []*model.MarketingRequest{
			{
				ID:       "67a000000000000000000001",
				Title:    "Banner semana academica",
				Date:     "2025-11-07",
				Location: "Bloco C",
				Status:   model.MarketingPending,
			},
			{
				ID:     "67a000000000000000000002",
				Title:  "Campanha vestibular",
				Date:   "2025-11-20",
				Status: model.MarketingRejected,
			},
		},
		Cerimonial: []*model.CerimonialRequest{
			{
				ID:       "68a000000000000000000001",
				Title:    "Colacao de grau",
				Date:     "2025-12-12",
				Time:     "19:00",
				Location: "Auditorio Central",
				Status:   model.CerimonialOpen,
			},
		},
	}
}

func TestMergeCalendar(t *testing.T) {
	events := MergeCalendar(sampleSnapshot())

	if len(events) != 6 {
		t.Fatalf("expected 6 merged events, got %d", len(events))
	}

	// Sorted by date then time: the two av and one mk events on 2025-11-07
	// come first.
	var onSeventh int
	for _, event := range events[:3] {
		if event.Date == "2025-11-07" {
			onSeventh++
		}
	}
	if onSeventh != 3 {
		t.Errorf("expected the 3 events of 2025-11-07 first, got %d", onSeventh)
	}

	seen := map[string]bool{}
	for _, event := range events {
		if seen[event.ID] {
			t.Errorf("duplicate id %s in merged feed", event.ID)
		}
		seen[event.ID] = true
	}
	if !seen["av:65f000000000000000000001"] || !seen["mk:67a000000000000000000001"] || !seen["ce:68a000000000000000000001"] {
		t.Error("expected sector-prefixed ids in merged feed")
	}
}

func TestComputeBuckets(t *testing.T) {
	b := ComputeBuckets(sampleSnapshot())

	if b.Reservations.Pending != 1 || b.Reservations.Approved != 1 || b.Reservations.Cancelled != 1 {
		t.Errorf("unexpected reservation buckets: %+v", b.Reservations)
	}
	if b.Marketing.Pending != 1 || b.Marketing.Approved != 0 || b.Marketing.Rejected != 1 {
		t.Errorf("unexpected marketing buckets: %+v", b.Marketing)
	}
	if b.Cerimonial.Open != 1 || b.Cerimonial.InProgress != 0 || b.Cerimonial.Completed != 0 {
		t.Errorf("unexpected cerimonial buckets: %+v", b.Cerimonial)
	}
}

func TestComputeBuckets_MarketingCollapse(t *testing.T) {
	snap := Snapshot{
		Marketing: []*model.MarketingRequest{
			{ID: "1", Status: model.MarketingOpen},
			{ID: "2", Status: model.MarketingPending},
			{ID: "3", Status: model.MarketingInProgress},
			{ID: "4", Status: model.MarketingCompleted},
			{ID: "5", Status: model.MarketingRejected},
		},
	}

	b := ComputeBuckets(snap)
	if b.Marketing.Pending != 2 {
		t.Errorf("expected 2 pending, got %d", b.Marketing.Pending)
	}
	if b.Marketing.Approved != 2 {
		t.Errorf("expected 2 approved, got %d", b.Marketing.Approved)
	}
	if b.Marketing.Rejected != 1 {
		t.Errorf("expected 1 rejected, got %d", b.Marketing.Rejected)
	}
}

func TestEquipmentInUse(t *testing.T) {
	snap := sampleSnapshot()
	usage := EquipmentInUse(snap)

	if len(usage) != 1 {
		t.Fatalf("expected 1 equipment usage row, got %d", len(usage))
	}
	if usage[0].Tag != "AV-001" || usage[0].Name != "Projetor Epson" || usage[0].Missing {
		t.Errorf("unexpected joined row: %+v", usage[0])
	}
}

func TestEquipmentInUse_MissingReference(t *testing.T) {
	snap := Snapshot{
		Reservations: []*model.Reservation{
			{
				ID:          "65f000000000000000000004",
				Date:        "2025-11-07",
				Time:        "10:00",
				Period:      model.PeriodMorning,
				EquipmentID: "eq-gone",
				Status:      model.ReservationPending,
			},
		},
	}

	usage := EquipmentInUse(snap)
	if len(usage) != 1 {
		t.Fatalf("expected 1 row, got %d", len(usage))
	}
	if !usage[0].Missing || usage[0].Name != missingEquipmentName {
		t.Errorf("expected placeholder for deleted equipment, got %+v", usage[0])
	}
}

func TestRoomOccupancy(t *testing.T) {
	snap := sampleSnapshot()

	rooms := RoomOccupancy(snap, "2025-11-07", model.PeriodAfternoon)
	if len(rooms) != 1 || rooms[0] != "B203" {
		t.Errorf("expected [B203], got %v", rooms)
	}

	// "todos" widens to the whole day.
	rooms = RoomOccupancy(snap, "2025-11-07", model.PeriodAll)
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %v", rooms)
	}
	if rooms[0] != "B203" || rooms[1] != "C101" {
		t.Errorf("expected sorted [B203 C101], got %v", rooms)
	}

	// Cancelled reservations do not occupy.
	rooms = RoomOccupancy(snap, "2025-11-10", model.PeriodMorning)
	if len(rooms) != 0 {
		t.Errorf("expected no rooms, got %v", rooms)
	}
}
