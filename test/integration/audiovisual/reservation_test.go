package audiovisual

import (
	"fmt"
	"net/http"
	"testing"

	"campushub/pkg/model"
	"campushub/test/integration/testutil"
)

func TestCreateReservation_Valid(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.AudiovisualURL)
	defer env.Cleanup(t, mongo)

	reservation := testutil.NewReservationBuilder().Build()

	resp := client.POST(t, "/api/v1/reservations", reservation)

	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Reservation
	resp.UnmarshalData(t, &created)

	if created.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.Status != model.ReservationPending {
		t.Errorf("expected status %q, got %q", model.ReservationPending, created.Status)
	}
	if created.RoomID != reservation.RoomID {
		t.Errorf("expected room %q, got %q", reservation.RoomID, created.RoomID)
	}

	count := mongo.CountDocuments(t, testutil.ReservationsCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestCreateReservation_SlotConflict(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.AudiovisualURL)
	defer env.Cleanup(t, mongo)

	first := testutil.NewReservationBuilder().Build()
	resp := client.POST(t, "/api/v1/reservations", first)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	second := testutil.NewReservationBuilder().WithRequester("Outro Solicitante").Build()
	resp = client.POST(t, "/api/v1/reservations", second)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	testutil.AssertContains(t, resp, "already reserved")

	count := mongo.CountDocuments(t, testutil.ReservationsCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB after rejected duplicate, got %d", count)
	}
}

func TestCreateReservation_AdjacentSlotAllowed(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.AudiovisualURL)
	defer env.Cleanup(t, mongo)

	first := testutil.NewReservationBuilder().Build()
	resp := client.POST(t, "/api/v1/reservations", first)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	adjacent := testutil.NewReservationBuilder().WithTime("14:30").Build()
	resp = client.POST(t, "/api/v1/reservations", adjacent)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	count := mongo.CountDocuments(t, testutil.ReservationsCollection)
	if count != 2 {
		t.Errorf("expected 2 documents in DB, got %d", count)
	}
}

func TestCreateReservation_TimeOutsidePeriod(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.AudiovisualURL)
	defer env.Cleanup(t, mongo)

	reservation := testutil.NewReservationBuilder().
		WithTime("14:00").
		WithPeriod(model.PeriodMorning).
		Build()

	resp := client.POST(t, "/api/v1/reservations", reservation)
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)

	count := mongo.CountDocuments(t, testutil.ReservationsCollection)
	if count != 0 {
		t.Errorf("expected no documents in DB, got %d", count)
	}
}

func TestCancelReservation_FreesSlot(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.AudiovisualURL)
	defer env.Cleanup(t, mongo)

	reservation := testutil.NewReservationBuilder().Build()
	resp := client.POST(t, "/api/v1/reservations", reservation)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Reservation
	resp.UnmarshalData(t, &created)

	resp = client.POST(t, fmt.Sprintf("/api/v1/reservations/id/%s/cancel", created.ID), nil)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, fmt.Sprintf("/api/v1/reservations/id/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var cancelled model.Reservation
	resp.UnmarshalData(t, &cancelled)
	if cancelled.Status != model.ReservationCancelled {
		t.Errorf("expected status %q, got %q", model.ReservationCancelled, cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Error("expected cancelled_at to be set")
	}

	rebooked := testutil.NewReservationBuilder().WithRequester("Outro Solicitante").Build()
	resp = client.POST(t, "/api/v1/reservations", rebooked)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
}

func TestApproveReservation(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.AudiovisualURL)
	defer env.Cleanup(t, mongo)

	reservation := testutil.NewReservationBuilder().Build()
	resp := client.POST(t, "/api/v1/reservations", reservation)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Reservation
	resp.UnmarshalData(t, &created)

	resp = client.POST(t, fmt.Sprintf("/api/v1/reservations/id/%s/approve", created.ID), nil)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, fmt.Sprintf("/api/v1/reservations/id/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var approved model.Reservation
	resp.UnmarshalData(t, &approved)
	if approved.Status != model.ReservationApproved {
		t.Errorf("expected status %q, got %q", model.ReservationApproved, approved.Status)
	}
}

func TestCheckAvailability(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.AudiovisualURL)
	defer env.Cleanup(t, mongo)

	reservation := testutil.NewReservationBuilder().Build()
	resp := client.POST(t, "/api/v1/reservations", reservation)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	path := fmt.Sprintf(
		"/api/v1/reservations/availability?date=%s&period=%s&time=%s&room_id=%s",
		reservation.Date, reservation.Period, reservation.Time, reservation.RoomID,
	)
	resp = client.GET(t, path)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var availability struct {
		Available bool `json:"available"`
	}
	resp.UnmarshalData(t, &availability)
	if availability.Available {
		t.Error("expected slot to be unavailable")
	}

	freePath := fmt.Sprintf(
		"/api/v1/reservations/availability?date=%s&period=%s&time=15:00&room_id=%s",
		reservation.Date, reservation.Period, reservation.RoomID,
	)
	resp = client.GET(t, freePath)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp.UnmarshalData(t, &availability)
	if !availability.Available {
		t.Error("expected adjacent slot to be available")
	}
}

func TestEquipmentAvailable_ExcludesReserved(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.AudiovisualURL)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/equipment", testutil.NewEquipmentBuilder().Build())
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var reserved model.Equipment
	resp.UnmarshalData(t, &reserved)

	resp = client.POST(t, "/api/v1/equipment", testutil.NewEquipmentBuilder().WithTag("AV-002").Build())
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var free model.Equipment
	resp.UnmarshalData(t, &free)

	reservation := testutil.NewReservationBuilder().
		WithEquipment(reserved.ID, "Sala dos professores").
		Build()
	resp = client.POST(t, "/api/v1/reservations", reservation)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	path := fmt.Sprintf(
		"/api/v1/equipment/available?date=%s&period=%s&time=%s",
		reservation.Date, reservation.Period, reservation.Time,
	)
	resp = client.GET(t, path)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var available []model.Equipment
	resp.UnmarshalData(t, &available)

	if len(available) != 1 {
		t.Fatalf("expected 1 available equipment, got %d", len(available))
	}
	if available[0].ID != free.ID {
		t.Errorf("expected equipment %s to be available, got %s", free.ID, available[0].ID)
	}
}
