package dashboard

import (
	"context"
	"fmt"
	"time"

	"campushub/internal/calendar"
	"campushub/pkg/client"
	"campushub/pkg/config"
	apperrors "campushub/pkg/errors"
	"campushub/pkg/model"
)

// snapshotPageSize is the page size used when pulling a sector. Pulls walk
// pages until a short page arrives.
const snapshotPageSize = 100

// Service keeps the per-sector snapshots fresh and serves the aggregated
// read models computed from them.
type Service struct {
	store        *SnapshotStore
	reservations *client.ReservationClient
	equipment    *client.EquipmentClient
	marketing    *client.MarketingClient
	cerimonial   *client.CerimonialClient
	cfg          *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		store:        NewSnapshotStore(),
		reservations: client.NewReservationClient(cfg.AudiovisualURL),
		equipment:    client.NewEquipmentClient(cfg.AudiovisualURL),
		marketing:    client.NewMarketingClient(cfg.MarketingURL),
		cerimonial:   client.NewCerimonialClient(cfg.CerimonialURL),
		cfg:          cfg,
	}
}

// RefreshAll pulls every sector. Individual sector failures are logged and
// skipped so one unreachable service does not blank the whole dashboard.
func (s *Service) RefreshAll(ctx context.Context) {
	for _, sector := range []model.Sector{model.SectorAudiovisual, model.SectorMarketing, model.SectorCerimonial} {
		if err := s.RefreshSector(ctx, sector); err != nil {
			s.cfg.Log.Error("Failed to refresh sector snapshot", "sector", sector, "error", err)
		}
	}
}

// RefreshSector replaces one sector's snapshot with a fresh full pull.
func (s *Service) RefreshSector(ctx context.Context, sector model.Sector) error {
	switch sector {
	case model.SectorAudiovisual:
		reservations, err := s.pullReservations()
		if err != nil {
			return err
		}
		equipment, err := s.pullEquipment()
		if err != nil {
			return err
		}
		s.store.SetReservations(reservations, equipment)

	case model.SectorMarketing:
		requests, err := s.pullMarketing()
		if err != nil {
			return err
		}
		s.store.SetMarketing(requests)

	case model.SectorCerimonial:
		requests, err := s.pullCerimonial()
		if err != nil {
			return err
		}
		s.store.SetCerimonial(requests)

	default:
		return apperrors.InvalidInput(fmt.Sprintf("unknown sector: %s", sector))
	}

	s.cfg.Log.Info("Sector snapshot refreshed", "sector", sector)
	return nil
}

// HandleChange is the Kafka listener callback. The event only names the
// changed sector; the snapshot is re-pulled whole rather than patched.
func (s *Service) HandleChange(ctx context.Context, event model.ChangeEvent) error {
	s.cfg.Log.Info("Change event received",
		"sector", event.Sector,
		"action", event.Action,
		"document_id", event.DocumentID,
	)
	return s.RefreshSector(ctx, event.Sector)
}

func (s *Service) Calendar(view calendar.View, cursor time.Time) ([]calendar.DayCell, error) {
	if !view.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid calendar view: %s", view))
	}

	events := MergeCalendar(s.store.Read())
	return calendar.Render(events, view, cursor), nil
}

func (s *Service) Buckets() Buckets {
	return ComputeBuckets(s.store.Read())
}

func (s *Service) EquipmentInUse() []EquipmentUsage {
	return EquipmentInUse(s.store.Read())
}

func (s *Service) RoomOccupancy(date string, period model.Period) ([]string, error) {
	if date == "" {
		return nil, apperrors.InvalidInput("date is required")
	}
	if period != "" && period != model.PeriodAll && !period.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid period: %s", period))
	}

	return RoomOccupancy(s.store.Read(), date, period), nil
}

// --- Sector pulls ---

func (s *Service) pullReservations() ([]*model.Reservation, error) {
	var all []*model.Reservation
	var offset int64
	for {
		resp, err := s.reservations.GetAll(snapshotPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to pull reservations: %w", err)
		}
		page, _, err := s.reservations.DecodeReservations(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to decode reservations: %w", err)
		}
		all = append(all, page...)
		if len(page) < snapshotPageSize {
			return all, nil
		}
		offset += snapshotPageSize
	}
}

func (s *Service) pullEquipment() ([]*model.Equipment, error) {
	var all []*model.Equipment
	var offset int64
	for {
		resp, err := s.equipment.GetAll(snapshotPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to pull equipment: %w", err)
		}
		page, _, err := s.equipment.DecodeEquipmentList(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to decode equipment: %w", err)
		}
		all = append(all, page...)
		if len(page) < snapshotPageSize {
			return all, nil
		}
		offset += snapshotPageSize
	}
}

func (s *Service) pullMarketing() ([]*model.MarketingRequest, error) {
	var all []*model.MarketingRequest
	var offset int64
	for {
		resp, err := s.marketing.GetAll(snapshotPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to pull marketing requests: %w", err)
		}
		page, _, err := s.marketing.DecodeRequests(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to decode marketing requests: %w", err)
		}
		all = append(all, page...)
		if len(page) < snapshotPageSize {
			return all, nil
		}
		offset += snapshotPageSize
	}
}

func (s *Service) pullCerimonial() ([]*model.CerimonialRequest, error) {
	var all []*model.CerimonialRequest
	var offset int64
	for {
		resp, err := s.cerimonial.GetAll(snapshotPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to pull cerimonial requests: %w", err)
		}
		page, _, err := s.cerimonial.DecodeRequests(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to decode cerimonial requests: %w", err)
		}
		all = append(all, page...)
		if len(page) < snapshotPageSize {
			return all, nil
		}
		offset += snapshotPageSize
	}
}
